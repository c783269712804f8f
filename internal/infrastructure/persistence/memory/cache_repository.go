package memory

import (
	"context"
	"sync"
	"time"

	"github.com/pawhaven/platform/internal/ports/outbound"
)

// CacheRepository is an in-memory cache with TTL expiry, used in tests
// and local development in place of Redis.
type CacheRepository struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewCacheRepository creates a new in-memory cache repository.
func NewCacheRepository() *CacheRepository {
	return &CacheRepository{entries: make(map[string]cacheEntry)}
}

var _ outbound.CacheRepository = (*CacheRepository)(nil)

// Get retrieves a value; expired or missing keys return nil without error.
func (c *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	return entry.value, nil
}

// Set stores a value with a TTL.
func (c *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Delete removes a key.
func (c *CacheRepository) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}
