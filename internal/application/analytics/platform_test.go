package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawhaven/platform/internal/application/analytics"
	"github.com/pawhaven/platform/internal/domain/records"
	"github.com/pawhaven/platform/internal/infrastructure/persistence/memory"
	"github.com/pawhaven/platform/internal/ports/outbound"
	"github.com/pawhaven/platform/test/testutils"
)

func TestPlatformTrafficAndErrors(t *testing.T) {
	factory := testutils.NewFactory(50)
	store := memory.NewStore()

	inWindow := testNow.Add(-24 * time.Hour)
	for i := 0; i < 8; i++ {
		store.AuditLogs = append(store.AuditLogs, factory.AuditEntry(nil, "GET /pets", inWindow))
	}
	store.AuditLogs = append(store.AuditLogs,
		factory.AuditEntry(nil, "ERROR: timeout", inWindow),
		factory.AuditEntry(nil, "db error on write", inWindow),
	)

	service := newMemoryService(store)
	metrics, err := service.Platform(context.Background(), analytics.Options{})
	require.NoError(t, err)

	assert.Equal(t, int64(10), metrics.APIRequestCount)
	// The error marker matches case-insensitively.
	assert.Equal(t, 20.0, metrics.ErrorRate)
	// 100 - 20*10 would be negative; the floor holds.
	assert.Equal(t, 99.0, metrics.SystemUptime)
}

func TestPlatformResponseTimes(t *testing.T) {
	factory := testutils.NewFactory(51)
	store := memory.NewStore()

	inWindow := testNow.Add(-24 * time.Hour)
	store.AuditLogs = []records.AuditLogEntry{
		factory.TimedAuditEntry("GET /pets", inWindow, 100),
		factory.TimedAuditEntry("GET /pets", inWindow, 300),
		// Untimed entries contribute traffic but no latency sample.
		factory.AuditEntry(nil, "GET /pets", inWindow),
	}

	service := newMemoryService(store)
	metrics, err := service.Platform(context.Background(), analytics.Options{})
	require.NoError(t, err)

	assert.Equal(t, int64(3), metrics.APIRequestCount)
	assert.Equal(t, 200.0, metrics.AvgResponseTime)
	assert.Equal(t, 50.0, metrics.DatabasePerformance.AvgQueryTime)
}

func TestPlatformDatabaseStats(t *testing.T) {
	store := memory.NewStore()
	store.DatabaseStats = outbound.DatabaseStats{
		ActiveConnections: 3,
		OpenConnections:   7,
		MaxConnections:    25,
	}

	service := newMemoryService(store)
	metrics, err := service.Platform(context.Background(), analytics.Options{})
	require.NoError(t, err)

	assert.Equal(t, 3, metrics.DatabasePerformance.ActiveConnections)
	assert.Equal(t, 7, metrics.DatabasePerformance.ConnectionCount)
	assert.Equal(t, 25, metrics.DatabasePerformance.MaxConnections)
}

func TestPlatformDefaultMaxConnections(t *testing.T) {
	service := newMemoryService(memory.NewStore())

	metrics, err := service.Platform(context.Background(), analytics.Options{})
	require.NoError(t, err)

	assert.Equal(t, 100, metrics.DatabasePerformance.MaxConnections)
	assert.Equal(t, 100.0, metrics.SystemUptime)
}

func TestPlatformStorageEstimate(t *testing.T) {
	factory := testutils.NewFactory(52)
	store := memory.NewStore()

	inWindow := testNow.Add(-24 * time.Hour)
	withImages := factory.Pet("dog", records.PetStatusAvailable, inWindow)
	withImages.HasImages = true
	plain := factory.Pet("cat", records.PetStatusAvailable, inWindow)
	store.Pets = []records.PetRecord{withImages, plain}

	withDocs := factory.Application(records.ApplicationStatusPending, inWindow)
	withDocs.HasDocuments = true
	store.Applications = []records.ApplicationRecord{withDocs}

	service := newMemoryService(store)
	metrics, err := service.Platform(context.Background(), analytics.Options{})
	require.NoError(t, err)

	storage := metrics.StorageUsage
	assert.Equal(t, int64(2), storage.TotalImages)
	assert.Equal(t, "0.00 GB", storage.TotalStorageUsed)
	assert.Equal(t, map[string]int64{"pet_photos": 1, "documents": 1}, storage.ImagesByType)
	// (2.8MB + 1.5MB) / 2 images, in megabytes.
	assert.Equal(t, 2.05, storage.AverageImageSize)
}

func TestPlatformStorageGrowth(t *testing.T) {
	factory := testutils.NewFactory(53)
	store := memory.NewStore()

	current := testNow.Add(-5 * 24 * time.Hour)
	previous := testNow.Add(-40 * 24 * time.Hour)

	for i := 0; i < 3; i++ {
		pet := factory.Pet("dog", records.PetStatusAvailable, current)
		pet.HasImages = true
		store.Pets = append(store.Pets, pet)
	}
	for i := 0; i < 2; i++ {
		pet := factory.Pet("dog", records.PetStatusAvailable, previous)
		pet.HasImages = true
		store.Pets = append(store.Pets, pet)
	}

	service := newMemoryService(store)
	metrics, err := service.Platform(context.Background(), analytics.Options{})
	require.NoError(t, err)

	assert.Equal(t, 50.0, metrics.StorageUsage.StorageGrowthRate)
}
