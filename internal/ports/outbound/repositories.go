// Package outbound defines the interfaces for outbound ports (secondary/driven adapters).
// The analytics engine depends only on these read contracts; persistence
// adapters implement them against the platform schema.
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pawhaven/platform/internal/domain/records"
)

// TimeRange is a half-open interval [Start, End). A nil *TimeRange in a
// filter means the dimension is unbounded.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the range.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// DateCount is a per-day aggregate row. Date is truncated to UTC midnight.
type DateCount struct {
	Date  time.Time
	Count int64
}

// GroupCount is a grouped aggregate row.
type GroupCount struct {
	Key   string
	Count int64
}

// UserFilter narrows user counts. The activity ranges count distinct
// users with at least one qualifying event in the range.
type UserFilter struct {
	CreatedIn     *TimeRange
	LastLoginIn   *TimeRange
	MessagedIn    *TimeRange
	AppliedIn     *TimeRange
	AuditActiveIn *TimeRange
}

// UserRepository provides read access to user records.
type UserRepository interface {
	Count(ctx context.Context, filter UserFilter) (int64, error)
	RegistrationsByDay(ctx context.Context, rng TimeRange) ([]DateCount, error)
}

// ApplicationFilter narrows application queries.
type ApplicationFilter struct {
	CreatedIn     *TimeRange
	RescueID      *uuid.UUID
	Status        records.ApplicationStatus
	Statuses      []records.ApplicationStatus
	Resolved      bool
	WithDocuments bool
}

// ApplicationRepository provides read access to adoption applications.
type ApplicationRepository interface {
	Count(ctx context.Context, filter ApplicationFilter) (int64, error)
	CountByStatus(ctx context.Context, filter ApplicationFilter) ([]GroupCount, error)
	CountByDay(ctx context.Context, filter ApplicationFilter) ([]DateCount, error)
	List(ctx context.Context, filter ApplicationFilter) ([]records.ApplicationRecord, error)
}

// PetFilter narrows pet queries.
type PetFilter struct {
	CreatedIn  *TimeRange
	RescueID   *uuid.UUID
	Status     records.PetStatus
	WithImages bool
	IDs        []uuid.UUID
}

// PetRepository provides read access to pet records.
type PetRepository interface {
	Count(ctx context.Context, filter PetFilter) (int64, error)
	CountByType(ctx context.Context, filter PetFilter) ([]GroupCount, error)
	CountByDay(ctx context.Context, filter PetFilter) ([]DateCount, error)
	List(ctx context.Context, filter PetFilter) ([]records.PetRecord, error)
}

// ChatFilter narrows chat queries.
type ChatFilter struct {
	CreatedIn *TimeRange
	RescueID  *uuid.UUID
	Status    records.ChatStatus
}

// ChatRepository provides read access to chat records.
type ChatRepository interface {
	Count(ctx context.Context, filter ChatFilter) (int64, error)
}

// MessageFilter narrows message queries. RescueID scopes via the
// owning chat.
type MessageFilter struct {
	CreatedIn *TimeRange
	RescueID  *uuid.UUID
	ChatID    *uuid.UUID
}

// MessageRepository provides read access to chat messages. List returns
// messages ordered by chat, then creation time, which the response-time
// inference relies on.
type MessageRepository interface {
	Count(ctx context.Context, filter MessageFilter) (int64, error)
	CountByDay(ctx context.Context, filter MessageFilter) ([]DateCount, error)
	List(ctx context.Context, filter MessageFilter) ([]records.MessageRecord, error)
}

// AuditLogFilter narrows audit log queries.
type AuditLogFilter struct {
	Between          *TimeRange
	WithUser         bool
	WithResponseTime bool
	ActionContains   string
}

// AuditLogRepository provides read access to audit log entries.
type AuditLogRepository interface {
	Count(ctx context.Context, filter AuditLogFilter) (int64, error)
	CountByAction(ctx context.Context, filter AuditLogFilter) ([]GroupCount, error)
	List(ctx context.Context, filter AuditLogFilter) ([]records.AuditLogEntry, error)
}

// RescueRepository provides read access to rescue organizations.
type RescueRepository interface {
	List(ctx context.Context) ([]records.RescueRecord, error)
	FindByID(ctx context.Context, id uuid.UUID) (*records.RescueRecord, error)
}

// DatabaseStats is a point-in-time view of connection-pool health.
// Values are best-effort proxies, not instrumented telemetry.
type DatabaseStats struct {
	ActiveConnections int
	OpenConnections   int
	MaxConnections    int
	SlowQueries       int
}

// DatabaseStatsProvider exposes pool statistics for the platform
// metrics collector.
type DatabaseStatsProvider interface {
	Stats(ctx context.Context) (DatabaseStats, error)
}

// CacheRepository defines the interface for caching operations at the
// transport boundary. The analytics engine itself never caches.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
