package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/pawhaven/platform/internal/domain/records"
	"github.com/pawhaven/platform/internal/ports/outbound"
)

type auditLogRepository struct {
	store *Store
}

func matchAuditEntry(e records.AuditLogEntry, filter outbound.AuditLogFilter) bool {
	if filter.Between != nil && !filter.Between.Contains(e.Timestamp) {
		return false
	}
	if filter.WithUser && e.UserID == nil {
		return false
	}
	if filter.WithResponseTime {
		if _, ok := e.ResponseTime(); !ok {
			return false
		}
	}
	if filter.ActionContains != "" &&
		!strings.Contains(strings.ToUpper(e.Action), strings.ToUpper(filter.ActionContains)) {
		return false
	}
	return true
}

func (r *auditLogRepository) Count(ctx context.Context, filter outbound.AuditLogFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var count int64
	for _, e := range r.store.AuditLogs {
		if matchAuditEntry(e, filter) {
			count++
		}
	}
	return count, nil
}

func (r *auditLogRepository) CountByAction(ctx context.Context, filter outbound.AuditLogFilter) ([]outbound.GroupCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buckets := make(map[string]int64)
	for _, e := range r.store.AuditLogs {
		if matchAuditEntry(e, filter) {
			buckets[e.Action]++
		}
	}
	return toGroupCounts(buckets), nil
}

func (r *auditLogRepository) List(ctx context.Context, filter outbound.AuditLogFilter) ([]records.AuditLogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var matched []records.AuditLogEntry
	for _, e := range r.store.AuditLogs {
		if matchAuditEntry(e, filter) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

type rescueRepository struct {
	store *Store
}

func (r *rescueRepository) List(ctx context.Context) ([]records.RescueRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rescues := make([]records.RescueRecord, len(r.store.Rescues))
	copy(rescues, r.store.Rescues)
	return rescues, nil
}

func (r *rescueRepository) FindByID(ctx context.Context, id uuid.UUID) (*records.RescueRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, rescue := range r.store.Rescues {
		if rescue.ID == id {
			found := rescue
			return &found, nil
		}
	}
	return nil, nil
}

type statsProvider struct {
	store *Store
}

func (p *statsProvider) Stats(ctx context.Context) (outbound.DatabaseStats, error) {
	if err := ctx.Err(); err != nil {
		return outbound.DatabaseStats{}, err
	}
	return p.store.DatabaseStats, nil
}
