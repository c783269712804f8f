package memory

import (
	"context"
	"time"

	"github.com/pawhaven/platform/internal/domain/records"
	"github.com/pawhaven/platform/internal/ports/outbound"
)

type applicationRepository struct {
	store *Store
}

func matchApplication(app records.ApplicationRecord, filter outbound.ApplicationFilter) bool {
	if !inRange(filter.CreatedIn, app.CreatedAt) {
		return false
	}
	if filter.RescueID != nil && app.RescueID != *filter.RescueID {
		return false
	}
	if filter.Status != "" && app.Status != filter.Status {
		return false
	}
	if len(filter.Statuses) > 0 {
		found := false
		for _, status := range filter.Statuses {
			if app.Status == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.Resolved && app.UpdatedAt == nil {
		return false
	}
	if filter.WithDocuments && !app.HasDocuments {
		return false
	}
	return true
}

func (r *applicationRepository) Count(ctx context.Context, filter outbound.ApplicationFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var count int64
	for _, app := range r.store.Applications {
		if matchApplication(app, filter) {
			count++
		}
	}
	return count, nil
}

func (r *applicationRepository) CountByStatus(ctx context.Context, filter outbound.ApplicationFilter) ([]outbound.GroupCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buckets := make(map[string]int64)
	for _, app := range r.store.Applications {
		if matchApplication(app, filter) {
			buckets[string(app.Status)]++
		}
	}
	return toGroupCounts(buckets), nil
}

func (r *applicationRepository) CountByDay(ctx context.Context, filter outbound.ApplicationFilter) ([]outbound.DateCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var times []time.Time
	for _, app := range r.store.Applications {
		if matchApplication(app, filter) {
			times = append(times, app.CreatedAt)
		}
	}
	return countByDay(times), nil
}

func (r *applicationRepository) List(ctx context.Context, filter outbound.ApplicationFilter) ([]records.ApplicationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var matched []records.ApplicationRecord
	for _, app := range r.store.Applications {
		if matchApplication(app, filter) {
			matched = append(matched, app)
		}
	}
	return matched, nil
}
