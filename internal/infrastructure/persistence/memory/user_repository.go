package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pawhaven/platform/internal/ports/outbound"
)

type userRepository struct {
	store *Store
}

// Count counts users matching every set filter dimension. Activity
// ranges resolve to distinct users with at least one qualifying event.
func (r *userRepository) Count(ctx context.Context, filter outbound.UserFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var senders map[uuid.UUID]struct{}
	if filter.MessagedIn != nil {
		senders = make(map[uuid.UUID]struct{})
		for _, m := range r.store.Messages {
			if filter.MessagedIn.Contains(m.CreatedAt) {
				senders[m.SenderID] = struct{}{}
			}
		}
	}

	var applicants map[uuid.UUID]struct{}
	if filter.AppliedIn != nil {
		applicants = make(map[uuid.UUID]struct{})
		for _, a := range r.store.Applications {
			if filter.AppliedIn.Contains(a.CreatedAt) {
				applicants[a.UserID] = struct{}{}
			}
		}
	}

	var audited map[uuid.UUID]struct{}
	if filter.AuditActiveIn != nil {
		audited = make(map[uuid.UUID]struct{})
		for _, e := range r.store.AuditLogs {
			if e.UserID != nil && filter.AuditActiveIn.Contains(e.Timestamp) {
				audited[*e.UserID] = struct{}{}
			}
		}
	}

	var count int64
	for _, u := range r.store.Users {
		if !inRange(filter.CreatedIn, u.CreatedAt) {
			continue
		}
		if filter.LastLoginIn != nil && (u.LastLoginAt == nil || !filter.LastLoginIn.Contains(*u.LastLoginAt)) {
			continue
		}
		if senders != nil {
			if _, ok := senders[u.ID]; !ok {
				continue
			}
		}
		if applicants != nil {
			if _, ok := applicants[u.ID]; !ok {
				continue
			}
		}
		if audited != nil {
			if _, ok := audited[u.ID]; !ok {
				continue
			}
		}
		count++
	}
	return count, nil
}

// RegistrationsByDay buckets user creation timestamps per UTC day.
func (r *userRepository) RegistrationsByDay(ctx context.Context, rng outbound.TimeRange) ([]outbound.DateCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var times []time.Time
	for _, u := range r.store.Users {
		if rng.Contains(u.CreatedAt) {
			times = append(times, u.CreatedAt)
		}
	}
	return countByDay(times), nil
}
