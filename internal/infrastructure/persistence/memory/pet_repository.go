package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pawhaven/platform/internal/domain/records"
	"github.com/pawhaven/platform/internal/ports/outbound"
)

type petRepository struct {
	store *Store
}

func matchPet(pet records.PetRecord, filter outbound.PetFilter, ids map[uuid.UUID]struct{}) bool {
	if !inRange(filter.CreatedIn, pet.CreatedAt) {
		return false
	}
	if filter.RescueID != nil && pet.RescueID != *filter.RescueID {
		return false
	}
	if filter.Status != "" && pet.Status != filter.Status {
		return false
	}
	if filter.WithImages && !pet.HasImages {
		return false
	}
	if ids != nil {
		if _, ok := ids[pet.ID]; !ok {
			return false
		}
	}
	return true
}

func idSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (r *petRepository) Count(ctx context.Context, filter outbound.PetFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	ids := idSet(filter.IDs)
	var count int64
	for _, pet := range r.store.Pets {
		if matchPet(pet, filter, ids) {
			count++
		}
	}
	return count, nil
}

func (r *petRepository) CountByType(ctx context.Context, filter outbound.PetFilter) ([]outbound.GroupCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ids := idSet(filter.IDs)
	buckets := make(map[string]int64)
	for _, pet := range r.store.Pets {
		if matchPet(pet, filter, ids) {
			buckets[pet.Type]++
		}
	}
	return toGroupCounts(buckets), nil
}

func (r *petRepository) CountByDay(ctx context.Context, filter outbound.PetFilter) ([]outbound.DateCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ids := idSet(filter.IDs)
	var times []time.Time
	for _, pet := range r.store.Pets {
		if matchPet(pet, filter, ids) {
			times = append(times, pet.CreatedAt)
		}
	}
	return countByDay(times), nil
}

func (r *petRepository) List(ctx context.Context, filter outbound.PetFilter) ([]records.PetRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ids := idSet(filter.IDs)
	var matched []records.PetRecord
	for _, pet := range r.store.Pets {
		if matchPet(pet, filter, ids) {
			matched = append(matched, pet)
		}
	}
	return matched, nil
}
