package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/pawhaven/platform/internal/domain/records"
	"github.com/pawhaven/platform/internal/ports/outbound"
)

// PetRepository implements the pet read contract using GORM.
type PetRepository struct {
	db *gorm.DB
}

// NewPetRepository creates a new pet repository.
func NewPetRepository(db *gorm.DB) outbound.PetRepository {
	return &PetRepository{db: db}
}

func (r *PetRepository) scope(ctx context.Context, filter outbound.PetFilter) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&PetModel{})
	tx = whereRange(tx, "created_at", filter.CreatedIn)
	if filter.RescueID != nil {
		tx = tx.Where("rescue_id = ?", *filter.RescueID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if filter.WithImages {
		tx = tx.Where("has_images = ?", true)
	}
	if len(filter.IDs) > 0 {
		tx = tx.Where("pet_id IN ?", filter.IDs)
	}
	return tx
}

// Count counts pets matching the filter.
func (r *PetRepository) Count(ctx context.Context, filter outbound.PetFilter) (int64, error) {
	var count int64
	if err := r.scope(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByType groups matching pets by type.
func (r *PetRepository) CountByType(ctx context.Context, filter outbound.PetFilter) ([]outbound.GroupCount, error) {
	var rows []groupCountRow
	err := r.scope(ctx, filter).
		Select("type AS key, COUNT(*) AS count").
		Group("type").
		Order("count DESC, type ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toGroupCounts(rows), nil
}

// CountByDay buckets matching pets per creation day.
func (r *PetRepository) CountByDay(ctx context.Context, filter outbound.PetFilter) ([]outbound.DateCount, error) {
	var rows []dateCountRow
	err := r.scope(ctx, filter).
		Select("DATE(created_at) AS date, COUNT(*) AS count").
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDateCounts(rows)
}

// List returns matching pets.
func (r *PetRepository) List(ctx context.Context, filter outbound.PetFilter) ([]records.PetRecord, error) {
	var models []PetModel
	if err := r.scope(ctx, filter).Find(&models).Error; err != nil {
		return nil, err
	}

	pets := make([]records.PetRecord, 0, len(models))
	for _, m := range models {
		pets = append(pets, records.PetRecord{
			ID:        m.ID,
			RescueID:  m.RescueID,
			Type:      m.Type,
			Status:    records.PetStatus(m.Status),
			CreatedAt: m.CreatedAt,
			HasImages: m.HasImages,
		})
	}
	return pets, nil
}
