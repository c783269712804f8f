package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/pawhaven/platform/internal/domain/records"
	"github.com/pawhaven/platform/internal/ports/outbound"
)

// ApplicationRepository implements the application read contract using GORM.
type ApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository.
func NewApplicationRepository(db *gorm.DB) outbound.ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) scope(ctx context.Context, filter outbound.ApplicationFilter) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&ApplicationModel{})
	tx = whereRange(tx, "created_at", filter.CreatedIn)
	if filter.RescueID != nil {
		tx = tx.Where("rescue_id = ?", *filter.RescueID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		tx = tx.Where("status IN ?", statuses)
	}
	if filter.Resolved {
		tx = tx.Where("updated_at IS NOT NULL")
	}
	if filter.WithDocuments {
		tx = tx.Where("has_documents = ?", true)
	}
	return tx
}

// Count counts applications matching the filter.
func (r *ApplicationRepository) Count(ctx context.Context, filter outbound.ApplicationFilter) (int64, error) {
	var count int64
	if err := r.scope(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus groups matching applications by status.
func (r *ApplicationRepository) CountByStatus(ctx context.Context, filter outbound.ApplicationFilter) ([]outbound.GroupCount, error) {
	var rows []groupCountRow
	err := r.scope(ctx, filter).
		Select("status AS key, COUNT(*) AS count").
		Group("status").
		Order("status ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toGroupCounts(rows), nil
}

// CountByDay buckets matching applications per creation day.
func (r *ApplicationRepository) CountByDay(ctx context.Context, filter outbound.ApplicationFilter) ([]outbound.DateCount, error) {
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

// List returns matching applications.
func (r *ApplicationRepository) List(ctx context.Context, filter outbound.ApplicationFilter) ([]records.ApplicationRecord, error) {
	var models []ApplicationModel
	if err := r.scope(ctx, filter).Find(&models).Error; err != nil {
		return nil, err
	}

	apps := make([]records.ApplicationRecord, 0, len(models))
	for _, m := range models {
		apps = append(apps, records.ApplicationRecord{
			ID:           m.ID,
			UserID:       m.UserID,
			PetID:        m.PetID,
			RescueID:     m.RescueID,
			Status:       records.ApplicationStatus(m.Status),
			CreatedAt:    m.CreatedAt,
			UpdatedAt:    m.UpdatedAt,
			HasDocuments: m.HasDocuments,
		})
	}
	return apps, nil
}
