package gorm

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawhaven/platform/internal/domain/records"
	"github.com/pawhaven/platform/internal/ports/outbound"
)

// AuditLogRepository implements the audit log read contract using GORM.
type AuditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository.
func NewAuditLogRepository(db *gorm.DB) outbound.AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) scope(ctx context.Context, filter outbound.AuditLogFilter) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&AuditLogModel{})
	tx = whereRange(tx, "created_at", filter.Between)
	if filter.WithUser {
		tx = tx.Where("user_id IS NOT NULL")
	}
	if filter.WithResponseTime {
		// JSON extraction differs between the supported dialects.
		if r.db.Dialector.Name() == "postgres" {
			tx = tx.Where("detail ->> 'response_time' IS NOT NULL")
		} else {
			tx = tx.Where("json_extract(detail, '$.response_time') IS NOT NULL")
		}
	}
	if filter.ActionContains != "" {
		tx = tx.Where("UPPER(action) LIKE ?", "%"+strings.ToUpper(filter.ActionContains)+"%")
	}
	return tx
}

// Count counts audit entries matching the filter.
func (r *AuditLogRepository) Count(ctx context.Context, filter outbound.AuditLogFilter) (int64, error) {
	var count int64
	if err := r.scope(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByAction groups matching audit entries by action.
func (r *AuditLogRepository) CountByAction(ctx context.Context, filter outbound.AuditLogFilter) ([]outbound.GroupCount, error) {
	var rows []groupCountRow
	err := r.scope(ctx, filter).
		Select("action AS key, COUNT(*) AS count").
		Group("action").
		Order("count DESC, action ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toGroupCounts(rows), nil
}

// List returns matching audit entries.
func (r *AuditLogRepository) List(ctx context.Context, filter outbound.AuditLogFilter) ([]records.AuditLogEntry, error) {
	var models []AuditLogModel
	if err := r.scope(ctx, filter).Find(&models).Error; err != nil {
		return nil, err
	}

	entries := make([]records.AuditLogEntry, 0, len(models))
	for _, m := range models {
		entries = append(entries, records.AuditLogEntry{
			ID:        m.ID,
			UserID:    m.UserID,
			Action:    m.Action,
			Timestamp: m.Timestamp,
			Detail:    m.Detail,
		})
	}
	return entries, nil
}

// RescueRepository implements the rescue read contract using GORM.
type RescueRepository struct {
	db *gorm.DB
}

// NewRescueRepository creates a new rescue repository.
func NewRescueRepository(db *gorm.DB) outbound.RescueRepository {
	return &RescueRepository{db: db}
}

// List returns all rescues.
func (r *RescueRepository) List(ctx context.Context) ([]records.RescueRecord, error) {
	var models []RescueModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}

	rescues := make([]records.RescueRecord, 0, len(models))
	for _, m := range models {
		rescues = append(rescues, records.RescueRecord{ID: m.ID, Name: m.Name})
	}
	return rescues, nil
}

// FindByID returns one rescue, or nil when absent.
func (r *RescueRepository) FindByID(ctx context.Context, id uuid.UUID) (*records.RescueRecord, error) {
	var model RescueModel
	err := r.db.WithContext(ctx).First(&model, "rescue_id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &records.RescueRecord{ID: model.ID, Name: model.Name}, nil
}
