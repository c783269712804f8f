package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/pawhaven/platform/internal/ports/outbound"
)

// UserRepository implements the user read contract using GORM.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) outbound.UserRepository {
	return &UserRepository{db: db}
}

// Count counts users matching every set filter dimension. Activity
// filters join the owning activity table and count distinct users.
func (r *UserRepository) Count(ctx context.Context, filter outbound.UserFilter) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&UserModel{})
	distinct := false

	tx = whereRange(tx, "users.created_at", filter.CreatedIn)
	tx = whereRange(tx, "users.last_login_at", filter.LastLoginIn)
	if filter.LastLoginIn != nil {
		tx = tx.Where("users.last_login_at IS NOT NULL")
	}
	if filter.MessagedIn != nil {
		tx = tx.Joins("JOIN messages ON messages.sender_id = users.user_id")
		tx = whereRange(tx, "messages.created_at", filter.MessagedIn)
		distinct = true
	}
	if filter.AppliedIn != nil {
		tx = tx.Joins("JOIN applications ON applications.user_id = users.user_id")
		tx = whereRange(tx, "applications.created_at", filter.AppliedIn)
		distinct = true
	}
	if filter.AuditActiveIn != nil {
		tx = tx.Joins("JOIN audit_logs ON audit_logs.user_id = users.user_id")
		tx = whereRange(tx, "audit_logs.created_at", filter.AuditActiveIn)
		distinct = true
	}

	if distinct {
		tx = tx.Distinct("users.user_id")
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// RegistrationsByDay buckets user creation timestamps per day.
func (r *UserRepository) RegistrationsByDay(ctx context.Context, rng outbound.TimeRange) ([]outbound.DateCount, error) {
	var rows []dateCountRow
	tx := r.db.WithContext(ctx).Model(&UserModel{}).
		Select("DATE(created_at) AS date, COUNT(*) AS count").
		Group("DATE(created_at)").
		Order("date ASC")
	tx = whereRange(tx, "created_at", &rng)
	if err := tx.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toDateCounts(rows)
}
