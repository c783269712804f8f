package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/pawhaven/platform/internal/domain/records"
	"github.com/pawhaven/platform/internal/ports/outbound"
)

// ChatRepository implements the chat read contract using GORM.
type ChatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat repository.
func NewChatRepository(db *gorm.DB) outbound.ChatRepository {
	return &ChatRepository{db: db}
}

// Count counts chats matching the filter.
func (r *ChatRepository) Count(ctx context.Context, filter outbound.ChatFilter) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&ChatModel{})
	tx = whereRange(tx, "created_at", filter.CreatedIn)
	if filter.RescueID != nil {
		tx = tx.Where("rescue_id = ?", *filter.RescueID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MessageRepository implements the message read contract using GORM.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(db *gorm.DB) outbound.MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) scope(ctx context.Context, filter outbound.MessageFilter) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&MessageModel{})
	tx = whereRange(tx, "messages.created_at", filter.CreatedIn)
	if filter.ChatID != nil {
		tx = tx.Where("messages.chat_id = ?", *filter.ChatID)
	}
	if filter.RescueID != nil {
		tx = tx.Joins("JOIN chats ON chats.chat_id = messages.chat_id").
			Where("chats.rescue_id = ?", *filter.RescueID)
	}
	return tx
}

// Count counts messages matching the filter.
func (r *MessageRepository) Count(ctx context.Context, filter outbound.MessageFilter) (int64, error) {
	var count int64
	if err := r.scope(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByDay buckets matching messages per creation day.
func (r *MessageRepository) CountByDay(ctx context.Context, filter outbound.MessageFilter) ([]outbound.DateCount, error) {
	var rows []dateCountRow
	err := r.scope(ctx, filter).
		Select("DATE(messages.created_at) AS date, COUNT(*) AS count").
		Group("DATE(messages.created_at)").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDateCounts(rows)
}

// List returns matching messages ordered by chat, then creation time.
func (r *MessageRepository) List(ctx context.Context, filter outbound.MessageFilter) ([]records.MessageRecord, error) {
	var models []MessageModel
	err := r.scope(ctx, filter).
		Order("messages.chat_id ASC, messages.created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	messages := make([]records.MessageRecord, 0, len(models))
	for _, m := range models {
		messages = append(messages, records.MessageRecord{
			ID:        m.ID,
			ChatID:    m.ChatID,
			SenderID:  m.SenderID,
			CreatedAt: m.CreatedAt,
		})
	}
	return messages, nil
}
