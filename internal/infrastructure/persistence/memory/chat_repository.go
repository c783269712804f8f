package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pawhaven/platform/internal/domain/records"
	"github.com/pawhaven/platform/internal/ports/outbound"
)

type chatRepository struct {
	store *Store
}

func (r *chatRepository) Count(ctx context.Context, filter outbound.ChatFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var count int64
	for _, chat := range r.store.Chats {
		if !inRange(filter.CreatedIn, chat.CreatedAt) {
			continue
		}
		if filter.RescueID != nil && chat.RescueID != *filter.RescueID {
			continue
		}
		if filter.Status != "" && chat.Status != filter.Status {
			continue
		}
		count++
	}
	return count, nil
}

type messageRepository struct {
	store *Store
}

// scopedChats resolves the chat IDs belonging to a rescue, or nil when
// the filter is unscoped.
func (r *messageRepository) scopedChats(rescueID *uuid.UUID) map[uuid.UUID]struct{} {
	if rescueID == nil {
		return nil
	}
	chats := make(map[uuid.UUID]struct{})
	for _, chat := range r.store.Chats {
		if chat.RescueID == *rescueID {
			chats[chat.ID] = struct{}{}
		}
	}
	return chats
}

func matchMessage(m records.MessageRecord, filter outbound.MessageFilter, chats map[uuid.UUID]struct{}) bool {
	if !inRange(filter.CreatedIn, m.CreatedAt) {
		return false
	}
	if filter.ChatID != nil && m.ChatID != *filter.ChatID {
		return false
	}
	if chats != nil {
		if _, ok := chats[m.ChatID]; !ok {
			return false
		}
	}
	return true
}

func (r *messageRepository) Count(ctx context.Context, filter outbound.MessageFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	chats := r.scopedChats(filter.RescueID)
	var count int64
	for _, m := range r.store.Messages {
		if matchMessage(m, filter, chats) {
			count++
		}
	}
	return count, nil
}

func (r *messageRepository) CountByDay(ctx context.Context, filter outbound.MessageFilter) ([]outbound.DateCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	chats := r.scopedChats(filter.RescueID)
	var times []time.Time
	for _, m := range r.store.Messages {
		if matchMessage(m, filter, chats) {
			times = append(times, m.CreatedAt)
		}
	}
	return countByDay(times), nil
}

func (r *messageRepository) List(ctx context.Context, filter outbound.MessageFilter) ([]records.MessageRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	chats := r.scopedChats(filter.RescueID)
	var matched []records.MessageRecord
	for _, m := range r.store.Messages {
		if matchMessage(m, filter, chats) {
			matched = append(matched, m)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].ChatID != matched[j].ChatID {
			return matched[i].ChatID.String() < matched[j].ChatID.String()
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	return matched, nil
}
