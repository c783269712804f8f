package analytics

import (
	"context"
	"time"

	"github.com/pawhaven/platform/internal/domain/records"
	"github.com/pawhaven/platform/internal/ports/outbound"
	apperrors "github.com/pawhaven/platform/pkg/errors"
)

// Communication computes chat and message metrics for the window,
// scoped to one rescue's chats when a scope is given.
func (s *Service) Communication(ctx context.Context, opts Options) (metrics *CommunicationMetrics, err error) {
	defer func(started time.Time) { s.observe("communication", started, err) }(s.now())

	current, _, err := resolveWindow(opts, s.now())
	if err != nil {
		return nil, err
	}

	cur := outbound.TimeRange(current)
	chatBase := outbound.ChatFilter{CreatedIn: &cur, RescueID: opts.RescueID}
	messageBase := outbound.MessageFilter{CreatedIn: &cur, RescueID: opts.RescueID}

	totalChats, err := s.chats.Count(ctx, chatBase)
	if err != nil {
		return nil, apperrors.NewDataSourceError("count chats", err)
	}

	activeFilter := chatBase
	activeFilter.Status = records.ChatStatusActive
	activeChats, err := s.chats.Count(ctx, activeFilter)
	if err != nil {
		return nil, apperrors.NewDataSourceError("count active chats", err)
	}

	totalMessages, err := s.messages.Count(ctx, messageBase)
	if err != nil {
		return nil, apperrors.NewDataSourceError("count messages", err)
	}

	messages, err := s.messages.List(ctx, messageBase)
	if err != nil {
		return nil, apperrors.NewDataSourceError("list messages", err)
	}

	trendRows, err := s.messages.CountByDay(ctx, messageBase)
	if err != nil {
		return nil, apperrors.NewDataSourceError("count messages by day", err)
	}

	return &CommunicationMetrics{
		TotalChats:         totalChats,
		ActiveChats:        activeChats,
		TotalMessages:      totalMessages,
		AvgMessagesPerChat: ratio(totalMessages, totalChats),
		ChatEngagementRate: percentage(activeChats, totalChats),
		AvgResponseTime:    inferResponseMinutes(messages),
		MessageTrends:      toSeries(trendRows),
	}, nil
}
