package analytics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pawhaven/platform/internal/domain/records"
	"github.com/pawhaven/platform/internal/ports/outbound"
	apperrors "github.com/pawhaven/platform/pkg/errors"
)

// RealTime computes the cheap short-window snapshot, decoupled from the
// windowed engine. Active chats and pending applications are live
// status gauges; the rest use fixed last-hour / last-24h windows.
func (s *Service) RealTime(ctx context.Context) (snapshot *RealTimeSnapshot, err error) {
	defer func(started time.Time) { s.observe("real_time", started, err) }(s.now())

	now := s.now()
	lastHour := outbound.TimeRange{Start: now.Add(-time.Hour), End: now}
	last24h := outbound.TimeRange{Start: now.Add(-24 * time.Hour), End: now}

	var (
		activeUsers          int64
		newApplicationsToday int64
		messagesLastHour     int64
		newPetsToday         int64
		activeChats          int64
		pendingApplications  int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		activeUsers, err = s.users.Count(gctx, outbound.UserFilter{AuditActiveIn: &lastHour})
		if err != nil {
			return apperrors.NewDataSourceError("count recently active users", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		newApplicationsToday, err = s.applications.Count(gctx, outbound.ApplicationFilter{CreatedIn: &last24h})
		if err != nil {
			return apperrors.NewDataSourceError("count new applications", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		messagesLastHour, err = s.messages.Count(gctx, outbound.MessageFilter{CreatedIn: &lastHour})
		if err != nil {
			return apperrors.NewDataSourceError("count recent messages", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		newPetsToday, err = s.pets.Count(gctx, outbound.PetFilter{CreatedIn: &last24h})
		if err != nil {
			return apperrors.NewDataSourceError("count new pets", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		activeChats, err = s.chats.Count(gctx, outbound.ChatFilter{Status: records.ChatStatusActive})
		if err != nil {
			return apperrors.NewDataSourceError("count active chats", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		pendingApplications, err = s.applications.Count(gctx, outbound.ApplicationFilter{Status: records.ApplicationStatusPending})
		if err != nil {
			return apperrors.NewDataSourceError("count pending applications", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &RealTimeSnapshot{
		ActiveUsers:          activeUsers,
		NewApplicationsToday: newApplicationsToday,
		MessagesLastHour:     messagesLastHour,
		NewPetsToday:         newPetsToday,
		ActiveChats:          activeChats,
		PendingApplications:  pendingApplications,
		Timestamp:            now,
	}, nil
}
