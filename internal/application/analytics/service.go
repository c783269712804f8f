// Package analytics implements the metrics aggregation engine: pure,
// stateless collectors that turn raw transactional records into derived
// business analytics over an explicit time window and optional rescue
// scope.
package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pawhaven/platform/internal/ports/outbound"
)

// Observer receives per-collector timing signals. Implementations live
// in the monitoring layer; a nil observer disables instrumentation.
type Observer interface {
	ObserveCollector(name string, duration time.Duration, err error)
}

// Service computes derived analytics from injected read-only
// repositories. Every call is stateless: window and scope are explicit
// parameters and no result is cached between invocations.
type Service struct {
	users        outbound.UserRepository
	applications outbound.ApplicationRepository
	pets         outbound.PetRepository
	chats        outbound.ChatRepository
	messages     outbound.MessageRepository
	auditLogs    outbound.AuditLogRepository
	rescues      outbound.RescueRepository
	dbStats      outbound.DatabaseStatsProvider

	observer Observer
	logger   *zap.Logger
	now      func() time.Time
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithObserver attaches a collector-timing observer.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new analytics service.
func NewService(
	users outbound.UserRepository,
	applications outbound.ApplicationRepository,
	pets outbound.PetRepository,
	chats outbound.ChatRepository,
	messages outbound.MessageRepository,
	auditLogs outbound.AuditLogRepository,
	rescues outbound.RescueRepository,
	dbStats outbound.DatabaseStatsProvider,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		users:        users,
		applications: applications,
		pets:         pets,
		chats:        chats,
		messages:     messages,
		auditLogs:    auditLogs,
		rescues:      rescues,
		dbStats:      dbStats,
		logger:       logger.Named("analytics-service"),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// observe reports one collector run to the logger and, if configured,
// the observer.
func (s *Service) observe(name string, started time.Time, err error) {
	elapsed := time.Since(started)
	if s.observer != nil {
		s.observer.ObserveCollector(name, elapsed, err)
	}
	if err != nil {
		s.logger.Error("collector failed",
			zap.String("collector", name),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("collector completed",
		zap.String("collector", name),
		zap.Duration("duration", elapsed),
	)
}

// Dashboard runs the five collectors concurrently against the default
// 30-day window and merges their outputs. Composition is all-or-
// nothing: the first collector failure cancels the rest and the whole
// call fails without a partial snapshot.
func (s *Service) Dashboard(ctx context.Context, rescueID *uuid.UUID) (*DashboardSnapshot, error) {
	now := s.now()
	start := now.Add(-defaultWindowSpan)
	opts := Options{Start: &start, End: &now, RescueID: rescueID}

	var (
		users         *UserBehaviorMetrics
		adoptions     *AdoptionMetrics
		platform      *PlatformMetrics
		applications  *ApplicationMetrics
		communication *CommunicationMetrics
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.UserBehavior(gctx, opts)
		return err
	})
	g.Go(func() (err error) {
		adoptions, err = s.Adoptions(gctx, opts)
		return err
	})
	g.Go(func() (err error) {
		platform, err = s.Platform(gctx, opts)
		return err
	})
	g.Go(func() (err error) {
		applications, err = s.Applications(gctx, opts)
		return err
	})
	g.Go(func() (err error) {
		communication, err = s.Communication(gctx, opts)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &DashboardSnapshot{
		Users:         *users,
		Adoptions:     *adoptions,
		Platform:      *platform,
		Applications:  *applications,
		Communication: *communication,
		GeneratedAt:   s.now(),
	}, nil
}
