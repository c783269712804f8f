// Package integration provides API integration tests
//go:build integration
// +build integration

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"github.com/pawhaven/platform/internal/application/analytics"
	"github.com/pawhaven/platform/internal/domain/records"
	"github.com/pawhaven/platform/internal/infrastructure/http/handlers"
	"github.com/pawhaven/platform/internal/infrastructure/persistence/memory"
	"github.com/pawhaven/platform/pkg/logger"
	"github.com/pawhaven/platform/test/testutils"
)

// AnalyticsAPITestSuite exercises the full stack from router to engine
// against a seeded in-memory store.
type AnalyticsAPITestSuite struct {
	suite.Suite
	router *chi.Mux
	cache  *memory.CacheRepository
	store  *memory.Store
	now    time.Time
	ctx    context.Context
}

// SetupSuite seeds a small but fully-populated platform.
func (s *AnalyticsAPITestSuite) SetupSuite() {
	s.ctx = context.Background()
	s.now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	factory := testutils.NewFactory(99)
	store := memory.NewStore()

	haven := factory.NamedRescue("Haven Rescue")
	store.Rescues = []records.RescueRecord{haven}

	inWindow := s.now.Add(-5 * 24 * time.Hour)
	resolved := s.now.Add(-3 * 24 * time.Hour)

	user := factory.UserWithLogin(s.now.Add(-60*24*time.Hour), inWindow)
	store.Users = []records.UserRecord{user}

	pet := factory.Pet("dog", records.PetStatusAdopted, inWindow)
	pet.RescueID = haven.ID
	store.Pets = []records.PetRecord{pet}

	app := factory.ResolvedApplication(records.ApplicationStatusApproved, inWindow, resolved)
	app.UserID = user.ID
	app.PetID = pet.ID
	app.RescueID = haven.ID
	store.Applications = []records.ApplicationRecord{app}

	chat := factory.Chat(records.ChatStatusActive, inWindow)
	chat.RescueID = haven.ID
	store.Chats = []records.ChatRecord{chat}
	store.Messages = []records.MessageRecord{
		factory.Message(chat.ID, user.ID, inWindow),
	}
	store.AuditLogs = []records.AuditLogEntry{
		factory.AuditEntry(&user.ID, "view_pet", inWindow),
		factory.AuditEntry(&user.ID, "apply", inWindow.Add(15*time.Minute)),
	}
	s.store = store

	service := analytics.NewService(
		store.UserRepository(),
		store.ApplicationRepository(),
		store.PetRepository(),
		store.ChatRepository(),
		store.MessageRepository(),
		store.AuditLogRepository(),
		store.RescueRepository(),
		store.StatsProvider(),
		logger.NewNop(),
		analytics.WithClock(func() time.Time { return s.now }),
	)

	s.cache = memory.NewCacheRepository()
	handler := handlers.NewAnalyticsHandler(service, s.cache, 15*time.Second, logger.NewNop())

	r := chi.NewRouter()
	r.Route("/api/v1/analytics", func(r chi.Router) {
		r.Get("/dashboard", handler.Dashboard)
		r.Get("/realtime", handler.RealTime)
		r.Get("/users", handler.Users)
		r.Get("/users/summary", handler.UserSummary)
		r.Get("/adoptions", handler.Adoptions)
		r.Get("/platform", handler.Platform)
		r.Get("/applications", handler.Applications)
		r.Get("/communication", handler.Communication)
		r.Get("/pets", handler.Pets)
	})
	s.router = r
}

func (s *AnalyticsAPITestSuite) get(url string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func (s *AnalyticsAPITestSuite) TestDashboard() {
	rec := s.get("/api/v1/analytics/dashboard")
	s.Require().Equal(http.StatusOK, rec.Code)

	var snapshot analytics.DashboardSnapshot
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &snapshot))

	s.Equal(int64(1), snapshot.Users.TotalUsers)
	s.Equal(int64(1), snapshot.Adoptions.TotalAdoptions)
	s.Equal(100.0, snapshot.Adoptions.AdoptionRate)
	s.Equal(int64(1), snapshot.Communication.TotalChats)
	s.Equal(s.now, snapshot.GeneratedAt)
}

func (s *AnalyticsAPITestSuite) TestEveryCollectorEndpoint() {
	for _, url := range []string{
		"/api/v1/analytics/users",
		"/api/v1/analytics/users/summary",
		"/api/v1/analytics/adoptions",
		"/api/v1/analytics/platform",
		"/api/v1/analytics/applications",
		"/api/v1/analytics/communication",
		"/api/v1/analytics/pets",
	} {
		rec := s.get(url)
		s.Equal(http.StatusOK, rec.Code, url)
		s.Equal("application/json", rec.Header().Get("Content-Type"), url)
	}
}

func (s *AnalyticsAPITestSuite) TestRealtimeCaching() {
	first := s.get("/api/v1/analytics/realtime")
	s.Require().Equal(http.StatusOK, first.Code)

	second := s.get("/api/v1/analytics/realtime")
	s.Require().Equal(http.StatusOK, second.Code)
	s.Equal("HIT", second.Header().Get("X-Cache"))
	s.JSONEq(first.Body.String(), second.Body.String())
}

func (s *AnalyticsAPITestSuite) TestScopedQueries() {
	rescueID := s.store.Rescues[0].ID.String()
	rec := s.get("/api/v1/analytics/adoptions?rescueId=" + rescueID)
	s.Require().Equal(http.StatusOK, rec.Code)

	var metrics analytics.AdoptionMetrics
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &metrics))
	s.Equal(int64(1), metrics.TotalAdoptions)
	s.Require().Len(metrics.RescuePerformance, 1)
	s.Equal("Haven Rescue", metrics.RescuePerformance[0].RescueName)
}

func (s *AnalyticsAPITestSuite) TestInvalidWindowRejected() {
	rec := s.get("/api/v1/analytics/users?start=2024-06-10T00:00:00Z&end=2024-06-01T00:00:00Z")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func TestAnalyticsAPITestSuite(t *testing.T) {
	suite.Run(t, new(AnalyticsAPITestSuite))
}
