package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pawhaven/platform/internal/application/analytics"
	"github.com/pawhaven/platform/internal/domain/records"
	"github.com/pawhaven/platform/internal/infrastructure/http/handlers"
	"github.com/pawhaven/platform/internal/infrastructure/persistence/memory"
	"github.com/pawhaven/platform/pkg/logger"
	"github.com/pawhaven/platform/test/testutils"
)

var handlerNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(store *memory.Store) *analytics.Service {
	return analytics.NewService(
		store.UserRepository(),
		store.ApplicationRepository(),
		store.PetRepository(),
		store.ChatRepository(),
		store.MessageRepository(),
		store.AuditLogRepository(),
		store.RescueRepository(),
		store.StatsProvider(),
		logger.NewNop(),
		analytics.WithClock(func() time.Time { return handlerNow }),
	)
}

func newRouter(h *handlers.AnalyticsHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/v1/analytics/dashboard", h.Dashboard)
	r.Get("/api/v1/analytics/realtime", h.RealTime)
	r.Get("/api/v1/analytics/users", h.Users)
	r.Get("/api/v1/analytics/adoptions", h.Adoptions)
	return r
}

func TestDashboardEndpoint(t *testing.T) {
	factory := testutils.NewFactory(80)
	store := memory.NewStore()
	store.Users = []records.UserRecord{factory.User(handlerNow.Add(-24 * time.Hour))}

	h := handlers.NewAnalyticsHandler(newTestService(store), nil, 0, logger.NewNop())
	router := newRouter(h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analytics/dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var snapshot analytics.DashboardSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Equal(t, int64(1), snapshot.Users.TotalUsers)
}

func TestBadQueryParametersRejected(t *testing.T) {
	h := handlers.NewAnalyticsHandler(newTestService(memory.NewStore()), nil, 0, logger.NewNop())
	router := newRouter(h)

	cases := []struct {
		name string
		url  string
	}{
		{"malformed start", "/api/v1/analytics/users?start=yesterday"},
		{"malformed end", "/api/v1/analytics/users?end=06-01-2024"},
		{"malformed rescue id", "/api/v1/analytics/adoptions?rescueId=not-a-uuid"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.url, nil))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var body struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "BAD_REQUEST", body.Error.Code)
		})
	}
}

func TestInvertedWindowReturns400(t *testing.T) {
	h := handlers.NewAnalyticsHandler(newTestService(memory.NewStore()), nil, 0, logger.NewNop())
	router := newRouter(h)

	url := "/api/v1/analytics/users?start=2024-06-10T00:00:00Z&end=2024-06-01T00:00:00Z"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_WINDOW", body.Error.Code)
}

func TestDataSourceFailureReturns500(t *testing.T) {
	users := &testutils.MockUserRepository{}
	users.On("Count", mock.Anything, mock.Anything).Return(int64(0), errors.New("connection refused"))

	store := memory.NewStore()
	service := analytics.NewService(
		users,
		store.ApplicationRepository(),
		store.PetRepository(),
		store.ChatRepository(),
		store.MessageRepository(),
		store.AuditLogRepository(),
		store.RescueRepository(),
		store.StatsProvider(),
		logger.NewNop(),
	)

	h := handlers.NewAnalyticsHandler(service, nil, 0, logger.NewNop())
	router := newRouter(h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analytics/users", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "DATA_SOURCE_ERROR", body.Error.Code)
}

func TestRealTimeCachesSnapshot(t *testing.T) {
	cache := memory.NewCacheRepository()
	h := handlers.NewAnalyticsHandler(newTestService(memory.NewStore()), cache, 15*time.Second, logger.NewNop())
	router := newRouter(h)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/v1/analytics/realtime", nil))
	require.Equal(t, http.StatusOK, first.Code)
	assert.Empty(t, first.Header().Get("X-Cache"))

	cached, err := cache.Get(context.Background(), "analytics:realtime")
	require.NoError(t, err)
	require.NotNil(t, cached)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/v1/analytics/realtime", nil))
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))

	var snapshot analytics.RealTimeSnapshot
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &snapshot))
	assert.Equal(t, handlerNow, snapshot.Timestamp)
}

func TestRealTimeDegradesOnCacheFailure(t *testing.T) {
	cache := &testutils.MockCacheRepository{}
	cache.On("Get", mock.Anything, "analytics:realtime").Return(nil, errors.New("redis down"))
	cache.On("Set", mock.Anything, "analytics:realtime", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	h := handlers.NewAnalyticsHandler(newTestService(memory.NewStore()), cache, 15*time.Second, logger.NewNop())
	router := newRouter(h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analytics/realtime", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var snapshot analytics.RealTimeSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Equal(t, handlerNow, snapshot.Timestamp)
}

func TestRescueScopedAdoptions(t *testing.T) {
	factory := testutils.NewFactory(81)
	store := memory.NewStore()
	rescue := factory.NamedRescue("Haven")
	store.Rescues = []records.RescueRecord{rescue}

	app := factory.Application(records.ApplicationStatusApproved, handlerNow.Add(-24*time.Hour))
	app.RescueID = rescue.ID
	other := factory.Application(records.ApplicationStatusApproved, handlerNow.Add(-24*time.Hour))
	store.Applications = []records.ApplicationRecord{app, other}

	h := handlers.NewAnalyticsHandler(newTestService(store), nil, 0, logger.NewNop())
	router := newRouter(h)

	rec := httptest.NewRecorder()
	url := "/api/v1/analytics/adoptions?rescueId=" + rescue.ID.String()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var metrics analytics.AdoptionMetrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &metrics))
	assert.Equal(t, int64(1), metrics.TotalAdoptions)
}
