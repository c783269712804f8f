// Package handlers contains the HTTP handlers for the analytics API.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pawhaven/platform/internal/application/analytics"
	"github.com/pawhaven/platform/internal/ports/outbound"
	apperrors "github.com/pawhaven/platform/pkg/errors"
)

const realtimeCacheKey = "analytics:realtime"

// AnalyticsHandler exposes the metrics engine over HTTP. The realtime
// endpoint is cached for a short TTL; cache failures degrade to a
// direct computation rather than an error response.
type AnalyticsHandler struct {
	service     *analytics.Service
	cache       outbound.CacheRepository
	realtimeTTL time.Duration
	logger      *zap.Logger
}

// NewAnalyticsHandler creates the handler set. cache may be nil, in
// which case realtime snapshots are always computed fresh.
func NewAnalyticsHandler(service *analytics.Service, cache outbound.CacheRepository, realtimeTTL time.Duration, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service:     service,
		cache:       cache,
		realtimeTTL: realtimeTTL,
		logger:      logger.Named("analytics-handler"),
	}
}

// parseOptions reads the start, end and rescueId query parameters.
func parseOptions(r *http.Request) (analytics.Options, error) {
	var opts analytics.Options
	q := r.URL.Query()

	if raw := q.Get("start"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return opts, apperrors.NewBadRequestError("invalid start parameter, expected RFC3339")
		}
		opts.Start = &t
	}
	if raw := q.Get("end"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return opts, apperrors.NewBadRequestError("invalid end parameter, expected RFC3339")
		}
		opts.End = &t
	}
	if raw := q.Get("rescueId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return opts, apperrors.NewBadRequestError("invalid rescueId parameter, expected UUID")
		}
		opts.RescueID = &id
	}
	return opts, nil
}

// Dashboard handles GET /api/v1/analytics/dashboard.
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	opts, err := parseOptions(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	snapshot, err := h.service.Dashboard(r.Context(), opts.RescueID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, snapshot)
}

// RealTime handles GET /api/v1/analytics/realtime.
func (h *AnalyticsHandler) RealTime(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached := h.cachedRealtime(ctx); cached != nil {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(cached)
		return
	}

	snapshot, err := h.service.RealTime(ctx)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.storeRealtime(ctx, snapshot)
	h.respondJSON(w, http.StatusOK, snapshot)
}

func (h *AnalyticsHandler) cachedRealtime(ctx context.Context) []byte {
	if h.cache == nil || h.realtimeTTL <= 0 {
		return nil
	}
	data, err := h.cache.Get(ctx, realtimeCacheKey)
	if err != nil {
		h.logger.Warn("realtime cache read failed", zap.Error(err))
		return nil
	}
	return data
}

func (h *AnalyticsHandler) storeRealtime(ctx context.Context, snapshot *analytics.RealTimeSnapshot) {
	if h.cache == nil || h.realtimeTTL <= 0 {
		return
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := h.cache.Set(ctx, realtimeCacheKey, data, h.realtimeTTL); err != nil {
		h.logger.Warn("realtime cache write failed", zap.Error(err))
	}
}

// Users handles GET /api/v1/analytics/users.
func (h *AnalyticsHandler) Users(w http.ResponseWriter, r *http.Request) {
	h.collect(w, r, func(ctx context.Context, opts analytics.Options) (interface{}, error) {
		return h.service.UserBehavior(ctx, opts)
	})
}

// UserSummary handles GET /api/v1/analytics/users/summary.
func (h *AnalyticsHandler) UserSummary(w http.ResponseWriter, r *http.Request) {
	h.collect(w, r, func(ctx context.Context, opts analytics.Options) (interface{}, error) {
		return h.service.Users(ctx, opts)
	})
}

// Adoptions handles GET /api/v1/analytics/adoptions.
func (h *AnalyticsHandler) Adoptions(w http.ResponseWriter, r *http.Request) {
	h.collect(w, r, func(ctx context.Context, opts analytics.Options) (interface{}, error) {
		return h.service.Adoptions(ctx, opts)
	})
}

// Platform handles GET /api/v1/analytics/platform.
func (h *AnalyticsHandler) Platform(w http.ResponseWriter, r *http.Request) {
	h.collect(w, r, func(ctx context.Context, opts analytics.Options) (interface{}, error) {
		return h.service.Platform(ctx, opts)
	})
}

// Applications handles GET /api/v1/analytics/applications.
func (h *AnalyticsHandler) Applications(w http.ResponseWriter, r *http.Request) {
	h.collect(w, r, func(ctx context.Context, opts analytics.Options) (interface{}, error) {
		return h.service.Applications(ctx, opts)
	})
}

// Communication handles GET /api/v1/analytics/communication.
func (h *AnalyticsHandler) Communication(w http.ResponseWriter, r *http.Request) {
	h.collect(w, r, func(ctx context.Context, opts analytics.Options) (interface{}, error) {
		return h.service.Communication(ctx, opts)
	})
}

// Pets handles GET /api/v1/analytics/pets.
func (h *AnalyticsHandler) Pets(w http.ResponseWriter, r *http.Request) {
	h.collect(w, r, func(ctx context.Context, opts analytics.Options) (interface{}, error) {
		return h.service.Pets(ctx, opts)
	})
}

func (h *AnalyticsHandler) collect(w http.ResponseWriter, r *http.Request, fn func(context.Context, analytics.Options) (interface{}, error)) {
	opts, err := parseOptions(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	result, err := fn(r.Context(), opts)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (h *AnalyticsHandler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *AnalyticsHandler) respondError(w http.ResponseWriter, err error) {
	appErr := apperrors.Wrap(err, "request failed")
	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("code", string(appErr.Code)), zap.Error(appErr))
	} else {
		h.logger.Debug("request rejected", zap.String("code", string(appErr.Code)), zap.Error(appErr))
	}
	h.respondJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(appErr.Code),
		Message: appErr.Message,
		Details: appErr.Details,
	}})
}
