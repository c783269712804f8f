// Package http wires the chi router and HTTP server for the
// analytics API.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/pawhaven/platform/internal/infrastructure/config"
	"github.com/pawhaven/platform/internal/infrastructure/http/handlers"
	"github.com/pawhaven/platform/internal/infrastructure/monitoring"
)

// Server is the platform HTTP server.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	shutdown   time.Duration
}

// NewServer builds the router and server from configuration.
func NewServer(cfg config.ServerConfig, analyticsHandler *handlers.AnalyticsHandler, metrics *monitoring.AnalyticsMetrics, logger *zap.Logger) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger, metrics))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1/analytics", func(r chi.Router) {
		r.Get("/dashboard", analyticsHandler.Dashboard)
		r.Get("/realtime", analyticsHandler.RealTime)
		r.Get("/users", analyticsHandler.Users)
		r.Get("/users/summary", analyticsHandler.UserSummary)
		r.Get("/adoptions", analyticsHandler.Adoptions)
		r.Get("/platform", analyticsHandler.Platform)
		r.Get("/applications", analyticsHandler.Applications)
		r.Get("/communication", analyticsHandler.Communication)
		r.Get("/pets", analyticsHandler.Pets)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      r,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger:   logger.Named("http-server"),
		shutdown: cfg.ShutdownTimeout,
	}
}

// Start begins serving and blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Stop drains in-flight requests within the configured shutdown window.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.shutdown)
	defer cancel()
	s.logger.Info("stopping HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// requestLogger logs each request and feeds the latency histogram.
func requestLogger(logger *zap.Logger, metrics *monitoring.AnalyticsMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			elapsed := time.Since(started)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			routePattern := chi.RouteContext(r.Context()).RoutePattern()
			if routePattern == "" {
				routePattern = r.URL.Path
			}
			if metrics != nil {
				metrics.ObserveRequest(routePattern, fmt.Sprintf("%d", status), elapsed)
			}
			logger.Info("request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Duration("duration", elapsed),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
