// Command api runs the PawHaven analytics API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/pawhaven/platform/internal/application/analytics"
	"github.com/pawhaven/platform/internal/infrastructure/config"
	httpserver "github.com/pawhaven/platform/internal/infrastructure/http"
	"github.com/pawhaven/platform/internal/infrastructure/http/handlers"
	"github.com/pawhaven/platform/internal/infrastructure/monitoring"
	gormstore "github.com/pawhaven/platform/internal/infrastructure/persistence/gorm"
	redisstore "github.com/pawhaven/platform/internal/infrastructure/persistence/redis"
	"github.com/pawhaven/platform/internal/ports/outbound"
	"github.com/pawhaven/platform/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to the configuration directory")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting pawhaven analytics",
		zap.String("environment", cfg.App.Environment),
		zap.String("database_driver", cfg.Database.Driver),
	)

	db, err := gormstore.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
	}()

	metrics := monitoring.NewAnalyticsMetrics()

	service := analytics.NewService(
		gormstore.NewUserRepository(db),
		gormstore.NewApplicationRepository(db),
		gormstore.NewPetRepository(db),
		gormstore.NewChatRepository(db),
		gormstore.NewMessageRepository(db),
		gormstore.NewAuditLogRepository(db),
		gormstore.NewRescueRepository(db),
		gormstore.NewStatsProvider(db),
		log,
		analytics.WithObserver(metrics),
	)

	var cache outbound.CacheRepository
	if cfg.Redis.Enabled {
		client := redisstore.NewClient(cfg.Redis)
		defer func() { _ = client.Close() }()
		cache = redisstore.NewCacheRepository(client, log)
		log.Info("realtime cache enabled",
			zap.String("host", cfg.Redis.Host),
			zap.Duration("ttl", cfg.Analytics.RealtimeCacheTTL),
		)
	}

	handler := handlers.NewAnalyticsHandler(service, cache, cfg.Analytics.RealtimeCacheTTL, log)
	server := httpserver.NewServer(cfg.Server, handler, metrics, log)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	}

	if err := server.Stop(context.Background()); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
