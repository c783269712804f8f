package gorm

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pawhaven/platform/internal/infrastructure/config"
	"github.com/pawhaven/platform/internal/ports/outbound"
)

// Open connects to the configured database and applies pool settings.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Database, cfg.SSLMode,
		)
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(cfg.Database)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

// StatsProvider exposes connection-pool statistics for the platform
// metrics collector.
type StatsProvider struct {
	db *gorm.DB
}

// NewStatsProvider creates a new stats provider.
func NewStatsProvider(db *gorm.DB) outbound.DatabaseStatsProvider {
	return &StatsProvider{db: db}
}

// Stats reads the connection pool counters. Slow-query tracking needs
// database-side instrumentation this provider does not have, so the
// count is always zero here.
func (p *StatsProvider) Stats(ctx context.Context) (outbound.DatabaseStats, error) {
	if err := ctx.Err(); err != nil {
		return outbound.DatabaseStats{}, err
	}

	sqlDB, err := p.db.DB()
	if err != nil {
		return outbound.DatabaseStats{}, err
	}

	stats := sqlDB.Stats()
	return outbound.DatabaseStats{
		ActiveConnections: stats.InUse,
		OpenConnections:   stats.OpenConnections,
		MaxConnections:    stats.MaxOpenConnections,
	}, nil
}
