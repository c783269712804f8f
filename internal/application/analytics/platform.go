package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/pawhaven/platform/internal/ports/outbound"
	apperrors "github.com/pawhaven/platform/pkg/errors"
)

// Synthetic per-attachment sizes used for the storage estimate. The
// platform stores attachment flags, not byte counts, so storage figures
// are derived, not measured.
const (
	syntheticPhotoBytes    = 2_800_000
	syntheticDocumentBytes = 1_500_000

	bytesPerMegabyte = 1024 * 1024
	bytesPerGigabyte = 1024 * 1024 * 1024

	errorActionMarker = "ERROR"

	uptimeFloor           = 99.0
	defaultMaxConnections = 100
)

// Platform computes platform health estimates for the window. Audit-log
// volume stands in for request traffic; uptime, database and storage
// figures are derived proxies, labeled as such in the result types.
func (s *Service) Platform(ctx context.Context, opts Options) (metrics *PlatformMetrics, err error) {
	defer func(started time.Time) { s.observe("platform", started, err) }(s.now())

	current, previous, err := resolveWindow(opts, s.now())
	if err != nil {
		return nil, err
	}

	cur := outbound.TimeRange(current)
	prev := outbound.TimeRange(previous)

	apiRequestCount, err := s.auditLogs.Count(ctx, outbound.AuditLogFilter{Between: &cur})
	if err != nil {
		return nil, apperrors.NewDataSourceError("count audit entries", err)
	}

	timed, err := s.auditLogs.List(ctx, outbound.AuditLogFilter{Between: &cur, WithResponseTime: true})
	if err != nil {
		return nil, apperrors.NewDataSourceError("list timed audit entries", err)
	}
	var samples []float64
	for _, entry := range timed {
		if v, ok := entry.ResponseTime(); ok {
			samples = append(samples, v)
		}
	}
	avgResponseTime := mean(samples)

	errorCount, err := s.auditLogs.Count(ctx, outbound.AuditLogFilter{Between: &cur, ActionContains: errorActionMarker})
	if err != nil {
		return nil, apperrors.NewDataSourceError("count error entries", err)
	}
	errorRate := percentage(errorCount, apiRequestCount)
	systemUptime := round2(math.Max(uptimeFloor, 100-errorRate*10))

	stats, err := s.dbStats.Stats(ctx)
	if err != nil {
		return nil, apperrors.NewDataSourceError("read database stats", err)
	}
	maxConnections := stats.MaxConnections
	if maxConnections <= 0 {
		maxConnections = defaultMaxConnections
	}

	storage, err := s.storageUsage(ctx, cur, prev)
	if err != nil {
		return nil, err
	}

	return &PlatformMetrics{
		APIRequestCount: apiRequestCount,
		AvgResponseTime: avgResponseTime,
		ErrorRate:       errorRate,
		SystemUptime:    systemUptime,
		DatabasePerformance: DatabasePerformance{
			AvgQueryTime:      round2(avgResponseTime / 4),
			SlowQueries:       stats.SlowQueries,
			ConnectionCount:   stats.OpenConnections,
			ActiveConnections: stats.ActiveConnections,
			MaxConnections:    maxConnections,
		},
		StorageUsage: *storage,
	}, nil
}

// storageUsage derives the synthetic storage estimate from attachment
// counts: pets with images and applications with documents.
func (s *Service) storageUsage(ctx context.Context, cur, prev outbound.TimeRange) (*StorageUsage, error) {
	petPhotos, err := s.pets.Count(ctx, outbound.PetFilter{WithImages: true})
	if err != nil {
		return nil, apperrors.NewDataSourceError("count pets with images", err)
	}
	documents, err := s.applications.Count(ctx, outbound.ApplicationFilter{WithDocuments: true})
	if err != nil {
		return nil, apperrors.NewDataSourceError("count applications with documents", err)
	}

	totalImages := petPhotos + documents
	totalBytes := float64(petPhotos)*syntheticPhotoBytes + float64(documents)*syntheticDocumentBytes

	var avgImageMB float64
	if totalImages > 0 {
		avgImageMB = round2(totalBytes / float64(totalImages) / bytesPerMegabyte)
	}

	currentWithImages, err := s.pets.Count(ctx, outbound.PetFilter{CreatedIn: &cur, WithImages: true})
	if err != nil {
		return nil, apperrors.NewDataSourceError("count current-period pets with images", err)
	}
	previousWithImages, err := s.pets.Count(ctx, outbound.PetFilter{CreatedIn: &prev, WithImages: true})
	if err != nil {
		return nil, apperrors.NewDataSourceError("count previous-period pets with images", err)
	}

	return &StorageUsage{
		TotalImages:       totalImages,
		TotalStorageUsed:  fmt.Sprintf("%.2f GB", totalBytes/bytesPerGigabyte),
		StorageGrowthRate: growthRate(currentWithImages, previousWithImages),
		ImagesByType: map[string]int64{
			"pet_photos": petPhotos,
			"documents":  documents,
		},
		AverageImageSize: avgImageMB,
	}, nil
}
