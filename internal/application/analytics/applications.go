package analytics

import (
	"context"
	"time"

	"github.com/pawhaven/platform/internal/domain/records"
	"github.com/pawhaven/platform/internal/ports/outbound"
	apperrors "github.com/pawhaven/platform/pkg/errors"
)

// Applications computes application processing metrics for the window,
// scoped to one rescue when a scope is given.
func (s *Service) Applications(ctx context.Context, opts Options) (metrics *ApplicationMetrics, err error) {
	defer func(started time.Time) { s.observe("applications", started, err) }(s.now())

	current, _, err := resolveWindow(opts, s.now())
	if err != nil {
		return nil, err
	}

	cur := outbound.TimeRange(current)
	base := outbound.ApplicationFilter{CreatedIn: &cur, RescueID: opts.RescueID}

	statusRows, err := s.applications.CountByStatus(ctx, base)
	if err != nil {
		return nil, apperrors.NewDataSourceError("count applications by status", err)
	}
	statusMetrics := make(map[string]int64, len(statusRows))
	var totalApplications int64
	for _, row := range statusRows {
		statusMetrics[row.Key] = row.Count
		totalApplications += row.Count
	}

	trendRows, err := s.applications.CountByDay(ctx, base)
	if err != nil {
		return nil, apperrors.NewDataSourceError("count applications by day", err)
	}

	completedFilter := base
	completedFilter.Statuses = []records.ApplicationStatus{
		records.ApplicationStatusApproved,
		records.ApplicationStatusRejected,
	}
	completedFilter.Resolved = true
	completed, err := s.applications.List(ctx, completedFilter)
	if err != nil {
		return nil, apperrors.NewDataSourceError("list completed applications", err)
	}

	var processingHours []float64
	for _, app := range completed {
		if app.UpdatedAt == nil {
			continue
		}
		processingHours = append(processingHours, app.UpdatedAt.Sub(app.CreatedAt).Hours())
	}

	approved := statusMetrics[string(records.ApplicationStatusApproved)]
	rejected := statusMetrics[string(records.ApplicationStatusRejected)]

	return &ApplicationMetrics{
		StatusMetrics:     statusMetrics,
		Trends:            toSeries(trendRows),
		AvgProcessingTime: mean(processingHours),
		TotalApplications: totalApplications,
		ApprovalRate:      percentage(approved, approved+rejected),
	}, nil
}
