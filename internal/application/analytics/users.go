package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/pawhaven/platform/internal/ports/outbound"
	apperrors "github.com/pawhaven/platform/pkg/errors"
)

// topActivitiesLimit caps the top-activities ranking.
const topActivitiesLimit = 10

// UserBehavior computes user engagement metrics for the window.
func (s *Service) UserBehavior(ctx context.Context, opts Options) (metrics *UserBehaviorMetrics, err error) {
	defer func(started time.Time) { s.observe("user_behavior", started, err) }(s.now())

	current, previous, err := resolveWindow(opts, s.now())
	if err != nil {
		return nil, err
	}

	cur := outbound.TimeRange(current)
	prev := outbound.TimeRange(previous)

	totalUsers, err := s.users.Count(ctx, outbound.UserFilter{})
	if err != nil {
		return nil, apperrors.NewDataSourceError("count users", err)
	}

	newUsers, err := s.users.Count(ctx, outbound.UserFilter{CreatedIn: &cur})
	if err != nil {
		return nil, apperrors.NewDataSourceError("count new users", err)
	}

	// Three independent active-user signals. The max of the three is a
	// deliberate heuristic carried over from the original engine: users
	// active via more than one channel are not unioned, so the figure
	// can undercount.
	messageActive, err := s.users.Count(ctx, outbound.UserFilter{MessagedIn: &cur})
	if err != nil {
		return nil, apperrors.NewDataSourceError("count users with messages", err)
	}
	applicationActive, err := s.users.Count(ctx, outbound.UserFilter{AppliedIn: &cur})
	if err != nil {
		return nil, apperrors.NewDataSourceError("count users with applications", err)
	}
	loginActive, err := s.users.Count(ctx, outbound.UserFilter{LastLoginIn: &cur})
	if err != nil {
		return nil, apperrors.NewDataSourceError("count users with logins", err)
	}
	activeUsers := max3(messageActive, applicationActive, loginActive)

	previousNewUsers, err := s.users.Count(ctx, outbound.UserFilter{CreatedIn: &prev})
	if err != nil {
		return nil, apperrors.NewDataSourceError("count previous-period users", err)
	}

	sessionEntries, err := s.auditLogs.List(ctx, outbound.AuditLogFilter{Between: &cur, WithUser: true})
	if err != nil {
		return nil, apperrors.NewDataSourceError("list audit entries", err)
	}

	actionCounts, err := s.auditLogs.CountByAction(ctx, outbound.AuditLogFilter{Between: &cur, WithUser: true})
	if err != nil {
		return nil, apperrors.NewDataSourceError("count audit actions", err)
	}

	return &UserBehaviorMetrics{
		TotalUsers:         totalUsers,
		ActiveUsers:        activeUsers,
		NewUsers:           newUsers,
		UserGrowthRate:     growthRate(newUsers, previousNewUsers),
		AvgSessionDuration: inferSessionMinutes(sessionEntries),
		RetentionRate:      percentage(activeUsers, totalUsers),
		TopUserActivities:  rankActivities(actionCounts, totalUsers),
	}, nil
}

// rankActivities orders action counts descending (names ascending on
// ties) and keeps the top 10. Percentages are against the total user
// base, zero-guarded.
func rankActivities(rows []outbound.GroupCount, totalUsers int64) []ActivityCount {
	sorted := make([]outbound.GroupCount, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Key < sorted[j].Key
	})
	if len(sorted) > topActivitiesLimit {
		sorted = sorted[:topActivitiesLimit]
	}

	activities := make([]ActivityCount, 0, len(sorted))
	for _, row := range sorted {
		activities = append(activities, ActivityCount{
			Activity:   row.Key,
			Count:      row.Count,
			Percentage: percentage(row.Count, totalUsers),
		})
	}
	return activities
}

func max3(a, b, c int64) int64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
