package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pawhaven/platform/internal/domain/records"
	"github.com/pawhaven/platform/internal/ports/outbound"
	apperrors "github.com/pawhaven/platform/pkg/errors"
)

const (
	popularPetTypesLimit   = 10
	rescuePerformanceLimit = 20
	hoursPerDay            = 24.0
)

// Adoptions computes adoption outcome metrics for the window, scoped to
// one rescue when a scope is given.
func (s *Service) Adoptions(ctx context.Context, opts Options) (metrics *AdoptionMetrics, err error) {
	defer func(started time.Time) { s.observe("adoptions", started, err) }(s.now())

	current, _, err := resolveWindow(opts, s.now())
	if err != nil {
		return nil, err
	}

	cur := outbound.TimeRange(current)
	base := outbound.ApplicationFilter{CreatedIn: &cur, RescueID: opts.RescueID}

	approvedFilter := base
	approvedFilter.Status = records.ApplicationStatusApproved

	totalAdoptions, err := s.applications.Count(ctx, approvedFilter)
	if err != nil {
		return nil, apperrors.NewDataSourceError("count adoptions", err)
	}

	totalApplications, err := s.applications.Count(ctx, base)
	if err != nil {
		return nil, apperrors.NewDataSourceError("count applications", err)
	}

	approved, err := s.applications.List(ctx, approvedFilter)
	if err != nil {
		return nil, apperrors.NewDataSourceError("list approved applications", err)
	}

	popularPetTypes, err := s.popularPetTypes(ctx, approved, totalAdoptions)
	if err != nil {
		return nil, err
	}

	trendRows, err := s.applications.CountByDay(ctx, approvedFilter)
	if err != nil {
		return nil, apperrors.NewDataSourceError("count adoptions by day", err)
	}

	rescuePerformance, err := s.rescuePerformance(ctx, approved, totalApplications, opts.RescueID)
	if err != nil {
		return nil, err
	}

	return &AdoptionMetrics{
		TotalAdoptions:    totalAdoptions,
		TotalApplications: totalApplications,
		AdoptionRate:      percentage(totalAdoptions, totalApplications),
		AvgTimeToAdoption: avgResolutionDays(approved),
		PopularPetTypes:   popularPetTypes,
		AdoptionTrends:    toSeries(trendRows),
		RescuePerformance: rescuePerformance,
	}, nil
}

// avgResolutionDays averages created-to-resolved spans, in days, over
// applications that carry a resolution timestamp.
func avgResolutionDays(apps []records.ApplicationRecord) float64 {
	var spans []float64
	for _, app := range apps {
		if app.UpdatedAt == nil {
			continue
		}
		spans = append(spans, app.UpdatedAt.Sub(app.CreatedAt).Hours()/hoursPerDay)
	}
	return mean(spans)
}

// popularPetTypes joins approved applications to pet types and ranks
// the result, descending by adoption count, capped at 10.
func (s *Service) popularPetTypes(ctx context.Context, approved []records.ApplicationRecord, totalAdoptions int64) ([]PetTypeMetric, error) {
	if len(approved) == 0 {
		return []PetTypeMetric{}, nil
	}

	seen := make(map[uuid.UUID]struct{}, len(approved))
	petIDs := make([]uuid.UUID, 0, len(approved))
	for _, app := range approved {
		if _, ok := seen[app.PetID]; ok {
			continue
		}
		seen[app.PetID] = struct{}{}
		petIDs = append(petIDs, app.PetID)
	}

	pets, err := s.pets.List(ctx, outbound.PetFilter{IDs: petIDs})
	if err != nil {
		return nil, apperrors.NewDataSourceError("list adopted pets", err)
	}
	typeByPet := make(map[uuid.UUID]string, len(pets))
	for _, pet := range pets {
		typeByPet[pet.ID] = pet.Type
	}

	counts := make(map[string]int64)
	for _, app := range approved {
		if petType, ok := typeByPet[app.PetID]; ok {
			counts[petType]++
		}
	}

	ranked := make([]PetTypeMetric, 0, len(counts))
	for petType, count := range counts {
		ranked = append(ranked, PetTypeMetric{
			Type:         petType,
			Count:        count,
			AdoptionRate: percentage(count, totalAdoptions),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Type < ranked[j].Type
	})
	if len(ranked) > popularPetTypesLimit {
		ranked = ranked[:popularPetTypesLimit]
	}
	return ranked, nil
}

// rescuePerformance summarizes adoption throughput per rescue. Rescues
// without adoptions in the window are included with zero counts,
// mirroring the left-join shape of the upstream reports. Capped at 20.
func (s *Service) rescuePerformance(ctx context.Context, approved []records.ApplicationRecord, totalApplications int64, scope *uuid.UUID) ([]RescuePerformance, error) {
	rescues, err := s.rescues.List(ctx)
	if err != nil {
		return nil, apperrors.NewDataSourceError("list rescues", err)
	}

	adoptions := make(map[uuid.UUID]int64)
	spans := make(map[uuid.UUID][]float64)
	for _, app := range approved {
		adoptions[app.RescueID]++
		if app.UpdatedAt != nil {
			spans[app.RescueID] = append(spans[app.RescueID], app.UpdatedAt.Sub(app.CreatedAt).Hours()/hoursPerDay)
		}
	}

	performance := make([]RescuePerformance, 0, len(rescues))
	for _, rescue := range rescues {
		if scope != nil && rescue.ID != *scope {
			continue
		}
		performance = append(performance, RescuePerformance{
			RescueID:          rescue.ID,
			RescueName:        rescue.Name,
			Adoptions:         adoptions[rescue.ID],
			AvgTimeToAdoption: mean(spans[rescue.ID]),
			AdoptionRate:      percentage(adoptions[rescue.ID], totalApplications),
		})
	}
	sort.Slice(performance, func(i, j int) bool {
		if performance[i].Adoptions != performance[j].Adoptions {
			return performance[i].Adoptions > performance[j].Adoptions
		}
		return performance[i].RescueName < performance[j].RescueName
	})
	if len(performance) > rescuePerformanceLimit {
		performance = performance[:rescuePerformanceLimit]
	}
	return performance, nil
}
