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

const rescueLeaderboardLimit = 10

// Pets computes the adopted-pet summary for the window: adoption counts
// against the total pet inventory, a type breakdown, the daily trend,
// and a per-rescue leaderboard.
func (s *Service) Pets(ctx context.Context, opts Options) (summary *PetSummary, err error) {
	defer func(started time.Time) { s.observe("pets", started, err) }(s.now())

	current, _, err := resolveWindow(opts, s.now())
	if err != nil {
		return nil, err
	}

	cur := outbound.TimeRange(current)
	adoptedFilter := outbound.PetFilter{
		CreatedIn: &cur,
		RescueID:  opts.RescueID,
		Status:    records.PetStatusAdopted,
	}

	adopted, err := s.pets.Count(ctx, adoptedFilter)
	if err != nil {
		return nil, apperrors.NewDataSourceError("count adopted pets", err)
	}

	totalPets, err := s.pets.Count(ctx, outbound.PetFilter{RescueID: opts.RescueID})
	if err != nil {
		return nil, apperrors.NewDataSourceError("count pets", err)
	}

	typeRows, err := s.pets.CountByType(ctx, adoptedFilter)
	if err != nil {
		return nil, apperrors.NewDataSourceError("count adopted pets by type", err)
	}
	sort.Slice(typeRows, func(i, j int) bool {
		if typeRows[i].Count != typeRows[j].Count {
			return typeRows[i].Count > typeRows[j].Count
		}
		return typeRows[i].Key < typeRows[j].Key
	})
	if len(typeRows) > popularPetTypesLimit {
		typeRows = typeRows[:popularPetTypesLimit]
	}
	byType := make([]PetTypeCount, 0, len(typeRows))
	for _, row := range typeRows {
		byType = append(byType, PetTypeCount{Type: row.Key, Count: row.Count})
	}

	trendRows, err := s.pets.CountByDay(ctx, adoptedFilter)
	if err != nil {
		return nil, apperrors.NewDataSourceError("count adopted pets by day", err)
	}

	leaderboard, err := s.rescueLeaderboard(ctx, cur)
	if err != nil {
		return nil, err
	}

	return &PetSummary{
		TotalAdoptions:    adopted,
		AdoptionRate:      percentage(adopted, totalPets),
		AdoptionsByType:   byType,
		AdoptionTrends:    toSeries(trendRows),
		RescuePerformance: leaderboard,
	}, nil
}

// rescueLeaderboard ranks rescues by adopted pets in the window, top 10.
func (s *Service) rescueLeaderboard(ctx context.Context, cur outbound.TimeRange) ([]RescueAdoptionCount, error) {
	adoptedPets, err := s.pets.List(ctx, outbound.PetFilter{CreatedIn: &cur, Status: records.PetStatusAdopted})
	if err != nil {
		return nil, apperrors.NewDataSourceError("list adopted pets", err)
	}
	if len(adoptedPets) == 0 {
		return []RescueAdoptionCount{}, nil
	}

	counts := make(map[uuid.UUID]int64)
	for _, pet := range adoptedPets {
		counts[pet.RescueID]++
	}

	rescues, err := s.rescues.List(ctx)
	if err != nil {
		return nil, apperrors.NewDataSourceError("list rescues", err)
	}
	names := make(map[uuid.UUID]string, len(rescues))
	for _, rescue := range rescues {
		names[rescue.ID] = rescue.Name
	}

	leaderboard := make([]RescueAdoptionCount, 0, len(counts))
	for rescueID, count := range counts {
		name := names[rescueID]
		if name == "" {
			name = "Unknown"
		}
		leaderboard = append(leaderboard, RescueAdoptionCount{
			RescueID:   rescueID,
			RescueName: name,
			Adoptions:  count,
		})
	}
	sort.Slice(leaderboard, func(i, j int) bool {
		if leaderboard[i].Adoptions != leaderboard[j].Adoptions {
			return leaderboard[i].Adoptions > leaderboard[j].Adoptions
		}
		return leaderboard[i].RescueName < leaderboard[j].RescueName
	})
	if len(leaderboard) > rescueLeaderboardLimit {
		leaderboard = leaderboard[:rescueLeaderboardLimit]
	}
	return leaderboard, nil
}

// Users computes the registration summary: a sparse daily registration
// series plus a coarse activity rate. Active users here are accounts
// created in the trailing 30 days, a proxy carried over from the
// upstream report.
func (s *Service) Users(ctx context.Context, opts Options) (summary *UserSummary, err error) {
	defer func(started time.Time) { s.observe("users", started, err) }(s.now())

	current, _, err := resolveWindow(opts, s.now())
	if err != nil {
		return nil, err
	}

	registrations, err := s.users.RegistrationsByDay(ctx, outbound.TimeRange(current))
	if err != nil {
		return nil, apperrors.NewDataSourceError("count registrations by day", err)
	}

	totalUsers, err := s.users.Count(ctx, outbound.UserFilter{})
	if err != nil {
		return nil, apperrors.NewDataSourceError("count users", err)
	}

	now := s.now()
	trailing := outbound.TimeRange{Start: now.Add(-defaultWindowSpan), End: now}
	activeUsers, err := s.users.Count(ctx, outbound.UserFilter{CreatedIn: &trailing})
	if err != nil {
		return nil, apperrors.NewDataSourceError("count recently created users", err)
	}

	return &UserSummary{
		UserRegistrations: toSeries(registrations),
		TotalUsers:        totalUsers,
		ActiveUsers:       activeUsers,
		ActivityRate:      percentage(activeUsers, totalUsers),
	}, nil
}
