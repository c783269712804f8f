package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawhaven/platform/internal/application/analytics"
	"github.com/pawhaven/platform/internal/domain/records"
	"github.com/pawhaven/platform/internal/infrastructure/persistence/memory"
	"github.com/pawhaven/platform/test/testutils"
)

// adoptionFixture seeds three approved adoptions across two rescues,
// one pending application, and one rescue with no adoptions at all.
func adoptionFixture(factory *testutils.Factory) *memory.Store {
	store := memory.NewStore()

	alpha := factory.NamedRescue("Alpha Rescue")
	beta := factory.NamedRescue("Beta Shelter")
	idle := factory.NamedRescue("Idle Haven")
	store.Rescues = []records.RescueRecord{alpha, beta, idle}

	dog1 := factory.Pet("dog", records.PetStatusAdopted, testNow.Add(-20*24*time.Hour))
	dog2 := factory.Pet("dog", records.PetStatusAdopted, testNow.Add(-15*24*time.Hour))
	cat := factory.Pet("cat", records.PetStatusAdopted, testNow.Add(-10*24*time.Hour))
	store.Pets = []records.PetRecord{dog1, dog2, cat}

	newApp := func(rescueID, petID uuid.UUID, created time.Time, resolvedAfter time.Duration) records.ApplicationRecord {
		app := factory.ResolvedApplication(records.ApplicationStatusApproved, created, created.Add(resolvedAfter))
		app.RescueID = rescueID
		app.PetID = petID
		return app
	}

	store.Applications = []records.ApplicationRecord{
		newApp(alpha.ID, dog1.ID, testNow.Add(-10*24*time.Hour), 2*24*time.Hour),
		newApp(alpha.ID, dog2.ID, testNow.Add(-6*24*time.Hour), 24*time.Hour),
		newApp(beta.ID, cat.ID, testNow.Add(-4*24*time.Hour), 3*24*time.Hour),
		factory.Application(records.ApplicationStatusPending, testNow.Add(-2*24*time.Hour)),
	}
	return store
}

func TestAdoptionsMetrics(t *testing.T) {
	factory := testutils.NewFactory(20)
	store := adoptionFixture(factory)

	service := newMemoryService(store)
	metrics, err := service.Adoptions(context.Background(), analytics.Options{})
	require.NoError(t, err)

	assert.Equal(t, int64(3), metrics.TotalAdoptions)
	assert.Equal(t, int64(4), metrics.TotalApplications)
	assert.Equal(t, 75.0, metrics.AdoptionRate)
	assert.Equal(t, 2.0, metrics.AvgTimeToAdoption)
}

func TestAdoptionsPopularPetTypes(t *testing.T) {
	factory := testutils.NewFactory(21)
	store := adoptionFixture(factory)

	service := newMemoryService(store)
	metrics, err := service.Adoptions(context.Background(), analytics.Options{})
	require.NoError(t, err)

	require.Len(t, metrics.PopularPetTypes, 2)
	assert.Equal(t, "dog", metrics.PopularPetTypes[0].Type)
	assert.Equal(t, int64(2), metrics.PopularPetTypes[0].Count)
	assert.Equal(t, 66.67, metrics.PopularPetTypes[0].AdoptionRate)
	assert.Equal(t, "cat", metrics.PopularPetTypes[1].Type)
	assert.Equal(t, int64(1), metrics.PopularPetTypes[1].Count)
}

func TestAdoptionsRescuePerformanceIncludesIdleRescues(t *testing.T) {
	factory := testutils.NewFactory(22)
	store := adoptionFixture(factory)

	service := newMemoryService(store)
	metrics, err := service.Adoptions(context.Background(), analytics.Options{})
	require.NoError(t, err)

	require.Len(t, metrics.RescuePerformance, 3)
	assert.Equal(t, "Alpha Rescue", metrics.RescuePerformance[0].RescueName)
	assert.Equal(t, int64(2), metrics.RescuePerformance[0].Adoptions)
	assert.Equal(t, 1.5, metrics.RescuePerformance[0].AvgTimeToAdoption)
	assert.Equal(t, 50.0, metrics.RescuePerformance[0].AdoptionRate)

	assert.Equal(t, "Beta Shelter", metrics.RescuePerformance[1].RescueName)
	assert.Equal(t, int64(1), metrics.RescuePerformance[1].Adoptions)

	// A rescue without adoptions still appears with zero counts.
	assert.Equal(t, "Idle Haven", metrics.RescuePerformance[2].RescueName)
	assert.Equal(t, int64(0), metrics.RescuePerformance[2].Adoptions)
	assert.Equal(t, 0.0, metrics.RescuePerformance[2].AvgTimeToAdoption)
}

func TestAdoptionsScopedToRescue(t *testing.T) {
	factory := testutils.NewFactory(23)
	store := adoptionFixture(factory)
	alphaID := store.Rescues[0].ID

	service := newMemoryService(store)
	metrics, err := service.Adoptions(context.Background(), analytics.Options{RescueID: &alphaID})
	require.NoError(t, err)

	assert.Equal(t, int64(2), metrics.TotalAdoptions)
	assert.Equal(t, int64(2), metrics.TotalApplications)
	assert.Equal(t, 100.0, metrics.AdoptionRate)

	require.Len(t, metrics.RescuePerformance, 1)
	assert.Equal(t, "Alpha Rescue", metrics.RescuePerformance[0].RescueName)
}

func TestAdoptionsSparseTrends(t *testing.T) {
	factory := testutils.NewFactory(24)
	store := adoptionFixture(factory)

	service := newMemoryService(store)
	metrics, err := service.Adoptions(context.Background(), analytics.Options{})
	require.NoError(t, err)

	// Three adoptions on three distinct days; no zero-filled gaps.
	require.Len(t, metrics.AdoptionTrends, 3)
	for i := 1; i < len(metrics.AdoptionTrends); i++ {
		assert.Less(t, metrics.AdoptionTrends[i-1].Date, metrics.AdoptionTrends[i].Date)
	}
}

func TestAdoptionsEmptyWindow(t *testing.T) {
	service := newMemoryService(memory.NewStore())

	metrics, err := service.Adoptions(context.Background(), analytics.Options{})
	require.NoError(t, err)

	assert.Equal(t, int64(0), metrics.TotalAdoptions)
	assert.Equal(t, 0.0, metrics.AdoptionRate)
	assert.Empty(t, metrics.PopularPetTypes)
	assert.Empty(t, metrics.AdoptionTrends)
}
