package calculator

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmx-ops/concrete/models"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func floatPtr(v float64) *float64 { return &v }

func pricingFixture() (*memStore, *models.Project, *models.Mix) {
	store := newMemStore()
	project := models.Project{ID: uuid.New(), Code: "BIG01", Name: "Riverside Tower", IsActive: true}
	mix := models.Mix{ID: uuid.New(), Code: "3002", PSI: 3000, IsActive: true}
	store.projects = []models.Project{project}
	store.mixes = []models.Mix{mix}
	return store, &project, &mix
}

func TestPriceForSingleOpenBand(t *testing.T) {
	store, project, mix := pricingFixture()
	store.bands = []models.PriceBand{
		{ProjectID: project.ID, MixID: mix.ID, PricePerM3: 2800, IsActive: true},
	}
	c := New(store)

	price, err := c.PriceFor(project, mix, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), 5)
	require.NoError(t, err)
	assert.Equal(t, 2800.0, price)
}

func TestPriceForDateWindows(t *testing.T) {
	store, project, mix := pricingFixture()
	store.bands = []models.PriceBand{
		{ProjectID: project.ID, MixID: mix.ID, PricePerM3: 2700, IsActive: true,
			EffectiveFrom: datePtr(2024, 1, 1), EffectiveTo: datePtr(2024, 12, 31)},
		{ProjectID: project.ID, MixID: mix.ID, PricePerM3: 2900, IsActive: true,
			EffectiveFrom: datePtr(2025, 1, 1)},
	}
	c := New(store)

	price, err := c.PriceFor(project, mix, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 8)
	require.NoError(t, err)
	assert.Equal(t, 2700.0, price)

	price, err = c.PriceFor(project, mix, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 8)
	require.NoError(t, err)
	assert.Equal(t, 2900.0, price)
}

func TestPriceForWindowBoundsInclusive(t *testing.T) {
	store, project, mix := pricingFixture()
	store.bands = []models.PriceBand{
		{ProjectID: project.ID, MixID: mix.ID, PricePerM3: 2800, IsActive: true,
			EffectiveFrom: datePtr(2025, 1, 1), EffectiveTo: datePtr(2025, 1, 31),
			LoadMinM3: floatPtr(3), LoadMaxM3: floatPtr(8)},
	}
	c := New(store)

	for _, tc := range []struct {
		date time.Time
		load float64
	}{
		{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 3},
		{time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), 8},
	} {
		price, err := c.PriceFor(project, mix, tc.date, tc.load)
		require.NoError(t, err)
		assert.Equal(t, 2800.0, price)
	}

	_, err := c.PriceFor(project, mix, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), 5)
	assert.Error(t, err)

	_, err = c.PriceFor(project, mix, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), 8.5)
	assert.Error(t, err)
}

func TestPriceForVolumeBandBeatsCatchAll(t *testing.T) {
	store, project, mix := pricingFixture()
	store.bands = []models.PriceBand{
		{ProjectID: project.ID, MixID: mix.ID, PricePerM3: 2800, IsActive: true},
		{ProjectID: project.ID, MixID: mix.ID, PricePerM3: 3100, IsActive: true,
			LoadMinM3: floatPtr(0), LoadMaxM3: floatPtr(3)},
	}
	c := New(store)
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	// Small load: both bands qualify, the volume-specific one wins.
	price, err := c.PriceFor(project, mix, date, 2)
	require.NoError(t, err)
	assert.Equal(t, 3100.0, price)

	// Large load: only the catch-all qualifies.
	price, err = c.PriceFor(project, mix, date, 8)
	require.NoError(t, err)
	assert.Equal(t, 2800.0, price)
}

func TestPriceForHigherLoadMinWins(t *testing.T) {
	store, project, mix := pricingFixture()
	store.bands = []models.PriceBand{
		{ProjectID: project.ID, MixID: mix.ID, PricePerM3: 2900, IsActive: true, LoadMinM3: floatPtr(0)},
		{ProjectID: project.ID, MixID: mix.ID, PricePerM3: 2750, IsActive: true, LoadMinM3: floatPtr(6)},
	}
	c := New(store)

	price, err := c.PriceFor(project, mix, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), 8)
	require.NoError(t, err)
	assert.Equal(t, 2750.0, price)
}

func TestPriceForRecentEffectiveFromWins(t *testing.T) {
	store, project, mix := pricingFixture()
	store.bands = []models.PriceBand{
		{ProjectID: project.ID, MixID: mix.ID, PricePerM3: 2700, IsActive: true, EffectiveFrom: datePtr(2024, 1, 1)},
		{ProjectID: project.ID, MixID: mix.ID, PricePerM3: 2950, IsActive: true, EffectiveFrom: datePtr(2025, 1, 1)},
		{ProjectID: project.ID, MixID: mix.ID, PricePerM3: 2600, IsActive: true},
	}
	c := New(store)

	price, err := c.PriceFor(project, mix, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), 8)
	require.NoError(t, err)
	assert.Equal(t, 2950.0, price)
}

func TestPriceForDeterministic(t *testing.T) {
	store, project, mix := pricingFixture()
	store.bands = []models.PriceBand{
		{ProjectID: project.ID, MixID: mix.ID, PricePerM3: 2700, IsActive: true, EffectiveFrom: datePtr(2024, 6, 1)},
		{ProjectID: project.ID, MixID: mix.ID, PricePerM3: 2800, IsActive: true, LoadMinM3: floatPtr(4)},
		{ProjectID: project.ID, MixID: mix.ID, PricePerM3: 2900, IsActive: true},
	}
	c := New(store)
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	first, err := c.PriceFor(project, mix, date, 6)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		price, err := c.PriceFor(project, mix, date, 6)
		require.NoError(t, err)
		assert.Equal(t, first, price)
	}
}

func TestPriceForInactiveBandIgnored(t *testing.T) {
	store, project, mix := pricingFixture()
	store.bands = []models.PriceBand{
		{ProjectID: project.ID, MixID: mix.ID, PricePerM3: 2800, IsActive: false},
	}
	c := New(store)

	_, err := c.PriceFor(project, mix, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), 5)
	var noPrice *NoPriceError
	require.True(t, errors.As(err, &noPrice))
	assert.Equal(t, "BIG01", noPrice.ProjectCode)
	assert.Equal(t, "3002", noPrice.MixCode)
}
