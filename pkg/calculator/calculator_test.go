package calculator

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmx-ops/concrete/models"
)

// engineFixture is the reference setup: project BIG01 with a 6 m³ / 500
// subsidy and 10 km default distance, mix 3000 psi at 1500/m³ material
// cost, truck D01 at 0.5 L/km with 800 flat driver pay, and a single open
// 2800/m³ price band.
func engineFixture() *memStore {
	store := newMemStore()

	project := models.Project{
		ID: uuid.New(), Code: "BIG01", Name: "Riverside Tower",
		DefaultDistanceKm: 10, SubsidyThresholdM3: 6, SubsidyAmount: 500,
		IsActive: true,
	}
	mix := models.Mix{
		ID: uuid.New(), Code: "3002", PSI: 3000, MaterialCostPerM3: 1500, IsActive: true,
	}
	truck := models.Truck{
		ID: uuid.New(), Code: "D01", PlateNo: "KLA-2301", DriverName: "Chen Wei",
		FuelLPerKm: 0.5, DriverPayPerTrip: 800, IsActive: true,
	}

	store.projects = []models.Project{project}
	store.mixes = []models.Mix{mix}
	store.trucks = []models.Truck{truck}
	store.bands = []models.PriceBand{
		{ID: uuid.New(), ProjectID: project.ID, MixID: mix.ID, PricePerM3: 2800, IsActive: true},
	}
	store.settings[models.SettingFuelPrice] = "32.5"
	return store
}

func TestCommitReferenceScenario(t *testing.T) {
	store := engineFixture()
	c := New(store)

	d, err := c.Commit(Input{
		Date:    "2025/01/15",
		Project: "BIG01",
		Truck:   "D01",
		LoadM3:  5,
	})
	require.NoError(t, err)

	assert.Equal(t, "0115BIG0101", d.DispatchNo)
	assert.Equal(t, 2800.0, d.PricePerM3)
	assert.Equal(t, 14000.0, d.Revenue)
	assert.Equal(t, 500.0, d.Subsidy) // 5 < 6
	assert.Equal(t, 14500.0, d.TotalRevenue)
	assert.Equal(t, 7500.0, d.MaterialCost)
	assert.Equal(t, 325.0, d.FuelCost)
	assert.Equal(t, 800.0, d.DriverCost)
	assert.Equal(t, 8625.0, d.TotalCost)
	assert.Equal(t, 5875.0, d.GrossProfit)
	assert.Equal(t, 40.52, d.ProfitMargin)
	assert.Equal(t, 10.0, d.DistanceKm)
	assert.Equal(t, models.DispatchCompleted, d.Status)
	assert.NotEmpty(t, d.CostDetails)
	assert.NotEmpty(t, d.RevenueDetails)
}

func TestCommitMixFallbackChain(t *testing.T) {
	store := engineFixture()

	// No explicit mix and no project default: the default_psi setting
	// resolves the mix.
	store.settings[models.SettingDefaultPSI] = "3000"
	c := New(store)
	d, err := c.Commit(Input{Date: "2025/01/15", Project: "BIG01", Truck: "D01", LoadM3: 5})
	require.NoError(t, err)
	assert.Equal(t, store.mixes[0].ID, d.MixID)

	// With a project default mix, that wins over the setting.
	store2 := engineFixture()
	other := models.Mix{ID: uuid.New(), Code: "4001", PSI: 4000, MaterialCostPerM3: 1700, IsActive: true}
	store2.mixes = append(store2.mixes, other)
	store2.projects[0].DefaultMixID = &other.ID
	store2.projects[0].DefaultMix = &other
	store2.bands = append(store2.bands, models.PriceBand{
		ID: uuid.New(), ProjectID: store2.projects[0].ID, MixID: other.ID, PricePerM3: 3000, IsActive: true,
	})
	c2 := New(store2)
	d2, err := c2.Commit(Input{Date: "2025/01/15", Project: "BIG01", Truck: "D01", LoadM3: 5})
	require.NoError(t, err)
	assert.Equal(t, other.ID, d2.MixID)

	// An explicit strength overrides everything.
	d3, err := c2.Commit(Input{Date: "2025/01/16", Project: "BIG01", Truck: "D01", LoadM3: 5, Mix: "30"})
	require.NoError(t, err)
	assert.Equal(t, store2.mixes[0].ID, d3.MixID)
}

func TestCommitDuplicateDetection(t *testing.T) {
	store := engineFixture()
	c := New(store)

	in := Input{Date: "2025/01/15", Project: "BIG01", Truck: "D01", LoadM3: 5}
	first, err := c.Commit(in)
	require.NoError(t, err)

	_, err = c.Commit(in)
	var dup *DuplicateError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, first.DispatchNo, dup.DispatchNo)

	// A different load on the same day is not a duplicate.
	_, err = c.Commit(Input{Date: "2025/01/15", Project: "BIG01", Truck: "D01", LoadM3: 6})
	assert.NoError(t, err)
}

func TestCommitCancelledDoesNotBlockDuplicate(t *testing.T) {
	store := engineFixture()
	c := New(store)

	in := Input{Date: "2025/01/15", Project: "BIG01", Truck: "D01", LoadM3: 5}
	first, err := c.Commit(in)
	require.NoError(t, err)

	// Cancelling the mistaken entry permits an identical correction.
	first.Status = models.DispatchCancelled

	second, err := New(store).Commit(in)
	require.NoError(t, err)
	assert.NotEqual(t, first.DispatchNo, second.DispatchNo)
}

func TestCommitNumberingDistinct(t *testing.T) {
	store := engineFixture()
	c := New(store)

	seen := make(map[string]bool)
	for i := 1; i <= 15; i++ {
		d, err := c.Commit(Input{
			Date: "2025/01/15", Project: "BIG01", Truck: "D01",
			LoadM3: float64(i), // vary load to stay clear of the duplicate guard
		})
		require.NoError(t, err)
		require.False(t, seen[d.DispatchNo], "reused %s", d.DispatchNo)
		seen[d.DispatchNo] = true
		assert.Equal(t, fmt.Sprintf("0115BIG01%02d", i), d.DispatchNo)
	}
}

func TestNumberingSkipsPersistedNumbers(t *testing.T) {
	store := engineFixture()
	store.dispatches = append(store.dispatches, &models.Dispatch{
		DispatchNo: "0115BIG0101",
		Date:       time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:     models.DispatchCompleted,
	})
	c := New(store)

	no, err := c.nextDispatchNo(&store.projects[0], time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "0115BIG0102", no)
}

func TestBatchPayrollVisibility(t *testing.T) {
	// Each commit in a batch must observe the trips committed before it:
	// with a 7200 pool, trip 1 is costed over 1 trip, trip 2 over 2.
	store := engineFixture()
	store.settings[models.SettingDriverDailySalary] = "1800"
	store.settings[models.SettingDriverCount] = "4"
	c := New(store)

	d1, err := c.Commit(Input{Date: "2025/01/15", Project: "BIG01", Truck: "D01", LoadM3: 5})
	require.NoError(t, err)
	assert.Equal(t, 7200.0, d1.DriverCost)

	d2, err := c.Commit(Input{Date: "2025/01/15", Project: "BIG01", Truck: "D01", LoadM3: 6})
	require.NoError(t, err)
	assert.Equal(t, 3600.0, d2.DriverCost)
}

func TestPreviewMatchesCommit(t *testing.T) {
	in := Input{Date: "2025/01/15", Project: "BIG01", Truck: "D01", LoadM3: 5}

	preview := New(engineFixture()).Preview(in)
	require.Equal(t, "OK", preview.Status)

	committed, err := New(engineFixture()).Commit(in)
	require.NoError(t, err)

	assert.Equal(t, committed.TotalRevenue, preview.TotalRevenue)
	assert.Equal(t, committed.TotalCost, preview.TotalCost)
	assert.Equal(t, committed.GrossProfit, preview.GrossProfit)
}

func TestPreviewDoesNotPersist(t *testing.T) {
	store := engineFixture()
	c := New(store)

	c.Preview(Input{Date: "2025/01/15", Project: "BIG01", Truck: "D01", LoadM3: 5})
	assert.Empty(t, store.dispatches)
}

func TestPreviewCapturesErrors(t *testing.T) {
	c := New(engineFixture())

	tests := []struct {
		name string
		in   Input
	}{
		{"bad date", Input{Date: "someday", Project: "BIG01", Truck: "D01", LoadM3: 5}},
		{"unknown project", Input{Date: "2025/01/15", Project: "NOPE99XX", Truck: "D01", LoadM3: 5}},
		{"unknown truck", Input{Date: "2025/01/15", Project: "BIG01", Truck: "ZZZZZZZZ", LoadM3: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Preview(tt.in)
			assert.Equal(t, "ERROR", result.Status)
			assert.NotEmpty(t, result.Error)
		})
	}
}

func TestPreviewErrorNamesQuery(t *testing.T) {
	c := New(engineFixture())
	result := c.Preview(Input{Date: "2025/01/15", Project: "NOPE99XX", Truck: "D01", LoadM3: 5})
	require.Equal(t, "ERROR", result.Status)
	assert.Contains(t, result.Error, "NOPE99XX")
}

func TestCommitNoPriceBand(t *testing.T) {
	store := engineFixture()
	store.bands = nil
	c := New(store)

	_, err := c.Commit(Input{Date: "2025/01/15", Project: "BIG01", Truck: "D01", LoadM3: 5})
	var noPrice *NoPriceError
	require.True(t, errors.As(err, &noPrice))
}

func TestCommitExplicitOverrides(t *testing.T) {
	store := engineFixture()
	c := New(store)

	distance := 25.0
	fuel := 30.0
	d, err := c.Commit(Input{
		Date: "2025/01/15", Project: "BIG01", Truck: "D01", LoadM3: 5,
		DistanceKm: &distance, FuelPrice: &fuel,
	})
	require.NoError(t, err)
	assert.Equal(t, 25.0, d.DistanceKm)
	assert.Equal(t, 750.0, d.FuelCost) // 25 × 2 × 0.5 × 30
	assert.Equal(t, 30.0, d.FuelPrice)
}
