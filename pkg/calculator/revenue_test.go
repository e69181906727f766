package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rmx-ops/concrete/models"
)

func TestRevenueWithSubsidy(t *testing.T) {
	project := &models.Project{Code: "BIG01", SubsidyThresholdM3: 6, SubsidyAmount: 500}

	result := Revenue(project, 5, 2800)

	assert.Equal(t, 14000.0, result.Revenue)
	assert.Equal(t, 500.0, result.Subsidy)
	assert.Equal(t, 14500.0, result.TotalRevenue)
	assert.True(t, result.Details.Subsidy.Applied)
}

func TestRevenueNoSubsidyAtThreshold(t *testing.T) {
	// Exactly at the threshold there is no subsidy: strictly-less-than.
	project := &models.Project{Code: "BIG01", SubsidyThresholdM3: 6, SubsidyAmount: 500}

	result := Revenue(project, 6, 2800)

	assert.Equal(t, 16800.0, result.Revenue)
	assert.Equal(t, 0.0, result.Subsidy)
	assert.Equal(t, 16800.0, result.TotalRevenue)
	assert.False(t, result.Details.Subsidy.Applied)
}

func TestRevenueAboveThreshold(t *testing.T) {
	project := &models.Project{Code: "BIG01", SubsidyThresholdM3: 6, SubsidyAmount: 500}

	result := Revenue(project, 8, 2800)
	assert.Equal(t, 0.0, result.Subsidy)
	assert.Equal(t, 22400.0, result.TotalRevenue)
}

func TestRevenueSubsidyNotProrated(t *testing.T) {
	project := &models.Project{Code: "BIG01", SubsidyThresholdM3: 6, SubsidyAmount: 500}

	// 0.5 m³ and 5.5 m³ both get the full subsidy amount.
	small := Revenue(project, 0.5, 2800)
	large := Revenue(project, 5.5, 2800)
	assert.Equal(t, 500.0, small.Subsidy)
	assert.Equal(t, 500.0, large.Subsidy)
}

func TestRevenueDefaultsWhenUnconfigured(t *testing.T) {
	// A project with zero-value subsidy settings uses the conventional
	// 6 m³ / 500 defaults.
	project := &models.Project{Code: "NEW01"}

	result := Revenue(project, 5, 2000)
	assert.Equal(t, 500.0, result.Subsidy)
	assert.Equal(t, 6.0, result.Details.Subsidy.ThresholdM3)
}

func TestRevenueRounding(t *testing.T) {
	project := &models.Project{Code: "BIG01", SubsidyThresholdM3: 6, SubsidyAmount: 500}

	result := Revenue(project, 7.25, 2833.33)
	assert.Equal(t, 20541.64, result.Revenue) // 7.25 × 2833.33 = 20541.6425
	assert.Equal(t, result.Revenue, result.TotalRevenue)
}
