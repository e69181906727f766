package calculator

import (
	"fmt"

	"github.com/rmx-ops/concrete/models"
	"github.com/rmx-ops/concrete/utils"
)

// BaseRevenueDetail carries the operands of the base revenue line.
type BaseRevenueDetail struct {
	LoadM3     float64 `json:"loadM3"`
	PricePerM3 float64 `json:"pricePerM3"`
	Formula    string  `json:"formula"`
	Amount     float64 `json:"amount"`
}

// SubsidyDetail records whether and why the short-load subsidy applied.
type SubsidyDetail struct {
	ThresholdM3   float64 `json:"thresholdM3"`
	SubsidyAmount float64 `json:"subsidyAmount"`
	Applied       bool    `json:"applied"`
	Formula       string  `json:"formula"`
	Amount        float64 `json:"amount"`
}

// RevenueDetails is the audit breakdown persisted with each dispatch.
type RevenueDetails struct {
	Base         BaseRevenueDetail `json:"base"`
	Subsidy      SubsidyDetail     `json:"subsidy"`
	TotalFormula string            `json:"totalFormula"`
}

// RevenueResult is the revenue computation for one trip.
type RevenueResult struct {
	Revenue      float64        `json:"revenue"`
	Subsidy      float64        `json:"subsidy"`
	TotalRevenue float64        `json:"totalRevenue"`
	Details      RevenueDetails `json:"details"`
}

// Revenue computes base revenue plus the short-load subsidy. The subsidy
// pays out in full, never prorated, when the load is strictly below the
// project's threshold.
func Revenue(project *models.Project, loadM3, pricePerM3 float64) RevenueResult {
	revenue := loadM3 * pricePerM3
	baseDetail := BaseRevenueDetail{
		LoadM3:     loadM3,
		PricePerM3: utils.Round2(pricePerM3),
		Formula:    fmt.Sprintf("%g m³ × %.2f = %.2f", loadM3, pricePerM3, utils.Round2(revenue)),
		Amount:     utils.Round2(revenue),
	}

	threshold := project.SubsidyThresholdM3
	if threshold == 0 {
		threshold = 6
	}
	amount := project.SubsidyAmount
	if amount == 0 {
		amount = 500
	}

	subsidy := 0.0
	applied := loadM3 < threshold
	if applied {
		subsidy = amount
	}
	var formula string
	if applied {
		formula = fmt.Sprintf("load %g m³ < threshold %g m³, subsidy %.2f", loadM3, threshold, utils.Round2(subsidy))
	} else {
		formula = fmt.Sprintf("load %g m³ ≥ threshold %g m³, no subsidy", loadM3, threshold)
	}
	subsidyDetail := SubsidyDetail{
		ThresholdM3:   threshold,
		SubsidyAmount: utils.Round2(amount),
		Applied:       applied,
		Formula:       formula,
		Amount:        utils.Round2(subsidy),
	}

	total := revenue + subsidy

	return RevenueResult{
		Revenue:      utils.Round2(revenue),
		Subsidy:      utils.Round2(subsidy),
		TotalRevenue: utils.Round2(total),
		Details: RevenueDetails{
			Base:    baseDetail,
			Subsidy: subsidyDetail,
			TotalFormula: fmt.Sprintf("%.2f + %.2f = %.2f",
				utils.Round2(revenue), utils.Round2(subsidy), utils.Round2(total)),
		},
	}
}
