package calculator

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rmx-ops/concrete/models"
	"github.com/rmx-ops/concrete/utils"
)

// Driver-cost methods. Shared payroll divides a daily wage pool over the
// day's trip count; per-trip is the truck's flat rate.
const (
	DriverMethodPerTrip       = "per_trip"
	DriverMethodSharedPayroll = "shared_payroll"
)

// MaterialDetail carries the operands of the material cost line.
type MaterialDetail struct {
	LoadM3    float64 `json:"loadM3"`
	CostPerM3 float64 `json:"costPerM3"`
	Formula   string  `json:"formula"`
	Amount    float64 `json:"amount"`
}

// FuelDetail carries the operands of the fuel cost line. Distance is the
// round trip.
type FuelDetail struct {
	DistanceRoundTripKm float64 `json:"distanceRoundTripKm"`
	FuelLPerKm          float64 `json:"fuelLPerKm"`
	FuelPrice           float64 `json:"fuelPrice"`
	Formula             string  `json:"formula"`
	Amount              float64 `json:"amount"`
}

// DriverDetail is a tagged record of whichever driver-cost method applied;
// the shared-payroll fields are zero in per-trip mode.
type DriverDetail struct {
	Method             string  `json:"method"`
	PerTripRate        float64 `json:"perTripRate,omitempty"`
	DriverDailySalary  float64 `json:"driverDailySalary,omitempty"`
	DriverCount        int     `json:"driverCount,omitempty"`
	TotalSalary        float64 `json:"totalSalary,omitempty"`
	TotalTrips         int     `json:"totalTrips,omitempty"`
	IncludeCurrentTrip bool    `json:"includeCurrentTrip,omitempty"`
	Formula            string  `json:"formula"`
	Amount             float64 `json:"amount"`
}

// CostDetails is the audit breakdown persisted with each dispatch.
type CostDetails struct {
	Material     MaterialDetail `json:"material"`
	Fuel         FuelDetail     `json:"fuel"`
	Driver       DriverDetail   `json:"driver"`
	TotalFormula string         `json:"totalFormula"`
}

// CostResult is the full cost computation for one trip.
type CostResult struct {
	MaterialCost float64     `json:"materialCost"`
	FuelCost     float64     `json:"fuelCost"`
	DriverCost   float64     `json:"driverCost"`
	TotalCost    float64     `json:"totalCost"`
	Details      CostDetails `json:"details"`
}

// Costs computes material, fuel and driver cost for one trip. When date is
// non-nil the driver component uses the shared-payroll allocation for that
// day; includeCurrentTrip counts the trip being costed into the day's trip
// total before it is persisted.
func (c *Calculator) Costs(mix *models.Mix, truck *models.Truck, loadM3, distanceKm, fuelPrice float64, date *time.Time, includeCurrentTrip bool) (CostResult, error) {
	materialCost := loadM3 * mix.MaterialCostPerM3
	materialDetail := MaterialDetail{
		LoadM3:    loadM3,
		CostPerM3: utils.Round2(mix.MaterialCostPerM3),
		Formula: fmt.Sprintf("%g m³ × %.2f = %.2f",
			loadM3, mix.MaterialCostPerM3, utils.Round2(materialCost)),
		Amount: utils.Round2(materialCost),
	}

	fuelLPerKm := truck.FuelLPerKm
	if fuelLPerKm == 0 {
		fuelLPerKm = 0.5
	}
	fuelCost := (distanceKm * 2) * fuelLPerKm * fuelPrice
	fuelDetail := FuelDetail{
		DistanceRoundTripKm: utils.Round2(distanceKm * 2),
		FuelLPerKm:          utils.Round2(fuelLPerKm),
		FuelPrice:           utils.Round2(fuelPrice),
		Formula: fmt.Sprintf("%.2f km × %.2f L/km × %.2f = %.2f",
			utils.Round2(distanceKm*2), utils.Round2(fuelLPerKm), utils.Round2(fuelPrice), utils.Round2(fuelCost)),
		Amount: utils.Round2(fuelCost),
	}

	flatRate := truck.DriverPayPerTrip
	if flatRate == 0 {
		flatRate = 800
	}

	var driverCost float64
	var driverDetail DriverDetail
	if date != nil {
		var err error
		driverCost, driverDetail, err = c.driverCost(*date, includeCurrentTrip, flatRate)
		if err != nil {
			return CostResult{}, err
		}
	} else {
		driverCost = flatRate
		driverDetail = perTripDetail(flatRate)
	}

	totalCost := materialCost + fuelCost + driverCost

	return CostResult{
		MaterialCost: utils.Round2(materialCost),
		FuelCost:     utils.Round2(fuelCost),
		DriverCost:   utils.Round2(driverCost),
		TotalCost:    utils.Round2(totalCost),
		Details: CostDetails{
			Material: materialDetail,
			Fuel:     fuelDetail,
			Driver:   driverDetail,
			TotalFormula: fmt.Sprintf("%.2f + %.2f + %.2f = %.2f",
				utils.Round2(materialCost), utils.Round2(fuelCost), utils.Round2(driverCost), utils.Round2(totalCost)),
		},
	}, nil
}

// driverCost allocates the day's driver payroll pool across its trip
// count. Pool = daily salary × driver count, where the count comes from
// the attendance record for the date, else the driver_count setting. An
// empty pool or a zero trip count falls back to the flat per-trip rate.
func (c *Calculator) driverCost(date time.Time, includeCurrentTrip bool, flatRate float64) (float64, DriverDetail, error) {
	dailySalary := settingFloat(c.store, models.SettingDriverDailySalary, 0)
	driverCount := int(settingFloat(c.store, models.SettingDriverCount, 0))
	if attending, ok := c.store.AttendanceCount(date); ok {
		driverCount = attending
	}

	totalSalary := dailySalary * float64(driverCount)
	if totalSalary <= 0 {
		return utils.Round2(flatRate), perTripDetail(flatRate), nil
	}

	dispatchTrips, summaryTrips, err := c.store.TripCounts(date)
	if err != nil {
		return 0, DriverDetail{}, err
	}
	totalTrips := dispatchTrips + summaryTrips
	if includeCurrentTrip {
		totalTrips++
	}
	if totalTrips <= 0 {
		return utils.Round2(flatRate), perTripDetail(flatRate), nil
	}

	perTrip := utils.Round2(totalSalary / float64(totalTrips))
	return perTrip, DriverDetail{
		Method:             DriverMethodSharedPayroll,
		DriverDailySalary:  utils.Round2(dailySalary),
		DriverCount:        driverCount,
		TotalSalary:        utils.Round2(totalSalary),
		TotalTrips:         totalTrips,
		IncludeCurrentTrip: includeCurrentTrip,
		Formula: fmt.Sprintf("(%.2f × %d drivers) ÷ %d trips = %.2f",
			utils.Round2(dailySalary), driverCount, totalTrips, perTrip),
		Amount: perTrip,
	}, nil
}

func perTripDetail(rate float64) DriverDetail {
	return DriverDetail{
		Method:      DriverMethodPerTrip,
		PerTripRate: utils.Round2(rate),
		Formula:     fmt.Sprintf("flat %.2f per trip", utils.Round2(rate)),
		Amount:      utils.Round2(rate),
	}
}

func settingFloat(store Store, key string, fallback float64) float64 {
	raw := store.Setting(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
