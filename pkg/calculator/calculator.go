// Package calculator is the dispatch calculation engine: it resolves
// loosely-formatted operator input to canonical reference entities, prices
// the trip, computes revenue, cost and profit, and creates numbered
// dispatch records.
//
// A Calculator is built per incoming batch and is not safe for concurrent
// use; the unique index on dispatch_no is the authoritative collision
// guard when several workers commit for the same project and day.
package calculator

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rmx-ops/concrete/models"
	"github.com/rmx-ops/concrete/utils"
)

// Calculator orchestrates entity resolution, pricing, costing and record
// creation over a Store.
type Calculator struct {
	store   Store
	now     func() time.Time
	usedNos map[numberKey]map[string]bool
}

// New builds a Calculator over an arbitrary Store.
func New(store Store) *Calculator {
	return &Calculator{
		store:   store,
		now:     time.Now,
		usedNos: make(map[numberKey]map[string]bool),
	}
}

// NewCalculator builds a Calculator over the GORM-backed store.
func NewCalculator(db *gorm.DB) *Calculator {
	return New(&gormStore{db: db})
}

// Input is one dispatch row as entered by the operator. Project, Truck and
// Mix are free text; Mix, DistanceKm and FuelPrice fall back to the
// project default mix / default_psi setting, the project default distance,
// and the fuel_price setting respectively when absent.
type Input struct {
	Date       string   `json:"date"`
	Project    string   `json:"project"`
	Truck      string   `json:"truck"`
	LoadM3     float64  `json:"load"`
	Mix        string   `json:"psi,omitempty"`
	DistanceKm *float64 `json:"distance,omitempty"`
	FuelPrice  *float64 `json:"fuelPrice,omitempty"`
	Note       string   `json:"note,omitempty"`
}

type resolved struct {
	date      time.Time
	project   *models.Project
	truck     *models.Truck
	mix       *models.Mix
	distance  float64
	fuelPrice float64
}

func (c *Calculator) resolve(in Input) (*resolved, error) {
	date, err := ParseDate(in.Date, c.now())
	if err != nil {
		return nil, err
	}

	project, err := c.FindProject(in.Project)
	if err != nil {
		return nil, err
	}

	truck, err := c.FindTruck(in.Truck)
	if err != nil {
		return nil, err
	}

	var mix *models.Mix
	switch {
	case in.Mix != "":
		mix, err = c.FindMix(in.Mix)
	case project.DefaultMixID != nil:
		if project.DefaultMix != nil {
			mix = project.DefaultMix
		} else {
			mix, err = c.store.MixByID(*project.DefaultMixID)
		}
	default:
		mix, err = c.FindMix(c.store.Setting(models.SettingDefaultPSI, "3000"))
	}
	if err != nil {
		return nil, err
	}

	distance := project.DefaultDistanceKm
	if distance == 0 {
		distance = 10
	}
	if in.DistanceKm != nil {
		distance = *in.DistanceKm
	}

	fuelPrice := settingFloat(c.store, models.SettingFuelPrice, 32.5)
	if in.FuelPrice != nil {
		fuelPrice = *in.FuelPrice
	}

	return &resolved{
		date:      date,
		project:   project,
		truck:     truck,
		mix:       mix,
		distance:  distance,
		fuelPrice: fuelPrice,
	}, nil
}

// PreviewResult is the structured outcome of one previewed row. Status is
// "OK" or "ERROR"; an ERROR row carries only the message, so one bad row
// never aborts a batch preview.
type PreviewResult struct {
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	RowIndex int    `json:"rowIndex"`

	Date        string `json:"date,omitempty"`
	ProjectCode string `json:"projectCode,omitempty"`
	ProjectName string `json:"projectName,omitempty"`
	TruckCode   string `json:"truckCode,omitempty"`
	TruckPlate  string `json:"truckPlate,omitempty"`
	DriverName  string `json:"driverName,omitempty"`
	MixCode     string `json:"mixCode,omitempty"`
	MixPSI      int    `json:"mixPsi,omitempty"`

	LoadM3     float64 `json:"loadM3,omitempty"`
	DistanceKm float64 `json:"distanceKm,omitempty"`
	PricePerM3 float64 `json:"pricePerM3,omitempty"`

	Revenue        float64        `json:"revenue,omitempty"`
	Subsidy        float64        `json:"subsidy,omitempty"`
	TotalRevenue   float64        `json:"totalRevenue,omitempty"`
	RevenueDetails RevenueDetails `json:"revenueDetails,omitempty"`

	MaterialCost float64     `json:"materialCost,omitempty"`
	FuelCost     float64     `json:"fuelCost,omitempty"`
	DriverCost   float64     `json:"driverCost,omitempty"`
	TotalCost    float64     `json:"totalCost,omitempty"`
	CostDetails  CostDetails `json:"costDetails,omitempty"`

	GrossProfit        float64 `json:"grossProfit"`
	GrossProfitFormula string  `json:"grossProfitFormula,omitempty"`
}

// Preview computes everything a commit would without writing anything.
// The trip being previewed is counted into the day's payroll sharing, the
// same as it would be at commit.
func (c *Calculator) Preview(in Input) PreviewResult {
	r, err := c.resolve(in)
	if err != nil {
		return PreviewResult{Status: "ERROR", Error: err.Error()}
	}

	pricePerM3, err := c.PriceFor(r.project, r.mix, r.date, in.LoadM3)
	if err != nil {
		return PreviewResult{Status: "ERROR", Error: err.Error()}
	}

	revenue := Revenue(r.project, in.LoadM3, pricePerM3)
	costs, err := c.Costs(r.mix, r.truck, in.LoadM3, r.distance, r.fuelPrice, &r.date, true)
	if err != nil {
		return PreviewResult{Status: "ERROR", Error: err.Error()}
	}

	grossProfit := utils.Round2(revenue.TotalRevenue - costs.TotalCost)

	return PreviewResult{
		Status:      "OK",
		Date:        r.date.Format("2006-01-02"),
		ProjectCode: r.project.Code,
		ProjectName: r.project.Name,
		TruckCode:   r.truck.Code,
		TruckPlate:  r.truck.PlateNo,
		DriverName:  r.truck.DriverName,
		MixCode:     r.mix.Code,
		MixPSI:      r.mix.PSI,

		LoadM3:     in.LoadM3,
		DistanceKm: r.distance,
		PricePerM3: pricePerM3,

		Revenue:        revenue.Revenue,
		Subsidy:        revenue.Subsidy,
		TotalRevenue:   revenue.TotalRevenue,
		RevenueDetails: revenue.Details,

		MaterialCost: costs.MaterialCost,
		FuelCost:     costs.FuelCost,
		DriverCost:   costs.DriverCost,
		TotalCost:    costs.TotalCost,
		CostDetails:  costs.Details,

		GrossProfit:        grossProfit,
		GrossProfitFormula: grossProfitFormula(revenue.TotalRevenue, costs.TotalCost, grossProfit),
	}
}

// Commit performs the full calculation and persists the record. Unlike
// Preview it fails loudly; batch callers catch per row and keep committing
// the rest. The inserted row is immediately visible to the next Commit's
// trip counting, so payroll sharing within one batch stays consistent.
func (c *Calculator) Commit(in Input) (*models.Dispatch, error) {
	r, err := c.resolve(in)
	if err != nil {
		return nil, err
	}

	pricePerM3, err := c.PriceFor(r.project, r.mix, r.date, in.LoadM3)
	if err != nil {
		return nil, err
	}

	revenue := Revenue(r.project, in.LoadM3, pricePerM3)
	costs, err := c.Costs(r.mix, r.truck, in.LoadM3, r.distance, r.fuelPrice, &r.date, true)
	if err != nil {
		return nil, err
	}

	grossProfit := utils.Round2(revenue.TotalRevenue - costs.TotalCost)
	profitMargin := 0.0
	if revenue.TotalRevenue > 0 {
		profitMargin = utils.Round2(grossProfit / revenue.TotalRevenue * 100)
	}

	existing, err := c.store.FindDuplicate(r.date, r.project.ID, r.truck.ID, in.LoadM3)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateError{DispatchNo: existing.DispatchNo}
	}

	dispatchNo, err := c.nextDispatchNo(r.project, r.date)
	if err != nil {
		return nil, err
	}

	revenueDetails, err := json.Marshal(revenue.Details)
	if err != nil {
		return nil, err
	}
	costDetails, err := json.Marshal(costs.Details)
	if err != nil {
		return nil, err
	}

	dispatch := &models.Dispatch{
		DispatchNo: dispatchNo,
		Date:       r.date,
		ProjectID:  r.project.ID,
		MixID:      r.mix.ID,
		TruckID:    r.truck.ID,

		LoadM3:     in.LoadM3,
		DistanceKm: r.distance,
		PricePerM3: pricePerM3,

		Revenue:      revenue.Revenue,
		Subsidy:      revenue.Subsidy,
		TotalRevenue: revenue.TotalRevenue,

		MaterialCost: costs.MaterialCost,
		FuelCost:     costs.FuelCost,
		DriverCost:   costs.DriverCost,
		TotalCost:    costs.TotalCost,

		GrossProfit:  grossProfit,
		ProfitMargin: profitMargin,
		FuelPrice:    r.fuelPrice,

		RevenueDetails: revenueDetails,
		CostDetails:    costDetails,

		Status: models.DispatchCompleted,
		Note:   in.Note,
	}

	if err := c.store.InsertDispatch(dispatch); err != nil {
		return nil, err
	}
	return dispatch, nil
}

func grossProfitFormula(totalRevenue, totalCost, grossProfit float64) string {
	return fmt.Sprintf("%.2f - %.2f = %.2f", totalRevenue, totalCost, grossProfit)
}
