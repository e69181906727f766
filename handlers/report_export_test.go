package handlers

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rmx-ops/concrete/models"
)

func TestBuildLedgerWorkbook(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	project := &models.Project{ID: uuid.New(), Code: "BIG01", Name: "Riverside Tower"}
	mix := &models.Mix{ID: uuid.New(), Code: "3002", PSI: 3000}
	truck := &models.Truck{ID: uuid.New(), Code: "D01", PlateNo: "KLA-2301", DriverName: "Chen Wei"}

	dispatches := []models.Dispatch{
		{
			DispatchNo: "0115BIG0101",
			Date:       time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			Project:    project, Mix: mix, Truck: truck,
			LoadM3: 5, DistanceKm: 10, PricePerM3: 2800,
			Revenue: 14000, Subsidy: 500, TotalRevenue: 14500,
			MaterialCost: 7500, FuelCost: 325, DriverCost: 800, TotalCost: 8625,
			GrossProfit: 5875, ProfitMargin: 40.52,
			Status: models.DispatchCompleted,
		},
		{
			DispatchNo: "0115BIG0102",
			Date:       time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			Project:    project, Mix: mix, Truck: truck,
			LoadM3: 8, TotalRevenue: 22400, TotalCost: 13000, GrossProfit: 9400,
			Status: models.DispatchCancelled,
		},
	}

	f, err := buildLedgerWorkbook(from, to, dispatches)
	if err != nil {
		t.Fatalf("buildLedgerWorkbook: %v", err)
	}

	sheet := "Dispatch Ledger"
	cell := func(ref string) string {
		v, err := f.GetCellValue(sheet, ref)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", ref, err)
		}
		return v
	}

	if got := cell("A4"); got != "Dispatch No" {
		t.Errorf("header A4 = %q, want %q", got, "Dispatch No")
	}
	if got := cell("A5"); got != "0115BIG0101" {
		t.Errorf("first data row A5 = %q, want %q", got, "0115BIG0101")
	}
	if got := cell("C5"); got != "Riverside Tower" {
		t.Errorf("project C5 = %q, want %q", got, "Riverside Tower")
	}
	if got := cell("S6"); got != models.DispatchCancelled {
		t.Errorf("status S6 = %q, want %q", got, models.DispatchCancelled)
	}

	// Totals block sits two rows under the data and skips the cancelled row.
	if got := cell("A9"); got != "Totals (excl. cancelled)" {
		t.Errorf("totals label A9 = %q", got)
	}
	if got := cell("B10"); got != "1" {
		t.Errorf("totals trips B10 = %q, want 1", got)
	}
	if got := cell("B12"); got != "14500" {
		t.Errorf("totals revenue B12 = %q, want 14500", got)
	}
	if got := cell("B14"); got != "5875" {
		t.Errorf("totals profit B14 = %q, want 5875", got)
	}
}
