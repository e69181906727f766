package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rmx-ops/concrete/config"
	"github.com/rmx-ops/concrete/models"
)

var ledgerHeaders = []string{
	"Dispatch No", "Date", "Project", "Mix", "Truck", "Driver",
	"Load (m³)", "Distance (km)", "Price /m³",
	"Revenue", "Subsidy", "Total Revenue",
	"Material", "Fuel", "Driver Pay", "Total Cost",
	"Gross Profit", "Margin %", "Status",
}

// ExportDispatchLedger writes the dispatch ledger for a date range as an
// Excel workbook. Cancelled rows are included and marked, since the export
// is used for reconciliation against delivery slips.
func ExportDispatchLedger(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := parseDateParam(q.Get("date_from"))
	if err != nil || from.IsZero() {
		http.Error(w, "date_from must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	to, err := parseDateParam(q.Get("date_to"))
	if err != nil || to.IsZero() {
		http.Error(w, "date_to must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	var dispatches []models.Dispatch
	err = config.DB.Preload("Project").Preload("Mix").Preload("Truck").
		Where("date >= ? AND date <= ?", from, to).
		Order("date, dispatch_no").
		Find(&dispatches).Error
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	f, err := buildLedgerWorkbook(from, to, dispatches)
	if err != nil {
		http.Error(w, "failed to generate Excel file", http.StatusInternalServerError)
		return
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("dispatch_ledger_%s_%s.xlsx", from.Format("20060102"), to.Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))

	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

func buildLedgerWorkbook(from, to time.Time, dispatches []models.Dispatch) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Dispatch Ledger"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
	})
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Dispatch Ledger %s – %s", from.Format("2006-01-02"), to.Format("2006-01-02")))
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 30)
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	for colIdx, header := range ledgerHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 4)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		col, _ := excelize.ColumnNumberToName(colIdx + 1)
		f.SetColWidth(sheetName, col, col, 14)
	}

	dataStyle, _ := f.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "CCCCCC", Style: 1},
			{Type: "right", Color: "CCCCCC", Style: 1},
			{Type: "top", Color: "CCCCCC", Style: 1},
			{Type: "bottom", Color: "CCCCCC", Style: 1},
		},
	})

	var totals reportTotals
	for rowIdx := range dispatches {
		d := &dispatches[rowIdx]
		if d.Status != models.DispatchCancelled {
			totals.addDispatch(d)
		}

		projectName, mixCode, truckCode, driverName := "", "", "", ""
		if d.Project != nil {
			projectName = d.Project.Name
		}
		if d.Mix != nil {
			mixCode = d.Mix.Code
		}
		if d.Truck != nil {
			truckCode = d.Truck.Code
			driverName = d.Truck.DriverName
		}

		values := []any{
			d.DispatchNo, d.Date.Format("2006-01-02"), projectName, mixCode, truckCode, driverName,
			d.LoadM3, d.DistanceKm, d.PricePerM3,
			d.Revenue, d.Subsidy, d.TotalRevenue,
			d.MaterialCost, d.FuelCost, d.DriverCost, d.TotalCost,
			d.GrossProfit, d.ProfitMargin, d.Status,
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+5)
			f.SetCellValue(sheetName, cell, value)
			f.SetCellStyle(sheetName, cell, cell, dataStyle)
		}
	}
	totals.round()

	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E7E6E6"},
			Pattern: 1,
		},
	})
	summaryRow := len(dispatches) + 7
	cell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	f.SetCellValue(sheetName, cell, "Totals (excl. cancelled)")
	f.SetCellStyle(sheetName, cell, cell, summaryStyle)

	summary := []struct {
		label string
		value any
	}{
		{"Trips", totals.Trips},
		{"Total m³", totals.TotalM3},
		{"Total Revenue", totals.TotalRevenue},
		{"Total Cost", totals.TotalCost},
		{"Gross Profit", totals.GrossProfit},
	}
	for i, line := range summary {
		keyCell, _ := excelize.CoordinatesToCellName(1, summaryRow+1+i)
		valueCell, _ := excelize.CoordinatesToCellName(2, summaryRow+1+i)
		f.SetCellValue(sheetName, keyCell, line.label)
		f.SetCellValue(sheetName, valueCell, line.value)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}
