package handlers

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/rmx-ops/concrete/config"
	"github.com/rmx-ops/concrete/pkg/calculator"
)

// CSV header synonyms, Chinese and English, mapped to canonical fields.
var csvColumns = map[string]string{
	"日期":           "date",
	"date":         "date",
	"工程":           "project",
	"project":      "project",
	"project_name": "project",
	"車號":           "truck",
	"truck":        "truck",
	"司機":           "truck",
	"driver":       "truck",
	"載量":           "load",
	"load":         "load",
	"強度":           "psi",
	"psi":          "psi",
	"距離":           "distance",
	"distance":     "distance",
	"備註":           "note",
	"note":         "note",
}

// csvField maps one raw header cell to its canonical field name. The first
// cell of an Excel-exported CSV may carry a UTF-8 BOM.
func csvField(raw string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(raw, "\uFEFF")))
	field, ok := csvColumns[name]
	return field, ok
}

// ImportDispatchCSV previews a CSV of dispatch rows uploaded as a multipart
// file. Missing date or project columns fall back to the default_date and
// default_project form fields; nothing is persisted, the caller reviews the
// previews and commits through the batch endpoint.
func ImportDispatchCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	defaultDate := r.FormValue("default_date")
	defaultProject := r.FormValue("default_project")

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		http.Error(w, "invalid CSV: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(records) < 2 {
		http.Error(w, "CSV must have a header row and at least one data row", http.StatusBadRequest)
		return
	}

	// Map header positions to canonical fields.
	fields := make(map[string]int)
	for i, raw := range records[0] {
		if field, ok := csvField(raw); ok {
			fields[field] = i
		}
	}

	if _, ok := fields["truck"]; !ok {
		http.Error(w, "missing truck column (車號/truck)", http.StatusBadRequest)
		return
	}
	if _, ok := fields["load"]; !ok {
		http.Error(w, "missing load column (載量/load)", http.StatusBadRequest)
		return
	}
	if _, ok := fields["date"]; !ok && defaultDate == "" {
		http.Error(w, "missing date column (日期/date) and no default_date given", http.StatusBadRequest)
		return
	}
	if _, ok := fields["project"]; !ok && defaultProject == "" {
		http.Error(w, "missing project column (工程/project) and no default_project given", http.StatusBadRequest)
		return
	}

	cell := func(row []string, field string) string {
		i, ok := fields[field]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	calc := calculator.NewCalculator(config.DB)
	results := make([]calculator.PreviewResult, 0, len(records)-1)
	for n, row := range records[1:] {
		input := calculator.Input{
			Date:    cell(row, "date"),
			Project: cell(row, "project"),
			Truck:   cell(row, "truck"),
			Mix:     cell(row, "psi"),
			Note:    cell(row, "note"),
		}
		if input.Date == "" {
			input.Date = defaultDate
		}
		if input.Project == "" {
			input.Project = defaultProject
		}

		result := calculator.PreviewResult{Status: "ERROR"}
		load, err := strconv.ParseFloat(cell(row, "load"), 64)
		switch {
		case err != nil || load <= 0:
			result.Error = "load must be a positive number"
		default:
			input.LoadM3 = load
			if raw := cell(row, "distance"); raw != "" {
				if distance, err := strconv.ParseFloat(raw, 64); err == nil {
					input.DistanceKm = &distance
				}
			}
			result = calc.Preview(input)
		}
		result.RowIndex = n + 1
		results = append(results, result)
	}

	log.Info().Int("rows", len(results)).Msg("CSV import previewed")
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}
