package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/rmx-ops/concrete/config"
	"github.com/rmx-ops/concrete/models"
	"github.com/rmx-ops/concrete/pkg/calculator"
)

type batchRequest struct {
	Rows []calculator.Input `json:"rows"`
}

// PreviewDispatches runs the calculation for a batch of rows without
// persisting anything. Every row gets a result; bad rows come back with
// status ERROR instead of failing the batch.
func PreviewDispatches(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Rows) == 0 {
		http.Error(w, "rows must not be empty", http.StatusBadRequest)
		return
	}

	calc := calculator.NewCalculator(config.DB)
	results := make([]calculator.PreviewResult, 0, len(req.Rows))
	for i, row := range req.Rows {
		result := calc.Preview(row)
		result.RowIndex = i + 1
		results = append(results, result)
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// CommitDispatches persists a batch row by row. Rows that fail are
// collected into the errors list; the rest are still inserted, and each
// inserted row is visible to the payroll sharing of the rows after it.
func CommitDispatches(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Rows) == 0 {
		http.Error(w, "rows must not be empty", http.StatusBadRequest)
		return
	}

	calc := calculator.NewCalculator(config.DB)
	dispatchNos := make([]string, 0, len(req.Rows))
	errs := make([]string, 0)
	for i, row := range req.Rows {
		dispatch, err := calc.Commit(row)
		if err != nil {
			errs = append(errs, fmt.Sprintf("row %d: %s", i+1, err.Error()))
			continue
		}
		dispatchNos = append(dispatchNos, dispatch.DispatchNo)
	}

	log.Info().Int("inserted", len(dispatchNos)).Int("failed", len(errs)).Msg("dispatch batch committed")
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     len(errs) == 0,
		"inserted":    len(dispatchNos),
		"dispatchNos": dispatchNos,
		"errors":      errs,
	})
}

func ListDispatches(w http.ResponseWriter, r *http.Request) {
	query := config.DB.Preload("Project").Preload("Mix").Preload("Truck").
		Order("date DESC, dispatch_no DESC")

	q := r.URL.Query()
	if from, err := parseDateParam(q.Get("date_from")); err == nil && !from.IsZero() {
		query = query.Where("date >= ?", from)
	}
	if to, err := parseDateParam(q.Get("date_to")); err == nil && !to.IsZero() {
		query = query.Where("date <= ?", to)
	}
	if pid := q.Get("project_id"); pid != "" {
		query = query.Where("project_id = ?", pid)
	}
	if tid := q.Get("truck_id"); tid != "" {
		query = query.Where("truck_id = ?", tid)
	}
	// Cancelled rows are hidden unless asked for by status, or status=all.
	switch status := q.Get("status"); status {
	case "":
		query = query.Where("status <> ?", models.DispatchCancelled)
	case "all":
	default:
		query = query.Where("status = ?", status)
	}

	limit := 200
	if raw := q.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 1000 {
		limit = 1000
	}

	var dispatches []models.Dispatch
	if err := query.Limit(limit).Find(&dispatches).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dispatches)
}

func GetDispatch(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var dispatch models.Dispatch
	err := config.DB.Preload("Project").Preload("Mix").Preload("Truck").
		First(&dispatch, "id = ?", id).Error
	if err != nil {
		http.Error(w, "dispatch not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, dispatch)
}

// CancelDispatch flips a record to cancelled. The row stays for audit but
// drops out of payroll sharing, duplicate detection and reports; its
// dispatch number is never reused.
func CancelDispatch(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var dispatch models.Dispatch
	if err := config.DB.First(&dispatch, "id = ?", id).Error; err != nil {
		http.Error(w, "dispatch not found", http.StatusNotFound)
		return
	}
	if dispatch.Status == models.DispatchCancelled {
		http.Error(w, "dispatch is already cancelled", http.StatusBadRequest)
		return
	}

	if err := config.DB.Model(&dispatch).Update("status", models.DispatchCancelled).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dispatch.Status = models.DispatchCancelled

	log.Info().Str("dispatchNo", dispatch.DispatchNo).Msg("dispatch cancelled")
	writeJSON(w, http.StatusOK, dispatch)
}
