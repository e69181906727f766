package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/rmx-ops/concrete/config"
	"github.com/rmx-ops/concrete/models"
)

func ListDailySummaries(w http.ResponseWriter, r *http.Request) {
	query := config.DB.Preload("Project").Order("date DESC")

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

	var summaries []models.DailySummary
	if err := query.Find(&summaries).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

type dailySummaryInput struct {
	Date    string  `json:"date"`
	Project string  `json:"project"`
	PSI     *int    `json:"psi,omitempty"`
	TotalM3 float64 `json:"totalM3"`
	Trips   int     `json:"trips"`
	Note    string  `json:"note,omitempty"`
}

// UpsertDailySummary creates or replaces the bulk total for one
// (date, project, psi) key. The project is matched by exact code or name,
// not fuzzily: bulk totals feed payroll sharing, so a wrong guess here
// would silently skew every trip cost of the day.
func UpsertDailySummary(w http.ResponseWriter, r *http.Request) {
	var input dailySummaryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if input.TotalM3 <= 0 || input.Trips <= 0 {
		http.Error(w, "totalM3 and trips must be positive", http.StatusBadRequest)
		return
	}

	date, err := parseDateParam(input.Date)
	if err != nil || date.IsZero() {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(input.Project)
	var project models.Project
	err = config.DB.Where("code = ? OR name = ?", name, name).First(&project).Error
	if err != nil {
		http.Error(w, "project not found: "+name, http.StatusNotFound)
		return
	}

	query := config.DB.Where("date = ? AND project_id = ?", date, project.ID)
	if input.PSI != nil {
		query = query.Where("psi = ?", *input.PSI)
	} else {
		query = query.Where("psi IS NULL")
	}

	var summary models.DailySummary
	if err := query.First(&summary).Error; err != nil {
		summary = models.DailySummary{
			Date:      date,
			ProjectID: project.ID,
			PSI:       input.PSI,
			TotalM3:   input.TotalM3,
			Trips:     input.Trips,
			Note:      input.Note,
		}
		if err := config.DB.Create(&summary).Error; err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, summary)
		return
	}

	summary.TotalM3 = input.TotalM3
	summary.Trips = input.Trips
	summary.Note = input.Note
	if err := config.DB.Save(&summary).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func DeleteDailySummary(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var summary models.DailySummary
	if err := config.DB.First(&summary, "id = ?", id).Error; err != nil {
		http.Error(w, "daily summary not found", http.StatusNotFound)
		return
	}
	if err := config.DB.Delete(&summary).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
