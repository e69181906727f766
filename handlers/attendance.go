package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rmx-ops/concrete/config"
	"github.com/rmx-ops/concrete/models"
)

func ListAttendance(w http.ResponseWriter, r *http.Request) {
	query := config.DB.Order("date DESC")

	q := r.URL.Query()
	if from, err := parseDateParam(q.Get("date_from")); err == nil && !from.IsZero() {
		query = query.Where("date >= ?", from)
	}
	if to, err := parseDateParam(q.Get("date_to")); err == nil && !to.IsZero() {
		query = query.Where("date <= ?", to)
	}

	var records []models.DriverAttendance
	if err := query.Find(&records).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func GetAttendance(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(mux.Vars(r)["date"])
	if err != nil || date.IsZero() {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	var record models.DriverAttendance
	if err := config.DB.First(&record, "date = ?", date).Error; err != nil {
		http.Error(w, "attendance record not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// UpsertAttendance sets the on-duty driver count for one date.
func UpsertAttendance(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(mux.Vars(r)["date"])
	if err != nil || date.IsZero() {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	var input struct {
		DriverCount int    `json:"driverCount"`
		Note        string `json:"note,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if input.DriverCount <= 0 {
		http.Error(w, "driverCount must be positive", http.StatusBadRequest)
		return
	}

	var record models.DriverAttendance
	if err := config.DB.First(&record, "date = ?", date).Error; err != nil {
		record = models.DriverAttendance{Date: date, DriverCount: input.DriverCount, Note: input.Note}
		if err := config.DB.Create(&record).Error; err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, record)
		return
	}

	record.DriverCount = input.DriverCount
	record.Note = input.Note
	if err := config.DB.Save(&record).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func DeleteAttendance(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(mux.Vars(r)["date"])
	if err != nil || date.IsZero() {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	var record models.DriverAttendance
	if err := config.DB.First(&record, "date = ?", date).Error; err != nil {
		http.Error(w, "attendance record not found", http.StatusNotFound)
		return
	}
	if err := config.DB.Delete(&record).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
