package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/rmx-ops/concrete/config"
	"github.com/rmx-ops/concrete/models"
)

func ListPrices(w http.ResponseWriter, r *http.Request) {
	query := config.DB.Preload("Project").Preload("Mix").
		Order("project_id, mix_id, effective_from DESC NULLS LAST")
	if activeOnly(r) {
		query = query.Where("is_active = ?", true)
	}
	if pid := r.URL.Query().Get("project_id"); pid != "" {
		query = query.Where("project_id = ?", pid)
	}
	if mid := r.URL.Query().Get("mix_id"); mid != "" {
		query = query.Where("mix_id = ?", mid)
	}

	var bands []models.PriceBand
	if err := query.Find(&bands).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, bands)
}

func CreatePrice(w http.ResponseWriter, r *http.Request) {
	var band models.PriceBand
	if err := json.NewDecoder(r.Body).Decode(&band); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if band.ProjectID == uuid.Nil || band.MixID == uuid.Nil {
		http.Error(w, "projectId and mixId are required", http.StatusBadRequest)
		return
	}
	if band.PricePerM3 <= 0 {
		http.Error(w, "pricePerM3 must be positive", http.StatusBadRequest)
		return
	}
	if band.LoadMinM3 != nil && band.LoadMaxM3 != nil && *band.LoadMinM3 > *band.LoadMaxM3 {
		http.Error(w, "loadMinM3 must not exceed loadMaxM3", http.StatusBadRequest)
		return
	}
	band.IsActive = true

	if err := config.DB.Create(&band).Error; err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, band)
}

func UpdatePrice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var band models.PriceBand
	if err := config.DB.First(&band, "id = ?", id).Error; err != nil {
		http.Error(w, "price not found", http.StatusNotFound)
		return
	}

	var input models.PriceBand
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	input.ID = band.ID
	input.CreatedAt = band.CreatedAt
	if input.ProjectID == uuid.Nil {
		input.ProjectID = band.ProjectID
	}
	if input.MixID == uuid.Nil {
		input.MixID = band.MixID
	}

	if err := config.DB.Save(&input).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, input)
}

// DeletePrice deactivates a band; price history stays queryable so old
// dispatches remain explainable.
func DeletePrice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var band models.PriceBand
	if err := config.DB.First(&band, "id = ?", id).Error; err != nil {
		http.Error(w, "price not found", http.StatusNotFound)
		return
	}

	if err := config.DB.Model(&band).Update("is_active", false).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}
