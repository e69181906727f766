package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rmx-ops/concrete/config"
	"github.com/rmx-ops/concrete/models"
	"github.com/rmx-ops/concrete/utils"
)

func ListMixes(w http.ResponseWriter, r *http.Request) {
	query := config.DB.Preload("MaterialPrice").Order("psi, code")
	if activeOnly(r) {
		query = query.Where("is_active = ?", true)
	}

	var mixes []models.Mix
	if err := query.Find(&mixes).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, mixes)
}

func CreateMix(w http.ResponseWriter, r *http.Request) {
	var mix models.Mix
	if err := json.NewDecoder(r.Body).Decode(&mix); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if mix.Code == "" || mix.PSI <= 0 {
		http.Error(w, "code and a positive psi are required", http.StatusBadRequest)
		return
	}
	mix.IsActive = true
	refreshMixCost(&mix)

	if err := config.DB.Create(&mix).Error; err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, mix)
}

func GetMix(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var mix models.Mix
	if err := config.DB.Preload("MaterialPrice").First(&mix, "id = ?", id).Error; err != nil {
		http.Error(w, "mix not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, mix)
}

// GetMixBreakdown returns the per-material cost lines of a mix against its
// linked price snapshot.
func GetMixBreakdown(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var mix models.Mix
	if err := config.DB.Preload("MaterialPrice").First(&mix, "id = ?", id).Error; err != nil {
		http.Error(w, "mix not found", http.StatusNotFound)
		return
	}
	if mix.MaterialPrice == nil {
		http.Error(w, "mix has no material price linked", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"mixCode":           mix.Code,
		"materialCostPerM3": utils.Round2(mix.CalcMaterialCost(nil)),
		"components":        mix.MaterialBreakdown(nil),
	})
}

func UpdateMix(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var mix models.Mix
	if err := config.DB.First(&mix, "id = ?", id).Error; err != nil {
		http.Error(w, "mix not found", http.StatusNotFound)
		return
	}

	var input models.Mix
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	input.ID = mix.ID
	input.CreatedAt = mix.CreatedAt
	refreshMixCost(&input)

	if err := config.DB.Save(&input).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, input)
}

func DeleteMix(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var mix models.Mix
	if err := config.DB.First(&mix, "id = ?", id).Error; err != nil {
		http.Error(w, "mix not found", http.StatusNotFound)
		return
	}

	var count int64
	config.DB.Model(&models.Dispatch{}).Where("mix_id = ?", id).Count(&count)
	if count > 0 {
		if err := config.DB.Model(&mix).Update("is_active", false).Error; err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
		return
	}

	if err := config.DB.Delete(&mix).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// refreshMixCost recomputes the cached material cost from the linked price
// snapshot, when one is set.
func refreshMixCost(mix *models.Mix) {
	if mix.MaterialPriceID == nil {
		return
	}
	var price models.MaterialPrice
	if err := config.DB.First(&price, "id = ?", *mix.MaterialPriceID).Error; err != nil {
		return
	}
	mix.MaterialCostPerM3 = utils.Round2(mix.CalcMaterialCost(&price))
}
