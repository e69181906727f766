package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/rmx-ops/concrete/config"
	"github.com/rmx-ops/concrete/models"
	"github.com/rmx-ops/concrete/utils"
)

func ListMaterialPrices(w http.ResponseWriter, r *http.Request) {
	query := config.DB.Order("price_id")
	if activeOnly(r) {
		query = query.Where("is_active = ?", true)
	}

	var prices []models.MaterialPrice
	if err := query.Find(&prices).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, prices)
}

func CreateMaterialPrice(w http.ResponseWriter, r *http.Request) {
	var price models.MaterialPrice
	if err := json.NewDecoder(r.Body).Decode(&price); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if price.PriceID == "" {
		http.Error(w, "priceId is required", http.StatusBadRequest)
		return
	}
	price.IsActive = true

	if err := config.DB.Create(&price).Error; err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, price)
}

func GetMaterialPrice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var price models.MaterialPrice
	if err := config.DB.First(&price, "id = ?", id).Error; err != nil {
		http.Error(w, "material price not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, price)
}

func UpdateMaterialPrice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var price models.MaterialPrice
	if err := config.DB.First(&price, "id = ?", id).Error; err != nil {
		http.Error(w, "material price not found", http.StatusNotFound)
		return
	}

	var input models.MaterialPrice
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	input.ID = price.ID
	input.CreatedAt = price.CreatedAt

	if err := config.DB.Save(&input).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, input)
}

func DeleteMaterialPrice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var price models.MaterialPrice
	if err := config.DB.First(&price, "id = ?", id).Error; err != nil {
		http.Error(w, "material price not found", http.StatusNotFound)
		return
	}

	var count int64
	config.DB.Model(&models.Mix{}).Where("material_price_id = ?", id).Count(&count)
	if count > 0 {
		if err := config.DB.Model(&price).Update("is_active", false).Error; err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
		return
	}

	if err := config.DB.Delete(&price).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// RecalcMixCosts refreshes the derived material cost of every mix linked
// to a price snapshot, after its unit prices changed.
func RecalcMixCosts(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var price models.MaterialPrice
	if err := config.DB.First(&price, "id = ?", id).Error; err != nil {
		http.Error(w, "material price not found", http.StatusNotFound)
		return
	}

	var mixes []models.Mix
	if err := config.DB.Where("material_price_id = ?", price.ID).Find(&mixes).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	updated := 0
	for i := range mixes {
		cost := utils.Round2(mixes[i].CalcMaterialCost(&price))
		if err := config.DB.Model(&mixes[i]).Update("material_cost_per_m3", cost).Error; err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		updated++
	}

	log.Info().Str("priceId", price.PriceID).Int("mixes", updated).Msg("recalculated mix costs")
	writeJSON(w, http.StatusOK, map[string]int{"updated": updated})
}
