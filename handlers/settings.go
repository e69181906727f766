package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/rmx-ops/concrete/config"
	"github.com/rmx-ops/concrete/models"
)

func ListSettings(w http.ResponseWriter, r *http.Request) {
	var settings []models.Setting
	if err := config.DB.Order("key").Find(&settings).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func GetSetting(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	var setting models.Setting
	if err := config.DB.First(&setting, "key = ?", key).Error; err != nil {
		http.Error(w, "setting not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, setting)
}

// UpsertSetting creates or updates a setting by key.
func UpsertSetting(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	var input struct {
		Value       string `json:"value"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if input.Value == "" {
		http.Error(w, "value is required", http.StatusBadRequest)
		return
	}

	var setting models.Setting
	err := config.DB.First(&setting, "key = ?", key).Error
	if err != nil {
		setting = models.Setting{Key: key, Value: input.Value, Description: input.Description}
		if err := config.DB.Create(&setting).Error; err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		log.Info().Str("key", key).Str("value", input.Value).Msg("setting created")
		writeJSON(w, http.StatusCreated, setting)
		return
	}

	setting.Value = input.Value
	if input.Description != "" {
		setting.Description = input.Description
	}
	if err := config.DB.Save(&setting).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Info().Str("key", key).Str("value", input.Value).Msg("setting updated")
	writeJSON(w, http.StatusOK, setting)
}
