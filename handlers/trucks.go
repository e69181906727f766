package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rmx-ops/concrete/config"
	"github.com/rmx-ops/concrete/models"
)

func ListTrucks(w http.ResponseWriter, r *http.Request) {
	query := config.DB.Order("code")
	if activeOnly(r) {
		query = query.Where("is_active = ?", true)
	}

	var trucks []models.Truck
	if err := query.Find(&trucks).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, trucks)
}

func CreateTruck(w http.ResponseWriter, r *http.Request) {
	var truck models.Truck
	if err := json.NewDecoder(r.Body).Decode(&truck); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if truck.Code == "" || truck.PlateNo == "" {
		http.Error(w, "code and plateNo are required", http.StatusBadRequest)
		return
	}
	truck.IsActive = true

	if err := config.DB.Create(&truck).Error; err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, truck)
}

func GetTruck(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var truck models.Truck
	if err := config.DB.First(&truck, "id = ?", id).Error; err != nil {
		http.Error(w, "truck not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, truck)
}

func UpdateTruck(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var truck models.Truck
	if err := config.DB.First(&truck, "id = ?", id).Error; err != nil {
		http.Error(w, "truck not found", http.StatusNotFound)
		return
	}

	var input models.Truck
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	input.ID = truck.ID
	input.CreatedAt = truck.CreatedAt

	if err := config.DB.Save(&input).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, input)
}

func DeleteTruck(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var truck models.Truck
	if err := config.DB.First(&truck, "id = ?", id).Error; err != nil {
		http.Error(w, "truck not found", http.StatusNotFound)
		return
	}

	var count int64
	config.DB.Model(&models.Dispatch{}).Where("truck_id = ?", id).Count(&count)
	if count > 0 {
		if err := config.DB.Model(&truck).Update("is_active", false).Error; err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
		return
	}

	if err := config.DB.Delete(&truck).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
