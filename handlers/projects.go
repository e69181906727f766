package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rmx-ops/concrete/config"
	"github.com/rmx-ops/concrete/models"
)

func ListProjects(w http.ResponseWriter, r *http.Request) {
	query := config.DB.Preload("DefaultMix").Order("code")
	if activeOnly(r) {
		query = query.Where("is_active = ?", true)
	}

	var projects []models.Project
	if err := query.Find(&projects).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func CreateProject(w http.ResponseWriter, r *http.Request) {
	var project models.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if project.Code == "" || project.Name == "" {
		http.Error(w, "code and name are required", http.StatusBadRequest)
		return
	}
	project.IsActive = true

	if err := config.DB.Create(&project).Error; err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func GetProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var project models.Project
	if err := config.DB.Preload("DefaultMix").First(&project, "id = ?", id).Error; err != nil {
		http.Error(w, "project not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var project models.Project
	if err := config.DB.First(&project, "id = ?", id).Error; err != nil {
		http.Error(w, "project not found", http.StatusNotFound)
		return
	}

	var input models.Project
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// The code is baked into dispatch numbers; once any dispatch
	// references the project it can no longer change.
	if input.Code != "" && input.Code != project.Code && projectReferenced(project.ID.String()) {
		http.Error(w, "project code cannot change once dispatches reference it", http.StatusBadRequest)
		return
	}

	input.ID = project.ID
	input.CreatedAt = project.CreatedAt
	if err := config.DB.Save(&input).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, input)
}

func DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var project models.Project
	if err := config.DB.First(&project, "id = ?", id).Error; err != nil {
		http.Error(w, "project not found", http.StatusNotFound)
		return
	}

	// Referenced projects are deactivated, never removed.
	if projectReferenced(id) {
		if err := config.DB.Model(&project).Update("is_active", false).Error; err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
		return
	}

	if err := config.DB.Delete(&project).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func projectReferenced(id string) bool {
	var count int64
	config.DB.Model(&models.Dispatch{}).Where("project_id = ?", id).Count(&count)
	return count > 0
}
