package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rmx-ops/concrete/handlers"
	"github.com/rmx-ops/concrete/middleware"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", handleHealth).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.RequestLogger)
	api.Use(middleware.Recovery)

	registerMasterRoutes(api)
	registerDispatchRoutes(api)
	registerReportRoutes(api)

	return r
}

// registerMasterRoutes wires the reference-entity CRUD surface.
func registerMasterRoutes(api *mux.Router) {
	api.HandleFunc("/projects", handlers.ListProjects).Methods("GET")
	api.HandleFunc("/projects", handlers.CreateProject).Methods("POST")
	api.HandleFunc("/projects/{id}", handlers.GetProject).Methods("GET")
	api.HandleFunc("/projects/{id}", handlers.UpdateProject).Methods("PUT")
	api.HandleFunc("/projects/{id}", handlers.DeleteProject).Methods("DELETE")

	api.HandleFunc("/trucks", handlers.ListTrucks).Methods("GET")
	api.HandleFunc("/trucks", handlers.CreateTruck).Methods("POST")
	api.HandleFunc("/trucks/{id}", handlers.GetTruck).Methods("GET")
	api.HandleFunc("/trucks/{id}", handlers.UpdateTruck).Methods("PUT")
	api.HandleFunc("/trucks/{id}", handlers.DeleteTruck).Methods("DELETE")

	api.HandleFunc("/mixes", handlers.ListMixes).Methods("GET")
	api.HandleFunc("/mixes", handlers.CreateMix).Methods("POST")
	api.HandleFunc("/mixes/{id}", handlers.GetMix).Methods("GET")
	api.HandleFunc("/mixes/{id}/breakdown", handlers.GetMixBreakdown).Methods("GET")
	api.HandleFunc("/mixes/{id}", handlers.UpdateMix).Methods("PUT")
	api.HandleFunc("/mixes/{id}", handlers.DeleteMix).Methods("DELETE")

	api.HandleFunc("/material-prices", handlers.ListMaterialPrices).Methods("GET")
	api.HandleFunc("/material-prices", handlers.CreateMaterialPrice).Methods("POST")
	api.HandleFunc("/material-prices/{id}", handlers.GetMaterialPrice).Methods("GET")
	api.HandleFunc("/material-prices/{id}", handlers.UpdateMaterialPrice).Methods("PUT")
	api.HandleFunc("/material-prices/{id}", handlers.DeleteMaterialPrice).Methods("DELETE")
	api.HandleFunc("/material-prices/{id}/recalc-mixes", handlers.RecalcMixCosts).Methods("POST")

	api.HandleFunc("/prices", handlers.ListPrices).Methods("GET")
	api.HandleFunc("/prices", handlers.CreatePrice).Methods("POST")
	api.HandleFunc("/prices/{id}", handlers.UpdatePrice).Methods("PUT")
	api.HandleFunc("/prices/{id}", handlers.DeletePrice).Methods("DELETE")

	api.HandleFunc("/settings", handlers.ListSettings).Methods("GET")
	api.HandleFunc("/settings/{key}", handlers.GetSetting).Methods("GET")
	api.HandleFunc("/settings/{key}", handlers.UpsertSetting).Methods("PUT")
}

// registerDispatchRoutes wires the dispatch engine surface.
func registerDispatchRoutes(api *mux.Router) {
	api.HandleFunc("/dispatch/preview", handlers.PreviewDispatches).Methods("POST")
	api.HandleFunc("/dispatch/commit", handlers.CommitDispatches).Methods("POST")
	api.HandleFunc("/dispatch/upload-csv", handlers.ImportDispatchCSV).Methods("POST")

	api.HandleFunc("/dispatches", handlers.ListDispatches).Methods("GET")
	api.HandleFunc("/dispatches/{id}", handlers.GetDispatch).Methods("GET")
	api.HandleFunc("/dispatches/{id}/cancel", handlers.CancelDispatch).Methods("POST")

	api.HandleFunc("/daily-summaries", handlers.ListDailySummaries).Methods("GET")
	api.HandleFunc("/daily-summaries", handlers.UpsertDailySummary).Methods("POST")
	api.HandleFunc("/daily-summaries/{id}", handlers.DeleteDailySummary).Methods("DELETE")

	api.HandleFunc("/driver-attendance", handlers.ListAttendance).Methods("GET")
	api.HandleFunc("/driver-attendance/{date}", handlers.GetAttendance).Methods("GET")
	api.HandleFunc("/driver-attendance/{date}", handlers.UpsertAttendance).Methods("PUT")
	api.HandleFunc("/driver-attendance/{date}", handlers.DeleteAttendance).Methods("DELETE")
}

// registerReportRoutes wires aggregation and export.
func registerReportRoutes(api *mux.Router) {
	api.HandleFunc("/reports/daily", handlers.DailyReport).Methods("GET")
	api.HandleFunc("/reports/monthly", handlers.MonthlyReport).Methods("GET")
	api.HandleFunc("/reports/project/{code}", handlers.ProjectReport).Methods("GET")
	api.HandleFunc("/reports/export", handlers.ExportDispatchLedger).Methods("GET")
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
