package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseDateParam parses an ISO date query parameter; empty input returns a
// zero time without error.
func parseDateParam(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", raw)
}

func activeOnly(r *http.Request) bool {
	// Inactive records are only listed when explicitly requested.
	return r.URL.Query().Get("active_only") != "false"
}
