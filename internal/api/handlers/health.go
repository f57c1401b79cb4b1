package handlers

import "net/http"

// Health provides a minimal liveness check endpoint.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, nil, http.StatusOK, map[string]string{"status": "ok"})
}
