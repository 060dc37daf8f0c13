package main

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// getTenantIDFromRequest extracts the tenant from request headers. The
// gateway in front of this service resolves authentication and stamps
// X-Tenant-ID; a development default keeps local usage simple.
func getTenantIDFromRequest(r *http.Request) string {
	if tenant := r.Header.Get("X-Tenant-ID"); tenant != "" {
		return tenant
	}
	return "default"
}

// newRequestID tags mutation log entries so one editor action can be traced
// through load, apply, and save.
func newRequestID() string {
	return uuid.NewString()
}
