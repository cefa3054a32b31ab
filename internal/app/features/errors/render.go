// internal/app/features/errors/render.go
package errors

import (
	"encoding/json"
	"net/http"
)

// JSON writes v with status. Every response of the API goes through here.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Detail writes {"detail": msg} with status.
func Detail(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"detail": msg})
}

func BadRequest(w http.ResponseWriter, msg string) { Detail(w, http.StatusBadRequest, msg) }
func NotFound(w http.ResponseWriter, msg string)   { Detail(w, http.StatusNotFound, msg) }

// Fields writes a 400 carrying per-field validation messages.
func Fields(w http.ResponseWriter, fields map[string]string) {
	JSON(w, http.StatusBadRequest, map[string]any{"detail": "validation failed", "fields": fields})
}
