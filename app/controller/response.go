package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"dropxcult-admin/repository"
)

// writeJSON encodes v with the given status. Encoding happens before the header is
// written, so an unencodable value becomes a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Errorf("❌ Error encoding response: %v", err)
		status = http.StatusInternalServerError
		body = []byte(`{"error":"Failed to encode response"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

// writeJSONError writes {"error": msg}
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeRepositoryError maps repository sentinels to HTTP statuses; anything else is a 500 with fallback
func writeRepositoryError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, repository.ErrInvalidTransition):
		writeJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrProtectedUser):
		writeJSONError(w, http.StatusForbidden, "Cannot delete admin user")
	default:
		writeJSONError(w, http.StatusInternalServerError, fallback)
	}
}
