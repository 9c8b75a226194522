package handler

import (
	"encoding/json"
	"net/http"

	"medeval/internal/service"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps err to a status. Store failures are logged and
// answered with fallback so internals never reach the client.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error, fallback string) {
	se, ok := service.AsServiceError(err)
	if !ok || se.Code == service.ErrorStore {
		logger.Error(fallback, zap.Error(err))
		writeError(w, http.StatusInternalServerError, fallback)
		return
	}
	writeError(w, statusFor(se.Code), se.Message)
}

func statusFor(code service.ErrorCode) int {
	switch code {
	case service.ErrorValidation:
		return http.StatusBadRequest
	case service.ErrorNotFound:
		return http.StatusNotFound
	case service.ErrorUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
