package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/secintel/secintel/internal/analytics"
	usecase "github.com/secintel/secintel/internal/usecase/analytics"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	respondJSON(w, status, response)
}

// statusFor maps the service's failure kinds onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidParam):
		return http.StatusBadRequest
	case errors.Is(err, analytics.ErrScanSlotsExhausted),
		errors.Is(err, analytics.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
