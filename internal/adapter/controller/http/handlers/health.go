package handlers

import (
	"net/http"

	"github.com/secintel/secintel/internal/config"
)

// HealthCheck returns a liveness handler for GET /health.
func HealthCheck(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"status":  "healthy",
			"service": "security-intel-api",
			"env":     cfg.App.Env,
		})
	}
}
