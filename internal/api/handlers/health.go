package handlers

import (
	"natal-chart-service/internal/platform/logger"
	"net/http"
)

type HealthHandler struct {
	Log         *logger.Logger
	HouseSystem string
}

// Health provides a minimal liveness check endpoint.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	res := map[string]string{"status": "ok", "house_system": h.HouseSystem}
	writeJSON(h.Log, w, r, http.StatusOK, res)
}
