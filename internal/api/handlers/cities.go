package handlers

import (
	"natal-chart-service/internal/api/dto"
	"natal-chart-service/internal/platform/logger"
	"natal-chart-service/internal/services"
	"net/http"
)

type CityHandler struct {
	Locations *services.LocationResolver
	Log       *logger.Logger
}

// List returns the city table the location resolver uses.
func (h *CityHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.Log, w, r, http.StatusOK, dto.FromCities(h.Locations.Cities()))
}
