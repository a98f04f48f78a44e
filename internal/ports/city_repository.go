package ports

import (
	"context"
	"natal-chart-service/internal/domain"
)

// Port: a boundary for loading the city coordinate table from a data source.
type CityRepository interface {
	// Retrieve every known city with its coordinates.
	ListCities(ctx context.Context) ([]domain.City, error)
}
