package ports

import (
	"context"
	"natal-chart-service/internal/domain"
)

// Contract for a quadrant house system.
type HouseSystem interface {
	// Name identifies the system in logs and responses (e.g. "Placidus").
	Name() string
	// Return the twelve cusps plus Ascendant and Midheaven for an instant and place.
	// Undefined geometry is reported wrapping domain.ErrUndefinedHouseGeometry.
	Cusps(ctx context.Context, jd float64, lat float64, lon float64) (domain.HouseFrame, error)
}
