package ports

import (
	"context"
	"natal-chart-service/internal/domain"
)

// Contract for an ephemeris: where a body sits at an instant.
type PositionProvider interface {
	// Return the geocentric position of body at Julian Day jd (UT).
	// Implementations report failures wrapping domain.ErrPositionUnavailable.
	Position(ctx context.Context, jd float64, body domain.Body) (domain.Position, error)
}
