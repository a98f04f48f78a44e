package services

import (
	"fmt"
	"natal-chart-service/internal/domain"
)

// HouseFor returns the house (1..12) whose arc contains longitude.
//
// House i spans [cusps[i], cusps[i+1]) walking forward along the ecliptic,
// and house 12 wraps from cusps[11] back to cusps[0]. An arc whose start is
// numerically greater than its end crosses 0° and is handled as a wrapped span.
// For a consistent cusp array exactly one arc matches. Otherwise house 1
// is returned together with ErrInconsistentCusps.
func HouseFor(longitude float64, cusps [12]float64) (int, error) {
	lon := domain.NormalizeDegrees(longitude)

	for i := 0; i < 12; i++ {
		start := domain.NormalizeDegrees(cusps[i])
		end := domain.NormalizeDegrees(cusps[(i+1)%12])

		if inArc(lon, start, end) {
			return i + 1, nil
		}
	}

	return 1, fmt.Errorf("house for %.6f: %w", lon, domain.ErrInconsistentCusps)
}

// inArc reports whether lon lies in the half-open forward arc [start, end).
func inArc(lon, start, end float64) bool {
	if start <= end {
		return start <= lon && lon < end
	}
	return lon >= start || lon < end
}

// CuspsOrdered reports whether the cusps run forward around the circle in
// house order, crossing 0° at most once.
func CuspsOrdered(cusps [12]float64) bool {
	total := 0.0
	for i := 0; i < 12; i++ {
		arc := domain.NormalizeDegrees(cusps[(i+1)%12] - cusps[i])
		if arc <= 0 {
			return false
		}
		total += arc
	}
	// a consistent partition walks the circle exactly once
	return total > 359.999999 && total < 360.000001
}
