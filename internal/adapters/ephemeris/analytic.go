package ephemeris

import (
	"context"
	"fmt"
	"math"
	"natal-chart-service/internal/domain"
)

// speedStep is the half-width, in days, of the central difference used for speeds.
const speedStep = 0.01

// Analytic implements PositionProvider with an in-process planetary theory:
// Keplerian elements of date plus the dominant perturbation terms for the
// Moon, Jupiter, Saturn and Uranus, and a fitted series for Pluto.
//
// Longitudes are geocentric, referred to the mean ecliptic and equinox of
// date, and typically good to a few arc-minutes over 1900–2100. Universal
// Time is used in place of dynamical time.
//
// The provider is stateless and safe for concurrent use.
type Analytic struct{}

func NewAnalytic() *Analytic {
	return &Analytic{}
}

func (a *Analytic) Position(ctx context.Context, jd float64, body domain.Body) (domain.Position, error) {
	if err := ctx.Err(); err != nil {
		return domain.Position{}, fmt.Errorf("analytic ephemeris: %w: %w", domain.ErrPositionUnavailable, err)
	}
	if math.IsNaN(jd) || math.IsInf(jd, 0) {
		return domain.Position{}, fmt.Errorf("analytic ephemeris: jd %v: %w", jd, domain.ErrPositionUnavailable)
	}
	if !body.Valid() {
		return domain.Position{}, fmt.Errorf("analytic ephemeris: unknown body %q: %w", body, domain.ErrPositionUnavailable)
	}

	pos := geocentric(body, jd)

	before := geocentric(body, jd-speedStep)
	after := geocentric(body, jd+speedStep)
	speed := signedDelta(before.lon, after.lon) / (2 * speedStep)

	out := domain.Position{
		Longitude:      pos.lon,
		Latitude:       pos.lat,
		Distance:       pos.r,
		SpeedLongitude: speed,
	}
	if math.IsNaN(out.Longitude) || math.IsNaN(out.Latitude) || math.IsNaN(out.Distance) {
		return domain.Position{}, fmt.Errorf("analytic ephemeris: %s at jd %v: %w", body, jd, domain.ErrPositionUnavailable)
	}

	return out, nil
}

// geocentric returns the ecliptic position of date seen from the Earth.
// Distances are in AU.
func geocentric(body domain.Body, jd float64) spherical {
	d := jd - elementsEpochJD

	sun := sunOrbit(d)
	sunPos := sun.position()

	switch body {
	case domain.Sun:
		return sunPos
	case domain.Moon:
		moon := moonOrbit(d)
		pos := moonPerturbations(moon.position(), moon, sun)
		pos.r /= earthRadiiPerAU
		return pos
	}

	var helio spherical
	if body == domain.Pluto {
		helio = plutoPosition(d)
	} else {
		helio = giantPerturbations(body, planetOrbits[body](d).position(), d)
	}

	// Earth sits opposite the geocentric Sun, so adding the Sun's vector
	// moves the origin from the Sun to the Earth.
	h := helio.vector()
	s := sunPos.vector()

	return vector{x: h.x + s.x, y: h.y + s.y, z: h.z}.spherical()
}

// signedDelta returns to-from folded into (-180, 180].
func signedDelta(from, to float64) float64 {
	diff := math.Mod(to-from, 360)
	if diff > 180 {
		diff -= 360
	} else if diff <= -180 {
		diff += 360
	}
	return diff
}
