package houses

import (
	"context"
	"fmt"
	"math"
	"natal-chart-service/internal/domain"
)

const (
	maxIterations = 100
	tolerance     = 1e-9
)

// Placidus trisects the time each ecliptic degree takes to travel from the
// horizon to the meridian. It is undefined inside the polar circles, where
// parts of the ecliptic never rise or set.
type Placidus struct{}

func NewPlacidus() *Placidus {
	return &Placidus{}
}

func (p *Placidus) Name() string { return "Placidus" }

func (p *Placidus) Cusps(ctx context.Context, jd float64, lat float64, lon float64) (domain.HouseFrame, error) {
	if err := ctx.Err(); err != nil {
		return domain.HouseFrame{}, err
	}
	for _, v := range []float64{jd, lat, lon} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return domain.HouseFrame{}, fmt.Errorf("placidus: non-finite input jd=%v lat=%v lon=%v: %w", jd, lat, lon, domain.ErrInvalidInput)
		}
	}

	eps := meanObliquity(jd)
	if math.Abs(lat) >= 90-eps {
		return domain.HouseFrame{}, fmt.Errorf("placidus: latitude %.4f inside polar circle (%.4f): %w", lat, 90-eps, domain.ErrUndefinedHouseGeometry)
	}

	ramc := domain.NormalizeDegrees(meanSiderealTime(jd) + lon)

	mc := eclipticOfRA(ramc, eps)
	asc := atan2Deg(cosDeg(ramc), -(sinDeg(ramc)*cosDeg(eps) + tanDeg(lat)*sinDeg(eps)))

	h11, err := semiArcCusp(ramc, lat, eps, 1.0/3, true)
	if err != nil {
		return domain.HouseFrame{}, fmt.Errorf("placidus: house 11: %w", err)
	}
	h12, err := semiArcCusp(ramc, lat, eps, 2.0/3, true)
	if err != nil {
		return domain.HouseFrame{}, fmt.Errorf("placidus: house 12: %w", err)
	}
	h2, err := semiArcCusp(ramc, lat, eps, 2.0/3, false)
	if err != nil {
		return domain.HouseFrame{}, fmt.Errorf("placidus: house 2: %w", err)
	}
	h3, err := semiArcCusp(ramc, lat, eps, 1.0/3, false)
	if err != nil {
		return domain.HouseFrame{}, fmt.Errorf("placidus: house 3: %w", err)
	}

	opp := func(x float64) float64 { return domain.NormalizeDegrees(x + 180) }

	return domain.HouseFrame{
		Cusps: [12]float64{
			asc, h2, h3, opp(mc),
			opp(h11), opp(h12), opp(asc), opp(h2),
			opp(h3), mc, h11, h12,
		},
		Ascendant: asc,
		Midheaven: mc,
	}, nil
}

// semiArcCusp finds the ecliptic point whose right ascension sits the given
// fraction of its own semi-arc away from the meridian. Diurnal cusps (11, 12)
// are measured east of the upper meridian; nocturnal ones (2, 3) west of the
// lower meridian, using the nocturnal semi-arc. The declination depends on
// the answer, so iterate until it settles.
func semiArcCusp(ramc, lat, eps, fraction float64, diurnal bool) (float64, error) {
	tanLat := tanDeg(lat)

	sda := 90.0
	var lon float64
	for i := 0; i < maxIterations; i++ {
		var ra float64
		if diurnal {
			ra = ramc + fraction*sda
		} else {
			ra = ramc + 180 - fraction*(180-sda)
		}

		lon = eclipticOfRA(ra, eps)

		x := tanLat * tanDeg(declination(lon, eps))
		if math.Abs(x) > 1 {
			return 0, fmt.Errorf("semi-arc undefined at lat %.4f: %w", lat, domain.ErrUndefinedHouseGeometry)
		}

		next := 90 + math.Asin(x)*radToDeg
		if math.Abs(next-sda) < tolerance {
			return lon, nil
		}
		sda = next
	}

	return 0, fmt.Errorf("semi-arc did not converge at lat %.4f: %w", lat, domain.ErrUndefinedHouseGeometry)
}
