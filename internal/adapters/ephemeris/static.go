package ephemeris

import (
	"context"
	"fmt"
	"natal-chart-service/internal/domain"
)

// Fixed longitude for one body, used by StaticProvider.
type StaticPosition struct {
	Body      domain.Body
	Longitude float64
	Speed     float64
}

// StaticProvider returns the same positions for every instant. It backs
// test fixtures and the explicitly configured demo mode; it is never a
// fallback for a failing ephemeris.
type StaticProvider struct {
	m map[domain.Body]domain.Position
}

func NewStaticProvider(positions []StaticPosition) *StaticProvider {
	m := make(map[domain.Body]domain.Position, len(positions))
	for _, p := range positions {
		m[p.Body] = domain.Position{Longitude: p.Longitude, Distance: 1, SpeedLongitude: p.Speed}
	}
	return &StaticProvider{m: m}
}

// NewDemoProvider serves fixed sample positions for demos and UI work.
func NewDemoProvider() *StaticProvider {
	return NewStaticProvider([]StaticPosition{
		{Body: domain.Sun, Longitude: 15.75, Speed: 0.98},
		{Body: domain.Moon, Longitude: 52.3, Speed: 13.2},
		{Body: domain.Mercury, Longitude: 10.5, Speed: 1.4},
		{Body: domain.Venus, Longitude: 78.2, Speed: 1.2},
		{Body: domain.Mars, Longitude: 95.8, Speed: 0.6},
		{Body: domain.Jupiter, Longitude: 148.4, Speed: 0.1},
		{Body: domain.Saturn, Longitude: 162.1, Speed: -0.05},
		{Body: domain.Uranus, Longitude: 277.3, Speed: -0.03},
		{Body: domain.Neptune, Longitude: 283.9, Speed: -0.02},
		{Body: domain.Pluto, Longitude: 225.8, Speed: -0.01},
	})
}

func (p *StaticProvider) Position(ctx context.Context, jd float64, body domain.Body) (domain.Position, error) {
	pos, ok := p.m[body]
	if !ok {
		return domain.Position{}, fmt.Errorf("static ephemeris: no position for %q: %w", body, domain.ErrPositionUnavailable)
	}

	return pos, nil
}
