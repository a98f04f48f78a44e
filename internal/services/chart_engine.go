package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"natal-chart-service/internal/domain"
	"natal-chart-service/internal/platform/logger"
	"natal-chart-service/internal/platform/metrics"
	"natal-chart-service/internal/platform/obs"
	"natal-chart-service/internal/ports"
	"time"
)

// ChartEngine turns birth data into a natal chart.
//
// Its lookup tables are fixed at construction, so one engine may serve
// concurrent requests. The engine never retries and never returns a
// partial chart: any failing step fails the whole computation.
type ChartEngine struct {
	positions ports.PositionProvider
	houses    ports.HouseSystem
	locations *LocationResolver
	aspects   []domain.AspectDefinition
	log       *logger.Logger
}

type EngineOption func(*ChartEngine)

// WithLocationResolver replaces the built-in city table.
func WithLocationResolver(r *LocationResolver) EngineOption {
	return func(e *ChartEngine) { e.locations = r }
}

// WithAspectTable replaces the default orb policy. The table is copied.
func WithAspectTable(table []domain.AspectDefinition) EngineOption {
	return func(e *ChartEngine) {
		e.aspects = append([]domain.AspectDefinition(nil), table...)
	}
}

func WithLogger(l *logger.Logger) EngineOption {
	return func(e *ChartEngine) { e.log = l }
}

func NewChartEngine(
	positions ports.PositionProvider,
	houses ports.HouseSystem,
	opts ...EngineOption,
) (*ChartEngine, error) {
	if positions == nil {
		return nil, errors.New("new chart engine: position provider must be non-nil")
	}
	if houses == nil {
		return nil, errors.New("new chart engine: house system must be non-nil")
	}

	e := &ChartEngine{
		positions: positions,
		houses:    houses,
		locations: NewLocationResolver(DefaultCities()),
		aspects:   domain.DefaultAspectTable(),
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.locations == nil {
		return nil, errors.New("new chart engine: location resolver must be non-nil")
	}
	if err := domain.ValidateAspectTable(e.aspects); err != nil {
		return nil, fmt.Errorf("new chart engine: %w", err)
	}

	return e, nil
}

// Locations exposes the resolver the engine was built with.
func (e *ChartEngine) Locations() *LocationResolver { return e.locations }

// HouseSystem names the configured house system.
func (e *ChartEngine) HouseSystem() string { return e.houses.Name() }

// ComputeChart resolves the location, converts the time and builds the chart.
// An unknown city is not an error: the default coordinate is used and the
// fallback is logged.
func (e *ChartEngine) ComputeChart(ctx context.Context, in domain.BirthInput) (_ *domain.ChartResult, err error) {
	defer obs.Time(ctx, e.log, "chart.ComputeChart")(&err)
	start := time.Now()
	defer func() { metrics.RecordChart(resultLabel(err), time.Since(start)) }()

	moment, err := ParseBirthMoment(in.Date, in.Time)
	if err != nil {
		return nil, fmt.Errorf("compute chart: %w", err)
	}

	coord, found := e.locations.Resolve(in.City, in.Country)
	if !found {
		metrics.RecordLocationFallback()
		e.log.WithFields(map[string]any{
			"req_id":  obs.RequestID(ctx),
			"city":    in.City,
			"country": in.Country,
			"lat":     coord.Lat,
			"lon":     coord.Lon,
		}).Warn("location not in city table, using default coordinate")
	}

	chart, err := e.Compute(ctx, moment, coord)
	if err != nil {
		return nil, fmt.Errorf("compute chart: %w", err)
	}
	return chart, nil
}

// Compute builds a chart for a moment at known coordinates. Houses are
// computed first because body placement needs the cusps.
func (e *ChartEngine) Compute(
	ctx context.Context,
	moment domain.BirthMoment,
	coord domain.GeoCoordinate,
) (*domain.ChartResult, error) {
	if !validCoordinate(coord) {
		return nil, fmt.Errorf("coordinate lat=%v lon=%v: %w", coord.Lat, coord.Lon, domain.ErrInvalidInput)
	}

	jd := JulianDay(moment)

	frame, err := e.houses.Cusps(ctx, jd, coord.Lat, coord.Lon)
	if err != nil {
		return nil, fmt.Errorf("%s houses at lat=%.4f: %w", e.houses.Name(), coord.Lat, err)
	}
	frame, err = normalizeFrame(frame)
	if err != nil {
		return nil, fmt.Errorf("%s houses: %w", e.houses.Name(), err)
	}

	houses := make([]domain.HouseCusp, 0, 12)
	for i, lon := range frame.Cusps {
		houses = append(houses, domain.HouseCusp{
			Number:    i + 1,
			Longitude: lon,
			Sign:      domain.SignOf(lon),
		})
	}

	catalog := domain.Bodies()
	bodies := make([]domain.CelestialBody, 0, len(catalog))
	for _, b := range catalog {
		pos, err := e.positions.Position(ctx, jd, b)
		if err != nil {
			if !errors.Is(err, domain.ErrPositionUnavailable) {
				err = fmt.Errorf("%w: %w", domain.ErrPositionUnavailable, err)
			}
			return nil, fmt.Errorf("position of %s: %w", b, err)
		}
		if math.IsNaN(pos.Longitude) || math.IsInf(pos.Longitude, 0) {
			return nil, fmt.Errorf("position of %s: non-finite longitude: %w", b, domain.ErrPositionUnavailable)
		}

		lon := domain.NormalizeDegrees(pos.Longitude)
		sign, degree, minute := domain.SignComponents(lon)

		house, err := HouseFor(lon, frame.Cusps)
		if err != nil {
			// Unreachable for a validated frame; keep the chart but make it loud.
			e.log.WithError(err).WithFields(map[string]any{
				"req_id": obs.RequestID(ctx),
				"body":   string(b),
				"cusps":  frame.Cusps,
			}).Error("house placement found no arc")
		}

		bodies = append(bodies, domain.CelestialBody{
			Name:      b,
			Longitude: lon,
			Sign:      sign,
			Degree:    degree,
			Minute:    minute,
			House:     house,
		})
	}

	points := []domain.AngularPoint{
		angularPoint(domain.Ascendant, frame.Ascendant),
		angularPoint(domain.Descendant, frame.Descendant()),
		angularPoint(domain.Midheaven, frame.Midheaven),
		angularPoint(domain.ImumCoeli, frame.ImumCoeli()),
	}

	objects := make([]NamedLongitude, 0, len(bodies)+len(points))
	for _, b := range bodies {
		objects = append(objects, NamedLongitude{Name: string(b.Name), Longitude: b.Longitude})
	}
	for _, p := range points {
		objects = append(objects, NamedLongitude{Name: p.Name, Longitude: p.Longitude})
	}

	return &domain.ChartResult{
		Bodies:  bodies,
		Points:  points,
		Houses:  houses,
		Aspects: DetectAspects(objects, e.aspects),
	}, nil
}

func angularPoint(name string, lon float64) domain.AngularPoint {
	sign, degree, minute := domain.SignComponents(lon)
	return domain.AngularPoint{
		Name:      name,
		Longitude: lon,
		Sign:      sign,
		Degree:    degree,
		Minute:    minute,
	}
}

// normalizeFrame folds provider output into [0,360) and rejects frames that
// do not partition the circle.
func normalizeFrame(f domain.HouseFrame) (domain.HouseFrame, error) {
	values := append(f.Cusps[:], f.Ascendant, f.Midheaven)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return domain.HouseFrame{}, fmt.Errorf("non-finite cusp: %w", domain.ErrUndefinedHouseGeometry)
		}
	}

	out := domain.HouseFrame{
		Ascendant: domain.NormalizeDegrees(f.Ascendant),
		Midheaven: domain.NormalizeDegrees(f.Midheaven),
	}
	for i, c := range f.Cusps {
		out.Cusps[i] = domain.NormalizeDegrees(c)
	}

	if !CuspsOrdered(out.Cusps) {
		return domain.HouseFrame{}, fmt.Errorf("cusps %v out of order: %w", out.Cusps, domain.ErrInconsistentCusps)
	}

	return out, nil
}

func validCoordinate(c domain.GeoCoordinate) bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, domain.ErrInvalidInput):
		return metrics.ResultInvalidInput
	case errors.Is(err, domain.ErrUndefinedHouseGeometry):
		return metrics.ResultUndefinedHouses
	case errors.Is(err, domain.ErrPositionUnavailable):
		return metrics.ResultProviderError
	default:
		return metrics.ResultError
	}
}
