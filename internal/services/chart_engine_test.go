package services

import (
	"context"
	"errors"
	"natal-chart-service/internal/adapters/ephemeris"
	"natal-chart-service/internal/adapters/houses"
	"natal-chart-service/internal/domain"
	"natal-chart-service/internal/platform/metrics"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedHouses returns the same frame for every instant.
type fixedHouses struct {
	frame domain.HouseFrame
	err   error
	calls int
}

func (f *fixedHouses) Name() string { return "Fixed" }

func (f *fixedHouses) Cusps(ctx context.Context, jd float64, lat float64, lon float64) (domain.HouseFrame, error) {
	f.calls++
	return f.frame, f.err
}

// equalHousesFrom builds 30 degree houses starting at the Ascendant.
func equalHousesFrom(asc float64) *fixedHouses {
	var f domain.HouseFrame
	for i := range f.Cusps {
		f.Cusps[i] = domain.NormalizeDegrees(asc + float64(30*i))
	}
	f.Ascendant = asc
	f.Midheaven = f.Cusps[9]
	return &fixedHouses{frame: f}
}

type failingPositions struct{ err error }

func (f failingPositions) Position(ctx context.Context, jd float64, body domain.Body) (domain.Position, error) {
	return domain.Position{}, f.err
}

var newYork = domain.BirthInput{Date: "1990-06-15", Time: "14:30", City: "New York", Country: "USA"}

func newTestEngine(t *testing.T, h *fixedHouses) *ChartEngine {
	t.Helper()
	e, err := NewChartEngine(ephemeris.NewDemoProvider(), h)
	require.NoError(t, err)
	return e
}

func TestComputeChartStructure(t *testing.T) {
	h := equalHousesFrom(100)
	chart, err := newTestEngine(t, h).ComputeChart(context.Background(), newYork)
	require.NoError(t, err)

	require.Len(t, chart.Bodies, 10)
	require.Len(t, chart.Points, 4)
	require.Len(t, chart.Houses, 12)

	for i, b := range chart.Bodies {
		assert.Equal(t, domain.Bodies()[i], b.Name)
		assert.GreaterOrEqual(t, b.House, 1)
		assert.LessOrEqual(t, b.House, 12)
		assert.GreaterOrEqual(t, b.Degree, 0)
		assert.LessOrEqual(t, b.Degree, 29)
		assert.GreaterOrEqual(t, b.Minute, 0)
		assert.LessOrEqual(t, b.Minute, 59)
	}
	for i, c := range chart.Houses {
		assert.Equal(t, i+1, c.Number)
		assert.Equal(t, domain.SignOf(c.Longitude), c.Sign)
	}

	names := []string{}
	for _, p := range chart.Points {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{domain.Ascendant, domain.Descendant, domain.Midheaven, domain.ImumCoeli}, names)
}

func TestComputeChartPlacements(t *testing.T) {
	chart, err := newTestEngine(t, equalHousesFrom(100)).ComputeChart(context.Background(), newYork)
	require.NoError(t, err)

	want := map[domain.Body]struct {
		sign   domain.Sign
		degree int
		minute int
		house  int
	}{
		domain.Sun:     {domain.Aries, 15, 45, 10},
		domain.Venus:   {domain.Gemini, 18, 12, 12},
		domain.Jupiter: {domain.Leo, 28, 24, 2},
		domain.Uranus:  {domain.Capricorn, 7, 18, 6},
		domain.Pluto:   {domain.Scorpio, 15, 48, 5},
	}

	for _, b := range chart.Bodies {
		w, ok := want[b.Name]
		if !ok {
			continue
		}
		assert.Equal(t, w.sign, b.Sign, b.Name)
		assert.Equal(t, w.degree, b.Degree, b.Name)
		assert.Equal(t, w.minute, b.Minute, b.Name)
		assert.Equal(t, w.house, b.House, b.Name)
	}
}

func TestComputeChartDerivedAngles(t *testing.T) {
	chart, err := newTestEngine(t, equalHousesFrom(100)).ComputeChart(context.Background(), newYork)
	require.NoError(t, err)

	asc, dsc, mc, ic := chart.Points[0], chart.Points[1], chart.Points[2], chart.Points[3]
	assert.InDelta(t, domain.NormalizeDegrees(asc.Longitude+180), dsc.Longitude, 1e-9)
	assert.InDelta(t, domain.NormalizeDegrees(mc.Longitude+180), ic.Longitude, 1e-9)
	assert.Equal(t, domain.Cancer, asc.Sign)
	assert.Equal(t, domain.Capricorn, dsc.Sign)
}

func TestComputeChartAspects(t *testing.T) {
	chart, err := newTestEngine(t, equalHousesFrom(100)).ComputeChart(context.Background(), newYork)
	require.NoError(t, err)

	assert.Len(t, chart.Aspects, 45)

	table := map[domain.AspectKind]float64{}
	for _, def := range domain.DefaultAspectTable() {
		table[def.Kind] = def.Tolerance
	}
	for _, a := range chart.Aspects {
		tol, ok := table[a.Kind]
		require.True(t, ok, "unknown kind %q", a.Kind)
		assert.GreaterOrEqual(t, a.Orb, 0.0)
		assert.LessOrEqual(t, a.Orb, tol)
		assert.NotEqual(t, a.First, a.Second)
	}

	assert.Contains(t, chart.Aspects, domain.Aspect{First: "Ascendant", Second: "Descendant", Kind: domain.Opposition, Orb: 0})

	var sunVenus *domain.Aspect
	for i := range chart.Aspects {
		if chart.Aspects[i].First == "Sun" && chart.Aspects[i].Second == "Venus" {
			sunVenus = &chart.Aspects[i]
		}
	}
	require.NotNil(t, sunVenus)
	assert.Equal(t, domain.Sextile, sunVenus.Kind)
	assert.InDelta(t, 2.45, sunVenus.Orb, 1e-9)
}

func TestComputeChartCustomAspectTable(t *testing.T) {
	e, err := NewChartEngine(ephemeris.NewDemoProvider(), equalHousesFrom(100),
		WithAspectTable([]domain.AspectDefinition{{Kind: domain.Opposition, Angle: 180, Tolerance: 0.1}}),
	)
	require.NoError(t, err)

	chart, err := e.ComputeChart(context.Background(), newYork)
	require.NoError(t, err)

	// only the exact angle oppositions survive
	assert.Len(t, chart.Aspects, 2)
	for _, a := range chart.Aspects {
		assert.Equal(t, domain.Opposition, a.Kind)
	}
}

func TestComputeChartUnknownCityFallsBack(t *testing.T) {
	before := testutil.ToFloat64(metrics.LocationFallbackTotal)

	in := newYork
	in.City, in.Country = "Nowhereville", "Atlantis"

	chart, err := newTestEngine(t, equalHousesFrom(100)).ComputeChart(context.Background(), in)
	require.NoError(t, err)
	assert.Len(t, chart.Bodies, 10)

	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.LocationFallbackTotal)-before, 1e-9)
}

func TestComputeChartInvalidInput(t *testing.T) {
	h := equalHousesFrom(100)
	e := newTestEngine(t, h)

	for _, in := range []domain.BirthInput{
		{Date: "2023-02-30", Time: "12:00", City: "London", Country: "UK"},
		{Date: "1990-06-15", Time: "24:00", City: "London", Country: "UK"},
	} {
		chart, err := e.ComputeChart(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Nil(t, chart)
	}
	assert.Zero(t, h.calls, "houses must not be computed for invalid input")
}

func TestComputeChartProviderFailure(t *testing.T) {
	e, err := NewChartEngine(failingPositions{err: errors.New("ephemeris offline")}, equalHousesFrom(100))
	require.NoError(t, err)

	chart, err := e.ComputeChart(context.Background(), newYork)
	assert.ErrorIs(t, err, domain.ErrPositionUnavailable)
	assert.ErrorContains(t, err, "ephemeris offline")
	assert.Nil(t, chart)
}

func TestComputeChartMissingBodyFailsWholeChart(t *testing.T) {
	partial := ephemeris.NewStaticProvider([]ephemeris.StaticPosition{
		{Body: domain.Sun, Longitude: 10},
		{Body: domain.Moon, Longitude: 20},
	})
	e, err := NewChartEngine(partial, equalHousesFrom(100))
	require.NoError(t, err)

	chart, err := e.ComputeChart(context.Background(), newYork)
	assert.ErrorIs(t, err, domain.ErrPositionUnavailable)
	assert.Nil(t, chart)
}

func TestComputeChartUndefinedHouses(t *testing.T) {
	h := &fixedHouses{err: domain.ErrUndefinedHouseGeometry}
	chart, err := newTestEngine(t, h).ComputeChart(context.Background(), newYork)
	assert.ErrorIs(t, err, domain.ErrUndefinedHouseGeometry)
	assert.Nil(t, chart)
}

func TestComputeChartRejectsInconsistentCusps(t *testing.T) {
	h := equalHousesFrom(100)
	h.frame.Cusps[4], h.frame.Cusps[5] = h.frame.Cusps[5], h.frame.Cusps[4]

	chart, err := newTestEngine(t, h).ComputeChart(context.Background(), newYork)
	assert.ErrorIs(t, err, domain.ErrInconsistentCusps)
	assert.Nil(t, chart)
}

func TestComputePolarLatitudeWithPlacidus(t *testing.T) {
	e, err := NewChartEngine(ephemeris.NewAnalytic(), houses.NewPlacidus())
	require.NoError(t, err)

	moment := domain.BirthMoment{Year: 1990, Month: 6, Day: 15, Hour: 14, Minute: 30}
	chart, err := e.Compute(context.Background(), moment, domain.GeoCoordinate{Lat: 69.6492, Lon: 18.9553})
	assert.ErrorIs(t, err, domain.ErrUndefinedHouseGeometry)
	assert.Nil(t, chart)
}

func TestComputeRejectsOutOfRangeCoordinate(t *testing.T) {
	e := newTestEngine(t, equalHousesFrom(100))

	moment := domain.BirthMoment{Year: 1990, Month: 6, Day: 15, Hour: 14, Minute: 30}
	_, err := e.Compute(context.Background(), moment, domain.GeoCoordinate{Lat: 91, Lon: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComputeChartWithAnalyticEphemeris(t *testing.T) {
	e, err := NewChartEngine(ephemeris.NewAnalytic(), houses.NewPlacidus())
	require.NoError(t, err)

	chart, err := e.ComputeChart(context.Background(), newYork)
	require.NoError(t, err)

	assert.Equal(t, domain.Sun, chart.Bodies[0].Name)
	assert.Equal(t, domain.Gemini, chart.Bodies[0].Sign)
	assert.Equal(t, domain.Leo, chart.Points[0].Sign)
	assert.Equal(t, domain.Taurus, chart.Points[2].Sign)
	assert.True(t, CuspsOrdered(func() (c [12]float64) {
		for i, h := range chart.Houses {
			c[i] = h.Longitude
		}
		return c
	}()))
}

func TestNewChartEngineValidates(t *testing.T) {
	_, err := NewChartEngine(nil, equalHousesFrom(0))
	assert.Error(t, err)

	_, err = NewChartEngine(ephemeris.NewDemoProvider(), nil)
	assert.Error(t, err)

	_, err = NewChartEngine(ephemeris.NewDemoProvider(), equalHousesFrom(0), WithAspectTable(nil))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewChartEngine(ephemeris.NewDemoProvider(), equalHousesFrom(0), WithLocationResolver(nil))
	assert.Error(t, err)
}
