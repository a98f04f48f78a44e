package ephemeris

import (
	"context"
	"math"
	"natal-chart-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	j2000    = 2451545.0
	june1990 = 2448058.1041667 // 1990-06-15 14:30 UT
)

func TestAnalyticKnownPositionsAtJ2000(t *testing.T) {
	a := NewAnalytic()
	ctx := context.Background()

	sun, err := a.Position(ctx, j2000, domain.Sun)
	require.NoError(t, err)
	assert.InDelta(t, 280.37, sun.Longitude, 0.05)
	assert.InDelta(t, 0.983, sun.Distance, 0.002)

	moon, err := a.Position(ctx, j2000, domain.Moon)
	require.NoError(t, err)
	assert.InDelta(t, 223.3, moon.Longitude, 0.5)
}

func TestAnalyticSignsOnSampleDate(t *testing.T) {
	a := NewAnalytic()

	want := map[domain.Body]domain.Sign{
		domain.Sun:     domain.Gemini,
		domain.Venus:   domain.Taurus,
		domain.Mars:    domain.Aries,
		domain.Jupiter: domain.Cancer,
		domain.Saturn:  domain.Capricorn,
		domain.Uranus:  domain.Capricorn,
		domain.Neptune: domain.Capricorn,
		domain.Pluto:   domain.Scorpio,
	}

	for body, sign := range want {
		pos, err := a.Position(context.Background(), june1990, body)
		require.NoError(t, err, body)
		assert.Equal(t, sign, domain.SignOf(pos.Longitude), "%s at %.2f", body, pos.Longitude)
	}
}

func TestAnalyticSpeeds(t *testing.T) {
	a := NewAnalytic()
	ctx := context.Background()

	sun, err := a.Position(ctx, june1990, domain.Sun)
	require.NoError(t, err)
	assert.Greater(t, sun.SpeedLongitude, 0.95)
	assert.Less(t, sun.SpeedLongitude, 1.03)

	moon, err := a.Position(ctx, june1990, domain.Moon)
	require.NoError(t, err)
	assert.Greater(t, moon.SpeedLongitude, 11.0)
	assert.Less(t, moon.SpeedLongitude, 16.0)

	// Saturn was retrograde from April to August 1990.
	saturn, err := a.Position(ctx, june1990, domain.Saturn)
	require.NoError(t, err)
	assert.Less(t, saturn.SpeedLongitude, 0.0)
}

func TestAnalyticLongitudesInRange(t *testing.T) {
	a := NewAnalytic()

	for _, jd := range []float64{2415020.5, j2000, june1990, 2488069.5} {
		for _, body := range domain.Bodies() {
			pos, err := a.Position(context.Background(), jd, body)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, pos.Longitude, 0.0)
			assert.Less(t, pos.Longitude, 360.0)
		}
	}
}

func TestAnalyticRejectsBadInput(t *testing.T) {
	a := NewAnalytic()

	_, err := a.Position(context.Background(), math.NaN(), domain.Sun)
	assert.ErrorIs(t, err, domain.ErrPositionUnavailable)

	_, err = a.Position(context.Background(), j2000, domain.Body("Chiron"))
	assert.ErrorIs(t, err, domain.ErrPositionUnavailable)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = a.Position(ctx, j2000, domain.Sun)
	assert.ErrorIs(t, err, domain.ErrPositionUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSignedDelta(t *testing.T) {
	assert.InDelta(t, 2.0, signedDelta(359, 1), 1e-9)
	assert.InDelta(t, -2.0, signedDelta(1, 359), 1e-9)
	assert.InDelta(t, 180.0, signedDelta(0, 180), 1e-9)
}
