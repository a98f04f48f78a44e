package api

import (
	"encoding/json"
	"natal-chart-service/internal/adapters/ephemeris"
	"natal-chart-service/internal/adapters/houses"
	"natal-chart-service/internal/api/dto"
	"natal-chart-service/internal/domain"
	"natal-chart-service/internal/platform/logger"
	"natal-chart-service/internal/services"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, burst int) http.Handler {
	t.Helper()
	engine, err := services.NewChartEngine(ephemeris.NewAnalytic(), houses.NewPlacidus())
	require.NoError(t, err)
	return NewRouter(engine, RouterConfig{RateLimitRPS: 0.001, RateLimitBurst: burst}, logger.Nop())
}

func do(h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(newTestRouter(t, 10), http.MethodGet, "/health", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","house_system":"Placidus"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDIsPropagated(t *testing.T) {
	rec := do(newTestRouter(t, 10), http.MethodGet, "/health", "", map[string]string{"X-Request-ID": "abc-123"})
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestChartEndToEnd(t *testing.T) {
	body := `{"date":"1990-06-15","time":"14:30","country":"USA","city":"New York"}`
	rec := do(newTestRouter(t, 10), http.MethodPost, "/chart", body, map[string]string{"Content-Type": "application/json"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.ChartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	require.Len(t, res.Planets, 10)
	require.Len(t, res.Points, 4)
	require.Len(t, res.Houses, 12)
	assert.Equal(t, "Sun", res.Planets[0].Name)
	assert.Equal(t, "Gemini", res.Planets[0].Sign)
	assert.Equal(t, "Ascendant", res.Points[0].Name)
	assert.Equal(t, "Leo", res.Points[0].Sign)

	kinds := map[string]bool{"Conjunction": true, "Sextile": true, "Square": true, "Trine": true, "Opposition": true}
	for _, a := range res.Aspects {
		assert.True(t, kinds[a.AspectType], a.AspectType)
	}
}

func TestChartPolarLatitudeIs422(t *testing.T) {
	tromso := domain.City{Name: "Tromso", Country: "Norway", Coordinate: domain.GeoCoordinate{Lat: 69.6492, Lon: 18.9553}}
	engine, err := services.NewChartEngine(ephemeris.NewAnalytic(), houses.NewPlacidus(),
		services.WithLocationResolver(services.NewLocationResolver([]domain.City{tromso})),
	)
	require.NoError(t, err)
	h := NewRouter(engine, RouterConfig{RateLimitRPS: 1, RateLimitBurst: 5}, logger.Nop())

	body := `{"date":"1990-06-15","time":"14:30","country":"Norway","city":"Tromso"}`
	rec := do(h, http.MethodPost, "/chart", body, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestChartMethodNotAllowed(t *testing.T) {
	rec := do(newTestRouter(t, 10), http.MethodGet, "/chart", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestChartRateLimited(t *testing.T) {
	h := newTestRouter(t, 1)
	body := `{"date":"1990-06-15","time":"14:30","country":"UK","city":"London"}`

	first := do(h, http.MethodPost, "/chart", body, nil)
	second := do(h, http.MethodPost, "/chart", body, nil)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
}

func TestCORSPreflight(t *testing.T) {
	rec := do(newTestRouter(t, 10), http.MethodOptions, "/chart", "", map[string]string{
		"Origin":                        "http://localhost:5173",
		"Access-Control-Request-Method": "POST",
	})

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestCities(t *testing.T) {
	rec := do(newTestRouter(t, 10), http.MethodGet, "/cities", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.ListCityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Len(t, res.Cities, len(services.DefaultCities()))
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(t, 10)
	do(h, http.MethodGet, "/health", "", nil)

	rec := do(h, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestRecoveryMiddleware(t *testing.T) {
	h := recoveryMiddleware(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}))

	rec := do(h, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}
