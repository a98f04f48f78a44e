package api

import (
	"natal-chart-service/internal/adapters/cache"
	"natal-chart-service/internal/api/handlers"
	"natal-chart-service/internal/platform/logger"
	"natal-chart-service/internal/services"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

type RouterConfig struct {
	// Cache is optional; nil disables response caching.
	Cache          *cache.ChartCache
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(engine *services.ChartEngine, cfg RouterConfig, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	healthHandler := &handlers.HealthHandler{Log: log, HouseSystem: engine.HouseSystem()}
	chartHandler := &handlers.ChartHandler{Engine: engine, Cache: cfg.Cache, Log: log}
	cityHandler := &handlers.CityHandler{Locations: engine.Locations(), Log: log}

	r.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	r.HandleFunc("/cities", cityHandler.List).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	r.Handle("/chart", rateLimitMiddleware(limiter)(http.HandlerFunc(chartHandler.Create))).Methods(http.MethodPost)

	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return corsMiddleware(r)
}
