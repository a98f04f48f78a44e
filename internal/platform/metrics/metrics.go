// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Chart results recorded by the engine.
const (
	ResultSuccess         = "success"
	ResultInvalidInput    = "invalid_input"
	ResultUndefinedHouses = "undefined_houses"
	ResultProviderError   = "provider_error"
	ResultError           = "error"
)

var (
	// ChartsComputedTotal counts chart computations by outcome.
	ChartsComputedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "charts_computed_total",
			Help: "Total number of natal chart computations by result",
		},
		[]string{"result"},
	)

	// ChartComputeDuration measures end-to-end engine time.
	ChartComputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chart_compute_duration_seconds",
			Help:    "Natal chart computation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)

	// LocationFallbackTotal counts lookups that fell back to the default coordinate.
	LocationFallbackTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "location_fallback_total",
			Help: "Total number of location lookups resolved to the default coordinate",
		},
	)

	// ChartCacheHitsTotal counts HTTP responses served from the chart cache.
	ChartCacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chart_cache_hits_total",
			Help: "Total number of chart responses served from cache",
		},
	)

	// HTTPRequestsTotal counts HTTP requests by method, route template and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)

func RecordChart(result string, d time.Duration) {
	ChartsComputedTotal.WithLabelValues(result).Inc()
	ChartComputeDuration.Observe(d.Seconds())
}

func RecordLocationFallback() {
	LocationFallbackTotal.Inc()
}

func RecordCacheHit() {
	ChartCacheHitsTotal.Inc()
}

func RecordHTTPRequest(method, path string, status int) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}
