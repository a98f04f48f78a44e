package main

import (
	"context"
	"errors"
	"natal-chart-service/internal/adapters/cache"
	"natal-chart-service/internal/api"
	"natal-chart-service/internal/app"
	"natal-chart-service/internal/config"
	"natal-chart-service/internal/platform/logger"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// main is the application composition root.
// It wires concrete adapters (ephemeris, Placidus, Postgres cities) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("error", "json", "unknown").Fatal(err.Error())
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat, cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("startup failed")
	}
	defer a.Close()

	var chartCache *cache.ChartCache
	if cfg.ChartCacheSize > 0 {
		chartCache, err = cache.NewChartCache(cfg.ChartCacheSize)
		if err != nil {
			log.WithError(err).Fatal("startup failed")
		}
	}

	router := api.NewRouter(a.Engine, api.RouterConfig{
		Cache:          chartCache,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}, log)

	// Chart computation is CPU-bound and fast; the remote ephemeris timeout bounds the slow path.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
