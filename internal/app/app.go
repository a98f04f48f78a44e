package app

import (
	"context"
	"database/sql"
	"fmt"
	"natal-chart-service/internal/adapters/ephemeris"
	"natal-chart-service/internal/adapters/houses"
	"natal-chart-service/internal/adapters/repositories"
	"natal-chart-service/internal/config"
	"natal-chart-service/internal/platform/db"
	"natal-chart-service/internal/platform/logger"
	"natal-chart-service/internal/ports"
	"natal-chart-service/internal/services"
)

// App holds the wired chart engine and the resources behind it.
// It is shared by the HTTP server and the CLI.
type App struct {
	Engine *services.ChartEngine
	DB     *sql.DB
}

// Close releases the database pool, if one was opened.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// Build wires concrete adapters behind the engine's ports according to cfg.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	positions, err := NewPositionProvider(cfg.Ephemeris, log)
	if err != nil {
		return nil, fmt.Errorf("build app: %w", err)
	}

	opts := []services.EngineOption{services.WithLogger(log)}

	if cfg.AspectsPath != "" {
		table, err := config.LoadAspectTable(cfg.AspectsPath)
		if err != nil {
			return nil, fmt.Errorf("build app: %w", err)
		}
		log.WithField("path", cfg.AspectsPath).Infof("loaded %d aspect definitions", len(table))
		opts = append(opts, services.WithAspectTable(table))
	}

	a := &App{}

	if cfg.DatabaseURL != "" {
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("build app: %w", err)
		}
		a.DB = conn

		resolver, err := LoadLocationResolver(ctx, repositories.NewPostgresCityRepository(conn, log), log)
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("build app: %w", err)
		}
		opts = append(opts, services.WithLocationResolver(resolver))
	}

	engine, err := services.NewChartEngine(positions, houses.NewPlacidus(), opts...)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("build app: %w", err)
	}
	a.Engine = engine

	log.WithFields(map[string]any{
		"ephemeris":    cfg.Ephemeris.Backend,
		"house_system": engine.HouseSystem(),
		"cities":       len(engine.Locations().Cities()),
	}).Info("chart engine ready")

	return a, nil
}

// NewPositionProvider selects the ephemeris backend.
func NewPositionProvider(cfg config.EphemerisConfig, log *logger.Logger) (ports.PositionProvider, error) {
	switch cfg.Backend {
	case config.BackendAnalytic, "":
		return ephemeris.NewAnalytic(), nil
	case config.BackendRemote:
		p, err := ephemeris.NewRemoteProvider(cfg.URL, cfg.Timeout, ephemeris.WithRemoteLogger(log))
		if err != nil {
			return nil, fmt.Errorf("position provider: %w", err)
		}
		return p, nil
	case config.BackendDemo:
		log.Warn("EPHEMERIS_BACKEND=demo: serving fixed placeholder positions, charts are NOT astronomically valid")
		return ephemeris.NewDemoProvider(), nil
	default:
		return nil, fmt.Errorf("position provider: unknown backend %q", cfg.Backend)
	}
}

// LoadLocationResolver builds the city table from a repository. An empty
// repository keeps the built-in table so lookups still resolve.
func LoadLocationResolver(ctx context.Context, repo ports.CityRepository, log *logger.Logger) (*services.LocationResolver, error) {
	cities, err := repo.ListCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cities: %w", err)
	}

	if len(cities) == 0 {
		log.Warn("city table is empty, using built-in cities")
		cities = services.DefaultCities()
	}

	return services.NewLocationResolver(cities), nil
}

var (
	_ ports.CityRepository   = (*repositories.PostgresCityRepository)(nil)
	_ ports.PositionProvider = (*ephemeris.Analytic)(nil)
	_ ports.PositionProvider = (*ephemeris.RemoteProvider)(nil)
	_ ports.PositionProvider = (*ephemeris.StaticProvider)(nil)
	_ ports.HouseSystem      = (*houses.Placidus)(nil)
)
