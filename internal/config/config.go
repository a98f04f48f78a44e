package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Ephemeris backends selectable through EPHEMERIS_BACKEND.
const (
	BackendAnalytic = "analytic"
	BackendRemote   = "remote"
	// BackendDemo serves fixed placeholder positions. It is never chosen implicitly.
	BackendDemo = "demo"
)

// Config holds all runtime configuration. Only Load reads the environment.
type Config struct {
	Port string
	Env  string

	LogLevel  string
	LogFormat string

	// DatabaseURL is optional; without it the built-in city table is used.
	DatabaseURL string
	SeedPath    string

	Ephemeris EphemerisConfig

	// AspectsPath points at an optional YAML orb policy.
	AspectsPath string

	ChartCacheSize int
	RateLimitRPS   float64
	RateLimitBurst int
}

type EphemerisConfig struct {
	Backend string
	URL     string
	Timeout time.Duration
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		Port: Get("PORT", "8080"),
		Env:  Get("ENV", "development"),

		LogLevel:  Get("LOG_LEVEL", "info"),
		LogFormat: Get("LOG_FORMAT", "json"),

		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SeedPath:    Get("SEED_PATH", "data/seeds/cities.json"),

		Ephemeris: EphemerisConfig{
			Backend: strings.ToLower(Get("EPHEMERIS_BACKEND", BackendAnalytic)),
			URL:     strings.TrimSpace(os.Getenv("EPHEMERIS_URL")),
			Timeout: getDuration("EPHEMERIS_TIMEOUT", 5*time.Second),
		},

		AspectsPath: strings.TrimSpace(os.Getenv("ASPECTS_PATH")),

		ChartCacheSize: getInt("CHART_CACHE_SIZE", 1024),
		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 40),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.Ephemeris.Backend {
	case BackendAnalytic, BackendDemo:
	case BackendRemote:
		if c.Ephemeris.URL == "" {
			return fmt.Errorf("config: EPHEMERIS_URL is required for the %q backend", BackendRemote)
		}
	default:
		return fmt.Errorf("config: unknown EPHEMERIS_BACKEND %q", c.Ephemeris.Backend)
	}

	if c.Ephemeris.Timeout <= 0 {
		return fmt.Errorf("config: EPHEMERIS_TIMEOUT must be positive, got %s", c.Ephemeris.Timeout)
	}
	if c.ChartCacheSize < 0 {
		return fmt.Errorf("config: CHART_CACHE_SIZE must not be negative, got %d", c.ChartCacheSize)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		return fmt.Errorf("config: rate limit must be positive (rps=%v burst=%d)", c.RateLimitRPS, c.RateLimitBurst)
	}

	return nil
}

// Get returns the trimmed value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(Get(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(Get(key, ""), 64)
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(Get(key, ""))
	if err != nil {
		return fallback
	}
	return v
}
