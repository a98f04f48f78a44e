package main

import (
	"context"
	"database/sql"
	"fmt"
	"natal-chart-service/internal/adapters/repositories"
	"natal-chart-service/internal/config"
	"natal-chart-service/internal/platform/db"
	"natal-chart-service/internal/platform/logger"
	"time"
)

// dbtool creates the city table and seeds it from SEED_PATH.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("error", "json", "unknown").Fatal(err.Error())
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat, cfg.Env)

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	defer conn.Close()

	if err := initAndSeed(ctx, conn, cfg.SeedPath, log); err != nil {
		log.WithError(err).Fatal("dbtool failed")
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string, log *logger.Logger) error {
	log.Info("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Info("Schema ready.")

	log.WithField("path", seedPath).Info("Seeding cities...")
	n, err := repositories.SeedCitiesFromJSON(ctx, conn, seedPath)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Infof("Seeding complete: %d cities.", n)

	return nil
}
