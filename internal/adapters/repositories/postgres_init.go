package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
)

// InitSchema creates the city table used by the location resolver.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createCitiesQuery := `
	CREATE TABLE IF NOT EXISTS cities (
		city TEXT NOT NULL,
		country TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL CHECK (lat BETWEEN -90 AND 90),
		lon DOUBLE PRECISION NOT NULL CHECK (lon BETWEEN -180 AND 180),
		PRIMARY KEY (city, country)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_cities_country_city
	ON cities(country, city);
	`

	statements := []string{
		createCitiesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type CitySeed struct {
	City    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// ParseCitySeeds validates seed rows. Names are trimmed and must be non-empty.
func ParseCitySeeds(raw []byte) ([]CitySeed, error) {
	var data []CitySeed
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	rows := make([]CitySeed, 0, len(data))
	for i, item := range data {
		city := strings.TrimSpace(item.City)
		country := strings.TrimSpace(item.Country)
		if city == "" || country == "" {
			return nil, fmt.Errorf("item at index %d: city and country cannot be empty", i+1)
		}
		if math.IsNaN(item.Lat) || item.Lat < -90 || item.Lat > 90 {
			return nil, fmt.Errorf("item %q at index %d: latitude %v out of range", city, i+1, item.Lat)
		}
		if math.IsNaN(item.Lon) || item.Lon < -180 || item.Lon > 180 {
			return nil, fmt.Errorf("item %q at index %d: longitude %v out of range", city, i+1, item.Lon)
		}
		rows = append(rows, CitySeed{City: city, Country: country, Lat: item.Lat, Lon: item.Lon})
	}

	return rows, nil
}

// SeedCitiesFromJSON upserts the cities listed in a JSON file.
func SeedCitiesFromJSON(ctx context.Context, db *sql.DB, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed cities: read %q: %w", jsonPath, err)
	}

	rows, err := ParseCitySeeds(bytes)
	if err != nil {
		return 0, fmt.Errorf("seed cities: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed cities: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO cities (
		city,
		country,
		lat,
		lon
	)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (city, country) DO UPDATE
	SET lat = EXCLUDED.lat, lon = EXCLUDED.lon;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("seed cities: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range rows {
		if _, err := stmt.ExecContext(ctx, c.City, c.Country, c.Lat, c.Lon); err != nil {
			return 0, fmt.Errorf("seed cities: insert %s/%s: %w", c.City, c.Country, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed cities: commit tx: %w", err)
	}

	return len(rows), nil
}
