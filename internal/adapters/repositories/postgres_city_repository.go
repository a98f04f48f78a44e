package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"natal-chart-service/internal/domain"
	"natal-chart-service/internal/platform/logger"
	"natal-chart-service/internal/platform/obs"
)

// Postgres-backed implementation of the CityRepository port.
type PostgresCityRepository struct {
	DB  *sql.DB
	Log *logger.Logger
}

func NewPostgresCityRepository(db *sql.DB, log *logger.Logger) *PostgresCityRepository {
	if log == nil {
		log = logger.Nop()
	}
	return &PostgresCityRepository{DB: db, Log: log}
}

// Return every stored city ordered by country, then city.
func (r *PostgresCityRepository) ListCities(ctx context.Context) (_ []domain.City, err error) {
	defer obs.Time(ctx, r.Log, "cities.ListCities")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres city repository: DB is nil")
	}

	query := `
	SELECT
		city,
		country,
		lat,
		lon
	FROM cities
	ORDER BY country, city;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list cities: query cities table: %w", err)
	}
	defer rows.Close()

	cities := make([]domain.City, 0, 64)
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.Name, &c.Country, &c.Coordinate.Lat, &c.Coordinate.Lon); err != nil {
			return nil, fmt.Errorf("list cities: scan row: %w", err)
		}
		cities = append(cities, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cities: row iteration: %w", err)
	}

	return cities, nil
}
