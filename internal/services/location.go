package services

import (
	"natal-chart-service/internal/domain"
	"sort"
	"strings"
)

type cityKey struct {
	city    string
	country string
}

// LocationResolver maps (city, country) to coordinates through a static table.
// The table is fixed at construction and safe for concurrent reads.
type LocationResolver struct {
	table    map[cityKey]domain.GeoCoordinate
	cities   []domain.City
	fallback domain.GeoCoordinate
}

// DefaultCities is the built-in table of major cities.
func DefaultCities() []domain.City {
	return []domain.City{
		{Name: "New York", Country: "USA", Coordinate: domain.GeoCoordinate{Lat: 40.7128, Lon: -74.0060}},
		{Name: "Los Angeles", Country: "USA", Coordinate: domain.GeoCoordinate{Lat: 34.0522, Lon: -118.2437}},
		{Name: "London", Country: "UK", Coordinate: domain.GeoCoordinate{Lat: 51.5074, Lon: -0.1278}},
		{Name: "Paris", Country: "France", Coordinate: domain.GeoCoordinate{Lat: 48.8566, Lon: 2.3522}},
		{Name: "Sydney", Country: "Australia", Coordinate: domain.GeoCoordinate{Lat: -33.8688, Lon: 151.2093}},
		{Name: "Tokyo", Country: "Japan", Coordinate: domain.GeoCoordinate{Lat: 35.6762, Lon: 139.6503}},
		{Name: "Berlin", Country: "Germany", Coordinate: domain.GeoCoordinate{Lat: 52.5200, Lon: 13.4050}},
		{Name: "Madrid", Country: "Spain", Coordinate: domain.GeoCoordinate{Lat: 40.4168, Lon: -3.7038}},
	}
}

// NewLocationResolver builds a resolver over cities. A nil or empty slice
// yields a resolver that always falls back. Later duplicates win.
func NewLocationResolver(cities []domain.City) *LocationResolver {
	r := &LocationResolver{
		table:    make(map[cityKey]domain.GeoCoordinate, len(cities)),
		cities:   make([]domain.City, 0, len(cities)),
		fallback: domain.DefaultCoordinate,
	}

	byKey := make(map[cityKey]domain.City, len(cities))
	for _, c := range cities {
		byKey[keyFor(c.Name, c.Country)] = c
	}
	for k, c := range byKey {
		r.table[k] = c.Coordinate
		r.cities = append(r.cities, c)
	}

	sort.Slice(r.cities, func(i, j int) bool {
		if r.cities[i].Country != r.cities[j].Country {
			return r.cities[i].Country < r.cities[j].Country
		}
		return r.cities[i].Name < r.cities[j].Name
	})

	return r
}

func keyFor(city, country string) cityKey {
	return cityKey{city: strings.ToLower(city), country: strings.ToLower(country)}
}

// Resolve looks up a city by exact, case-insensitive match. On a miss it
// returns the default coordinate and false; a miss is not an error.
func (r *LocationResolver) Resolve(city string, country string) (domain.GeoCoordinate, bool) {
	if c, ok := r.table[keyFor(city, country)]; ok {
		return c, true
	}
	return r.fallback, false
}

// Cities returns a copy of the table sorted by country then city.
func (r *LocationResolver) Cities() []domain.City {
	out := make([]domain.City, len(r.cities))
	copy(out, r.cities)
	return out
}
