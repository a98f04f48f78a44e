package domain

// Immutable geographic coordinates in decimal degrees (north and east positive).
type GeoCoordinate struct {
	Lat float64
	Lon float64
}

// DefaultCoordinate is the Royal Observatory, Greenwich. Unknown
// locations resolve here rather than failing.
var DefaultCoordinate = GeoCoordinate{Lat: 51.4769, Lon: 0.0000}

// A row of the city coordinate table.
type City struct {
	Name       string
	Country    string
	Coordinate GeoCoordinate
}
