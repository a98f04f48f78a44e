package dto

import (
	"math"
	"natal-chart-service/internal/domain"
)

// inSign returns the decimal degrees past the start of the longitude's sign,
// truncated to hundredths so it never reads 30. The small bias absorbs
// float noise such as 84.3 mod 30 = 24.2999...
func inSign(lon float64) float64 {
	v := math.Mod(domain.NormalizeDegrees(lon), 30)
	return math.Min(math.Floor(v*100+1e-7)/100, 29.99)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// FromChart maps a computed chart onto the wire format.
func FromChart(c *domain.ChartResult, houseSystem string) ChartResponse {
	res := ChartResponse{
		HouseSystem: houseSystem,
		Planets:     make([]PlanetResponse, 0, len(c.Bodies)),
		Points:      make([]PointResponse, 0, len(c.Points)),
		Houses:      make([]HouseResponse, 0, len(c.Houses)),
		Aspects:     make([]AspectResponse, 0, len(c.Aspects)),
	}

	for _, b := range c.Bodies {
		res.Planets = append(res.Planets, PlanetResponse{
			Name:      string(b.Name),
			Sign:      b.Sign.String(),
			Degree:    b.Degree,
			Minute:    b.Minute,
			Degrees:   inSign(b.Longitude),
			Longitude: round(b.Longitude, 4),
			House:     b.House,
		})
	}

	for _, p := range c.Points {
		res.Points = append(res.Points, PointResponse{
			Name:      p.Name,
			Sign:      p.Sign.String(),
			Degree:    p.Degree,
			Minute:    p.Minute,
			Degrees:   inSign(p.Longitude),
			Longitude: round(p.Longitude, 4),
		})
	}

	for _, h := range c.Houses {
		res.Houses = append(res.Houses, HouseResponse{
			HouseNumber: h.Number,
			Sign:        h.Sign.String(),
			Degrees:     inSign(h.Longitude),
			Longitude:   round(h.Longitude, 4),
		})
	}

	for _, a := range c.Aspects {
		res.Aspects = append(res.Aspects, AspectResponse{
			AspectType: string(a.Kind),
			Planet1:    a.First,
			Planet2:    a.Second,
			Orb:        round(a.Orb, 2),
		})
	}

	return res
}

func FromCities(cities []domain.City) ListCityResponse {
	res := ListCityResponse{Cities: make([]CityResponse, 0, len(cities))}
	for _, c := range cities {
		res.Cities = append(res.Cities, CityResponse{
			City:    c.Name,
			Country: c.Country,
			Lat:     c.Coordinate.Lat,
			Lon:     c.Coordinate.Lon,
		})
	}
	return res
}
