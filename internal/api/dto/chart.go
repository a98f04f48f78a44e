package dto

type ChartRequest struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Country string `json:"country"`
	City    string `json:"city"`
}

// Degrees is the decimal position within the sign; Longitude is absolute.
type PlanetResponse struct {
	Name      string  `json:"name"`
	Sign      string  `json:"sign"`
	Degree    int     `json:"degree"`
	Minute    int     `json:"minute"`
	Degrees   float64 `json:"degrees"`
	Longitude float64 `json:"longitude"`
	House     int     `json:"house"`
}

type PointResponse struct {
	Name      string  `json:"name"`
	Sign      string  `json:"sign"`
	Degree    int     `json:"degree"`
	Minute    int     `json:"minute"`
	Degrees   float64 `json:"degrees"`
	Longitude float64 `json:"longitude"`
}

type HouseResponse struct {
	HouseNumber int     `json:"house_number"`
	Sign        string  `json:"sign"`
	Degrees     float64 `json:"degrees"`
	Longitude   float64 `json:"longitude"`
}

type AspectResponse struct {
	AspectType string  `json:"aspect_type"`
	Planet1    string  `json:"planet1"`
	Planet2    string  `json:"planet2"`
	Orb        float64 `json:"orb"`
}

type ChartResponse struct {
	HouseSystem string           `json:"house_system"`
	Planets     []PlanetResponse `json:"planets"`
	Points      []PointResponse  `json:"points"`
	Houses      []HouseResponse  `json:"houses"`
	Aspects     []AspectResponse `json:"aspects"`
}

type CityResponse struct {
	City    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

type ListCityResponse struct {
	Cities []CityResponse `json:"cities"`
}
