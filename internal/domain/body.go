package domain

// A celestial body tracked by the chart.
type Body string

const (
	Sun     Body = "Sun"
	Moon    Body = "Moon"
	Mercury Body = "Mercury"
	Venus   Body = "Venus"
	Mars    Body = "Mars"
	Jupiter Body = "Jupiter"
	Saturn  Body = "Saturn"
	Uranus  Body = "Uranus"
	Neptune Body = "Neptune"
	Pluto   Body = "Pluto"
)

// Bodies returns the body catalog in chart order.
// The slice is freshly allocated on every call.
func Bodies() []Body {
	return []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto}
}

func (b Body) Valid() bool {
	for _, known := range Bodies() {
		if b == known {
			return true
		}
	}
	return false
}

func (b Body) String() string { return string(b) }

// Raw ephemeris output for one body at one instant.
// Longitude and latitude are geocentric ecliptic degrees, distance is in AU
// and SpeedLongitude in degrees per day (negative when retrograde).
type Position struct {
	Longitude      float64
	Latitude       float64
	Distance       float64
	SpeedLongitude float64
}
