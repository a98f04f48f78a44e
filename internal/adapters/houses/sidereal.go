package houses

import (
	"math"
	"natal-chart-service/internal/domain"
)

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi

	j2000 = 2451545.0
)

func julianCenturies(jd float64) float64 {
	return (jd - j2000) / 36525
}

// meanSiderealTime is Greenwich mean sidereal time in degrees.
func meanSiderealTime(jd float64) float64 {
	t := julianCenturies(jd)
	gmst := 280.46061837 +
		360.98564736629*(jd-j2000) +
		0.000387933*t*t -
		t*t*t/38710000
	return domain.NormalizeDegrees(gmst)
}

// meanObliquity of the ecliptic in degrees.
func meanObliquity(jd float64) float64 {
	t := julianCenturies(jd)
	return 23.4392911 - 0.0130042*t - 1.64e-7*t*t + 5.036e-7*t*t*t
}

func sinDeg(x float64) float64 { return math.Sin(x * degToRad) }
func cosDeg(x float64) float64 { return math.Cos(x * degToRad) }
func tanDeg(x float64) float64 { return math.Tan(x * degToRad) }

func atan2Deg(y, x float64) float64 {
	return domain.NormalizeDegrees(math.Atan2(y, x) * radToDeg)
}

// eclipticOfRA returns the longitude of the ecliptic point at right ascension ra.
func eclipticOfRA(ra, eps float64) float64 {
	return atan2Deg(sinDeg(ra), cosDeg(ra)*cosDeg(eps))
}

func declination(lon, eps float64) float64 {
	return math.Asin(sinDeg(eps)*sinDeg(lon)) * radToDeg
}
