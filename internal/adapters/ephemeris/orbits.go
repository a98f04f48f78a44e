package ephemeris

import (
	"math"
	"natal-chart-service/internal/domain"
)

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi

	// Day zero of the orbital element series: 1999-12-31 0h UT.
	elementsEpochJD = 2451543.5

	// Lunar distances are in Earth radii.
	earthRadiiPerAU = 149597870.7 / 6378.14
)

// Osculating elements of date, in degrees and AU (Earth radii for the Moon).
type orbit struct {
	N float64 // longitude of the ascending node
	i float64 // inclination
	w float64 // argument of perihelion
	a float64 // semi-major axis
	e float64 // eccentricity
	M float64 // mean anomaly
}

func sunOrbit(d float64) orbit {
	return orbit{
		N: 0,
		i: 0,
		w: 282.9404 + 4.70935e-5*d,
		a: 1.000000,
		e: 0.016709 - 1.151e-9*d,
		M: 356.0470 + 0.9856002585*d,
	}
}

func moonOrbit(d float64) orbit {
	return orbit{
		N: 125.1228 - 0.0529538083*d,
		i: 5.1454,
		w: 318.0634 + 0.1643573223*d,
		a: 60.2666,
		e: 0.054900,
		M: 115.3654 + 13.0649929509*d,
	}
}

// planetOrbits covers the bodies that follow plain heliocentric Kepler orbits.
// Pluto is handled by its own series.
var planetOrbits = map[domain.Body]func(d float64) orbit{
	domain.Mercury: func(d float64) orbit {
		return orbit{
			N: 48.3313 + 3.24587e-5*d,
			i: 7.0047 + 5.00e-8*d,
			w: 29.1241 + 1.01444e-5*d,
			a: 0.387098,
			e: 0.205635 + 5.59e-10*d,
			M: 168.6562 + 4.0923344368*d,
		}
	},
	domain.Venus: func(d float64) orbit {
		return orbit{
			N: 76.6799 + 2.46590e-5*d,
			i: 3.3946 + 2.75e-8*d,
			w: 54.8910 + 1.38374e-5*d,
			a: 0.723330,
			e: 0.006773 - 1.302e-9*d,
			M: 48.0052 + 1.6021302244*d,
		}
	},
	domain.Mars: func(d float64) orbit {
		return orbit{
			N: 49.5574 + 2.11081e-5*d,
			i: 1.8497 - 1.78e-8*d,
			w: 286.5016 + 2.92961e-5*d,
			a: 1.523688,
			e: 0.093405 + 2.516e-9*d,
			M: 18.6021 + 0.5240207766*d,
		}
	},
	domain.Jupiter: func(d float64) orbit {
		return orbit{
			N: 100.4542 + 2.76854e-5*d,
			i: 1.3030 - 1.557e-7*d,
			w: 273.8777 + 1.64505e-5*d,
			a: 5.20256,
			e: 0.048498 + 4.469e-9*d,
			M: 19.8950 + 0.0830853001*d,
		}
	},
	domain.Saturn: func(d float64) orbit {
		return orbit{
			N: 113.6634 + 2.38980e-5*d,
			i: 2.4886 - 1.081e-7*d,
			w: 339.3939 + 2.97661e-5*d,
			a: 9.55475,
			e: 0.055546 - 9.499e-9*d,
			M: 316.9670 + 0.0334442282*d,
		}
	},
	domain.Uranus: func(d float64) orbit {
		return orbit{
			N: 74.0005 + 1.3978e-5*d,
			i: 0.7733 + 1.9e-8*d,
			w: 96.6612 + 3.0565e-5*d,
			a: 19.18171 - 1.55e-8*d,
			e: 0.047318 + 7.45e-9*d,
			M: 142.5905 + 0.011725806*d,
		}
	},
	domain.Neptune: func(d float64) orbit {
		return orbit{
			N: 131.7806 + 3.0173e-5*d,
			i: 1.7700 - 2.55e-7*d,
			w: 272.8461 - 6.027e-6*d,
			a: 30.05826 + 3.313e-8*d,
			e: 0.008606 + 2.15e-9*d,
			M: 260.2471 + 0.005995147*d,
		}
	},
}

// eccentricAnomaly solves Kepler's equation by Newton iteration. Angles in radians.
func eccentricAnomaly(meanAnomaly, e float64) float64 {
	m := math.Mod(meanAnomaly, 2*math.Pi)
	E := m + e*math.Sin(m)*(1+e*math.Cos(m))
	for k := 0; k < 50; k++ {
		dE := (E - e*math.Sin(E) - m) / (1 - e*math.Cos(E))
		E -= dE
		if math.Abs(dE) < 1e-12 {
			break
		}
	}
	return E
}

// spherical ecliptic coordinates: longitude and latitude in degrees, distance in the orbit's unit.
type spherical struct {
	lon, lat, r float64
}

// rectangular ecliptic coordinates.
type vector struct {
	x, y, z float64
}

func (o orbit) position() spherical {
	E := eccentricAnomaly(o.M*degToRad, o.e)

	xv := o.a * (math.Cos(E) - o.e)
	yv := o.a * math.Sqrt(1-o.e*o.e) * math.Sin(E)

	v := math.Atan2(yv, xv)
	r := math.Hypot(xv, yv)

	N := o.N * degToRad
	incl := o.i * degToRad
	vw := v + o.w*degToRad

	x := r * (math.Cos(N)*math.Cos(vw) - math.Sin(N)*math.Sin(vw)*math.Cos(incl))
	y := r * (math.Sin(N)*math.Cos(vw) + math.Cos(N)*math.Sin(vw)*math.Cos(incl))
	z := r * math.Sin(vw) * math.Sin(incl)

	return vector{x, y, z}.spherical()
}

func (v vector) spherical() spherical {
	return spherical{
		lon: domain.NormalizeDegrees(math.Atan2(v.y, v.x) * radToDeg),
		lat: math.Atan2(v.z, math.Hypot(v.x, v.y)) * radToDeg,
		r:   math.Sqrt(v.x*v.x + v.y*v.y + v.z*v.z),
	}
}

func (s spherical) vector() vector {
	lon := s.lon * degToRad
	lat := s.lat * degToRad
	return vector{
		x: s.r * math.Cos(lon) * math.Cos(lat),
		y: s.r * math.Sin(lon) * math.Cos(lat),
		z: s.r * math.Sin(lat),
	}
}

func sinDeg(x float64) float64 { return math.Sin(x * degToRad) }
func cosDeg(x float64) float64 { return math.Cos(x * degToRad) }

// moonPerturbations applies the largest solar terms (evection, variation,
// yearly equation and smaller ones) to the Keplerian lunar orbit.
func moonPerturbations(pos spherical, moon orbit, sun orbit) spherical {
	Ms := sun.M
	Mm := moon.M
	Ls := sun.M + sun.w
	Lm := moon.M + moon.w + moon.N
	D := Lm - Ls
	F := Lm - moon.N

	pos.lon += -1.274*sinDeg(Mm-2*D) +
		0.658*sinDeg(2*D) -
		0.186*sinDeg(Ms) -
		0.059*sinDeg(2*Mm-2*D) -
		0.057*sinDeg(Mm-2*D+Ms) +
		0.053*sinDeg(Mm+2*D) +
		0.046*sinDeg(2*D-Ms) +
		0.041*sinDeg(Mm-Ms) -
		0.035*sinDeg(D) -
		0.031*sinDeg(Mm+Ms) -
		0.015*sinDeg(2*F-2*D) +
		0.011*sinDeg(Mm-4*D)

	pos.lat += -0.173*sinDeg(F-2*D) -
		0.055*sinDeg(Mm-F-2*D) -
		0.046*sinDeg(Mm+F-2*D) +
		0.033*sinDeg(F+2*D) +
		0.017*sinDeg(2*Mm+F)

	pos.r += -0.58*cosDeg(Mm-2*D) - 0.46*cosDeg(2*D)

	pos.lon = domain.NormalizeDegrees(pos.lon)
	return pos
}

// giantPerturbations applies the mutual Jupiter/Saturn/Uranus terms to a
// heliocentric position. Other bodies pass through unchanged.
func giantPerturbations(body domain.Body, pos spherical, d float64) spherical {
	Mj := planetOrbits[domain.Jupiter](d).M
	Ms := planetOrbits[domain.Saturn](d).M
	Mu := planetOrbits[domain.Uranus](d).M

	switch body {
	case domain.Jupiter:
		pos.lon += -0.332*sinDeg(2*Mj-5*Ms-67.6) -
			0.056*sinDeg(2*Mj-2*Ms+21) +
			0.042*sinDeg(3*Mj-5*Ms+21) -
			0.036*sinDeg(Mj-2*Ms) +
			0.022*cosDeg(Mj-Ms) +
			0.023*sinDeg(2*Mj-3*Ms+52) -
			0.016*sinDeg(Mj-5*Ms-69)
	case domain.Saturn:
		pos.lon += 0.812*sinDeg(2*Mj-5*Ms-67.6) -
			0.229*cosDeg(2*Mj-4*Ms-2) +
			0.119*sinDeg(Mj-2*Ms-3) +
			0.046*sinDeg(2*Mj-6*Ms-69) +
			0.014*sinDeg(Mj-3*Ms+32)
		pos.lat += -0.020*cosDeg(2*Mj-4*Ms-2) +
			0.018*sinDeg(2*Mj-6*Ms-49)
	case domain.Uranus:
		pos.lon += 0.040*sinDeg(Ms-2*Mu+6) +
			0.035*sinDeg(Ms-3*Mu+33) -
			0.015*sinDeg(Mj-Mu+20)
	}

	pos.lon = domain.NormalizeDegrees(pos.lon)
	return pos
}

// plutoPosition evaluates a trigonometric series fitted to Pluto's
// heliocentric orbit, then precesses from J2000 to the ecliptic of date.
func plutoPosition(d float64) spherical {
	S := 50.03 + 0.033459652*d
	P := 238.95 + 0.003968789*d

	lon := 238.9508 + 0.00400703*d -
		19.799*sinDeg(P) + 19.848*cosDeg(P) +
		0.897*sinDeg(2*P) - 4.956*cosDeg(2*P) +
		0.610*sinDeg(3*P) + 1.211*cosDeg(3*P) -
		0.341*sinDeg(4*P) - 0.190*cosDeg(4*P) +
		0.128*sinDeg(5*P) - 0.034*cosDeg(5*P) -
		0.038*sinDeg(6*P) + 0.031*cosDeg(6*P) +
		0.020*sinDeg(S-P) - 0.010*cosDeg(S-P)

	lat := -3.9082 -
		5.453*sinDeg(P) - 14.975*cosDeg(P) +
		3.527*sinDeg(2*P) + 1.673*cosDeg(2*P) -
		1.051*sinDeg(3*P) + 0.328*cosDeg(3*P) +
		0.179*sinDeg(4*P) - 0.292*cosDeg(4*P) +
		0.019*sinDeg(5*P) + 0.100*cosDeg(5*P) -
		0.031*sinDeg(6*P) - 0.026*cosDeg(6*P) +
		0.011*cosDeg(S-P)

	r := 40.72 +
		6.68*sinDeg(P) + 6.90*cosDeg(P) -
		1.18*sinDeg(2*P) - 0.03*cosDeg(2*P) +
		0.15*sinDeg(3*P) - 0.14*cosDeg(3*P)

	// general precession in longitude since J2000
	lon += 3.82394e-5 * (d - (2451545.0 - elementsEpochJD))

	return spherical{lon: domain.NormalizeDegrees(lon), lat: lat, r: r}
}
