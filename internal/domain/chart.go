package domain

// Names of the four chart angles, in output order.
const (
	Ascendant  = "Ascendant"
	Descendant = "Descendant"
	Midheaven  = "Midheaven"
	ImumCoeli  = "Imum Coeli"
)

// A body placed in the chart.
type CelestialBody struct {
	Name      Body
	Longitude float64
	Sign      Sign
	Degree    int
	Minute    int
	House     int
}

// One of the four chart angles. Same shape as CelestialBody without a house.
type AngularPoint struct {
	Name      string
	Longitude float64
	Sign      Sign
	Degree    int
	Minute    int
}

// The ecliptic boundary that opens a house.
type HouseCusp struct {
	Number    int
	Longitude float64
	Sign      Sign
}

// A classified angular relationship between two chart objects.
// Orb is the absolute deviation from the aspect's exact angle.
type Aspect struct {
	First  string
	Second string
	Kind   AspectKind
	Orb    float64
}

// The complete natal chart. It is only ever returned whole.
type ChartResult struct {
	Bodies  []CelestialBody
	Points  []AngularPoint
	Houses  []HouseCusp
	Aspects []Aspect
}
