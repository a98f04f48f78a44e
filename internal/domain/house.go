package domain

// Output of a house system for one instant and place.
// Cusps[0] opens house 1 and Cusps[11] opens house 12.
type HouseFrame struct {
	Cusps     [12]float64
	Ascendant float64
	Midheaven float64
}

// Descendant is always derived from the Ascendant, never computed independently.
func (f HouseFrame) Descendant() float64 {
	return NormalizeDegrees(f.Ascendant + 180)
}

// ImumCoeli is always derived from the Midheaven, never computed independently.
func (f HouseFrame) ImumCoeli() float64 {
	return NormalizeDegrees(f.Midheaven + 180)
}
