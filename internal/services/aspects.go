package services

import (
	"math"
	"natal-chart-service/internal/domain"
)

// A chart object reduced to what aspect detection needs.
type NamedLongitude struct {
	Name      string
	Longitude float64
}

// Separation returns the smaller angle between two longitudes, in [0,180].
func Separation(a, b float64) float64 {
	diff := math.Abs(domain.NormalizeDegrees(a) - domain.NormalizeDegrees(b))
	return math.Min(diff, 360-diff)
}

// MatchAspect returns the first definition in table order whose window
// contains separation, and the orb measured against it.
func MatchAspect(separation float64, table []domain.AspectDefinition) (domain.AspectDefinition, float64, bool) {
	for _, def := range table {
		offset := math.Abs(separation - def.Angle)
		if offset <= def.Tolerance {
			return def, offset, true
		}
	}
	return domain.AspectDefinition{}, 0, false
}

// DetectAspects examines every unordered pair once, in input order, and
// emits at most one aspect per pair. First match in table order wins.
func DetectAspects(objects []NamedLongitude, table []domain.AspectDefinition) []domain.Aspect {
	aspects := []domain.Aspect{}

	for i := 0; i < len(objects); i++ {
		for j := i + 1; j < len(objects); j++ {
			a, b := objects[i], objects[j]

			def, orb, ok := MatchAspect(Separation(a.Longitude, b.Longitude), table)
			if !ok {
				continue
			}

			aspects = append(aspects, domain.Aspect{
				First:  a.Name,
				Second: b.Name,
				Kind:   def.Kind,
				Orb:    orb,
			})
		}
	}

	return aspects
}
