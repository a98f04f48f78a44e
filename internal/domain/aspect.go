package domain

import (
	"fmt"
	"math"
)

type AspectKind string

const (
	Conjunction AspectKind = "Conjunction"
	Sextile     AspectKind = "Sextile"
	Square      AspectKind = "Square"
	Trine       AspectKind = "Trine"
	Opposition  AspectKind = "Opposition"
)

// AspectKinds lists the five major aspects.
func AspectKinds() []AspectKind {
	return []AspectKind{Conjunction, Sextile, Square, Trine, Opposition}
}

func (k AspectKind) Valid() bool {
	for _, known := range AspectKinds() {
		if k == known {
			return true
		}
	}
	return false
}

// An aspect's exact angle and the largest deviation still counted as a match.
type AspectDefinition struct {
	Kind      AspectKind
	Angle     float64
	Tolerance float64
}

// DefaultAspectTable returns the major aspects in match priority order.
// The order decides which kind wins when tolerance windows overlap, so
// it must not be changed.
func DefaultAspectTable() []AspectDefinition {
	return []AspectDefinition{
		{Kind: Conjunction, Angle: 0, Tolerance: 8},
		{Kind: Sextile, Angle: 60, Tolerance: 6},
		{Kind: Square, Angle: 90, Tolerance: 8},
		{Kind: Trine, Angle: 120, Tolerance: 8},
		{Kind: Opposition, Angle: 180, Tolerance: 8},
	}
}

// ValidateAspectTable checks a custom orb policy before an engine accepts it.
func ValidateAspectTable(table []AspectDefinition) error {
	if len(table) == 0 {
		return fmt.Errorf("aspect table: %w: table is empty", ErrInvalidInput)
	}

	seen := make(map[AspectKind]struct{}, len(table))
	for i, def := range table {
		if !def.Kind.Valid() {
			return fmt.Errorf("aspect table: %w: entry %d has unknown kind %q", ErrInvalidInput, i+1, def.Kind)
		}
		if _, ok := seen[def.Kind]; ok {
			return fmt.Errorf("aspect table: %w: kind %q listed twice", ErrInvalidInput, def.Kind)
		}
		seen[def.Kind] = struct{}{}

		if math.IsNaN(def.Angle) || def.Angle < 0 || def.Angle > 180 {
			return fmt.Errorf("aspect table: %w: %s angle %v outside [0,180]", ErrInvalidInput, def.Kind, def.Angle)
		}
		if math.IsNaN(def.Tolerance) || def.Tolerance < 0 {
			return fmt.Errorf("aspect table: %w: %s tolerance %v is negative", ErrInvalidInput, def.Kind, def.Tolerance)
		}
	}

	return nil
}
