package config

import (
	"fmt"
	"natal-chart-service/internal/domain"
	"os"

	"gopkg.in/yaml.v3"
)

// aspectFile is the on-disk orb policy:
//
//	aspects:
//	  - kind: Conjunction
//	    angle: 0
//	    orb: 8
//
// Entries are matched in file order. Angle and orb are required; a zero
// must be written out.
type aspectFile struct {
	Aspects []struct {
		Kind  string   `yaml:"kind"`
		Angle *float64 `yaml:"angle"`
		Orb   *float64 `yaml:"orb"`
	} `yaml:"aspects"`
}

// LoadAspectTable reads and validates an orb policy file.
func LoadAspectTable(path string) ([]domain.AspectDefinition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load aspect table: read %q: %w", path, err)
	}

	return ParseAspectTable(raw)
}

// ParseAspectTable decodes an orb policy from YAML bytes.
func ParseAspectTable(raw []byte) ([]domain.AspectDefinition, error) {
	var f aspectFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("load aspect table: parse yaml: %w", err)
	}

	table := make([]domain.AspectDefinition, 0, len(f.Aspects))
	for i, a := range f.Aspects {
		if a.Angle == nil || a.Orb == nil {
			return nil, fmt.Errorf("load aspect table: %w: entry %d (%s) needs both angle and orb", domain.ErrInvalidInput, i+1, a.Kind)
		}
		table = append(table, domain.AspectDefinition{
			Kind:      domain.AspectKind(a.Kind),
			Angle:     *a.Angle,
			Tolerance: *a.Orb,
		})
	}

	if err := domain.ValidateAspectTable(table); err != nil {
		return nil, fmt.Errorf("load aspect table: %w", err)
	}

	return table, nil
}
