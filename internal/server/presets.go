package server

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Palash-creator/gem-extract/pkg/extract"
)

// Preset is a named, reusable field list served by GET /api/presets.
type Preset struct {
	Name   string   `yaml:"name" json:"name"`
	Fields []string `yaml:"fields" json:"fields"`
}

// presetFile is the on-disk YAML shape.
type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// LoadPresets reads field presets from a YAML file. Preset field lists are
// normalized the same way request fields are; presets left with no usable
// fields are rejected.
func LoadPresets(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}

	var pf presetFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse presets file: %w", err)
	}

	for i := range pf.Presets {
		p := &pf.Presets[i]
		if p.Name == "" {
			return nil, fmt.Errorf("preset %d has no name", i+1)
		}
		p.Fields = extract.NormalizeFields(p.Fields)
		if len(p.Fields) == 0 {
			return nil, fmt.Errorf("preset %q has no usable fields", p.Name)
		}
	}

	return pf.Presets, nil
}
