package workout

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	_ "embed"
)

//go:embed presets.yaml
var presetsDefinition []byte

// Preset is a ready-made program the user can switch to.
type Preset struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Level       string  `yaml:"level"`
	Program     Program `yaml:"program"`
}

// DaysCount is the length of one rotation of the preset, rest days included.
func (p Preset) DaysCount() int {
	return len(p.Program)
}

type presetCatalog struct {
	Default Program  `yaml:"default"`
	Presets []Preset `yaml:"presets"`
}

//nolint:gochecknoglobals // parsed once from the embedded catalog.
var catalog = mustParseCatalog(presetsDefinition)

func mustParseCatalog(raw []byte) presetCatalog {
	var c presetCatalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		panic(fmt.Sprintf("parse embedded presets: %v", err))
	}
	if err := c.Default.Validate(); err != nil {
		panic(fmt.Sprintf("validate default program: %v", err))
	}
	for _, p := range c.Presets {
		if err := p.Program.Validate(); err != nil {
			panic(fmt.Sprintf("validate preset %s: %v", p.ID, err))
		}
	}
	return c
}

// DefaultProgram returns the push, pull, legs and rest rotation used until the user saves a program.
func DefaultProgram() Program {
	return catalog.Default.Clone()
}

// Presets lists the ready-made programs.
func Presets() []Preset {
	presets := slices.Clone(catalog.Presets)
	for i := range presets {
		presets[i].Program = presets[i].Program.Clone()
	}
	return presets
}

// FindPreset looks up a preset by id.
func FindPreset(id string) (Preset, bool) {
	for _, p := range Presets() {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}
