package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/haul-sim/haul-sim/sim"
)

// Preset describes a named scenario in defaults.yaml. Zero fields leave the
// built-in default in place.
type Preset struct {
	Description string `yaml:"description"`
	Trucks      int    `yaml:"trucks"`
	Stations    int    `yaml:"stations"`
	Horizon     int64  `yaml:"horizon"`
	UnloadTime  int64  `yaml:"unload_time"`
	TravelTime  int64  `yaml:"travel_time"`
	MiningMin   int64  `yaml:"mining_min"`
	MiningMax   int64  `yaml:"mining_max"`
	Seed        *int64 `yaml:"seed"` // pointer so that seed 0 can be set explicitly
}

// PresetsFile represents the full defaults.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type PresetsFile struct {
	Version string            `yaml:"version"`
	Presets map[string]Preset `yaml:"presets"`
}

// loadPresets parses a presets file. Unknown keys are errors so that a typo
// in a scenario cannot silently fall back to a default.
func loadPresets(path string) (PresetsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PresetsFile{}, fmt.Errorf("read presets file: %w", err)
	}
	var pf PresetsFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&pf); err != nil {
		return PresetsFile{}, fmt.Errorf("parse presets file %s: %w", path, err)
	}
	return pf, nil
}

// Lookup returns the named preset.
func (pf PresetsFile) Lookup(name string) (Preset, error) {
	p, ok := pf.Presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q in presets file", name)
	}
	return p, nil
}

// apply overwrites the fields of cfg that the preset sets.
func (p Preset) apply(cfg *sim.Config) {
	setInt(&cfg.NumTrucks, p.Trucks)
	setInt(&cfg.NumStations, p.Stations)
	setInt64(&cfg.Horizon, p.Horizon)
	setInt64(&cfg.UnloadingTime, p.UnloadTime)
	setInt64(&cfg.TravelTime, p.TravelTime)
	setInt64(&cfg.MiningMin, p.MiningMin)
	setInt64(&cfg.MiningMax, p.MiningMax)
	if p.Seed != nil {
		cfg.Seed = *p.Seed
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setInt64(dst *int64, v int64) {
	if v != 0 {
		*dst = v
	}
}
