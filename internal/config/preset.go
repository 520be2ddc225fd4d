package config

import (
	"fmt"
	"strings"
)

// Preset is a named set of physics overrides.
type Preset string

const (
	PresetDefault   Preset = "default"
	PresetElastic   Preset = "elastic"
	PresetDamped    Preset = "damped"
	PresetProximity Preset = "proximity"
)

// Presets lists every known preset in display order.
var Presets = []Preset{PresetDefault, PresetElastic, PresetDamped, PresetProximity}

// ParsePreset converts a flag value to a Preset. An empty string selects
// PresetDefault.
func ParsePreset(s string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PresetDefault, nil
	}
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown preset %q (want one of %s)", s, presetNames())
}

// Description returns a one-line summary of the preset.
func (p Preset) Description() string {
	switch p {
	case PresetElastic:
		return "perfectly elastic ball-ball collisions (cor 1.0)"
	case PresetDamped:
		return "heavily damped ball-ball collisions (cor 0.1)"
	case PresetProximity:
		return "proximity segment response with 0.8 damping"
	default:
		return "configuration as loaded"
	}
}

// ApplyPreset modifies the config based on a physics preset.
func ApplyPreset(cfg *SimConfig, preset Preset) {
	switch preset {
	case PresetElastic:
		cfg.Physics.BallRestitution = 1.0
	case PresetDamped:
		cfg.Physics.BallRestitution = 0.1
	case PresetProximity:
		cfg.Physics.SegmentStrategy = "proximity"
		cfg.Physics.SegmentDamping = 0.8
	}
}

func presetNames() string {
	names := make([]string, len(Presets))
	for i, p := range Presets {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
