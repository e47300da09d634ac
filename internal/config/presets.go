package config

import (
	"math"
	"sort"
)

// Presets overlay parameter values on the defaults.
var Presets = map[string]map[string]float64{
	"reference": {},
	"undamped": {
		"drag": 0,
	},
	"heavy-drag": {
		"drag": 0.0008,
	},
	"inverted": {
		"amplitude": math.Pi - 0.05,
		"drag":      0.00005,
	},
	"centered-pivot": {
		"pivot_ratio": 0.45,
		"amplitude":   math.Pi / 2,
	},
	"moon": {
		"gravity": 1.62,
		"drag":    0,
	},
}

// GetPreset returns the default configuration with the named preset applied,
// or nil when there is no such preset.
func GetPreset(name string) *Config {
	overlay, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	for k, v := range overlay {
		cfg.Params[k] = v
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
