package config

import (
	"math"
	"sort"
)

var Presets = map[string]*Config{
	"ring-plus": ringPreset(0, false, false),

	"ring-plus-arms": ringPreset(0, true, false),

	"ring-plus-grid": ringPreset(0, true, true),

	"ring-cross-grid": ringPreset(math.Pi/4, false, true),

	"lisa-arc": {
		Wave:  WaveConfig{Amplitude: 0.12, Ellipticity: 1},
		Probe: ProbeConfig{Kind: KindTriangle, Side: 2, SpinVelocity: 4 * math.Pi / 200},
		Orbit: OrbitConfig{Radius: 5, StartAngle: 0, EndAngle: math.Pi / 2},
		Grid:  GridConfig{Enabled: true, Min: -3, Max: 9, Step: 1, Samples: 200},
		Animation: AnimationConfig{
			Frames: 200,
		},
		Output: OutputConfig{
			Path: "lisa_arc.gif", FPS: 20, Width: 800, Height: 800,
			ViewMin: -3, ViewMax: 9, Axes: true, CentralBody: 0.5, Theme: "classic",
		},
	},
}

func ringPreset(theta float64, highlight, grid bool) *Config {
	return &Config{
		Wave:  WaveConfig{Amplitude: 0.2, Ellipticity: 1, Theta: theta},
		Probe: ProbeConfig{Kind: KindRing, RingCount: 16, RingRadius: 1, Highlight: highlight},
		Grid:  GridConfig{Enabled: grid, Min: -1.5, Max: 1.5, Step: 0.375, Samples: 100},
		Animation: AnimationConfig{
			Frames: 100,
		},
		Output: OutputConfig{
			Path: "ring.gif", FPS: 20, Width: 500, Height: 500,
			ViewMin: -1.5, ViewMax: 1.5, Theme: "classic",
		},
	}
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
