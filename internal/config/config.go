package config

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cespare/xxhash/v2"
	"github.com/san-kum/gwave/internal/dynamo"
	"github.com/san-kum/gwave/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAmplitude   = 0.2
	DefaultEllipticity = 1.0
	DefaultFrames      = 100
	DefaultRingCount   = 16
	DefaultRingRadius  = 1.0
	DefaultSide        = 2.0
	DefaultGridSamples = 200
	DefaultFPS         = 20
	DefaultSize        = 500
	DefaultView        = 1.5
)

const (
	KindRing     = "ring"
	KindTriangle = "triangle"
)

// Themes lists the color themes known to the GIF, SVG and terminal renderers.
var Themes = []string{"classic", "dark", "ocean"}

type Config struct {
	Wave      WaveConfig      `yaml:"wave" toml:"wave"`
	Probe     ProbeConfig     `yaml:"probe" toml:"probe"`
	Orbit     OrbitConfig     `yaml:"orbit" toml:"orbit"`
	Grid      GridConfig      `yaml:"grid" toml:"grid"`
	Animation AnimationConfig `yaml:"animation" toml:"animation"`
	Output    OutputConfig    `yaml:"output" toml:"output"`
}

type WaveConfig struct {
	Amplitude   float64 `yaml:"amplitude" toml:"amplitude"`
	Ellipticity float64 `yaml:"ellipticity" toml:"ellipticity"`
	Theta       float64 `yaml:"theta" toml:"theta"`
}

type ProbeConfig struct {
	Kind       string  `yaml:"kind" toml:"kind"`
	RingCount  int     `yaml:"ring_count" toml:"ring_count"`
	RingRadius float64 `yaml:"ring_radius" toml:"ring_radius"`
	// Highlight marks the ring particles nearest angles 0 and π/2.
	Highlight    bool    `yaml:"highlight" toml:"highlight"`
	Side         float64 `yaml:"side" toml:"side"`
	SpinVelocity float64 `yaml:"spin_velocity" toml:"spin_velocity"`
}

type OrbitConfig struct {
	Radius     float64 `yaml:"radius" toml:"radius"`
	StartAngle float64 `yaml:"start_angle" toml:"start_angle"`
	EndAngle   float64 `yaml:"end_angle" toml:"end_angle"`
}

type GridConfig struct {
	Enabled bool    `yaml:"enabled" toml:"enabled"`
	Min     float64 `yaml:"min" toml:"min"`
	Max     float64 `yaml:"max" toml:"max"`
	Step    float64 `yaml:"step" toml:"step"`
	Samples int     `yaml:"samples" toml:"samples"`
}

type AnimationConfig struct {
	Frames           int  `yaml:"frames" toml:"frames"`
	LoopContinuously bool `yaml:"loop_continuously" toml:"loop_continuously"`
	LeaveTrail       bool `yaml:"leave_trail" toml:"leave_trail"`
	TraceCenter      bool `yaml:"trace_center" toml:"trace_center"`
}

type OutputConfig struct {
	Path        string  `yaml:"path" toml:"path"`
	FPS         int     `yaml:"fps" toml:"fps"`
	Width       int     `yaml:"width" toml:"width"`
	Height      int     `yaml:"height" toml:"height"`
	ViewMin     float64 `yaml:"view_min" toml:"view_min"`
	ViewMax     float64 `yaml:"view_max" toml:"view_max"`
	Axes        bool    `yaml:"axes" toml:"axes"`
	CentralBody float64 `yaml:"central_body" toml:"central_body"`
	Theme       string  `yaml:"theme" toml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		Wave: WaveConfig{
			Amplitude:   DefaultAmplitude,
			Ellipticity: DefaultEllipticity,
		},
		Probe: ProbeConfig{
			Kind:       KindRing,
			RingCount:  DefaultRingCount,
			RingRadius: DefaultRingRadius,
			Side:       DefaultSide,
		},
		Grid: GridConfig{
			Min:     -DefaultView,
			Max:     DefaultView,
			Step:    0.375,
			Samples: DefaultGridSamples,
		},
		Animation: AnimationConfig{
			Frames: DefaultFrames,
		},
		Output: OutputConfig{
			Path:    "gwave.gif",
			FPS:     DefaultFPS,
			Width:   DefaultSize,
			Height:  DefaultSize,
			ViewMin: -DefaultView,
			ViewMax: DefaultView,
			Theme:   "classic",
		},
	}
}

// Load reads a YAML or TOML file over the defaults. The format is chosen
// by extension; anything other than .toml is parsed as YAML.
func Load(path string) (*Config, error) {
	return LoadInto(DefaultConfig(), path)
}

// LoadInto reads the file over an existing config, so presets can serve
// as the base layer.
func LoadInto(cfg *Config, path string) (*Config, error) {
	if isTOML(path) {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
		data = buf.Bytes()
	} else {
		var err error
		if data, err = yaml.Marshal(cfg); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate reports the first invalid setting as a *dynamo.ConfigError.
func (c *Config) Validate() error {
	if c.Animation.Frames <= 0 {
		return dynamo.NewConfigError("frames", c.Animation.Frames, dynamo.ErrInvalidFrames)
	}

	switch c.Probe.Kind {
	case KindRing:
		if c.Probe.RingCount < 1 {
			return dynamo.NewConfigError("ring_count", c.Probe.RingCount, dynamo.ErrInvalidProbe)
		}
		if c.Probe.RingRadius <= 0 {
			return dynamo.NewConfigError("ring_radius", c.Probe.RingRadius, dynamo.ErrInvalidProbe)
		}
	case KindTriangle:
		if c.Probe.Side <= 0 {
			return dynamo.NewConfigError("side", c.Probe.Side, dynamo.ErrInvalidProbe)
		}
	default:
		return dynamo.NewConfigError("probe_kind", c.Probe.Kind, dynamo.ErrUnknownProbe)
	}

	if c.Orbit.Radius < 0 {
		return dynamo.NewConfigError("orbit_radius", c.Orbit.Radius, dynamo.ErrInvalidMotion)
	}

	if c.Grid.Enabled {
		g := physics.NewGrid(c.Grid.Min, c.Grid.Max, c.Grid.Step, c.Grid.Samples)
		if err := g.Validate(); err != nil {
			return err
		}
	}

	if c.Output.FPS <= 0 {
		return dynamo.NewConfigError("fps", c.Output.FPS, dynamo.ErrInvalidOutput)
	}
	if c.Output.Width <= 0 || c.Output.Height <= 0 {
		return dynamo.NewConfigError("size", fmt.Sprintf("%dx%d", c.Output.Width, c.Output.Height), dynamo.ErrInvalidOutput)
	}
	if !(c.Output.ViewMax > c.Output.ViewMin) {
		return dynamo.NewConfigError("view_max", c.Output.ViewMax, dynamo.ErrInvalidOutput)
	}
	if !slices.Contains(Themes, c.Output.Theme) {
		return dynamo.NewConfigError("theme", c.Output.Theme, dynamo.ErrInvalidOutput)
	}
	return nil
}

// PassLength is the number of frames rendered: one sweep, or a sweep out
// and back when looping.
func (c *Config) PassLength() int {
	if c.Animation.LoopContinuously {
		return 2 * c.Animation.Frames
	}
	return c.Animation.Frames
}

func (c *Config) Polarization() dynamo.Polarization {
	return dynamo.Polarization{
		Amplitude:   c.Wave.Amplitude,
		Ellipticity: c.Wave.Ellipticity,
		Theta:       c.Wave.Theta,
	}
}

// Fingerprint hashes the canonical YAML form of the config.
func (c *Config) Fingerprint() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// Degrees is a small helper for log and table output.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
