package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/gwave/internal/config"
	"github.com/san-kum/gwave/internal/physics"
	"github.com/san-kum/gwave/internal/sim"
)

type Result struct {
	Frames  []sim.FrameOutput
	Metrics map[string]float64
}

type Experiment struct {
	cfg      *config.Config
	composer *sim.Composer
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// SimConfig derives the composer settings from a scene config.
func SimConfig(cfg *config.Config) sim.Config {
	sc := sim.Config{
		Polarization: cfg.Polarization(),
		Period:       cfg.Animation.Frames,
		Length:       cfg.PassLength(),
		LeaveTrail:   cfg.Animation.LeaveTrail,
		TraceCenter:  cfg.Animation.TraceCenter,
	}
	if cfg.Grid.Enabled {
		sc.Grid = physics.NewGrid(cfg.Grid.Min, cfg.Grid.Max, cfg.Grid.Step, cfg.Grid.Samples)
	}
	return sc
}

// Setup validates the config and builds the composer. Any configuration
// problem is reported here, before a frame is computed.
func (e *Experiment) Setup(reg *Registry, metrics []sim.Metric) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	probes, err := reg.GetProbes(e.cfg)
	if err != nil {
		return err
	}

	c, err := sim.New(SimConfig(e.cfg), probes...)
	if err != nil {
		return err
	}
	for _, m := range metrics {
		c.AddMetric(m)
	}
	e.composer = c
	return nil
}

// Run computes one full pass and collects every frame.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	res := &Result{}
	err := e.Stream(ctx, func(out sim.FrameOutput) bool {
		res.Frames = append(res.Frames, out)
		return true
	})
	if err != nil {
		return nil, err
	}
	res.Metrics = e.composer.Metrics()
	return res, nil
}

// Stream runs one pass and hands each frame to fn without retaining it.
func (e *Experiment) Stream(ctx context.Context, fn func(sim.FrameOutput) bool) error {
	if e.composer == nil {
		return fmt.Errorf("experiment not setup")
	}
	return e.composer.Run(ctx, fn)
}

// Composer returns the underlying composer for adding observers.
func (e *Experiment) Composer() *sim.Composer {
	return e.composer
}

func (e *Experiment) Config() *config.Config {
	return e.cfg
}
