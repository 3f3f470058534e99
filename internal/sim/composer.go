package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/gwave/internal/dynamo"
	"github.com/san-kum/gwave/internal/physics"
)

type probeState struct {
	setup ProbeSetup
	trail []dynamo.Batch
	trace dynamo.Batch
}

// Composer turns a frame index into the deformed geometry of every probe
// and grid line. It owns the trail and center trace of each probe; those
// are the only state carried between frames.
type Composer struct {
	cfg       Config
	phases    *dynamo.PhaseTable
	probes    []*probeState
	grid      []dynamo.Batch
	metrics   []Metric
	observers []Observer
}

// New validates the scene and builds a composer. All configuration errors
// are reported here as *dynamo.ConfigError.
func New(cfg Config, probes ...ProbeSetup) (*Composer, error) {
	if cfg.Length == 0 {
		cfg.Length = cfg.Period
	}
	if err := validateConfig(cfg, probes); err != nil {
		return nil, err
	}

	c := &Composer{
		cfg:    cfg,
		phases: dynamo.NewPhaseTable(cfg.Period),
		probes: make([]*probeState, len(probes)),
	}
	for i, p := range probes {
		c.probes[i] = &probeState{setup: p}
	}
	if cfg.Grid != nil {
		c.grid = cfg.Grid.Lines()
	}
	return c, nil
}

func validateConfig(cfg Config, probes []ProbeSetup) error {
	if cfg.Period <= 0 {
		return dynamo.NewConfigError("frames", cfg.Period, dynamo.ErrInvalidFrames)
	}
	if cfg.Length < 0 {
		return dynamo.NewConfigError("length", cfg.Length, dynamo.ErrInvalidFrames)
	}
	if len(probes) == 0 && cfg.Grid == nil {
		return dynamo.NewConfigError("probes", 0, dynamo.ErrEmptyScene)
	}
	if cfg.Grid != nil {
		if err := cfg.Grid.Validate(); err != nil {
			return err
		}
	}

	seen := make(map[string]bool, len(probes))
	for _, p := range probes {
		if p.Probe == nil {
			return dynamo.NewConfigError("probe", p.Name, dynamo.ErrInvalidProbe)
		}
		if seen[p.Name] {
			return dynamo.NewConfigError("probe", p.Name, fmt.Errorf("duplicate name: %w", dynamo.ErrInvalidProbe))
		}
		seen[p.Name] = true

		if err := p.Probe.Validate(); err != nil {
			return err
		}
		if err := p.Motion.Validate(); err != nil {
			return err
		}
		n := len(p.Probe.Shape())
		if n == 0 {
			return dynamo.NewConfigError(p.Probe.Kind(), 0, dynamo.ErrInvalidProbe)
		}
		for _, h := range p.Highlight {
			if h < 0 || h >= n {
				return dynamo.NewConfigError("highlight", h, dynamo.ErrInvalidProbe)
			}
		}
	}
	return nil
}

func (c *Composer) AddMetric(m Metric)     { c.metrics = append(c.metrics, m) }
func (c *Composer) AddObserver(o Observer) { c.observers = append(c.observers, o) }

func (c *Composer) Config() Config { return c.cfg }

// Length returns the number of frames in one pass.
func (c *Composer) Length() int { return c.cfg.Length }

// Advance computes the frame. Frames are expected in increasing order;
// trails and traces grow by one entry per call when enabled.
func (c *Composer) Advance(frame int) FrameOutput {
	cos := c.phases.Cos(frame)
	pol := c.cfg.Polarization

	out := FrameOutput{
		Frame:  frame,
		Phase:  c.phases.Phase(frame),
		Probes: make([]ProbeFrame, len(c.probes)),
	}

	for i, ps := range c.probes {
		rest, center := physics.PositionAt(ps.setup.Probe, ps.setup.Motion, frame, c.cfg.Period)
		pf := ProbeFrame{
			Name:       ps.setup.Name,
			Points:     physics.DeformParallel(rest, cos, pol),
			Rest:       rest,
			Center:     center,
			Highlights: ps.setup.Highlight,
		}
		if ps.setup.Probe.Closed() {
			pf.Edges = pf.Points.Closed()
		}

		if c.cfg.LeaveTrail {
			ps.trail = append(ps.trail, pf.Outline().Clone())
			pf.Trail = ps.trail[:len(ps.trail):len(ps.trail)]
		}
		if c.cfg.TraceCenter {
			ps.trace = append(ps.trace, center)
			pf.Trace = ps.trace[:len(ps.trace):len(ps.trace)]
		}
		out.Probes[i] = pf
	}

	if len(c.grid) > 0 {
		out.Grid = make([]dynamo.Batch, len(c.grid))
		for i, line := range c.grid {
			out.Grid[i] = physics.DeformCos(line, cos, pol)
		}
	}

	for _, m := range c.metrics {
		m.Observe(out)
	}
	for _, o := range c.observers {
		o.OnFrame(out)
	}

	return out
}

// Reset clears trails, traces and metric state, as at animation start.
func (c *Composer) Reset() {
	for _, ps := range c.probes {
		ps.trail = nil
		ps.trace = nil
	}
	for _, m := range c.metrics {
		m.Reset()
	}
}

// Run resets the composer and advances through one pass, calling fn after
// each frame. The context is checked between frames only. Returning false
// from fn stops the pass without error.
func (c *Composer) Run(ctx context.Context, fn func(FrameOutput) bool) error {
	c.Reset()

	for frame := 0; frame < c.cfg.Length; frame++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !fn(c.Advance(frame)) {
			return nil
		}
	}
	return nil
}

// Metrics returns the current value of every registered metric.
func (c *Composer) Metrics() map[string]float64 {
	vals := make(map[string]float64, len(c.metrics))
	for _, m := range c.metrics {
		vals[m.Name()] = m.Value()
	}
	return vals
}
