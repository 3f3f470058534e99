package experiment

import (
	"math"
	"sort"

	"github.com/san-kum/gwave/internal/config"
	"github.com/san-kum/gwave/internal/dynamo"
	"github.com/san-kum/gwave/internal/metrics"
	"github.com/san-kum/gwave/internal/physics"
	"github.com/san-kum/gwave/internal/sim"
)

// Builder turns a config into the probes of a scene.
type Builder func(cfg *config.Config) []sim.ProbeSetup

type Registry struct {
	probes  map[string]Builder
	metrics map[string]func(probe string) sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		probes:  make(map[string]Builder),
		metrics: make(map[string]func(string) sim.Metric),
	}

	r.probes[config.KindRing] = func(cfg *config.Config) []sim.ProbeSetup {
		ring := physics.NewRing(cfg.Probe.RingCount, cfg.Probe.RingRadius)
		setup := sim.ProbeSetup{Name: config.KindRing, Probe: ring, Motion: MotionFor(cfg)}
		if cfg.Probe.Highlight {
			setup.Highlight = []int{ring.Nearest(0), ring.Nearest(math.Pi / 2)}
		}
		return []sim.ProbeSetup{setup}
	}
	r.probes[config.KindTriangle] = func(cfg *config.Config) []sim.ProbeSetup {
		return []sim.ProbeSetup{{
			Name:   config.KindTriangle,
			Probe:  physics.NewTriangle(cfg.Probe.Side),
			Motion: MotionFor(cfg),
		}}
	}

	r.metrics[config.KindRing] = func(probe string) sim.Metric { return metrics.NewStretch(probe) }
	r.metrics[config.KindTriangle] = func(probe string) sim.Metric { return metrics.NewArmStrain(probe) }

	return r
}

// Register adds or replaces the builder for a probe kind.
func (r *Registry) Register(kind string, b Builder) {
	r.probes[kind] = b
}

func (r *Registry) GetProbes(cfg *config.Config) ([]sim.ProbeSetup, error) {
	fn, ok := r.probes[cfg.Probe.Kind]
	if !ok {
		return nil, dynamo.NewConfigError("probe_kind", cfg.Probe.Kind, dynamo.ErrUnknownProbe)
	}
	return fn(cfg), nil
}

func (r *Registry) ListProbes() []string {
	names := make([]string, 0, len(r.probes))
	for name := range r.probes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics(kind string) []sim.Metric {
	ms := []sim.Metric{metrics.NewStability()}
	if fn, ok := r.metrics[kind]; ok {
		ms = append(ms, fn(kind))
	}
	return ms
}

// MotionFor maps the spin and orbit settings onto a probe motion. Zero
// settings leave the probe at rest at the origin.
func MotionFor(cfg *config.Config) physics.Motion {
	var m physics.Motion
	if cfg.Probe.SpinVelocity != 0 {
		m.Spin = &physics.Spin{Velocity: cfg.Probe.SpinVelocity}
	}
	if cfg.Orbit.Radius > 0 {
		m.Orbit = &physics.Orbit{
			Radius: cfg.Orbit.Radius,
			Start:  cfg.Orbit.StartAngle,
			End:    cfg.Orbit.EndAngle,
		}
		if cfg.Animation.LoopContinuously {
			m.Oscillate = &physics.Oscillate{}
		}
	}
	return m
}
