package metrics

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/gwave/internal/dynamo"
	"github.com/san-kum/gwave/internal/physics"
	"github.com/san-kum/gwave/internal/sim"
)

func runPass(t *testing.T, pol dynamo.Polarization, setup sim.ProbeSetup, m sim.Metric) float64 {
	t.Helper()

	c, err := sim.New(sim.Config{Polarization: pol, Period: 100}, setup)
	if err != nil {
		t.Fatalf("new composer: %v", err)
	}
	c.AddMetric(m)
	if err := c.Run(context.Background(), func(sim.FrameOutput) bool { return true }); err != nil {
		t.Fatalf("run: %v", err)
	}
	return m.Value()
}

func TestStretchMatchesAmplitude(t *testing.T) {
	ring := sim.ProbeSetup{Name: "ring", Probe: physics.NewRing(16, 1)}

	for _, amp := range []float64{0, 0.05, 0.2} {
		got := runPass(t, dynamo.Plus(amp), ring, NewStretch("ring"))
		if math.Abs(got-amp) > 1e-12 {
			t.Errorf("A=%v: expected stretch %v, got %v", amp, amp, got)
		}
	}
}

func TestStretchIgnoresOtherProbes(t *testing.T) {
	m := NewStretch("missing")
	ring := sim.ProbeSetup{Name: "ring", Probe: physics.NewRing(16, 1)}
	if got := runPass(t, dynamo.Plus(0.2), ring, m); got != 0 {
		t.Errorf("expected 0 for unknown probe, got %v", got)
	}
}

func TestArmStrain(t *testing.T) {
	tri := sim.ProbeSetup{Name: "triangle", Probe: physics.NewTriangle(2)}

	got := runPass(t, dynamo.Plus(0.1), tri, NewArmStrain("triangle"))
	if math.Abs(got-0.1) > 1e-12 {
		t.Errorf("expected arm strain 0.1, got %v", got)
	}
}

func TestArmStrainReset(t *testing.T) {
	m := NewArmStrain("triangle")
	tri := sim.ProbeSetup{Name: "triangle", Probe: physics.NewTriangle(2)}
	runPass(t, dynamo.Plus(0.1), tri, m)

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %v", m.Value())
	}
}

func TestStability(t *testing.T) {
	m := NewStability()
	if m.Value() != 1.0 {
		t.Errorf("expected 1.0 with no samples, got %v", m.Value())
	}

	m.Observe(sim.FrameOutput{Probes: []sim.ProbeFrame{{Points: dynamo.Batch{{X: 1, Y: 2}}}}})
	m.Observe(sim.FrameOutput{Grid: []dynamo.Batch{{{X: math.NaN(), Y: 0}}}})

	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %v", m.Value())
	}

	m.Reset()
	if m.Value() != 1.0 {
		t.Errorf("expected 1.0 after reset, got %v", m.Value())
	}
}
