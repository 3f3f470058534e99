package analysis

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/gwave/internal/dynamo"
	"github.com/san-kum/gwave/internal/physics"
	"github.com/san-kum/gwave/internal/sim"
)

func ringPass(t *testing.T, pol dynamo.Polarization, period, length int) []sim.FrameOutput {
	t.Helper()

	c, err := sim.New(sim.Config{Polarization: pol, Period: period, Length: length},
		sim.ProbeSetup{Name: "ring", Probe: physics.NewRing(16, 1)})
	if err != nil {
		t.Fatalf("new composer: %v", err)
	}

	var frames []sim.FrameOutput
	if err := c.Run(context.Background(), func(out sim.FrameOutput) bool {
		frames = append(frames, out)
		return true
	}); err != nil {
		t.Fatalf("run: %v", err)
	}
	return frames
}

func TestPowerSpectrumLength(t *testing.T) {
	for _, n := range []int{2, 8, 100, 101} {
		ps := PowerSpectrum(make([]float64, n))
		if len(ps) != n/2+1 {
			t.Errorf("n=%d: expected %d bins, got %d", n, n/2+1, len(ps))
		}
	}
	if PowerSpectrum(nil) != nil {
		t.Error("expected nil spectrum for empty input")
	}
}

func TestDominantPeriod(t *testing.T) {
	tests := []struct {
		n      int
		period float64
	}{
		{100, 100},
		{200, 50},
		{120, 20},
	}

	for _, tt := range tests {
		data := make([]float64, tt.n)
		for i := range data {
			data[i] = 3 + math.Cos(2*math.Pi*float64(i)/tt.period)
		}
		if got := DominantPeriod(data); math.Abs(got-tt.period) > 1e-9 {
			t.Errorf("n=%d: expected period %v, got %v", tt.n, tt.period, got)
		}
	}
}

func TestDominantPeriodConstant(t *testing.T) {
	if got := DominantPeriod([]float64{2, 2, 2, 2}); got != 0 {
		t.Errorf("expected 0 for constant series, got %v", got)
	}
	if got := DominantPeriod([]float64{1}); got != 0 {
		t.Errorf("expected 0 for single sample, got %v", got)
	}
}

func TestTrackRecoversWavePeriod(t *testing.T) {
	frames := ringPass(t, dynamo.Plus(0.2), 50, 200)

	track := Track(frames, "ring", 0)
	if len(track) != 200 {
		t.Fatalf("expected 200 samples, got %d", len(track))
	}
	if math.Abs(track[0].X-0.2) > 1e-12 || track[0].Y != 0 {
		t.Errorf("expected initial displacement (0.2, 0), got %v", track[0])
	}

	if got := DominantPeriod(Signed(track)); math.Abs(got-50) > 1e-9 {
		t.Errorf("expected period 50, got %v", got)
	}
}

func TestTrackMissingProbe(t *testing.T) {
	frames := ringPass(t, dynamo.Plus(0.2), 10, 10)
	if n := len(Track(frames, "triangle", 0)); n != 0 {
		t.Errorf("expected empty track, got %d samples", n)
	}
	if n := len(Track(frames, "ring", 99)); n != 0 {
		t.Errorf("expected empty track for bad index, got %d samples", n)
	}
}

func TestMagnitudes(t *testing.T) {
	m := Magnitudes(dynamo.Batch{{X: 3, Y: 4}, {X: 0, Y: -2}})
	if m[0] != 5 || m[1] != 2 {
		t.Errorf("unexpected magnitudes %v", m)
	}
}

func TestPortraitAxis(t *testing.T) {
	tests := []struct {
		name  string
		pol   dynamo.Polarization
		index int
		axis  float64
	}{
		{"plus on x axis", dynamo.Plus(0.2), 0, 0},
		{"cross on x axis", dynamo.Cross(0.2), 0, math.Pi / 2},
		{"plus on diagonal", dynamo.Plus(0.2), 2, -math.Pi / 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames := ringPass(t, tt.pol, 20, 20)
			got := NewPortrait(Track(frames, "ring", tt.index)).Axis()
			if math.Abs(math.Remainder(got-tt.axis, math.Pi)) > 1e-9 {
				t.Errorf("expected axis %v, got %v", tt.axis, got)
			}
		})
	}
}

func TestPortraitToASCII(t *testing.T) {
	frames := ringPass(t, dynamo.Plus(0.2), 20, 20)
	art := PortraitToASCII(NewPortrait(Track(frames, "ring", 0)), 21, 11)

	lines := strings.Split(strings.TrimSuffix(art, "\n"), "\n")
	if len(lines) != 11 {
		t.Fatalf("expected 11 rows, got %d", len(lines))
	}
	if !strings.Contains(art, "•") || !strings.Contains(art, "┼") {
		t.Errorf("expected points and origin in:\n%s", art)
	}

	if PortraitToASCII(nil, 10, 10) != "" {
		t.Error("expected empty output for nil portrait")
	}
}
