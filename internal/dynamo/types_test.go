package dynamo

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"
)

func TestBatch_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		batch Batch
		valid bool
	}{
		{"empty", Batch{}, true},
		{"normal", Batch{{X: 1, Y: 2}, {X: -3, Y: 0}}, true},
		{"with NaN", Batch{{X: 1, Y: math.NaN()}}, false},
		{"with +Inf", Batch{{X: math.Inf(1), Y: 0}}, false},
		{"with -Inf", Batch{{X: 0, Y: math.Inf(-1)}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.batch.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestBatch_Closed(t *testing.T) {
	b := Batch{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: -1, Y: 0}}
	loop := b.Closed()

	if len(loop) != 4 {
		t.Fatalf("expected 4 points, got %d", len(loop))
	}
	if loop[3] != b[0] {
		t.Errorf("loop not closed: last=%v first=%v", loop[3], b[0])
	}

	loop[0].X = 99
	if b[0].X == 99 {
		t.Error("Closed did not copy the batch")
	}

	if Batch(nil).Closed() != nil {
		t.Error("expected nil loop for empty batch")
	}
}

func TestBatch_Centroid(t *testing.T) {
	b := Batch{{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 2, Y: 4}}
	c := b.Centroid()
	if math.Abs(c.X-2) > 1e-12 || math.Abs(c.Y-2) > 1e-12 {
		t.Errorf("expected centroid (2,2), got %v", c)
	}
}

func TestPhaseTable_QuarterPeriodsExact(t *testing.T) {
	table := NewPhaseTable(100)

	tests := []struct {
		frame int
		cos   float64
	}{
		{0, 1},
		{25, 0},
		{50, -1},
		{75, 0},
		{100, 1},
		{-25, 0},
		{125, 0},
	}

	for _, tt := range tests {
		if got := table.Cos(tt.frame); got != tt.cos {
			t.Errorf("Cos(%d) = %v, want %v", tt.frame, got, tt.cos)
		}
	}
}

func TestPhaseTable_MatchesMathCos(t *testing.T) {
	table := NewPhaseTable(37)
	for f := 0; f < 37; f++ {
		want := math.Cos(Phase(f, 37))
		if got := table.Cos(f); math.Abs(got-want) > 1e-15 {
			t.Errorf("Cos(%d) = %v, want %v", f, got, want)
		}
	}
}

func TestPhaseTable_NonPositivePeriod(t *testing.T) {
	table := NewPhaseTable(0)
	if table.Cos(7) != 1 {
		t.Error("expected identity phase for empty table")
	}
	if table.Period() != 1 {
		t.Errorf("expected period clamped to 1, got %d", table.Period())
	}
	if NewPhaseTable(37).Period() != 37 {
		t.Error("expected period 37")
	}
}

func TestPolarization_IsIdentity(t *testing.T) {
	if !(Polarization{Ellipticity: 0.5, Theta: 1}).IsIdentity() {
		t.Error("zero amplitude should be the identity")
	}
	if Plus(0.2).IsIdentity() || Cross(-0.1).IsIdentity() {
		t.Error("non-zero amplitude is not the identity")
	}
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("ring_count", 0, ErrInvalidProbe)

	expected := "dynamo: probe has no points or non-positive size: ring_count=0"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, ErrInvalidProbe) {
		t.Error("expected errors.Is to match ErrInvalidProbe")
	}
	if !IsConfigError(err) {
		t.Error("expected IsConfigError to be true")
	}
	if IsConfigError(ErrInvalidProbe) {
		t.Error("bare sentinel should not be a ConfigError")
	}
}

func TestParallelFor_CoversRange(t *testing.T) {
	const n = 10007
	var hits [n]int32
	var calls atomic.Int32

	ParallelFor(n, 64, func(start, end int) {
		calls.Add(1)
		for i := start; i < end; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	})

	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d visited %d times", i, h)
		}
	}
	if calls.Load() < 1 {
		t.Error("fn never called")
	}
}
