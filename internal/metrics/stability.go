package metrics

import (
	"github.com/san-kum/gwave/internal/sim"
)

// Stability is the fraction of frames in which every probe point and grid
// sample is finite.
type Stability struct {
	name       string
	violations int
	samples    int
}

func NewStability() *Stability {
	return &Stability{name: "stability"}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(out sim.FrameOutput) {
	s.samples++
	for _, pf := range out.Probes {
		if !pf.Points.IsValid() {
			s.violations++
			return
		}
	}
	for _, line := range out.Grid {
		if !line.IsValid() {
			s.violations++
			return
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
