package metrics

import (
	"math"

	"github.com/san-kum/gwave/internal/dynamo"
	"github.com/san-kum/gwave/internal/sim"
)

// Stretch tracks the largest fractional change in distance from the probe
// center over all points and frames. For a linear "+" wave acting on a
// ring at the origin this approaches |A|.
type Stretch struct {
	name  string
	probe string
	max   float64
}

func NewStretch(probe string) *Stretch {
	return &Stretch{name: "stretch", probe: probe}
}

func (s *Stretch) Name() string { return s.name }

func (s *Stretch) Observe(out sim.FrameOutput) {
	pf, ok := out.Probe(s.probe)
	if !ok {
		return
	}
	for i, p := range pf.Points {
		r0 := dist(pf.Rest[i], pf.Center)
		if r0 == 0 {
			continue
		}
		if v := math.Abs(dist(p, pf.Center)-r0) / r0; v > s.max {
			s.max = v
		}
	}
}

func (s *Stretch) Value() float64 { return s.max }

func (s *Stretch) Reset() { s.max = 0 }

func dist(a, b dynamo.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
