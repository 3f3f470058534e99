package metrics

import (
	"math"

	"github.com/san-kum/gwave/internal/sim"
)

// ArmStrain is the largest fractional change in edge length between
// consecutive vertices of a closed probe, the quantity an interferometer
// arm measures.
type ArmStrain struct {
	name  string
	probe string
	max   float64
}

func NewArmStrain(probe string) *ArmStrain {
	return &ArmStrain{name: "arm_strain", probe: probe}
}

func (a *ArmStrain) Name() string { return a.name }

func (a *ArmStrain) Observe(out sim.FrameOutput) {
	pf, ok := out.Probe(a.probe)
	if !ok || len(pf.Points) < 2 {
		return
	}
	n := len(pf.Points)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		l0 := dist(pf.Rest[i], pf.Rest[j])
		if l0 == 0 {
			continue
		}
		if v := math.Abs(dist(pf.Points[i], pf.Points[j])/l0 - 1); v > a.max {
			a.max = v
		}
	}
}

func (a *ArmStrain) Value() float64 { return a.max }

func (a *ArmStrain) Reset() { a.max = 0 }
