package dynamo

import "math"

// PhaseTable provides precomputed cos(wt) values for one wave period.
// Values at quarter periods are exact, so the frame where the wave crosses
// zero leaves every point bit-identical.
type PhaseTable struct {
	cos    []float64
	period int
}

// NewPhaseTable creates a lookup table for the given period in frames.
// A non-positive period yields a table that always returns cos(0).
func NewPhaseTable(period int) *PhaseTable {
	if period <= 0 {
		return &PhaseTable{cos: []float64{1}, period: 1}
	}

	t := &PhaseTable{
		cos:    make([]float64, period),
		period: period,
	}
	for i := 0; i < period; i++ {
		t.cos[i] = exactCos(i, period)
	}
	return t
}

func exactCos(k, n int) float64 {
	if (4*k)%n == 0 {
		switch 4 * k / n {
		case 0:
			return 1
		case 1, 3:
			return 0
		case 2:
			return -1
		}
	}
	return math.Cos(2 * math.Pi * float64(k) / float64(n))
}

func (t *PhaseTable) index(frame int) int {
	i := frame % t.period
	if i < 0 {
		i += t.period
	}
	return i
}

// Cos returns cos(2π·frame/period).
func (t *PhaseTable) Cos(frame int) float64 {
	return t.cos[t.index(frame)]
}

// Phase returns wt for the frame, reduced into [0, 2π).
func (t *PhaseTable) Phase(frame int) float64 {
	return Phase(t.index(frame), t.period)
}

func (t *PhaseTable) Period() int { return t.period }
