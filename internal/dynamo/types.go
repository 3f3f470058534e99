package dynamo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

type Point = r2.Vec

// Batch is an ordered sequence of points sharing one deformation call.
// Order matters when the batch is an edge loop.
type Batch []Point

func (b Batch) Clone() Batch {
	c := make(Batch, len(b))
	copy(c, b)
	return c
}

func (b Batch) IsValid() bool {
	for _, p := range b {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return false
		}
	}
	return true
}

// Closed returns a copy of the batch with the first point appended.
func (b Batch) Closed() Batch {
	if len(b) == 0 {
		return nil
	}
	c := make(Batch, len(b)+1)
	copy(c, b)
	c[len(b)] = b[0]
	return c
}

func (b Batch) Centroid() Point {
	if len(b) == 0 {
		return Point{}
	}
	var sum Point
	for _, p := range b {
		sum = r2.Add(sum, p)
	}
	return r2.Scale(1/float64(len(b)), sum)
}

// XY splits the batch into coordinate slices.
func (b Batch) XY() (xs, ys []float64) {
	xs = make([]float64, len(b))
	ys = make([]float64, len(b))
	for i, p := range b {
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}

// Polarization describes the wave's strain pattern.
//
// Theta=0 gives "+" polarization, Theta=π/4 gives "×". Ellipticity=1 is
// linear, |Ellipticity|<1 elliptical, and its sign mirrors handedness.
type Polarization struct {
	Amplitude   float64
	Ellipticity float64
	Theta       float64
}

func Plus(amplitude float64) Polarization {
	return Polarization{Amplitude: amplitude, Ellipticity: 1}
}

func Cross(amplitude float64) Polarization {
	return Polarization{Amplitude: amplitude, Ellipticity: 1, Theta: math.Pi / 4}
}

func (p Polarization) IsIdentity() bool { return p.Amplitude == 0 }

// Phase returns wt = 2π·frame/period.
func Phase(frame, period int) float64 {
	return 2 * math.Pi * float64(frame) / float64(period)
}
