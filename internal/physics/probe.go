package physics

import (
	"math"

	"github.com/san-kum/gwave/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// DefaultGridSamples is the number of points sampled along each grid line.
const DefaultGridSamples = 200

// Upper bounds on grid size, per axis.
const (
	MaxGridLines   = 10000
	MaxGridSamples = 100000
)

// Probe is a set of test particles with an undeformed shape relative to
// its own center.
type Probe interface {
	Kind() string
	Shape() dynamo.Batch
	// Closed reports whether the shape is an edge loop.
	Closed() bool
	Validate() error
}

// Ring places Count particles evenly on a circle of the given radius.
type Ring struct {
	Count  int
	Radius float64
}

func NewRing(count int, radius float64) *Ring {
	return &Ring{Count: count, Radius: radius}
}

func (r *Ring) Kind() string { return "ring" }
func (r *Ring) Closed() bool { return false }

func (r *Ring) Shape() dynamo.Batch {
	pts := make(dynamo.Batch, r.Count)
	for i := range pts {
		th := float64(i) * 2 * math.Pi / float64(r.Count)
		pts[i] = dynamo.Point{X: r.Radius * math.Cos(th), Y: r.Radius * math.Sin(th)}
	}
	return pts
}

func (r *Ring) Validate() error {
	if r.Count < 1 {
		return dynamo.NewConfigError("ring_count", r.Count, dynamo.ErrInvalidProbe)
	}
	if r.Radius <= 0 {
		return dynamo.NewConfigError("ring_radius", r.Radius, dynamo.ErrInvalidProbe)
	}
	return nil
}

// Nearest returns the index of the particle closest in angle to th.
func (r *Ring) Nearest(th float64) int {
	if r.Count < 1 {
		return -1
	}
	i := int(math.Round(th * float64(r.Count) / (2 * math.Pi)))
	i %= r.Count
	if i < 0 {
		i += r.Count
	}
	return i
}

// Triangle is an equilateral probe with one vertex pointing up.
type Triangle struct {
	Side float64
}

func NewTriangle(side float64) *Triangle {
	return &Triangle{Side: side}
}

func (t *Triangle) Kind() string { return "triangle" }
func (t *Triangle) Closed() bool { return true }

// Circumradius is the distance from the center to each vertex.
func (t *Triangle) Circumradius() float64 { return t.Side / math.Sqrt(3) }

func (t *Triangle) Shape() dynamo.Batch {
	r := t.Circumradius()
	pts := make(dynamo.Batch, 3)
	for i := range pts {
		th := math.Pi/2 + float64(i)*2*math.Pi/3
		pts[i] = dynamo.Point{X: r * math.Cos(th), Y: r * math.Sin(th)}
	}
	return pts
}

func (t *Triangle) Validate() error {
	if t.Side <= 0 {
		return dynamo.NewConfigError("side", t.Side, dynamo.ErrInvalidProbe)
	}
	return nil
}

// Grid is a set of axis-aligned reference lines covering [Min, Max]² with
// lines every Step, each sampled with Samples points.
type Grid struct {
	Min, Max float64
	Step     float64
	Samples  int
}

func NewGrid(min, max, step float64, samples int) *Grid {
	return &Grid{Min: min, Max: max, Step: step, Samples: samples}
}

func (g *Grid) Kind() string { return "grid" }
func (g *Grid) Closed() bool { return false }

func (g *Grid) samples() int {
	if g.Samples == 0 {
		return DefaultGridSamples
	}
	return g.Samples
}

func (g *Grid) Validate() error {
	if !(g.Max > g.Min) || math.IsInf(g.Max-g.Min, 0) {
		return dynamo.NewConfigError("grid_max", g.Max, dynamo.ErrInvalidGrid)
	}
	if !(g.Step > 0) || (g.Max-g.Min)/g.Step >= MaxGridLines {
		return dynamo.NewConfigError("grid_step", g.Step, dynamo.ErrInvalidGrid)
	}
	if n := g.samples(); n < 2 || n > MaxGridSamples {
		return dynamo.NewConfigError("grid_samples", g.Samples, dynamo.ErrInvalidGrid)
	}
	return nil
}

// Values returns the line positions Min, Min+Step, ... up to Max inclusive.
func (g *Grid) Values() []float64 {
	if g.Validate() != nil {
		return nil
	}
	n := int(math.Floor((g.Max-g.Min)/g.Step+1e-9)) + 1
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = g.Min + float64(i)*g.Step
	}
	return vals
}

// Lines returns one constant-x and one constant-y line per grid value,
// interleaved (vertical, horizontal, vertical, ...).
func (g *Grid) Lines() []dynamo.Batch {
	vals := g.Values()
	if len(vals) == 0 {
		return nil
	}

	span := make([]float64, g.samples())
	floats.Span(span, g.Min, g.Max)

	lines := make([]dynamo.Batch, 0, 2*len(vals))
	for _, v := range vals {
		vertical := make(dynamo.Batch, len(span))
		horizontal := make(dynamo.Batch, len(span))
		for i, s := range span {
			vertical[i] = dynamo.Point{X: v, Y: s}
			horizontal[i] = dynamo.Point{X: s, Y: v}
		}
		lines = append(lines, vertical, horizontal)
	}
	return lines
}

// Shape returns every grid sample as one point cloud.
func (g *Grid) Shape() dynamo.Batch {
	var pts dynamo.Batch
	for _, l := range g.Lines() {
		pts = append(pts, l...)
	}
	return pts
}
