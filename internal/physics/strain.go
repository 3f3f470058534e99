package physics

import (
	"math"

	"github.com/san-kum/gwave/internal/dynamo"
)

// parallelThreshold is the batch size above which DeformParallel splits work.
const parallelThreshold = 4096

type axes struct {
	cth, sth float64
}

func principalAxes(theta float64) axes {
	return axes{cth: math.Cos(theta), sth: math.Sin(theta)}
}

// displace rotates p into the wave frame by -θ, scales by
// (A·c, -A·e·c) and rotates the result back by +θ.
func (a axes) displace(p dynamo.Point, c float64, pol dynamo.Polarization) dynamo.Point {
	xp := a.cth*p.X + a.sth*p.Y
	yp := -a.sth*p.X + a.cth*p.Y
	dxp := pol.Amplitude * xp * c
	dyp := -pol.Amplitude * pol.Ellipticity * yp * c
	return dynamo.Point{
		X: a.cth*dxp - a.sth*dyp,
		Y: a.sth*dxp + a.cth*dyp,
	}
}

// Displacement returns the wave-induced displacement of p at phase wt.
func Displacement(p dynamo.Point, wt float64, pol dynamo.Polarization) dynamo.Point {
	return principalAxes(pol.Theta).displace(p, math.Cos(wt), pol)
}

// Deform returns the displaced positions of points at phase wt.
// The input batch is not modified.
func Deform(points dynamo.Batch, wt float64, pol dynamo.Polarization) dynamo.Batch {
	return DeformCos(points, math.Cos(wt), pol)
}

// DeformCos is Deform with cos(wt) supplied by the caller, typically from a
// dynamo.PhaseTable.
func DeformCos(points dynamo.Batch, c float64, pol dynamo.Polarization) dynamo.Batch {
	if pol.IsIdentity() {
		return points.Clone()
	}
	out := make(dynamo.Batch, len(points))
	deformRange(out, points, c, pol, principalAxes(pol.Theta), 0, len(points))
	return out
}

// DeformParallel is DeformCos for very large batches. Results are identical
// to DeformCos.
func DeformParallel(points dynamo.Batch, c float64, pol dynamo.Polarization) dynamo.Batch {
	if pol.IsIdentity() {
		return points.Clone()
	}
	out := make(dynamo.Batch, len(points))
	ax := principalAxes(pol.Theta)
	dynamo.ParallelFor(len(points), parallelThreshold, func(start, end int) {
		deformRange(out, points, c, pol, ax, start, end)
	})
	return out
}

func deformRange(dst, src dynamo.Batch, c float64, pol dynamo.Polarization, ax axes, start, end int) {
	for i := start; i < end; i++ {
		p := src[i]
		d := ax.displace(p, c, pol)
		dst[i] = dynamo.Point{X: p.X + d.X, Y: p.Y + d.Y}
	}
}

// StrainTensor returns h such that Displacement(p) = h·p at phase wt.
func StrainTensor(wt float64, pol dynamo.Polarization) [2][2]float64 {
	c := math.Cos(wt)
	ax := principalAxes(pol.Theta)
	a := pol.Amplitude * c
	b := -pol.Amplitude * pol.Ellipticity * c
	cc, ss, cs := ax.cth*ax.cth, ax.sth*ax.sth, ax.cth*ax.sth

	return [2][2]float64{
		{a*cc + b*ss, (a - b) * cs},
		{(a - b) * cs, a*ss + b*cc},
	}
}
