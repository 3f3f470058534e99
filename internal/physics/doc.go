// Package physics provides the gravitational-wave strain field and the
// rigid motions of the probes it acts on.
//
// The strain field is an analytic, instantaneous linear map:
//
//   - [Deform]: displaced positions of a batch at phase wt
//   - [Displacement]: displacement of a single point
//   - [StrainTensor]: the symmetric 2×2 map h with Deform(p) = p + h·p
//
// Probes define undeformed shapes and motions place them per frame:
//
//   - [Ring]: particles evenly spaced on a circle
//   - [Triangle]: three vertices of an equilateral triangle
//   - [Grid]: sampled constant-x and constant-y reference lines
//   - [PositionAt]: spin, then orbit placement, for a frame index
//
// # Fixed Background Field
//
// The field is evaluated in absolute coordinates. A probe far from the
// origin is displaced more than the same probe at the origin:
//
//	pts, center := physics.PositionAt(tri, motion, frame, period)
//	out := physics.Deform(pts, wt, pol)
package physics
