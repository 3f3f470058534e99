package physics

import (
	"math"

	"github.com/san-kum/gwave/internal/dynamo"
)

// Spin rotates a probe about its own center by Velocity radians per frame.
type Spin struct {
	Velocity float64
}

// Orbit places the probe center on an arc around Center. The arc angle
// moves from Start to End as the progress fraction goes from 0 to 1.
type Orbit struct {
	Center     dynamo.Point
	Radius     float64
	Start, End float64
}

// Oscillate sweeps the orbit back and forth with the given period in frames.
// A zero period uses the animation's frame count.
type Oscillate struct {
	Period int
}

// Motion composes the rigid motions of a probe: spin first, then orbit
// placement. A zero Motion leaves the probe at the origin.
type Motion struct {
	Spin      *Spin
	Orbit     *Orbit
	Oscillate *Oscillate
}

func (m Motion) Validate() error {
	if m.Orbit != nil && m.Orbit.Radius < 0 {
		return dynamo.NewConfigError("orbit_radius", m.Orbit.Radius, dynamo.ErrInvalidMotion)
	}
	if m.Oscillate != nil && m.Oscillate.Period < 0 {
		return dynamo.NewConfigError("oscillate_period", m.Oscillate.Period, dynamo.ErrInvalidMotion)
	}
	return nil
}

// MonotonicProgress is frame/total clamped to [0, 1].
func MonotonicProgress(frame, total int) float64 {
	if total <= 0 {
		return 0
	}
	p := float64(frame) / float64(total)
	return math.Max(0, math.Min(1, p))
}

// OscillatingProgress is a triangular wave with period 2·total: it rises
// from 0 to 1 over total frames and falls back to 0 over the next total.
func OscillatingProgress(frame, total int) float64 {
	if total <= 0 {
		return 0
	}
	m := frame % (2 * total)
	if m < 0 {
		m += 2 * total
	}
	phase := float64(m) / float64(total)
	if phase <= 1 {
		return phase
	}
	return 2 - phase
}

// Progress returns the orbit progress fraction for the frame.
func (m Motion) Progress(frame, total int) float64 {
	if m.Oscillate == nil {
		return MonotonicProgress(frame, total)
	}
	period := m.Oscillate.Period
	if period == 0 {
		period = total
	}
	return OscillatingProgress(frame, period)
}

// Center returns the undeformed probe center for the frame.
func (m Motion) Center(frame, total int) dynamo.Point {
	if m.Orbit == nil {
		return dynamo.Point{}
	}
	o := m.Orbit
	alpha := m.Progress(frame, total)
	angle := o.Start + alpha*(o.End-o.Start)
	return dynamo.Point{
		X: o.Center.X + o.Radius*math.Cos(angle),
		Y: o.Center.Y + o.Radius*math.Sin(angle),
	}
}

// SpinAngle returns the rotation about the probe center for the frame.
func (m Motion) SpinAngle(frame int) float64 {
	if m.Spin == nil {
		return 0
	}
	return m.Spin.Velocity * float64(frame)
}

// PositionAt returns the undeformed absolute positions of the probe and
// its center at the given frame. It is a pure function of its arguments.
func PositionAt(probe Probe, motion Motion, frame, total int) (dynamo.Batch, dynamo.Point) {
	shape := probe.Shape()
	center := motion.Center(frame, total)

	if motion.Spin == nil {
		for i, p := range shape {
			shape[i] = dynamo.Point{X: center.X + p.X, Y: center.Y + p.Y}
		}
		return shape, center
	}

	s, c := math.Sincos(motion.SpinAngle(frame))
	for i, p := range shape {
		shape[i] = dynamo.Point{
			X: center.X + c*p.X - s*p.Y,
			Y: center.Y + s*p.X + c*p.Y,
		}
	}
	return shape, center
}
