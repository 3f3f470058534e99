package analysis

import (
	"math"

	"github.com/san-kum/gwave/internal/dynamo"
	"github.com/san-kum/gwave/internal/sim"
)

// Track returns the wave displacement (deformed minus undeformed position)
// of one point of the named probe for each frame. Frames in which the probe
// or index is missing are skipped.
func Track(frames []sim.FrameOutput, probe string, index int) dynamo.Batch {
	track := make(dynamo.Batch, 0, len(frames))
	for _, f := range frames {
		pf, ok := f.Probe(probe)
		if !ok || index < 0 || index >= len(pf.Points) {
			continue
		}
		p, r := pf.Points[index], pf.Rest[index]
		track = append(track, dynamo.Point{X: p.X - r.X, Y: p.Y - r.Y})
	}
	return track
}

// Magnitudes returns |d| for each displacement in the track.
func Magnitudes(track dynamo.Batch) []float64 {
	out := make([]float64, len(track))
	for i, d := range track {
		out[i] = math.Hypot(d.X, d.Y)
	}
	return out
}

// Signed projects each displacement on the direction of largest motion,
// giving an oscillating series that keeps its sign.
func Signed(track dynamo.Batch) []float64 {
	var axis dynamo.Point
	best := -1.0
	for _, d := range track {
		if m := math.Hypot(d.X, d.Y); m > best {
			best, axis = m, d
		}
	}

	out := make([]float64, len(track))
	if best <= 0 {
		return out
	}
	ux, uy := axis.X/best, axis.Y/best
	for i, d := range track {
		out[i] = d.X*ux + d.Y*uy
	}
	return out
}
