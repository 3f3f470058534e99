package sim

import (
	"github.com/san-kum/gwave/internal/dynamo"
	"github.com/san-kum/gwave/internal/physics"
)

// ProbeSetup is one probe placed in the scene.
type ProbeSetup struct {
	Name   string
	Probe  physics.Probe
	Motion physics.Motion
	// Highlight lists point indices drawn as reference particles.
	Highlight []int
}

type Config struct {
	Polarization dynamo.Polarization
	// Period is the number of frames per wave cycle. It is also the frame
	// count over which orbit progress runs from 0 to 1.
	Period int
	// Length is the number of frames in one pass. Zero means Period.
	Length      int
	LeaveTrail  bool
	TraceCenter bool
	Grid        *physics.Grid
}

// ProbeFrame is the render data for one probe at one frame.
type ProbeFrame struct {
	Name   string
	Points dynamo.Batch
	// Rest is the undeformed geometry after spin and orbit.
	Rest dynamo.Batch
	// Edges is Points closed into a loop, nil for scatter probes.
	Edges      dynamo.Batch
	Center     dynamo.Point
	Highlights []int
	// Trail holds every deformed outline up to and including this frame.
	Trail []dynamo.Batch
	// Trace holds the undeformed centers up to and including this frame.
	Trace dynamo.Batch
}

// Outline returns the edge loop when the probe has one, otherwise the points.
func (p ProbeFrame) Outline() dynamo.Batch {
	if p.Edges != nil {
		return p.Edges
	}
	return p.Points
}

type FrameOutput struct {
	Frame  int
	Phase  float64
	Probes []ProbeFrame
	Grid   []dynamo.Batch
}

// Probe returns the frame data for the named probe.
func (f FrameOutput) Probe(name string) (ProbeFrame, bool) {
	for _, p := range f.Probes {
		if p.Name == name {
			return p, true
		}
	}
	return ProbeFrame{}, false
}

type Metric interface {
	Name() string
	Observe(out FrameOutput)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(out FrameOutput)
}
