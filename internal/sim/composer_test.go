package sim_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gwave/internal/dynamo"
	"github.com/san-kum/gwave/internal/physics"
	"github.com/san-kum/gwave/internal/sim"
)

type frameCounter struct {
	frames []int
}

func (f *frameCounter) Name() string               { return "frames" }
func (f *frameCounter) Observe(out sim.FrameOutput) { f.frames = append(f.frames, out.Frame) }
func (f *frameCounter) Value() float64              { return float64(len(f.frames)) }
func (f *frameCounter) Reset()                      { f.frames = nil }
func (f *frameCounter) OnFrame(out sim.FrameOutput) { f.Observe(out) }

func lisaSetup() sim.ProbeSetup {
	return sim.ProbeSetup{
		Name:  "triangle",
		Probe: physics.NewTriangle(2),
		Motion: physics.Motion{
			Spin:  &physics.Spin{Velocity: 4 * math.Pi / 200},
			Orbit: &physics.Orbit{Radius: 5, Start: 0, End: math.Pi / 2},
		},
	}
}

var _ = Describe("Composer", func() {
	var cfg sim.Config

	BeforeEach(func() {
		cfg = sim.Config{
			Polarization: dynamo.Plus(0.12),
			Period:       200,
			LeaveTrail:   true,
			TraceCenter:  true,
		}
	})

	Describe("New", func() {
		It("rejects a non-positive frame count", func() {
			cfg.Period = 0
			_, err := sim.New(cfg, lisaSetup())
			Expect(err).To(MatchError(dynamo.ErrInvalidFrames))
			Expect(dynamo.IsConfigError(err)).To(BeTrue())
		})

		It("rejects a probe with no points", func() {
			_, err := sim.New(cfg, sim.ProbeSetup{Name: "ring", Probe: physics.NewRing(0, 1)})
			Expect(err).To(MatchError(dynamo.ErrInvalidProbe))
		})

		It("rejects an empty scene", func() {
			_, err := sim.New(cfg)
			Expect(errors.Is(err, dynamo.ErrEmptyScene)).To(BeTrue())
		})

		It("rejects an inverted grid", func() {
			cfg.Grid = physics.NewGrid(3, -3, 1, 10)
			_, err := sim.New(cfg, lisaSetup())
			Expect(err).To(MatchError(dynamo.ErrInvalidGrid))
		})

		It("rejects out-of-range highlights", func() {
			_, err := sim.New(cfg, sim.ProbeSetup{
				Name:      "ring",
				Probe:     physics.NewRing(16, 1),
				Highlight: []int{16},
			})
			Expect(err).To(MatchError(dynamo.ErrInvalidProbe))
		})

		It("rejects duplicate probe names", func() {
			_, err := sim.New(cfg, lisaSetup(), lisaSetup())
			Expect(err).To(MatchError(dynamo.ErrInvalidProbe))
		})

		It("defaults the pass length to the period", func() {
			c, err := sim.New(cfg, lisaSetup())
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Length()).To(Equal(200))
		})

		It("accepts a grid-only scene", func() {
			cfg.Grid = physics.NewGrid(-1.5, 1.5, 0.375, 100)
			c, err := sim.New(cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Advance(0).Grid).To(HaveLen(18))
		})
	})

	Describe("Advance", func() {
		var c *sim.Composer

		BeforeEach(func() {
			var err error
			c, err = sim.New(cfg, lisaSetup())
			Expect(err).NotTo(HaveOccurred())
		})

		It("closes the triangle edge loop", func() {
			out := c.Advance(0)
			tri := out.Probes[0]
			Expect(tri.Points).To(HaveLen(3))
			Expect(tri.Edges).To(HaveLen(4))
			Expect(tri.Edges[3]).To(Equal(tri.Edges[0]))
		})

		It("grows the trail by one outline per frame", func() {
			for f := 0; f < 5; f++ {
				c.Advance(f)
			}
			out := c.Advance(5)
			Expect(out.Probes[0].Trail).To(HaveLen(6))
			Expect(out.Probes[0].Trail[5]).To(Equal(out.Probes[0].Edges))
		})

		It("traces the undeformed center", func() {
			first := c.Advance(0)
			second := c.Advance(1)
			trace := second.Probes[0].Trace
			Expect(trace).To(HaveLen(2))
			Expect(trace[0]).To(Equal(first.Probes[0].Center))
			Expect(trace[1]).To(Equal(second.Probes[0].Center))
		})

		It("keeps earlier snapshots stable", func() {
			snap := c.Advance(0).Probes[0].Trail
			c.Advance(1)
			c.Advance(2)
			Expect(snap).To(HaveLen(1))
		})

		It("reports the frame phase", func() {
			Expect(c.Advance(50).Phase).To(BeNumerically("~", math.Pi/2, 1e-12))
		})
	})

	Describe("Reset", func() {
		It("clears trails, traces and metrics", func() {
			c, err := sim.New(cfg, lisaSetup())
			Expect(err).NotTo(HaveOccurred())
			counter := &frameCounter{}
			c.AddMetric(counter)

			c.Advance(0)
			c.Advance(1)
			c.Reset()
			out := c.Advance(2)

			Expect(out.Probes[0].Trail).To(HaveLen(1))
			Expect(out.Probes[0].Trace).To(HaveLen(1))
			Expect(c.Metrics()).To(HaveKeyWithValue("frames", 1.0))
		})
	})

	Describe("Run", func() {
		It("advances a full pass in order", func() {
			cfg.Length = 400
			c, err := sim.New(cfg, lisaSetup())
			Expect(err).NotTo(HaveOccurred())
			obs := &frameCounter{}
			c.AddObserver(obs)

			var last sim.FrameOutput
			err = c.Run(context.Background(), func(out sim.FrameOutput) bool {
				last = out
				return true
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(obs.frames).To(HaveLen(400))
			Expect(obs.frames[399]).To(Equal(399))
			Expect(last.Probes[0].Trail).To(HaveLen(400))
		})

		It("starts each pass from a clean history", func() {
			c, err := sim.New(cfg, lisaSetup())
			Expect(err).NotTo(HaveOccurred())

			var n int
			for i := 0; i < 2; i++ {
				Expect(c.Run(context.Background(), func(out sim.FrameOutput) bool {
					n = len(out.Probes[0].Trail)
					return true
				})).To(Succeed())
			}
			Expect(n).To(Equal(200))
		})

		It("stops when the callback declines", func() {
			c, err := sim.New(cfg, lisaSetup())
			Expect(err).NotTo(HaveOccurred())

			calls := 0
			err = c.Run(context.Background(), func(sim.FrameOutput) bool {
				calls++
				return calls < 10
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(calls).To(Equal(10))
		})

		It("returns the context error between frames", func() {
			c, err := sim.New(cfg, lisaSetup())
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithCancel(context.Background())
			calls := 0
			err = c.Run(ctx, func(sim.FrameOutput) bool {
				calls++
				if calls == 3 {
					cancel()
				}
				return true
			})
			Expect(err).To(MatchError(context.Canceled))
			Expect(calls).To(Equal(3))
		})
	})
})
