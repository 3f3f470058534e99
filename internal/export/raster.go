package export

import (
	"image"
	"math"

	"github.com/san-kum/gwave/internal/config"
	"github.com/san-kum/gwave/internal/dynamo"
	"github.com/san-kum/gwave/internal/sim"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// View is the square region of the plane that is drawn.
type View struct {
	Min, Max float64
	// Axes draws the coordinate axes across the view.
	Axes bool
	// CentralBody is the radius of a filled disc at the origin, 0 for none.
	CentralBody float64
}

type Options struct {
	View   View
	Width  int
	Height int
	FPS    int
	Style  Style
}

// OptionsFor reads the render settings of a scene config.
func OptionsFor(cfg *config.Config) (Options, error) {
	style, err := GetStyle(cfg.Output.Theme)
	if err != nil {
		return Options{}, err
	}
	return Options{
		View: View{
			Min:         cfg.Output.ViewMin,
			Max:         cfg.Output.ViewMax,
			Axes:        cfg.Output.Axes,
			CentralBody: cfg.Output.CentralBody,
		},
		Width:  cfg.Output.Width,
		Height: cfg.Output.Height,
		FPS:    cfg.Output.FPS,
		Style:  style,
	}, nil
}

func (o Options) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return dynamo.NewConfigError("size", [2]int{o.Width, o.Height}, dynamo.ErrInvalidOutput)
	}
	if !(o.View.Max > o.View.Min) {
		return dynamo.NewConfigError("view_max", o.View.Max, dynamo.ErrInvalidOutput)
	}
	return nil
}

func xys(b dynamo.Batch) plotter.XYs {
	out := make(plotter.XYs, len(b))
	for i, p := range b {
		out[i].X, out[i].Y = p.X, p.Y
	}
	return out
}

func circle(center dynamo.Point, r float64, n int) plotter.XYs {
	out := make(plotter.XYs, n)
	for i := range out {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		out[i].X, out[i].Y = center.X+r*c, center.Y+r*s
	}
	return out
}

type layer struct {
	p   *plot.Plot
	err error
}

func (l *layer) line(b dynamo.Batch, style draw.LineStyle) {
	if l.err != nil || len(b) < 2 {
		return
	}
	ln, err := plotter.NewLine(xys(b))
	if err != nil {
		l.err = err
		return
	}
	ln.LineStyle = style
	l.p.Add(ln)
}

func (l *layer) scatter(b dynamo.Batch, style draw.GlyphStyle) {
	if l.err != nil || len(b) == 0 {
		return
	}
	sc, err := plotter.NewScatter(xys(b))
	if err != nil {
		l.err = err
		return
	}
	sc.GlyphStyle = style
	l.p.Add(sc)
}

func (l *layer) disc(pts plotter.XYs, style Style) {
	if l.err != nil {
		return
	}
	poly, err := plotter.NewPolygon(pts)
	if err != nil {
		l.err = err
		return
	}
	poly.Color = style.Body
	poly.LineStyle.Width = 0
	l.p.Add(poly)
}

// NewPlot lays out one frame, back to front: grid, axes, central body,
// trails, center trace, edges, points, highlights.
func NewPlot(out sim.FrameOutput, opts Options) (*plot.Plot, error) {
	st := opts.Style
	p := plot.New()
	p.BackgroundColor = st.Background
	p.HideAxes()

	l := &layer{p: p}

	gridStyle := draw.LineStyle{Color: st.Grid, Width: st.GridWidth}
	for _, g := range out.Grid {
		l.line(g, gridStyle)
	}

	v := opts.View
	if v.Axes {
		axes := draw.LineStyle{Color: st.Axes, Width: vg.Points(1)}
		l.line(dynamo.Batch{{X: v.Min}, {X: v.Max}}, axes)
		l.line(dynamo.Batch{{Y: v.Min}, {Y: v.Max}}, axes)
	}
	if v.CentralBody > 0 {
		l.disc(circle(dynamo.Point{}, v.CentralBody, 64), st)
	}

	for _, pf := range out.Probes {
		trail := draw.LineStyle{Color: st.Trail, Width: vg.Points(1)}
		for _, t := range pf.Trail {
			l.line(t, trail)
		}
		l.line(pf.Trace, draw.LineStyle{
			Color:  st.Trace,
			Width:  vg.Points(1.5),
			Dashes: []vg.Length{vg.Points(5), vg.Points(3)},
		})

		if pf.Edges != nil {
			l.line(pf.Edges, draw.LineStyle{Color: st.Probe, Width: st.EdgeWidth})
		}

		marker := draw.GlyphStyle{Color: st.Probe, Radius: st.MarkerRadius, Shape: draw.CircleGlyph{}}
		if len(pf.Highlights) > 0 {
			marker.Color = st.Faded
		}
		l.scatter(pf.Points, marker)

		arm := draw.LineStyle{Color: st.Highlight, Width: st.EdgeWidth}
		hl := make(dynamo.Batch, 0, len(pf.Highlights))
		for _, i := range pf.Highlights {
			hl = append(hl, pf.Points[i])
			l.line(dynamo.Batch{pf.Center, pf.Points[i]}, arm)
		}
		l.scatter(hl, draw.GlyphStyle{Color: st.Highlight, Radius: st.MarkerRadius, Shape: draw.CircleGlyph{}})
	}

	if l.err != nil {
		return nil, l.err
	}

	p.X.Min, p.X.Max = v.Min, v.Max
	p.Y.Min, p.Y.Max = v.Min, v.Max
	return p, nil
}

// Rasterize draws one frame into a new RGBA image of the configured size.
func Rasterize(out sim.FrameOutput, opts Options) (*image.RGBA, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	p, err := NewPlot(out, opts)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	c := vgimg.NewWith(vgimg.UseImage(img))
	p.Draw(draw.New(c))
	return img, nil
}
