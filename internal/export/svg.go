package export

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/san-kum/gwave/internal/dynamo"
	"github.com/san-kum/gwave/internal/sim"
)

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

type svgWriter struct {
	sb            strings.Builder
	minX, spanX   float64
	minY, spanY   float64
	width, height float64
}

func (w *svgWriter) project(p dynamo.Point) (float64, float64) {
	x := (p.X - w.minX) / w.spanX * w.width
	y := w.height - (p.Y-w.minY)/w.spanY*w.height
	return x, y
}

func (w *svgWriter) header(width, height int, bg color.RGBA) {
	w.sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, hex(bg)))
}

func (w *svgWriter) polyline(b dynamo.Batch, stroke color.RGBA, width float64, extra string) {
	if len(b) < 2 {
		return
	}
	w.sb.WriteString(`<polyline fill="none" stroke="` + hex(stroke) + fmt.Sprintf(`" stroke-width="%.1f"%s points="`, width, extra))
	for i, p := range b {
		x, y := w.project(p)
		if i > 0 {
			w.sb.WriteByte(' ')
		}
		w.sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
	}
	w.sb.WriteString("\"/>\n")
}

func (w *svgWriter) circle(p dynamo.Point, r float64, fill color.RGBA) {
	x, y := w.project(p)
	w.sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, x, y, r, hex(fill)))
}

// FrameToSVG renders a single frame as a standalone SVG document, with the
// same layers and colors as the raster renderer.
func FrameToSVG(out sim.FrameOutput, opts Options) string {
	if opts.validate() != nil {
		return ""
	}
	st := opts.Style
	v := opts.View
	w := &svgWriter{
		minX: v.Min, spanX: v.Max - v.Min,
		minY: v.Min, spanY: v.Max - v.Min,
		width: float64(opts.Width), height: float64(opts.Height),
	}
	w.header(opts.Width, opts.Height, st.Background)

	for _, g := range out.Grid {
		w.polyline(g, st.Grid, 0.8, "")
	}

	if v.Axes {
		w.polyline(dynamo.Batch{{X: v.Min}, {X: v.Max}}, st.Axes, 1, "")
		w.polyline(dynamo.Batch{{Y: v.Min}, {Y: v.Max}}, st.Axes, 1, "")
	}
	if v.CentralBody > 0 {
		scale := w.width / (v.Max - v.Min)
		w.circle(dynamo.Point{}, v.CentralBody*scale, st.Body)
	}

	for _, pf := range out.Probes {
		for _, t := range pf.Trail {
			w.polyline(t, st.Trail, 1, "")
		}
		w.polyline(pf.Trace, st.Trace, 1.5, ` stroke-dasharray="5,3"`)
		if pf.Edges != nil {
			w.polyline(pf.Edges, st.Probe, 2, "")
		}

		fill := st.Probe
		if len(pf.Highlights) > 0 {
			fill = st.Faded
		}
		for _, p := range pf.Points {
			w.circle(p, 4, fill)
		}
		for _, i := range pf.Highlights {
			w.polyline(dynamo.Batch{pf.Center, pf.Points[i]}, st.Highlight, 2, "")
			w.circle(pf.Points[i], 4, st.Highlight)
		}
	}

	w.sb.WriteString("</svg>")
	return w.sb.String()
}

// TrackToSVG draws a displacement track as one polyline, fitted to the
// image with 10% padding on each side.
func TrackToSVG(track dynamo.Batch, width, height int, stroke color.RGBA) string {
	if len(track) < 2 || width <= 0 || height <= 0 {
		return ""
	}

	lo, hi := track[0], track[0]
	for _, p := range track {
		lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
		hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
	}
	pad := func(min, max float64) (float64, float64) {
		span := max - min
		if span == 0 {
			span = 1
		}
		return min - 0.1*span, 1.2 * span
	}

	w := &svgWriter{width: float64(width), height: float64(height)}
	w.minX, w.spanX = pad(lo.X, hi.X)
	w.minY, w.spanY = pad(lo.Y, hi.Y)

	w.header(width, height, color.RGBA{R: 0x0a, G: 0x0a, B: 0x0a, A: 0xff})
	w.polyline(track, stroke, 1.5, "")
	w.sb.WriteString("</svg>")
	return w.sb.String()
}
