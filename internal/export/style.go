package export

import (
	"image/color"
	"sort"

	"github.com/san-kum/gwave/internal/dynamo"
	"gonum.org/v1/plot/vg"
)

// Style defines the colors and stroke sizes of a rendered frame.
type Style struct {
	Name       string
	Background color.RGBA
	Probe      color.RGBA
	// Faded is used for ring particles when reference particles are highlighted.
	Faded     color.RGBA
	Highlight color.RGBA
	Trail     color.RGBA
	Trace     color.RGBA
	Grid      color.RGBA
	Axes      color.RGBA
	Body      color.RGBA

	MarkerRadius vg.Length
	EdgeWidth    vg.Length
	GridWidth    vg.Length
}

func rgb(hex uint32) color.RGBA {
	return color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 0xff}
}

// blend mixes c over bg with opacity alpha, giving an opaque color.
func blend(bg, c color.RGBA, alpha float64) color.RGBA {
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*(1-alpha) + float64(b)*alpha + 0.5)
	}
	return color.RGBA{R: mix(bg.R, c.R), G: mix(bg.G, c.G), B: mix(bg.B, c.B), A: 0xff}
}

var (
	StyleClassic = newStyle("classic", rgb(0xffffff), rgb(0x1f77b4), rgb(0xff0000), rgb(0xd62728), rgb(0xd3d3d3), rgb(0x000000), rgb(0xffd700))

	StyleDark = newStyle("dark", rgb(0x0a0a0a), rgb(0x00ffff), rgb(0xff00ff), rgb(0xffff00), rgb(0x333333), rgb(0x888888), rgb(0xffaa00))

	StyleOcean = newStyle("ocean", rgb(0x001a33), rgb(0x00a8cc), rgb(0xff4444), rgb(0xffd700), rgb(0x1f3f5f), rgb(0x4488aa), rgb(0xffcc00))
)

func newStyle(name string, bg, probe, highlight, trace, grid, axes, body color.RGBA) Style {
	return Style{
		Name:         name,
		Background:   bg,
		Probe:        probe,
		Faded:        blend(bg, probe, 0.3),
		Highlight:    highlight,
		Trail:        blend(bg, probe, 0.3),
		Trace:        trace,
		Grid:         grid,
		Axes:         axes,
		Body:         body,
		MarkerRadius: vg.Points(3),
		EdgeWidth:    vg.Points(2),
		GridWidth:    vg.Points(0.7),
	}
}

var Styles = map[string]Style{
	StyleClassic.Name: StyleClassic,
	StyleDark.Name:    StyleDark,
	StyleOcean.Name:   StyleOcean,
}

func GetStyle(name string) (Style, error) {
	s, ok := Styles[name]
	if !ok {
		return Style{}, dynamo.NewConfigError("theme", name, dynamo.ErrInvalidOutput)
	}
	return s, nil
}

func ListStyles() []string {
	names := make([]string, 0, len(Styles))
	for name := range Styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// paletteSteps is the number of shades between the background and each
// drawing color, used to keep antialiased edges smooth after quantization.
const paletteSteps = 24

// Palette returns the GIF palette for the style: the background plus a
// ramp from the background to every drawing color.
func (s Style) Palette() color.Palette {
	seen := map[color.RGBA]bool{s.Background: true}
	pal := color.Palette{s.Background}

	for _, c := range []color.RGBA{s.Probe, s.Highlight, s.Trace, s.Grid, s.Axes, s.Body, s.Faded} {
		for i := 1; i <= paletteSteps; i++ {
			shade := blend(s.Background, c, float64(i)/paletteSteps)
			if !seen[shade] {
				seen[shade] = true
				pal = append(pal, shade)
			}
		}
	}
	return pal
}
