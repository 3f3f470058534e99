package viz

import (
	"strings"

	"github.com/san-kum/gwave/internal/dynamo"
)

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
const brailleBlank = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Viewport is the square world window mapped onto the canvas.
type Viewport struct {
	Min, Max float64
}

func (v Viewport) valid() bool { return v.Max > v.Min }

type Canvas struct {
	Width, Height int
	Grid          [][]rune
	View          Viewport
}

func NewCanvas(w, h int, view Viewport) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		View:   view,
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at sub-pixel (x, y). The canvas is Width*2 by
// Height*4 sub-pixels; out of range dots are dropped.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// Project maps a world point to sub-pixel coordinates, y pointing down.
func (c *Canvas) Project(p dynamo.Point) (int, int) {
	span := c.View.Max - c.View.Min
	if !c.View.valid() {
		span = 1
	}
	w, h := float64(c.Width*2-1), float64(c.Height*4-1)
	x := (p.X - c.View.Min) / span * w
	y := (c.View.Max - p.Y) / span * h
	return int(x + 0.5), int(y + 0.5)
}

// Plot lights the dot nearest to a world point.
func (c *Canvas) Plot(p dynamo.Point) {
	c.Set(c.Project(p))
}

// Marker lights a 2x2 block at a world point.
func (c *Canvas) Marker(p dynamo.Point) {
	x, y := c.Project(p)
	c.Set(x, y)
	c.Set(x+1, y)
	c.Set(x, y+1)
	c.Set(x+1, y+1)
}

// Polyline joins consecutive world points.
func (c *Canvas) Polyline(b dynamo.Batch) {
	for i := 1; i < len(b); i++ {
		x0, y0 := c.Project(b[i-1])
		x1, y1 := c.Project(b[i])
		c.DrawLine(x0, y0, x1, y1)
	}
}

// DrawLine draws a sub-pixel line with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
