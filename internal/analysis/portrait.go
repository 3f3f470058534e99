package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/gwave/internal/dynamo"
)

// Portrait is the path traced by a particle's displacement vector.
type Portrait struct {
	Points dynamo.Batch
}

func NewPortrait(track dynamo.Batch) *Portrait {
	return &Portrait{Points: track}
}

// Axis returns the angle of the longest displacement, in (-π/2, π/2].
// For a linearly polarized wave this is the direction the particle moves.
func (p *Portrait) Axis() float64 {
	var best dynamo.Point
	bestR := 0.0
	for _, d := range p.Points {
		if r := math.Hypot(d.X, d.Y); r > bestR {
			bestR, best = r, d
		}
	}
	if bestR == 0 {
		return 0
	}
	a := math.Atan2(best.Y, best.X)
	if a <= -math.Pi/2 {
		a += math.Pi
	} else if a > math.Pi/2 {
		a -= math.Pi
	}
	return a
}

// PortraitToASCII renders the portrait on a character grid with axes
// through the origin.
func PortraitToASCII(portrait *Portrait, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 1 || height < 1 {
		return ""
	}

	// Symmetric bounds keep the origin centered.
	extent := 0.0
	for _, p := range portrait.Points {
		extent = math.Max(extent, math.Max(math.Abs(p.X), math.Abs(p.Y)))
	}
	if extent == 0 {
		extent = 1
	}
	extent *= 1.1
	minX, minY := -extent, -extent
	rangeX, rangeY := 2*extent, 2*extent

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	col0 := int((0 - minX) / rangeX * float64(width-1))
	for row := 0; row < height; row++ {
		canvas[row][col0] = '│'
	}
	row0 := height - 1 - int((0-minY)/rangeY*float64(height-1))
	for col := 0; col < width; col++ {
		canvas[row0][col] = '─'
	}
	canvas[row0][col0] = '┼'

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
