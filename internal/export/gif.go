package export

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"runtime"

	"github.com/san-kum/gwave/internal/dynamo"
	"github.com/san-kum/gwave/internal/sim"
	"golang.org/x/sync/errgroup"
)

// Delay returns the per-frame GIF delay in hundredths of a second.
func Delay(fps int) int {
	if fps <= 0 {
		return 0
	}
	d := (100 + fps/2) / fps
	if d < 1 {
		d = 1
	}
	return d
}

// GIF rasterizes the frames and encodes them as a looping animation.
// Frames are drawn concurrently; the encoded order follows the input.
func GIF(ctx context.Context, w io.Writer, frames []sim.FrameOutput, opts Options) error {
	if opts.FPS <= 0 {
		return dynamo.NewConfigError("fps", opts.FPS, dynamo.ErrInvalidOutput)
	}
	if err := opts.validate(); err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("gif: no frames")
	}

	pal := opts.Style.Palette()
	images := make([]*image.Paletted, len(frames))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range frames {
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rgba, err := Rasterize(f, opts)
			if err != nil {
				return fmt.Errorf("frame %d: %w", f.Frame, err)
			}
			pi := image.NewPaletted(rgba.Bounds(), pal)
			draw.FloydSteinberg.Draw(pi, rgba.Bounds(), rgba, image.Point{})
			images[i] = pi
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	delay := Delay(opts.FPS)
	anim := &gif.GIF{
		Image:     images,
		Delay:     make([]int, len(images)),
		LoopCount: 0,
	}
	for i := range anim.Delay {
		anim.Delay[i] = delay
	}
	return gif.EncodeAll(w, anim)
}

// WriteGIF renders the frames to a file at path.
func WriteGIF(ctx context.Context, path string, frames []sim.FrameOutput, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := GIF(ctx, f, frames, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
