package batch

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"paper-fold-renderer/internal/fold"
	"paper-fold-renderer/internal/imageio"
	"paper-fold-renderer/internal/mathutil"
	"paper-fold-renderer/internal/postprocess"
	"paper-fold-renderer/internal/raster"
)

// Crop modes applied after downsampling.
const (
	CropNone      = ""
	CropFootprint = "footprint"
	CropAlpha     = "alpha"
)

// Config holds all shared resources for a sweep. Source is read-only and
// shared by every worker; each worker owns its engine.
type Config struct {
	Source    fold.RasterImage
	Joints    int
	Direction fold.Direction
	Options   []fold.Option
	Render    raster.Options
	Crop      string
	Format    imageio.Format
	OutputDir string
	Workers   int
	// Progress receives periodic progress lines. Nil disables them.
	Progress io.Writer
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Frame     int
	Angle     float64
	Footprint mathutil.Rect
	File      string // relative to OutputDir
	Success   bool
	Error     string
}

// Angles returns frames evenly spaced angles from start to end inclusive.
// A single frame uses start.
func Angles(start, end float64, frames int) []float64 {
	if frames <= 0 {
		return nil
	}
	out := make([]float64, frames)
	if frames == 1 {
		out[0] = start
		return out
	}
	step := (end - start) / float64(frames-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	out[frames-1] = end
	return out
}

// FrameName is the output file name of frame i.
func FrameName(i int, f imageio.Format) string {
	return fmt.Sprintf("frame_%04d%s", i, f.Ext())
}

// Run renders one frame per angle using a worker pool.
func Run(cfg Config, angles []float64) []Result {
	total := len(angles)
	results := make([]Result, total)
	if total == 0 {
		return results
	}
	workers := max(1, min(cfg.Workers, total))
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress != nil {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						fmt.Fprintf(cfg.Progress, "  [%d/%d] %.1f frames/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	frameChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e, err := newEngine(cfg)
			for idx := range frameChan {
				if err != nil {
					results[idx] = Result{Frame: idx, Angle: angles[idx], Error: err.Error()}
				} else {
					results[idx] = processFrame(cfg, e, idx, angles[idx])
				}
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range angles {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	fold.Logger().Debug("batch: sweep finished",
		slog.Int("frames", total),
		slog.Int("workers", workers),
		slog.Duration("elapsed", time.Since(start)))

	return results
}

func newEngine(cfg Config) (*fold.Engine, error) {
	source := cfg.Source
	rasterize := func() (fold.RasterImage, error) { return source, nil }
	return fold.New(rasterize, cfg.Joints, cfg.Direction, cfg.Options...)
}

func processFrame(cfg Config, e *fold.Engine, idx int, angle float64) Result {
	e.SetAngle(angle)
	res := Result{
		Frame:     idx,
		Angle:     angle,
		Footprint: e.Footprint(),
		File:      FrameName(idx, cfg.Format),
	}

	img := Compose(e, cfg.Render, cfg.Crop)
	if err := imageio.Save(filepath.Join(cfg.OutputDir, res.File), img, cfg.Format); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Success = true
	return res
}

// Compose renders the engine's current state, downsamples the supersampled
// raster and applies the crop mode. A degenerate footprint, or any crop that
// would leave no pixels, is skipped.
func Compose(e *fold.Engine, opts raster.Options, crop string) *image.NRGBA {
	img := raster.Render(e, opts)

	// Post-processing: supersample downsample
	if opts.Supersample > 1 {
		_, final := raster.RenderSize(e, opts)
		img = postprocess.Downsample(img, final.X, final.Y)
	}

	var cropped *image.NRGBA
	switch crop {
	case CropFootprint:
		fp := FootprintRect(e)
		if fp.IsDegenerate() {
			return img
		}
		scale := opts.Scale
		if !(scale > 0) {
			scale = 1
		}
		cropped = postprocess.CropFootprint(img, fp, scale)
	case CropAlpha:
		cropped = postprocess.CropAlpha(img)
	default:
		return img
	}
	if cropped.Bounds().Empty() {
		return img
	}
	return cropped
}

// FootprintRect places the footprint inside the base bounds. Reversed chains
// are anchored at the far edge, so their footprint is aligned to it.
func FootprintRect(e *fold.Engine) mathutil.Rect {
	fp := e.Footprint()
	if !e.Direction().Reversed() {
		return fp
	}
	base := e.BaseBounds()
	if e.Layout() == fold.Horizontal {
		fp.X = base.X + base.Width - fp.Width
	} else {
		fp.Y = base.Y + base.Height - fp.Height
	}
	return fp
}
