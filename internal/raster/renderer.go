package raster

import (
	"image"
	"image/color"
	"log/slog"
	"math"

	"paper-fold-renderer/internal/fold"
	"paper-fold-renderer/internal/mathutil"
)

// Scene is what the compositor needs from a fold engine.
type Scene interface {
	Joints() []fold.JointSnapshot
	Container() *fold.PerspectiveContainer
}

// Options controls the output raster.
type Options struct {
	// Scale is output pixels per point. Zero means 1.
	Scale float64
	// Supersample renders at this multiple of the output size. The caller
	// downsamples; see postprocess.Downsample.
	Supersample int
	Background  color.NRGBA
}

// RenderSize returns the pixel size Render produces for s, and the final
// size after downsampling.
func RenderSize(s Scene, opts Options) (render, final image.Point) {
	scale, ss := opts.normalize()
	size := s.Container().Size()
	final = image.Pt(int(math.Ceil(size.Width*scale)), int(math.Ceil(size.Height*scale)))
	return final.Mul(ss), final
}

func (o Options) normalize() (float64, int) {
	scale := o.Scale
	if !(scale > 0) {
		scale = 1
	}
	ss := o.Supersample
	if ss < 1 {
		ss = 1
	}
	return scale, ss
}

// ClampOpacity limits a shadow opacity to [0, 1]; NaN counts as 0.
func ClampOpacity(o float64) float64 {
	if !(o > 0) {
		return 0
	}
	if o > 1 {
		return 1
	}
	return o
}

// Render composites every joint of s into an NRGBA image covering the
// perspective container. Shadows darken their strip by the clamped opacity.
// Quads with a corner behind the eye are skipped.
func Render(s Scene, opts Options) *image.NRGBA {
	scale, ss := opts.normalize()
	size, _ := RenderSize(s, opts)
	fb := NewFrameBuffer(size.X, size.Y, opts.Background)
	k := scale * float64(ss)

	corners := [4]mathutil.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}

	for _, j := range s.Joints() {
		if j.Content.Pixels == nil {
			continue
		}
		shade := 1.0
		if j.HasShadow {
			shade = 1 - ClampOpacity(j.ShadowOpacity)
		}

		var quad [4]Vertex
		visible := true
		for c, uv := range corners {
			p := mathutil.Vec3{uv[0] * j.Size.Width, uv[1] * j.Size.Height, 0}
			sp, w := j.World.Project(p)
			if w <= 0 {
				visible = false
				break
			}
			quad[c] = Vertex{
				X:    sp[0] * k,
				Y:    sp[1] * k,
				Z:    sp[2],
				InvW: 1 / w,
				U:    uv[0],
				V:    uv[1],
			}
		}
		if !visible {
			fold.Logger().Debug("raster: joint behind the eye", slog.Int("joint", j.Index))
			continue
		}

		tex := j.Content.Pixels
		RasterizeTriangle(fb, [3]Vertex{quad[0], quad[1], quad[2]}, tex, shade)
		RasterizeTriangle(fb, [3]Vertex{quad[0], quad[2], quad[3]}, tex, shade)
	}

	return fb.Image()
}
