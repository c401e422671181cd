package fold

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Slice cuts img into jointCount+1 equal strips along the layout's axis.
//
// Strip boundaries are computed in point space and multiplied by the image
// scale before cropping; pixel edges are floored so adjacent strips share
// an edge and the strip extents sum exactly to the image extent.
func Slice(img RasterImage, jointCount int, layout Layout) ([]StripImage, error) {
	if img.Pixels == nil {
		return nil, invalidGeometry("no pixels to slice")
	}
	if !(img.Scale > 0) || math.IsInf(img.Scale, 0) {
		return nil, invalidGeometry("image scale %g must be positive", img.Scale)
	}
	if jointCount < 0 {
		return nil, invalidGeometry("negative joint count %d", jointCount)
	}

	b := img.Pixels.Bounds()
	pw, ph := b.Dx(), b.Dy()
	count := jointCount + 1
	if pw <= 0 || ph <= 0 {
		return nil, invalidGeometry("empty image %dx%d", pw, ph)
	}

	size := img.Size()
	stripW, stripH := size.Width, size.Height
	span := pw
	if layout == Vertical {
		stripH = size.Height / float64(count)
		span = ph
	} else {
		stripW = size.Width / float64(count)
	}
	if span < count {
		return nil, invalidGeometry("%d strips do not fit in %d pixels along the %s axis", count, span, layout)
	}

	edge := func(i int) int {
		// i*span/count in points is i*stripW; scaled back to pixels that is
		// exactly i*span/count. Integer arithmetic keeps the edges shared.
		return i * span / count
	}

	strips := make([]StripImage, count)
	for i := 0; i < count; i++ {
		var r image.Rectangle
		if layout == Vertical {
			r = image.Rect(b.Min.X, b.Min.Y+edge(i), b.Max.X, b.Min.Y+edge(i+1))
		} else {
			r = image.Rect(b.Min.X+edge(i), b.Min.Y, b.Min.X+edge(i+1), b.Max.Y)
		}
		px := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
		draw.Copy(px, image.Point{}, img.Pixels, r, draw.Src, nil)

		strips[i] = StripImage{
			Index:       i,
			Pixels:      px,
			Source:      r,
			Width:       stripW,
			Height:      stripH,
			Scale:       img.Scale,
			Orientation: img.Orientation,
		}
	}
	return strips, nil
}
