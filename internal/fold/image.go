package fold

import (
	"image"

	"paper-fold-renderer/internal/mathutil"
)

// Orientation is the display orientation tag carried by a captured image.
// The engine never interprets it; strips inherit it unchanged.
type Orientation int

const (
	OrientationUp Orientation = iota
	OrientationDown
	OrientationLeft
	OrientationRight
	OrientationUpMirrored
	OrientationDownMirrored
	OrientationLeftMirrored
	OrientationRightMirrored
)

// RasterImage is a captured surface. Pixels are device pixels; Scale is
// pixels per point, so the surface measures Pixels.Bounds()/Scale points.
type RasterImage struct {
	Pixels      *image.NRGBA
	Scale       float64
	Orientation Orientation
}

// RasterizeFunc captures the surface to fold. It is supplied by the host and
// called exactly once while the engine is built.
type RasterizeFunc func() (RasterImage, error)

// Size returns the surface size in points.
func (r RasterImage) Size() mathutil.Size {
	b := r.Pixels.Bounds()
	return mathutil.Size{
		Width:  float64(b.Dx()) / r.Scale,
		Height: float64(b.Dy()) / r.Scale,
	}
}

// StripImage is one immutable slice of the captured surface.
type StripImage struct {
	Index int
	// Pixels owns a copy of the cropped region, origin at (0,0).
	Pixels *image.NRGBA
	// Source is the crop rectangle in the captured image's pixel space.
	Source image.Rectangle
	// Width and Height are in points: the surface extent divided by the
	// strip count along the split axis.
	Width, Height float64
	Scale         float64
	Orientation   Orientation
}

// clone copies the strip together with its pixel buffer.
func (s StripImage) clone() StripImage {
	if s.Pixels != nil {
		px := *s.Pixels
		px.Pix = append([]uint8(nil), s.Pixels.Pix...)
		s.Pixels = &px
	}
	return s
}

func (s *StripImage) Size() mathutil.Size {
	return mathutil.Size{Width: s.Width, Height: s.Height}
}
