package fold

import (
	"image"
	"image/color"
)

// gradient returns a w×h image whose pixels encode their own coordinates.
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x>>8<<4 | y>>8), A: 255})
		}
	}
	return img
}

func capture(w, h int, scale float64) RasterizeFunc {
	return func() (RasterImage, error) {
		return RasterImage{Pixels: gradient(w, h), Scale: scale, Orientation: OrientationUp}, nil
	}
}

func mustEngine(t interface {
	Helper()
	Fatalf(string, ...any)
}, w, h, joints int, dir Direction, opts ...Option) *Engine {
	t.Helper()
	e, err := New(capture(w, h, 1), joints, dir, opts...)
	if err != nil {
		t.Fatalf("New(%dx%d, %d, %s): %v", w, h, joints, dir, err)
	}
	return e
}
