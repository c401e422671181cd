package postprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"paper-fold-renderer/internal/mathutil"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestDownsampleKeepsColor(t *testing.T) {
	src := solid(60, 40, color.NRGBA{R: 200, G: 120, B: 40, A: 255})
	out := Downsample(src, 30, 20)
	assert.Equal(t, image.Rect(0, 0, 30, 20), out.Bounds())
	got := out.NRGBAAt(15, 10)
	assert.InDelta(t, 200, int(got.R), 1)
	assert.InDelta(t, 120, int(got.G), 1)
	assert.InDelta(t, 40, int(got.B), 1)
	assert.Equal(t, uint8(255), got.A)
}

func TestDownsampleSameSize(t *testing.T) {
	src := solid(8, 8, color.NRGBA{A: 255})
	assert.Same(t, src, Downsample(src, 8, 8))
}

func TestCropAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	img.SetNRGBA(3, 4, color.NRGBA{R: 1, A: 255})
	img.SetNRGBA(10, 12, color.NRGBA{R: 2, A: 255})

	out := CropAlpha(img)
	assert.Equal(t, image.Rect(0, 0, 8, 9), out.Bounds())
	assert.Equal(t, uint8(1), out.NRGBAAt(0, 0).R)
	assert.Equal(t, uint8(2), out.NRGBAAt(7, 8).R)

	empty := image.NewNRGBA(image.Rect(0, 0, 5, 5))
	assert.Same(t, empty, CropAlpha(empty))
}

func TestCropFootprint(t *testing.T) {
	img := solid(100, 50, color.NRGBA{G: 9, A: 255})
	out := CropFootprint(img, mathutil.Rect{Width: 30.2, Height: 50}, 2)
	assert.Equal(t, image.Rect(0, 0, 60, 50), out.Bounds())

	out = CropFootprint(img, mathutil.Rect{Width: -10, Height: 50}, 1)
	assert.True(t, out.Bounds().Empty())
}
