package postprocess

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"paper-fold-renderer/internal/mathutil"
)

// CropAlpha crops to the bounding box of non-transparent pixels.
// A fully transparent image is returned unchanged.
func CropAlpha(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.Pix[img.PixOffset(x, y)+3] == 0 {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < minX || maxY < minY {
		return img
	}
	return copyRect(img, image.Rect(minX, minY, maxX+1, maxY+1))
}

// CropFootprint crops to a footprint given in points, scaled to pixels.
// Negative or NaN dimensions crop to nothing; the result is clipped to img.
func CropFootprint(img *image.NRGBA, fp mathutil.Rect, scale float64) *image.NRGBA {
	px := func(v float64) int {
		if math.IsNaN(v) {
			return 0
		}
		return int(math.Round(v * scale))
	}
	r := image.Rect(px(fp.X), px(fp.Y), px(fp.X)+max(px(fp.Width), 0), px(fp.Y)+max(px(fp.Height), 0))
	return copyRect(img, r.Intersect(img.Bounds()))
}

func copyRect(img *image.NRGBA, r image.Rectangle) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Copy(out, image.Point{}, img, r, draw.Src, nil)
	return out
}
