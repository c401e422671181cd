package raster

import (
	"image"
	"math"
)

// Vertex is a projected corner of a strip quad.
type Vertex struct {
	X, Y float64 // screen pixels
	Z    float64 // depth before the perspective divide, larger is nearer
	InvW float64 // 1/w, for perspective-correct interpolation
	U, V float64 // texture coordinates in [0,1]
}

// RasterizeTriangle fills one textured triangle with z-buffering.
// Texture coordinates and depth are interpolated perspective-correctly.
// shade multiplies the texel color; 1 leaves it untouched, 0 is black.
//
// This is the HOT PATH: no allocation in the pixel loop.
func RasterizeTriangle(fb *FrameBuffer, tri [3]Vertex, tex *image.NRGBA, shade float64) {
	x0, y0 := tri[0].X, tri[0].Y
	x1, y1 := tri[1].X, tri[1].Y
	x2, y2 := tri[2].X, tri[2].Y

	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2)))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2)))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2)))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2)))

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-10 && det < 1e-10 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	// Attributes pre-multiplied by 1/w
	iw0, iw1, iw2 := tri[0].InvW, tri[1].InvW, tri[2].InvW
	uw0, uw1, uw2 := tri[0].U*iw0, tri[1].U*iw1, tri[2].U*iw2
	vw0, vw1, vw2 := tri[0].V*iw0, tri[1].V*iw1, tri[2].V*iw2
	zw0, zw1, zw2 := tri[0].Z*iw0, tri[1].Z*iw1, tri[2].Z*iw2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -1e-9 || w1 < -1e-9 || w2 < -1e-9 {
				continue
			}

			iw := w0*iw0 + w1*iw1 + w2*iw2
			if iw <= 0 {
				continue
			}
			z := (w0*zw0 + w1*zw1 + w2*zw2) / iw
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}

			u := (w0*uw0 + w1*uw1 + w2*uw2) / iw
			v := (w0*vw0 + w1*vw1 + w2*vw2) / iw
			cr, cg, cb, ca := SampleTexture(tex, u, v)

			// Skip transparent texels
			if ca < 8 {
				continue
			}
			fb.ZBuf[zIdx] = z

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = clamp255(float64(cr) * shade)
			fb.Color[pxIdx+1] = clamp255(float64(cg) * shade)
			fb.Color[pxIdx+2] = clamp255(float64(cb) * shade)
			fb.Color[pxIdx+3] = ca
		}
	}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
