package fold

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceExtentsSum(t *testing.T) {
	sizes := [][2]int{{400, 400}, {301, 97}, {7, 7}, {1000, 3}}
	for _, sz := range sizes {
		for n := 0; n < 7 && n < min(sz[0], sz[1]); n++ {
			for _, layout := range []Layout{Horizontal, Vertical} {
				t.Run(fmt.Sprintf("%dx%d/n=%d/%s", sz[0], sz[1], n, layout), func(t *testing.T) {
					img := RasterImage{Pixels: gradient(sz[0], sz[1]), Scale: 1}
					strips, err := Slice(img, n, layout)
					require.NoError(t, err)
					require.Len(t, strips, n+1)

					next := 0
					total := 0
					for i, s := range strips {
						assert.Equal(t, i, s.Index)
						if layout == Horizontal {
							assert.Equal(t, next, s.Source.Min.X, "gap or overlap before strip %d", i)
							assert.Equal(t, sz[1], s.Source.Dy())
							next = s.Source.Max.X
							total += s.Source.Dx()
						} else {
							assert.Equal(t, next, s.Source.Min.Y, "gap or overlap before strip %d", i)
							assert.Equal(t, sz[0], s.Source.Dx())
							next = s.Source.Max.Y
							total += s.Source.Dy()
						}
						assert.Positive(t, s.Source.Dx())
						assert.Positive(t, s.Source.Dy())
					}
					if layout == Horizontal {
						assert.Equal(t, sz[0], total)
					} else {
						assert.Equal(t, sz[1], total)
					}
				})
			}
		}
	}
}

func TestSliceCopiesContent(t *testing.T) {
	img := RasterImage{Pixels: gradient(120, 40), Scale: 1}
	strips, err := Slice(img, 2, Horizontal)
	require.NoError(t, err)

	s := strips[1]
	assert.Equal(t, 40.0, s.Width)
	assert.Equal(t, 40.0, s.Height)
	for _, p := range [][2]int{{0, 0}, {39, 39}, {17, 5}} {
		got := s.Pixels.NRGBAAt(p[0], p[1])
		want := img.Pixels.NRGBAAt(40+p[0], p[1])
		assert.Equal(t, want, got, "pixel %v", p)
	}

	// strips own their pixels
	s.Pixels.Pix[0] = 0xAB
	assert.NotEqual(t, uint8(0xAB), img.Pixels.Pix[img.Pixels.PixOffset(40, 0)])
}

func TestSliceHonorsScale(t *testing.T) {
	img := RasterImage{Pixels: gradient(400, 200), Scale: 2, Orientation: OrientationLeftMirrored}
	strips, err := Slice(img, 3, Horizontal)
	require.NoError(t, err)
	require.Len(t, strips, 4)

	for i, s := range strips {
		assert.Equal(t, 50.0, s.Width, "points")
		assert.Equal(t, 100.0, s.Height, "points")
		assert.Equal(t, 100, s.Source.Dx(), "pixels")
		assert.Equal(t, i*100, s.Source.Min.X)
		assert.Equal(t, 2.0, s.Scale)
		assert.Equal(t, OrientationLeftMirrored, s.Orientation)
	}
}

func TestSliceVertical(t *testing.T) {
	img := RasterImage{Pixels: gradient(400, 400), Scale: 1}
	strips, err := Slice(img, 3, Vertical)
	require.NoError(t, err)
	require.Len(t, strips, 4)
	for i, s := range strips {
		assert.Equal(t, 400.0, s.Width)
		assert.Equal(t, 100.0, s.Height)
		assert.Equal(t, img.Pixels.NRGBAAt(10, i*100+3), s.Pixels.NRGBAAt(10, 3))
	}
}

func TestSliceInvalidGeometry(t *testing.T) {
	tests := []struct {
		name   string
		img    RasterImage
		joints int
		layout Layout
	}{
		{"too narrow", RasterImage{Pixels: gradient(2, 50), Scale: 1}, 5, Horizontal},
		{"too short", RasterImage{Pixels: gradient(50, 3), Scale: 1}, 3, Vertical},
		{"negative joints", RasterImage{Pixels: gradient(50, 50), Scale: 1}, -1, Horizontal},
		{"nil pixels", RasterImage{Scale: 1}, 1, Horizontal},
		{"zero scale", RasterImage{Pixels: gradient(50, 50)}, 1, Horizontal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strips, err := Slice(tt.img, tt.joints, tt.layout)
			assert.Nil(t, strips)
			assert.True(t, errors.Is(err, ErrInvalidGeometry), "got %v", err)
		})
	}
}
