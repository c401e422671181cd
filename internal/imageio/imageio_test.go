package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"paper-fold-renderer/internal/fold"
)

func sample() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 32), B: 77, A: 255})
		}
	}
	return img
}

func TestSaveLoadPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "frame.png")
	require.NoError(t, Save(path, sample(), FormatPNG))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, sample().Pix, got.Pix)
}

func TestLoadTGA(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, tga.Encode(&buf, sample()))
	path := filepath.Join(t.TempDir(), "surface.TGA")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, sample().Pix, got.Pix)

	// Without the extension hint TGA is the fallback for unknown magic.
	img, name, err := Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "tga", name)
	assert.Equal(t, sample().Pix, img.Pix)
}

func TestDecodeSniffsFormat(t *testing.T) {
	tests := []struct {
		name     string
		lossless bool
		encode   func(*bytes.Buffer) error
	}{
		{"png", true, func(b *bytes.Buffer) error { return png.Encode(b, sample()) }},
		{"jpeg", false, func(b *bytes.Buffer) error { return jpeg.Encode(b, sample(), nil) }},
		{"gif", false, func(b *bytes.Buffer) error { return gif.Encode(b, sample(), nil) }},
		{"webp", true, func(b *bytes.Buffer) error { return Encode(b, sample(), FormatWebP) }},
		{"bmp", true, func(b *bytes.Buffer) error { return bmp.Encode(b, sample()) }},
		{"tiff", true, func(b *bytes.Buffer) error { return tiff.Encode(b, sample(), nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.encode(&buf))

			img, name, err := Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, sample().Bounds(), img.Bounds())
			if tt.lossless {
				assert.Equal(t, sample().Pix, img.Pix)
			}
		})
	}
}

func TestEncodeWebPLossless(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sample(), FormatWebP))

	dec, err := webp.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, sample().Pix, ToNRGBA(dec).Pix)
}

func TestToNRGBAMovesOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 9, 7))
	src.Set(5, 5, color.RGBA{R: 255, A: 255})
	out := ToNRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 4, 2), out.Bounds())
	assert.Equal(t, uint8(255), out.NRGBAAt(0, 0).R)
}

func TestCaptureFeedsEngine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "surface.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, sample()))
	require.NoError(t, f.Close())

	e, err := fold.New(Capture(path, 2, fold.OrientationDown), 1, fold.LeftToRight)
	require.NoError(t, err)
	assert.Equal(t, 2, e.StripCount())
	assert.Equal(t, 4.0, e.Strips()[0].Width)
	assert.Equal(t, fold.OrientationDown, e.Strips()[1].Orientation)

	_, err = fold.New(Capture(filepath.Join(t.TempDir(), "missing.png"), 1, 0), 1, fold.LeftToRight)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatWebP, "WEBP": FormatWebP, ".png": FormatPNG} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("gif")
	assert.Error(t, err)
	assert.Equal(t, ".webp", FormatWebP.Ext())
}
