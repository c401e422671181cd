package imageio

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"paper-fold-renderer/internal/fold"
)

// decoder pairs a format with its leading magic bytes; '?' matches any byte.
type decoder struct {
	name   string
	magic  string
	decode func(io.Reader) (image.Image, error)
}

// TGA has no magic, and the tga package registers itself with image.Decode
// under an empty prefix that matches everything. Formats are therefore
// sniffed here and TGA is only the fallback.
var decoders = []decoder{
	{"png", "\x89PNG\r\n\x1a\n", png.Decode},
	{"jpeg", "\xff\xd8", jpeg.Decode},
	{"gif", "GIF8?a", gif.Decode},
	{"webp", "RIFF????WEBPVP8", webp.Decode},
	{"bmp", "BM????\x00\x00\x00\x00", bmp.Decode},
	{"tiff", "II*\x00", tiff.Decode},
	{"tiff", "MM\x00*", tiff.Decode},
}

func (d decoder) match(b []byte) bool {
	if len(b) < len(d.magic) {
		return false
	}
	for i := 0; i < len(d.magic); i++ {
		if d.magic[i] != '?' && d.magic[i] != b[i] {
			return false
		}
	}
	return true
}

// Load reads and decodes an image file into NRGBA. Files with a .tga
// extension go straight to the TGA decoder.
func Load(path string) (*image.NRGBA, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: read %s: %w", path, err)
	}

	var img *image.NRGBA
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		var m image.Image
		if m, err = tga.Decode(bytes.NewReader(raw)); err == nil {
			img = ToNRGBA(m)
		}
	} else {
		img, _, err = Decode(bytes.NewReader(raw))
	}
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s: %w", path, err)
	}
	return img, nil
}

// Decode sniffs the format from its magic bytes and returns the image as
// NRGBA together with the format name. Input matching no known magic is
// decoded as TGA.
func Decode(r io.Reader) (*image.NRGBA, string, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(16)

	name, decode := "tga", tga.Decode
	for _, d := range decoders {
		if d.match(head) {
			name, decode = d.name, d.decode
			break
		}
	}

	img, err := decode(br)
	if err != nil {
		return nil, "", err
	}
	return ToNRGBA(img), name, nil
}

// ToNRGBA converts any image to NRGBA with its origin moved to (0,0).
func ToNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Capture returns a rasterize function for an image file. The file is read
// when the engine calls it, not before. scale is pixels per point.
func Capture(path string, scale float64, orientation fold.Orientation) fold.RasterizeFunc {
	return func() (fold.RasterImage, error) {
		img, err := Load(path)
		if err != nil {
			return fold.RasterImage{}, err
		}
		return fold.RasterImage{Pixels: img, Scale: scale, Orientation: orientation}, nil
	}
}
