package mathutil

import "fmt"

// Point is a 2D location in points (not pixels).
type Point struct {
	X, Y float64
}

// Size is a 2D extent in points.
type Size struct {
	Width, Height float64
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// Rect is an origin plus size. Width and Height may be zero, negative or
// NaN; no normalization is applied.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) Size() Size { return Size{r.Width, r.Height} }

// IsDegenerate reports whether either dimension is non-positive or NaN.
func (r Rect) IsDegenerate() bool {
	return !(r.Width > 0) || !(r.Height > 0)
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}

// Affine2D is a 2D affine map with coefficients named like a
// layer's affine transform:
//
//	x' = a*x + c*y + tx
//	y' = b*x + d*y + ty
type Affine2D struct {
	A, B, C, D float64
	TX, TY     float64
}

// ScaleSize multiplies s by the affine's axis-aligned scale factors (a, d),
// ignoring skew and translation.
func (t Affine2D) ScaleSize(s Size) Size {
	return Size{Width: s.Width * t.A, Height: s.Height * t.D}
}
