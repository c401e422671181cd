package mathutil

import "math"

// Mat4 is a 4×4 layer transform stored row-major, indexed m11..m44.
// Points are row vectors: p' = p × M, so translation lives in m41..m43 and
// the perspective term in m34. Value type for zero heap allocation.
type Mat4 [16]float64

// Element indices, named after the layer-transform convention.
const (
	M11, M12, M13, M14 = 0, 1, 2, 3
	M21, M22, M23, M24 = 4, 5, 6, 7
	M31, M32, M33, M34 = 8, 9, 10, 11
	M41, M42, M43, M44 = 12, 13, 14, 15
)

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Mul returns a × b: a point transformed by the result is transformed
// by a first, then by b.
func Mat4Mul(a, b Mat4) Mat4 {
	var m Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[r*4+c] = a[r*4+0]*b[0*4+c] + a[r*4+1]*b[1*4+c] +
				a[r*4+2]*b[2*4+c] + a[r*4+3]*b[3*4+c]
		}
	}
	return m
}

// Then returns m followed by next.
func (m Mat4) Then(next Mat4) Mat4 {
	return Mat4Mul(m, next)
}

// Translation returns a pure translation.
func Translation(tx, ty, tz float64) Mat4 {
	m := Mat4Identity()
	m[M41], m[M42], m[M43] = tx, ty, tz
	return m
}

// Perspective returns identity with m34 = -1/distance, the single-point
// projection used as a container's sublayer transform.
func Perspective(distance float64) Mat4 {
	m := Mat4Identity()
	m[M34] = -1 / distance
	return m
}

// MulVec4 returns v × m.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	var out Vec4
	for c := 0; c < 4; c++ {
		out[c] = v[0]*m[0*4+c] + v[1]*m[1*4+c] + v[2]*m[2*4+c] + v[3]*m[3*4+c]
	}
	return out
}

// Project transforms p (w=1) and applies the homogeneous divide to x and y.
// The returned z is the pre-divide depth; w is returned so callers can do
// perspective-correct interpolation. A non-positive w means the point lies
// behind the eye.
func (m Mat4) Project(p Vec3) (Vec3, float64) {
	h := m.MulVec4(Vec4{p[0], p[1], p[2], 1})
	w := h[3]
	if w == 0 {
		w = math.SmallestNonzeroFloat64
	}
	return Vec3{h[0] / w, h[1] / w, h[2]}, w
}

// Affine reduces m to its 2D affine shadow using the column projection
// a=m11, b=m12, c=m21, d=m22, tx=m41, ty=m42.
func (m Mat4) Affine() Affine2D {
	return Affine2D{
		A: m[M11], B: m[M12],
		C: m[M21], D: m[M22],
		TX: m[M41], TY: m[M42],
	}
}

// ApproxEqual reports whether every element of m and o differs by at most eps.
func (m Mat4) ApproxEqual(o Mat4, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-o[i]) > eps {
			return false
		}
	}
	return true
}
