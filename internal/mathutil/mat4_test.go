package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func TestRotationAxes(t *testing.T) {
	a := math.Pi / 6
	s, c := math.Sincos(a)

	ry := Rotation(a, 0, 1, 0)
	assert.InDelta(t, c, ry[M11], eps)
	assert.InDelta(t, -s, ry[M13], eps)
	assert.InDelta(t, s, ry[M31], eps)
	assert.InDelta(t, 1, ry[M22], eps)

	rx := Rotation(a, 1, 0, 0)
	assert.InDelta(t, c, rx[M22], eps)
	assert.InDelta(t, s, rx[M23], eps)
	assert.InDelta(t, -s, rx[M32], eps)
	assert.InDelta(t, 1, rx[M11], eps)
}

func TestRotationZeroAxisIsIdentity(t *testing.T) {
	assert.True(t, Rotation(1.2, 0, 0, 0).ApproxEqual(Mat4Identity(), 1e-12))
}

func TestRotationInverse(t *testing.T) {
	m := Mat4Mul(RotationAbout(35, AxisY), RotationAbout(-35, AxisY))
	assert.True(t, m.ApproxEqual(Mat4Identity(), 1e-8))
}

func TestMulOrder(t *testing.T) {
	// translate then rotate 90° about z: (1,0) -> (2,0) -> (0,2)
	m := Translation(1, 0, 0).Then(Rotation(math.Pi/2, 0, 0, 1))
	p, w := m.Project(Vec3{1, 0, 0})
	assert.InDelta(t, 1, w, eps)
	assert.InDelta(t, 0, p[0], eps)
	assert.InDelta(t, 2, p[1], eps)
}

func TestPerspectiveProject(t *testing.T) {
	m := Perspective(700)
	p, w := m.Project(Vec3{100, 50, 70})
	// w = 1 - z/700
	assert.InDelta(t, 0.9, w, eps)
	assert.InDelta(t, 100/0.9, p[0], 1e-6)
	assert.InDelta(t, 50/0.9, p[1], 1e-6)
	assert.InDelta(t, 70, p[2], eps)
}

func TestAffineExtraction(t *testing.T) {
	m := Rotation(Deg2Rad(30), 0, 1, 0).Then(Translation(5, 7, 0))
	af := m.Affine()
	assert.InDelta(t, math.Cos(Deg2Rad(30)), af.A, eps)
	assert.InDelta(t, 1, af.D, eps)
	assert.InDelta(t, 5, af.TX, eps)
	assert.InDelta(t, 7, af.TY, eps)

	sz := af.ScaleSize(Size{Width: 200, Height: 100})
	assert.InDelta(t, 200*math.Cos(Deg2Rad(30)), sz.Width, eps)
	assert.InDelta(t, 100, sz.Height, eps)
}

func TestRectDegenerate(t *testing.T) {
	assert.False(t, Rect{Width: 1, Height: 1}.IsDegenerate())
	assert.True(t, Rect{Width: 0, Height: 1}.IsDegenerate())
	assert.True(t, Rect{Width: -3, Height: 1}.IsDegenerate())
	assert.True(t, Rect{Width: math.NaN(), Height: 1}.IsDegenerate())
}
