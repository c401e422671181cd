package mathutil

import "math"

// Rotation returns a rotation of angle radians about the axis (x, y, z),
// laid out for row vectors. The axis is normalized; a zero axis yields
// identity.
func Rotation(angle, x, y, z float64) Mat4 {
	axis := Vec3{x, y, z}.Normalize()
	if axis == (Vec3{}) {
		return Mat4Identity()
	}
	x, y, z = axis[0], axis[1], axis[2]
	s, c := math.Sincos(angle)
	t := 1 - c
	return Mat4{
		t*x*x + c, t*x*y + z*s, t*x*z - y*s, 0,
		t*x*y - z*s, t*y*y + c, t*y*z + x*s, 0,
		t*x*z + y*s, t*y*z - x*s, t*z*z + c, 0,
		0, 0, 0, 1,
	}
}

// RotationAbout returns a rotation about axis (x, y, z) given in degrees.
func RotationAbout(degrees float64, axis Vec3) Mat4 {
	return Rotation(Deg2Rad(degrees), axis[0], axis[1], axis[2])
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
