package vecmath

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrDivideByZero is returned when a vector operation would divide by zero,
// either by an explicit zero scalar or by normalizing a zero-length vector.
var ErrDivideByZero = errors.New("division by zero")

// Div divides every component of v by s.
func Div(v mgl32.Vec3, s float32) (mgl32.Vec3, error) {
	if s == 0 {
		return v, ErrDivideByZero
	}
	return v.Mul(1 / s), nil
}

// Normalize returns v scaled to unit length.
func Normalize(v mgl32.Vec3) (mgl32.Vec3, error) {
	l := v.Len()
	if l == 0 {
		return v, ErrDivideByZero
	}
	return v.Mul(1 / l), nil
}

// AngleBetween returns the angle between a and b in degrees.
func AngleBetween(a, b mgl32.Vec3) (float32, error) {
	m := a.Len() * b.Len()
	if m == 0 {
		return 0, ErrDivideByZero
	}
	c := a.Dot(b) / m
	// rounding can push c slightly outside [-1, 1]
	c = mgl32.Clamp(c, -1, 1)
	return mgl32.RadToDeg(math32.Acos(c)), nil
}

// TriangleArea returns the area of the triangle spanned by a and b.
func TriangleArea(a, b mgl32.Vec3) float32 {
	return 0.5 * a.Cross(b).Len()
}

// RotateDeg rotates v about axis by deg degrees (right-handed).
// The axis does not need to be unit length.
func RotateDeg(v, axis mgl32.Vec3, deg float32) (mgl32.Vec3, error) {
	n, err := Normalize(axis)
	if err != nil {
		return v, err
	}
	m := mgl32.HomogRotate3D(mgl32.DegToRad(deg), n)
	return m.Mul4x1(v.Vec4(0)).Vec3(), nil
}

// Elevation returns the angle of v above the XZ plane in degrees.
func Elevation(v mgl32.Vec3) float32 {
	h := math32.Hypot(v.X(), v.Z())
	return mgl32.RadToDeg(math32.Atan2(v.Y(), h))
}
