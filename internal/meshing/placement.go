package meshing

import (
	"voxelscene/internal/vecmath"

	"github.com/go-gl/mathgl/mgl32"
)

// Placement positions a primitive's local geometry in world space. Each call
// right-multiplies onto the current matrix, so the last operation is applied
// to the vertex first, as with a column-vector matrix stack.
type Placement struct {
	m mgl32.Mat4
}

// Identity returns a placement that leaves geometry where it is.
func Identity() Placement {
	return Placement{m: mgl32.Ident4()}
}

// FromMatrix wraps an existing transform.
func FromMatrix(m mgl32.Mat4) Placement {
	return Placement{m: m}
}

func (p Placement) Translate(x, y, z float32) Placement {
	p.m = p.m.Mul4(mgl32.Translate3D(x, y, z))
	return p
}

// Rotate rotates by deg degrees about the axis (x, y, z). A zero axis is ignored.
func (p Placement) Rotate(deg, x, y, z float32) Placement {
	axis, err := vecmath.Normalize(mgl32.Vec3{x, y, z})
	if err != nil {
		return p
	}
	p.m = p.m.Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(deg), axis))
	return p
}

func (p Placement) Scale(x, y, z float32) Placement {
	p.m = p.m.Mul4(mgl32.Scale3D(x, y, z))
	return p
}

// Matrix returns the composed transform.
func (p Placement) Matrix() mgl32.Mat4 {
	return p.m
}

// Point transforms a local position into world space.
func (p Placement) Point(v mgl32.Vec3) mgl32.Vec3 {
	return p.m.Mul4x1(v.Vec4(1)).Vec3()
}

// normalTransform returns a function mapping local normals to world normals.
// Normals go through the inverse-transpose of the upper 3x3 and are
// renormalized, which stays correct under non-uniform scale. A singular 3x3
// (a flattened primitive) leaves normals in local space.
func (p Placement) normalTransform() func(mgl32.Vec3) mgl32.Vec3 {
	m3 := p.m.Mat3()
	if m3.Det() == 0 {
		return func(n mgl32.Vec3) mgl32.Vec3 { return n }
	}
	nm := m3.Inv().Transpose()
	return func(n mgl32.Vec3) mgl32.Vec3 {
		out, err := vecmath.Normalize(nm.Mul3x1(n))
		if err != nil {
			return n
		}
		return out
	}
}
