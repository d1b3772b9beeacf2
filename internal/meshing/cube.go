package meshing

import "github.com/go-gl/mathgl/mgl32"

// CubeVertexCount is the number of vertices EmitCube appends: 6 faces of 2 triangles.
const CubeVertexCount = 36

type cubeVertex struct {
	pos mgl32.Vec3
	u   float32
	v   float32
}

// Unit cube with its min corner at the origin, six vertices per face in
// front, top, right, left, back, bottom order.
var cubeVertices = [CubeVertexCount]cubeVertex{
	// Front (z=0)
	{mgl32.Vec3{0, 0, 0}, 0, 0}, {mgl32.Vec3{1, 1, 0}, 1, 1}, {mgl32.Vec3{1, 0, 0}, 1, 0},
	{mgl32.Vec3{0, 0, 0}, 0, 0}, {mgl32.Vec3{0, 1, 0}, 0, 1}, {mgl32.Vec3{1, 1, 0}, 1, 1},
	// Top (y=1)
	{mgl32.Vec3{0, 1, 0}, 0, 0}, {mgl32.Vec3{0, 1, 1}, 0, 1}, {mgl32.Vec3{1, 1, 1}, 1, 1},
	{mgl32.Vec3{0, 1, 0}, 0, 0}, {mgl32.Vec3{1, 1, 1}, 1, 1}, {mgl32.Vec3{1, 1, 0}, 1, 0},
	// Right (x=1)
	{mgl32.Vec3{1, 0, 0}, 0, 0}, {mgl32.Vec3{1, 1, 0}, 1, 0}, {mgl32.Vec3{1, 1, 1}, 1, 1},
	{mgl32.Vec3{1, 0, 0}, 0, 0}, {mgl32.Vec3{1, 1, 1}, 1, 1}, {mgl32.Vec3{1, 0, 1}, 0, 1},
	// Left (x=0)
	{mgl32.Vec3{0, 0, 0}, 0, 0}, {mgl32.Vec3{0, 1, 0}, 1, 0}, {mgl32.Vec3{0, 1, 1}, 1, 1},
	{mgl32.Vec3{0, 0, 0}, 0, 0}, {mgl32.Vec3{0, 1, 1}, 1, 1}, {mgl32.Vec3{0, 0, 1}, 0, 1},
	// Back (z=1)
	{mgl32.Vec3{0, 0, 1}, 0, 0}, {mgl32.Vec3{1, 0, 1}, 1, 0}, {mgl32.Vec3{1, 1, 1}, 1, 1},
	{mgl32.Vec3{0, 0, 1}, 0, 0}, {mgl32.Vec3{1, 1, 1}, 1, 1}, {mgl32.Vec3{0, 1, 1}, 0, 1},
	// Bottom (y=0)
	{mgl32.Vec3{0, 0, 0}, 0, 0}, {mgl32.Vec3{1, 0, 0}, 1, 0}, {mgl32.Vec3{1, 0, 1}, 1, 1},
	{mgl32.Vec3{0, 0, 0}, 0, 0}, {mgl32.Vec3{1, 0, 1}, 1, 1}, {mgl32.Vec3{0, 0, 1}, 0, 1},
}

var cubeFaceNormals = [6]mgl32.Vec3{
	{0, 0, -1}, // front
	{0, 1, 0},  // top
	{1, 0, 0},  // right
	{-1, 0, 0}, // left
	{0, 0, 1},  // back
	{0, -1, 0}, // bottom
}

// EmitCube appends the unit cube transformed by p to b. Every vertex of a
// face carries that face's normal.
func EmitCube(p Placement, b *Batch) {
	var normals [6]mgl32.Vec3
	if b.withNormals {
		xf := p.normalTransform()
		for i, n := range cubeFaceNormals {
			normals[i] = xf(n)
		}
	}
	for i, cv := range cubeVertices {
		b.appendVertex(p.Point(cv.pos), cv.u, cv.v, normals[i/6])
	}
}
