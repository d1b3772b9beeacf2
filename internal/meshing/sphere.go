package meshing

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Sphere is an indexed UV sphere centred on the local origin.
type Sphere struct {
	Radius    float32
	LatBands  int
	LongBands int

	vertices []mgl32.Vec3
	normals  []mgl32.Vec3
	uvs      [][2]float32
	indices  []int
}

// NewSphere builds the (latBands+1)*(longBands+1) vertex grid and its
// triangle indices. Bands below 1 are raised to 1.
func NewSphere(radius float32, latBands, longBands int) *Sphere {
	latBands = max(latBands, 1)
	longBands = max(longBands, 1)
	s := &Sphere{
		Radius:    radius,
		LatBands:  latBands,
		LongBands: longBands,
	}

	n := (latBands + 1) * (longBands + 1)
	s.vertices = make([]mgl32.Vec3, 0, n)
	s.normals = make([]mgl32.Vec3, 0, n)
	s.uvs = make([][2]float32, 0, n)

	for lat := 0; lat <= latBands; lat++ {
		theta := float32(lat) * math32.Pi / float32(latBands)
		sinTheta, cosTheta := math32.Sin(theta), math32.Cos(theta)

		for lon := 0; lon <= longBands; lon++ {
			phi := float32(lon) * 2 * math32.Pi / float32(longBands)
			sinPhi, cosPhi := math32.Sin(phi), math32.Cos(phi)

			dir := mgl32.Vec3{cosPhi * sinTheta, cosTheta, sinPhi * sinTheta}
			s.vertices = append(s.vertices, dir.Mul(radius))
			s.normals = append(s.normals, dir)
			s.uvs = append(s.uvs, [2]float32{
				float32(lon) / float32(longBands),
				1 - float32(lat)/float32(latBands),
			})
		}
	}

	s.indices = make([]int, 0, latBands*longBands*6)
	for lat := 0; lat < latBands; lat++ {
		for lon := 0; lon < longBands; lon++ {
			first := lat*(longBands+1) + lon
			second := first + longBands + 1
			s.indices = append(s.indices,
				first, second, first+1,
				second, second+1, first+1,
			)
		}
	}
	return s
}

// VertexCount returns the number of vertices AddToBatch appends.
func (s *Sphere) VertexCount() int {
	return len(s.indices)
}

// GridVertexCount returns the size of the shared vertex grid.
func (s *Sphere) GridVertexCount() int {
	return len(s.vertices)
}

// AddToBatch expands the indexed mesh into one vertex per triangle corner,
// transformed by p.
func (s *Sphere) AddToBatch(p Placement, b *Batch) {
	var xf func(mgl32.Vec3) mgl32.Vec3
	if b.withNormals {
		xf = p.normalTransform()
	}
	for _, idx := range s.indices {
		var n mgl32.Vec3
		if xf != nil {
			n = xf(s.normals[idx])
		}
		uv := s.uvs[idx]
		b.appendVertex(p.Point(s.vertices[idx]), uv[0], uv[1], n)
	}
}

// EmitSphere builds a sphere and appends it to b in one step.
func EmitSphere(radius float32, latBands, longBands int, p Placement, b *Batch) {
	NewSphere(radius, latBands, longBands).AddToBatch(p, b)
}
