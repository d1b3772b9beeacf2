package meshing

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSphereCounts(t *testing.T) {
	s := NewSphere(1, 20, 20)
	if got, want := s.GridVertexCount(), 21*21; got != want {
		t.Fatalf("grid vertices = %d, want %d", got, want)
	}
	if got, want := s.VertexCount(), 20*20*6; got != want {
		t.Fatalf("expanded vertices = %d, want %d", got, want)
	}

	b := NewBatch(true)
	s.AddToBatch(Identity(), b)
	if b.VertexCount() != s.VertexCount() || !b.Consistent() {
		t.Fatalf("batch holds %d vertices, consistent=%v", b.VertexCount(), b.Consistent())
	}
}

func TestSphereNormalsAreUnitDirections(t *testing.T) {
	const r = 2.5
	b := NewBatch(true)
	EmitSphere(r, 8, 12, Identity(), b)
	for i := 0; i < len(b.Positions); i += 3 {
		p := mgl32.Vec3{b.Positions[i], b.Positions[i+1], b.Positions[i+2]}
		n := mgl32.Vec3{b.Normals[i], b.Normals[i+1], b.Normals[i+2]}
		if !mgl32.FloatEqualThreshold(p.Len(), r, 1e-4) {
			t.Fatalf("vertex %d at distance %v, want %v", i/3, p.Len(), r)
		}
		if !n.ApproxEqualThreshold(p.Mul(1/r), 1e-4) {
			t.Fatalf("vertex %d normal %v is not its direction %v", i/3, n, p.Mul(1/r))
		}
	}
}

func TestSphereTranslatedNormalsUnchanged(t *testing.T) {
	b := NewBatch(true)
	EmitSphere(1, 4, 4, Identity().Translate(0.5, 1, -3), b)
	ref := NewBatch(true)
	EmitSphere(1, 4, 4, Identity(), ref)

	for i := range b.Normals {
		if !mgl32.FloatEqualThreshold(b.Normals[i], ref.Normals[i], 1e-6) {
			t.Fatalf("normal float %d changed under translation", i)
		}
	}
	if !mgl32.FloatEqualThreshold(b.Positions[1], ref.Positions[1]+1, 1e-5) {
		t.Fatalf("position not translated: %v vs %v", b.Positions[1], ref.Positions[1])
	}
}

func TestSphereUVRange(t *testing.T) {
	b := NewBatch(false)
	EmitSphere(1, 6, 6, Identity(), b)
	for i, uv := range b.UVs {
		if uv < 0 || uv > 1 {
			t.Fatalf("uv[%d] = %v", i, uv)
		}
	}
}

func TestSphereConsistentWinding(t *testing.T) {
	// Every triangle of a sphere centred at the origin winds the same way
	// relative to its outward direction.
	b := NewBatch(false)
	EmitSphere(1, 10, 10, Identity(), b)

	sign := 0
	for tri := 0; tri < b.VertexCount(); tri += 3 {
		v := func(k int) mgl32.Vec3 {
			i := (tri + k) * 3
			return mgl32.Vec3{b.Positions[i], b.Positions[i+1], b.Positions[i+2]}
		}
		a, bb, c := v(0), v(1), v(2)
		cross := bb.Sub(a).Cross(c.Sub(a))
		if cross.Len() < 1e-6 {
			continue // degenerate pole triangle
		}
		centroid := a.Add(bb).Add(c)
		s := 1
		if cross.Dot(centroid) < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if s != sign {
			t.Fatalf("triangle %d winds against the others", tri/3)
		}
	}
}

func TestSphereMinimumBands(t *testing.T) {
	s := NewSphere(1, 0, -3)
	if s.LatBands != 1 || s.LongBands != 1 {
		t.Fatalf("bands = %d x %d", s.LatBands, s.LongBands)
	}
}
