package meshing

import "github.com/go-gl/mathgl/mgl32"

// Batch is a flat triangle list with parallel position, UV and (optionally)
// normal streams. Vertex i is Positions[3i:3i+3], UVs[2i:2i+2], Normals[3i:3i+3].
type Batch struct {
	Positions []float32
	UVs       []float32
	Normals   []float32

	withNormals bool
}

// NewBatch creates an empty batch. When withNormals is false the normal
// stream stays empty.
func NewBatch(withNormals bool) *Batch {
	return &Batch{withNormals: withNormals}
}

// NewBatchCap creates an empty batch with room for n vertices.
func NewBatchCap(withNormals bool, n int) *Batch {
	b := &Batch{
		Positions:   make([]float32, 0, n*3),
		UVs:         make([]float32, 0, n*2),
		withNormals: withNormals,
	}
	if withNormals {
		b.Normals = make([]float32, 0, n*3)
	}
	return b
}

// HasNormals reports whether the batch carries a normal stream.
func (b *Batch) HasNormals() bool {
	return b.withNormals
}

// VertexCount returns the number of vertices appended so far.
func (b *Batch) VertexCount() int {
	return len(b.Positions) / 3
}

// Empty reports whether no vertices have been appended.
func (b *Batch) Empty() bool {
	return len(b.Positions) == 0
}

// Consistent reports whether all streams describe the same number of vertices.
func (b *Batch) Consistent() bool {
	n := len(b.Positions)
	if n%3 != 0 || len(b.UVs)*3 != n*2 {
		return false
	}
	if b.withNormals {
		return len(b.Normals) == n
	}
	return len(b.Normals) == 0
}

// Reset truncates every stream to zero length, keeping capacity for the next frame.
func (b *Batch) Reset() {
	b.Positions = b.Positions[:0]
	b.UVs = b.UVs[:0]
	b.Normals = b.Normals[:0]
}

func (b *Batch) appendVertex(p mgl32.Vec3, u, v float32, n mgl32.Vec3) {
	b.Positions = append(b.Positions, p[0], p[1], p[2])
	b.UVs = append(b.UVs, u, v)
	if b.withNormals {
		b.Normals = append(b.Normals, n[0], n[1], n[2])
	}
}

// FlipNormals negates the normals of every vertex from index from onwards.
// Used for meshes viewed from the inside, like the sky box.
func (b *Batch) FlipNormals(from int) {
	if !b.withNormals {
		return
	}
	for i := from * 3; i < len(b.Normals); i++ {
		b.Normals[i] = -b.Normals[i]
	}
}
