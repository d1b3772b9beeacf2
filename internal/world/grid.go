package world

import (
	"errors"
	"fmt"
	"iter"
)

const (
	GridSize  = 32
	MaxHeight = 4

	// GridOffset maps world origin to the centre cell: cell (x, z) holds the
	// column whose min corner is at world (x-GridOffset, z-GridOffset).
	GridOffset = 16

	// BaseElevation is the world Y of the bottom face of the lowest cube.
	BaseElevation = -1
)

// ErrOutOfBounds is returned for grid coordinates outside [0, GridSize).
var ErrOutOfBounds = errors.New("grid coordinate out of bounds")

// Grid is a square height-map of cube stacks.
type Grid struct {
	heights [GridSize][GridSize]int
}

// Column is one occupied grid cell.
type Column struct {
	X, Z   int
	Height int
}

// Exclusion reports whether the cell at (x, z) should be skipped while iterating.
type Exclusion func(x, z int) bool

// KeepOut excludes the square of cells within r of (cx, cz) on both axes.
func KeepOut(cx, cz, r int) Exclusion {
	return func(x, z int) bool {
		return abs(x-cx) <= r && abs(z-cz) <= r
	}
}

// New returns an empty grid.
func New() *Grid {
	return &Grid{}
}

// InBounds reports whether (x, z) addresses a grid cell.
func InBounds(x, z int) bool {
	return x >= 0 && x < GridSize && z >= 0 && z < GridSize
}

// HeightAt returns the stack height at (x, z).
func (g *Grid) HeightAt(x, z int) (int, error) {
	if !InBounds(x, z) {
		return 0, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, z)
	}
	return g.heights[x][z], nil
}

// SetHeight adds delta to the stack at (x, z), clamped to [0, MaxHeight],
// and returns the resulting height.
func (g *Grid) SetHeight(x, z, delta int) (int, error) {
	if !InBounds(x, z) {
		return 0, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, z)
	}
	h := clamp(g.heights[x][z]+delta, 0, MaxHeight)
	g.heights[x][z] = h
	return h, nil
}

// set stores an absolute height; used by seeding only.
func (g *Grid) set(x, z, h int) {
	g.heights[x][z] = clamp(h, 0, MaxHeight)
}

// Columns yields every non-empty cell in x-major order. The sequence is lazy
// and can be ranged over any number of times. A nil exclude keeps all cells.
func (g *Grid) Columns(exclude Exclusion) iter.Seq[Column] {
	return func(yield func(Column) bool) {
		for x := range GridSize {
			for z := range GridSize {
				h := g.heights[x][z]
				if h == 0 {
					continue
				}
				if exclude != nil && exclude(x, z) {
					continue
				}
				if !yield(Column{X: x, Z: z, Height: h}) {
					return
				}
			}
		}
	}
}

// Occupied returns the number of non-empty cells.
func (g *Grid) Occupied() int {
	n := 0
	for range g.Columns(nil) {
		n++
	}
	return n
}

// Cubes returns the total number of unit cubes stacked in the grid.
func (g *Grid) Cubes() int {
	n := 0
	for c := range g.Columns(nil) {
		n += c.Height
	}
	return n
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := *g
	return &c
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
