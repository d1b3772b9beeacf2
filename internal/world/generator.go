package world

import (
	"math/rand"
)

// Heights used by the fixed layout.
const (
	wallHeight = MaxHeight
	roomHeight = 3
)

// Generator seeds a grid with the fixed layout and a random scatter of stone stacks.
type Generator struct {
	rng    *rand.Rand
	stones int
}

// NewGenerator creates a generator whose random scatter makes the given
// number of placement attempts.
func NewGenerator(seed int64, stones int) *Generator {
	return &Generator{
		rng:    rand.New(rand.NewSource(seed)),
		stones: stones,
	}
}

// Seed fills g with the deterministic layout followed by the random scatter,
// and returns how many random stacks were placed.
func (gen *Generator) Seed(g *Grid) int {
	SeedLayout(g)
	return gen.AddRandomStones(g, gen.stones)
}

// SeedLayout writes the deterministic part of the map: border walls, the room
// with its doorway, and the stepped pyramid.
func SeedLayout(g *Grid) {
	// Border walls
	for i := range GridSize {
		g.set(0, i, wallHeight)
		g.set(GridSize-1, i, wallHeight)
		g.set(i, 0, wallHeight)
		g.set(i, GridSize-1, wallHeight)
	}

	// Room outline
	for x := 10; x < 15; x++ {
		g.set(x, 14, roomHeight)
	}
	for x := 10; x < 15; x++ {
		if x == 12 {
			// doorway: two open cells with a lintel stack behind them
			g.set(x, 10, 0)
			g.set(x, 11, 0)
			g.set(x, 12, roomHeight)
			continue
		}
		g.set(x, 10, roomHeight)
	}
	for z := 10; z < 15; z++ {
		g.set(10, z, roomHeight)
		g.set(14, z, roomHeight)
	}

	// Stepped pyramid; the base overwrites the border cells it covers.
	fillSquare(g, 25, 32, 1)
	fillSquare(g, 26, 31, 2)
	fillSquare(g, 27, 30, 3)
	g.set(28, 28, 4)
}

// AddRandomStones attempts count square stacks of size 1 or 2 and height 1-3
// strictly inside the border. A placement is skipped, not retried, when any
// cell of its footprint is already occupied.
func (gen *Generator) AddRandomStones(g *Grid, count int) int {
	placed := 0
	for range count {
		size := gen.rng.Intn(2) + 1
		height := gen.rng.Intn(3) + 1
		x := gen.rng.Intn(GridSize-size-2) + 1
		z := gen.rng.Intn(GridSize-size-2) + 1

		if !footprintEmpty(g, x, z, size) {
			continue
		}
		for i := x; i < x+size; i++ {
			for j := z; j < z+size; j++ {
				g.set(i, j, height)
			}
		}
		placed++
	}
	return placed
}

func footprintEmpty(g *Grid, x, z, size int) bool {
	for i := x; i < x+size; i++ {
		for j := z; j < z+size; j++ {
			if g.heights[i][j] != 0 {
				return false
			}
		}
	}
	return true
}

func fillSquare(g *Grid, from, to, h int) {
	for x := from; x < to; x++ {
		for z := from; z < to; z++ {
			g.set(x, z, h)
		}
	}
}
