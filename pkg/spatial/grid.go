// Package spatial implements the uniform-grid hash used to find an agent's
// neighbours without scanning the whole flock.
//
// The grid stores indices into the caller's agent slice, never copies of the
// agents, so it is only meaningful for the positions it was filled with.
// Rebuild it every tick.
package spatial

import (
	"math"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// Key identifies a square cell of the plane.
type Key struct {
	X, Y int
}

// Grid maps a cell Key to the indices of the agents inside that cell.
// It is not safe for concurrent mutation; once filled, any number of
// goroutines may read it.
type Grid struct {
	cellSize float64
	cells    map[Key][]int
	size     int
}

// NewGrid returns an empty grid with square cells of side cellSize.
// cellSize must be strictly positive.
func NewGrid(cellSize float64) *Grid {
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[Key][]int),
	}
}

// CellSize returns the side of a cell.
func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// KeyOf returns the cell containing p, floor(p / cellSize) on each axis.
// The result is negative for points left of or above the origin.
func (g *Grid) KeyOf(p geometry.Vector2D) Key {
	return Key{
		X: int(math.Floor(p.X / g.cellSize)),
		Y: int(math.Floor(p.Y / g.cellSize)),
	}
}

// Reset empties every bucket.
// Slices are truncated, not dropped, so their backing arrays get reused
// by the next fill and a steady-state tick allocates almost nothing.
func (g *Grid) Reset() {
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
	g.size = 0
}

// Insert appends idx to the bucket of the cell containing p.
// Stored keys are never negative: a coordinate below zero lands in cell 0.
func (g *Grid) Insert(idx int, p geometry.Vector2D) {
	k := g.KeyOf(p)
	k.X = max(k.X, 0)
	k.Y = max(k.Y, 0)
	g.cells[k] = append(g.cells[k], idx)
	g.size++
}

// Rebuild resets the grid and inserts every point, using the slice index as agent index.
func (g *Grid) Rebuild(points []geometry.Vector2D) {
	g.Reset()
	for i, p := range points {
		g.Insert(i, p)
	}
}

// Bucket returns the indices stored in cell k. A cell that was never filled
// is just empty. The returned slice belongs to the grid.
func (g *Grid) Bucket(k Key) []int {
	return g.cells[k]
}

// Len returns how many indices are stored.
func (g *Grid) Len() int {
	return g.size
}

// Cells returns the number of non-empty buckets.
func (g *Grid) Cells() int {
	n := 0
	for _, b := range g.cells {
		if len(b) > 0 {
			n++
		}
	}
	return n
}

// AppendCandidates appends to dst every index stored in the 3x3 block of cells
// centred on the cell of p, and returns the extended slice.
// Cells with a negative coordinate are skipped, not wrapped or clamped, so
// points within one cell of the low edges see a smaller block.
// The result may contain the caller's own index.
func (g *Grid) AppendCandidates(dst []int, p geometry.Vector2D) []int {
	c := g.KeyOf(p)
	for x := c.X - 1; x <= c.X+1; x++ {
		if x < 0 {
			continue
		}
		for y := c.Y - 1; y <= c.Y+1; y++ {
			if y < 0 {
				continue
			}
			if bucket, ok := g.cells[Key{X: x, Y: y}]; ok {
				dst = append(dst, bucket...)
			}
		}
	}
	return dst
}
