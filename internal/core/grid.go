package core

import (
	"errors"
	"fmt"
	"math"
)

// MaxCells bounds the number of cells a Grid may allocate.
const MaxCells = 1 << 30

// ErrGridTooLarge reports that (2R+1)^D cells cannot be allocated.
var ErrGridTooLarge = errors.New("grid too large to be allocated, reduce the radius")

// Grid stores a D-dimensional hypercube of byte-sized colors with side 2R+1.
// Axis 0 is the most significant coordinate of the flat index.
type Grid struct {
	Dim    int
	Radius int
	Side   int

	stride []int
	data   []uint8
}

// NewGrid allocates a zeroed grid of the given dimension and radius.
func NewGrid(dim, radius int) (*Grid, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("grid dimension must be positive, got %d", dim)
	}
	if radius < 0 {
		return nil, fmt.Errorf("grid radius must not be negative, got %d", radius)
	}
	side := 2*radius + 1
	total := 1
	for i := 0; i < dim; i++ {
		if total > math.MaxInt/side || total*side > MaxCells {
			return nil, fmt.Errorf("%w (dim=%d radius=%d)", ErrGridTooLarge, dim, radius)
		}
		total *= side
	}
	stride := make([]int, dim)
	s := 1
	for i := dim - 1; i >= 0; i-- {
		stride[i] = s
		s *= side
	}
	return &Grid{Dim: dim, Radius: radius, Side: side, stride: stride, data: make([]uint8, total)}, nil
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []uint8 { return g.data }

// Strides returns the flat-index step of each axis.
func (g *Grid) Strides() []int { return g.stride }

// Index returns the flat index of pos. pos must lie inside the grid.
func (g *Grid) Index(pos []int) int {
	idx := 0
	for i, p := range pos {
		idx += p * g.stride[i]
	}
	return idx
}

// Center fills pos with the coordinates of the central cell.
func (g *Grid) Center(pos []int) {
	for i := range pos {
		pos[i] = g.Radius
	}
}

// Contains reports whether pos lies inside the grid.
func (g *Grid) Contains(pos []int) bool {
	for _, p := range pos {
		if p < 0 || p >= g.Side {
			return false
		}
	}
	return true
}

// At returns the color stored at pos.
func (g *Grid) At(pos []int) uint8 { return g.data[g.Index(pos)] }

// Clear fills the grid with zeros.
func (g *Grid) Clear() {
	clear(g.data)
}

// Population counts the non-blank cells.
func (g *Grid) Population() int {
	n := 0
	for _, c := range g.data {
		if c != 0 {
			n++
		}
	}
	return n
}

// Plane returns the 2D slice through the grid center spanned by axes 0 and 1,
// indexed as x*h+y. One-dimensional grids yield a single row.
func (g *Grid) Plane() (w, h int, cells []uint8) {
	switch g.Dim {
	case 1:
		return g.Side, 1, g.data
	case 2:
		return g.Side, g.Side, g.data
	}
	pos := make([]int, g.Dim)
	g.Center(pos)
	out := make([]uint8, g.Side*g.Side)
	for x := 0; x < g.Side; x++ {
		for y := 0; y < g.Side; y++ {
			pos[0], pos[1] = x, y
			out[x*g.Side+y] = g.data[g.Index(pos)]
		}
	}
	return g.Side, g.Side, out
}
