package core

import (
	"fmt"
	"slices"
)

// Size describes the dimensions of a grid.
type Size struct {
	W int
	H int
}

// Cell is a single live-cell coordinate.
type Cell struct {
	X, Y int
}

// Grid stores a 2D field of dead (0) and alive (1) cells in row-major order.
//
// A Grid handed to the engine is treated as an immutable snapshot: every
// generation is written to a freshly allocated Grid.
type Grid struct {
	W, H int
	data []uint8
}

// NewGrid allocates an all-dead grid with the given dimensions.
func NewGrid(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", w, h)
	}
	return &Grid{W: w, H: h, data: make([]uint8, w*h)}, nil
}

// FromCells wraps an existing row-major buffer. The buffer is not copied.
func FromCells(w, h int, cells []uint8) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", w, h)
	}
	if len(cells) != w*h {
		return nil, fmt.Errorf("grid %dx%d needs %d cells, got %d", w, h, w*h, len(cells))
	}
	return &Grid{W: w, H: h, data: cells}, nil
}

// Size returns the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.W, H: g.H} }

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// In reports whether (x, y) lies inside the grid.
func (g *Grid) In(x, y int) bool { return x >= 0 && x < g.W && y >= 0 && y < g.H }

// At returns the cell value at (x, y). Coordinates outside the grid read as dead.
func (g *Grid) At(x, y int) uint8 {
	if !g.In(x, y) {
		return 0
	}
	return g.data[g.Index(x, y)]
}

// Set marks the cell at (x, y) alive or dead. It must not be used on a grid
// that a running simulation is reading.
func (g *Grid) Set(x, y int, alive bool) {
	var v uint8
	if alive {
		v = 1
	}
	g.data[g.Index(x, y)] = v
}

// Validate checks that the dimensions and the backing buffer agree and that
// every cell holds 0 or 1.
func (g *Grid) Validate() error {
	if g == nil {
		return fmt.Errorf("grid is nil")
	}
	if g.W <= 0 || g.H <= 0 {
		return fmt.Errorf("grid dimensions must be positive, got %dx%d", g.W, g.H)
	}
	if len(g.data) != g.W*g.H {
		return fmt.Errorf("grid %dx%d needs %d cells, got %d", g.W, g.H, g.W*g.H, len(g.data))
	}
	for i, v := range g.data {
		if v > 1 {
			return fmt.Errorf("cell (%d,%d) holds %d, want 0 or 1", i%g.W, i/g.W, v)
		}
	}
	return nil
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{W: g.W, H: g.H, data: slices.Clone(g.data)}
}

// Equal reports whether both grids have the same dimensions and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	return g.W == o.W && g.H == o.H && slices.Equal(g.data, o.data)
}

// Alive counts live cells.
func (g *Grid) Alive() int {
	total := 0
	for _, v := range g.data {
		total += int(v)
	}
	return total
}

// LiveCells lists live cells ordered by ascending x, then ascending y.
func (g *Grid) LiveCells() []Cell {
	var cells []Cell
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			if g.data[g.Index(x, y)] != 0 {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}
