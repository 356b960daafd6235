// Package life is the untiled, single-goroutine Game of Life stepper. The
// field outside the grid is permanently dead; there is no wrapping.
package life

import (
	"tilelife/pkg/core"
)

// Step advances g by one generation and returns the result as a new grid.
func Step(g *core.Grid) *core.Grid {
	w, h := g.W, g.H
	cur := g.Cells()
	next := make([]uint8, len(cur))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			neighbors := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					neighbors += int(g.At(x+dx, y+dy))
				}
			}
			idx := y*w + x
			alive := cur[idx] == 1
			if (alive && (neighbors == 2 || neighbors == 3)) || (!alive && neighbors == 3) {
				next[idx] = 1
			}
		}
	}
	out, _ := core.FromCells(w, h, next)
	return out
}

// Run applies Step n times. n <= 0 returns g unchanged.
func Run(g *core.Grid, n int) *core.Grid {
	for i := 0; i < n; i++ {
		g = Step(g)
	}
	return g
}
