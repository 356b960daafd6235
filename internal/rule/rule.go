// Package rule implements the B3/S23 life transition.
package rule

import "fmt"

// Apply returns the next state of a cell with the given live neighbour count.
// Fewer than two or more than three neighbours kill the cell, exactly three
// bring it to life, and exactly two leave it as it is.
func Apply(cur, neighbors uint8) uint8 {
	switch neighbors {
	case 3:
		return 1
	case 2:
		return cur
	default:
		return 0
	}
}

// Next evaluates the rule over a tile. cells and counts are co-indexed.
func Next(cells, counts []uint8) ([]uint8, error) {
	if len(cells) != len(counts) {
		return nil, fmt.Errorf("rule: %d cells but %d neighbour counts", len(cells), len(counts))
	}
	out := make([]uint8, len(cells))
	for i, n := range counts {
		if n > 8 {
			return nil, fmt.Errorf("rule: neighbour count %d at index %d out of range", n, i)
		}
		out[i] = Apply(cells[i], n)
	}
	return out, nil
}
