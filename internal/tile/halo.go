package tile

import (
	"fmt"

	"tilelife/pkg/core"
)

// Block is a tile's cells surrounded by a one-cell border. Cells holds
// (H+2) rows of (W+2) values; row 0 and row H+1, column 0 and column W+1 are
// the halo.
type Block struct {
	W, H  int
	Cells []uint8
}

// NewBlock allocates an all-dead block for a w x h tile.
func NewBlock(w, h int) Block {
	return Block{W: w, H: h, Cells: make([]uint8, (w+2)*(h+2))}
}

// Stride is the row length of the block including the border.
func (b Block) Stride() int { return b.W + 2 }

// At returns the value at block row i, column j, both counted from the
// top-left halo corner.
func (b Block) At(i, j int) uint8 { return b.Cells[i*b.Stride()+j] }

func (b Block) set(i, j int, v uint8) { b.Cells[i*b.Stride()+j] = v }

// Valid reports whether the buffer matches the declared shape.
func (b Block) Valid() error {
	if b.W <= 0 || b.H <= 0 {
		return fmt.Errorf("block interior must be positive, got %dx%d", b.W, b.H)
	}
	if want := (b.W + 2) * (b.H + 2); len(b.Cells) != want {
		return fmt.Errorf("block %dx%d needs %d cells, got %d", b.W, b.H, want, len(b.Cells))
	}
	return nil
}

// Interior copies the tile's own cells out of the block, row-major.
func (b Block) Interior() []uint8 {
	out := make([]uint8, 0, b.W*b.H)
	s := b.Stride()
	for i := 1; i <= b.H; i++ {
		out = append(out, b.Cells[i*s+1:i*s+1+b.W]...)
	}
	return out
}

// Resolve builds the halo block for t from the current grid. Each of the
// eight border strips is copied from the adjacent edge of the neighbouring
// tile in p; where no neighbour exists the strip stays dead.
func Resolve(t Tile, p *Partition, g *core.Grid) (Block, error) {
	if g.W != p.Width || g.H != p.Height {
		return Block{}, fmt.Errorf("grid is %dx%d but partition covers %dx%d", g.W, g.H, p.Width, p.Height)
	}
	if own, ok := p.At(t.TX, t.TY); !ok || own != t {
		return Block{}, fmt.Errorf("tile (%d,%d) is not part of the partition", t.TX, t.TY)
	}

	b := NewBlock(t.W, t.H)
	s := b.Stride()
	cells := g.Cells()
	for r := 0; r < t.H; r++ {
		src := g.Index(t.X, t.Y+r)
		copy(b.Cells[(r+1)*s+1:], cells[src:src+t.W])
	}

	// north and south: a full row from the neighbour's facing edge.
	if n, ok := p.At(t.TX, t.TY-1); ok {
		src := g.Index(t.X, n.Y+n.H-1)
		copy(b.Cells[1:1+t.W], cells[src:src+t.W])
	}
	if n, ok := p.At(t.TX, t.TY+1); ok {
		src := g.Index(t.X, n.Y)
		copy(b.Cells[(t.H+1)*s+1:], cells[src:src+t.W])
	}

	// west and east: a column from the neighbour's facing edge.
	if n, ok := p.At(t.TX-1, t.TY); ok {
		x := n.X + n.W - 1
		for r := 0; r < t.H; r++ {
			b.set(r+1, 0, cells[g.Index(x, t.Y+r)])
		}
	}
	if n, ok := p.At(t.TX+1, t.TY); ok {
		for r := 0; r < t.H; r++ {
			b.set(r+1, t.W+1, cells[g.Index(n.X, t.Y+r)])
		}
	}

	// corners: a single cell from the diagonal neighbour.
	if n, ok := p.At(t.TX-1, t.TY-1); ok {
		b.set(0, 0, cells[g.Index(n.X+n.W-1, n.Y+n.H-1)])
	}
	if n, ok := p.At(t.TX+1, t.TY-1); ok {
		b.set(0, t.W+1, cells[g.Index(n.X, n.Y+n.H-1)])
	}
	if n, ok := p.At(t.TX-1, t.TY+1); ok {
		b.set(t.H+1, 0, cells[g.Index(n.X+n.W-1, n.Y)])
	}
	if n, ok := p.At(t.TX+1, t.TY+1); ok {
		b.set(t.H+1, t.W+1, cells[g.Index(n.X, n.Y)])
	}
	return b, nil
}
