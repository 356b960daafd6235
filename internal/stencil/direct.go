package stencil

import "tilelife/internal/tile"

// Direct sums the kernel over each cell's neighbourhood.
type Direct struct{}

// Name returns the registry identifier.
func (Direct) Name() string { return "direct" }

// Count computes neighbour counts for the block interior.
func (Direct) Count(b tile.Block) ([]uint8, error) {
	if err := b.Valid(); err != nil {
		return nil, err
	}
	s := b.Stride()
	out := make([]uint8, b.W*b.H)
	for i := 0; i < b.H; i++ {
		for j := 0; j < b.W; j++ {
			var sum uint8
			for ky := 0; ky < 3; ky++ {
				row := (i + ky) * s
				for kx := 0; kx < 3; kx++ {
					sum += Kernel[ky][kx] * b.Cells[row+j+kx]
				}
			}
			out[i*b.W+j] = sum
		}
	}
	return out, nil
}

func init() {
	Register("direct", func() Convolver { return Direct{} })
}
