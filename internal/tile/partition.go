// Package tile splits a grid into fixed-size tiles and materializes the
// one-cell halo each tile needs to compute its next generation.
package tile

import "fmt"

// Tile is a rectangular block of the grid. Tiles on the right and bottom
// edges are clipped to the grid when the dimensions are not multiples of the
// chunk size.
type Tile struct {
	// TX, TY locate the tile in tile space.
	TX, TY int
	// X, Y are the grid coordinates of the top-left cell.
	X, Y int
	// W, H are the tile extent in cells.
	W, H int
}

// Partition is the complete, non-overlapping tiling of a grid. It depends
// only on the grid dimensions and chunk size, so it can be reused across
// generations.
type Partition struct {
	Width, Height int
	ChunkSize     int

	// TilesX, TilesY are the tile counts along each axis.
	TilesX, TilesY int

	// tiles is row-major: index = ty*TilesX + tx.
	tiles []Tile
}

// NewPartition tiles a width x height grid with chunkSize x chunkSize tiles.
func NewPartition(width, height, chunkSize int) (*Partition, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", width, height)
	}

	tilesX := (width + chunkSize - 1) / chunkSize
	tilesY := (height + chunkSize - 1) / chunkSize

	p := &Partition{
		Width:     width,
		Height:    height,
		ChunkSize: chunkSize,
		TilesX:    tilesX,
		TilesY:    tilesY,
		tiles:     make([]Tile, 0, tilesX*tilesY),
	}
	for ty := range tilesY {
		for tx := range tilesX {
			x, y := tx*chunkSize, ty*chunkSize
			p.tiles = append(p.tiles, Tile{
				TX: tx,
				TY: ty,
				X:  x,
				Y:  y,
				W:  min(chunkSize, width-x),
				H:  min(chunkSize, height-y),
			})
		}
	}
	return p, nil
}

// Tiles returns the tiles in row-major tile order. The slice must not be
// modified.
func (p *Partition) Tiles() []Tile { return p.tiles }

// Len returns the number of tiles.
func (p *Partition) Len() int { return len(p.tiles) }

// At returns the tile at tile coordinate (tx, ty), or false when no tile
// exists there.
func (p *Partition) At(tx, ty int) (Tile, bool) {
	if tx < 0 || tx >= p.TilesX || ty < 0 || ty >= p.TilesY {
		return Tile{}, false
	}
	return p.tiles[ty*p.TilesX+tx], true
}
