package tile

import "fmt"

// Task is everything needed to compute one tile's next generation. It holds
// no references to the grid, so it can be evaluated by any goroutine or
// shipped to another process.
type Task struct {
	Generation int
	Tile       Tile
	Halo       Block
}

// Validate checks that the halo block matches the tile extent.
func (t Task) Validate() error {
	if err := t.Halo.Valid(); err != nil {
		return err
	}
	if t.Halo.W != t.Tile.W || t.Halo.H != t.Tile.H {
		return fmt.Errorf("halo is %dx%d but tile (%d,%d) is %dx%d",
			t.Halo.W, t.Halo.H, t.Tile.TX, t.Tile.TY, t.Tile.W, t.Tile.H)
	}
	return nil
}
