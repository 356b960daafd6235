// Package stencil counts live neighbours for every interior cell of a halo
// block.
package stencil

import (
	"sort"

	"tilelife/internal/tile"
)

// Kernel weights the 3x3 neighbourhood: every surrounding cell counts once,
// the centre not at all.
var Kernel = [3][3]uint8{
	{1, 1, 1},
	{1, 0, 1},
	{1, 1, 1},
}

// Convolver turns an (H+2)x(W+2) halo block into an HxW block of live
// neighbour counts, each in [0, 8]. Implementations must be safe for
// concurrent use.
type Convolver interface {
	Name() string
	Count(b tile.Block) ([]uint8, error)
}

// Factory constructs a Convolver.
type Factory func() Convolver

var convolvers = map[string]Factory{}

// Register adds a convolver factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	convolvers[name] = f
}

// Lookup builds the convolver registered under name.
func Lookup(name string) (Convolver, bool) {
	f, ok := convolvers[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

// Names lists registered convolvers in sorted order.
func Names() []string {
	names := make([]string, 0, len(convolvers))
	for name := range convolvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
