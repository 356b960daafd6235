package engine

import (
	"context"

	"tilelife/internal/rule"
	"tilelife/internal/stencil"
	"tilelife/internal/tile"
)

// Backend computes the next cells of one tile from its task. Implementations
// must be safe for concurrent use; the engine calls Advance for every tile of
// a generation in parallel.
type Backend interface {
	Advance(ctx context.Context, task tile.Task) ([]uint8, error)
}

// Compute runs the per-tile pipeline: neighbour counts from the halo block,
// then the life rule over the tile's own cells. It only reads task.
func Compute(conv stencil.Convolver, task tile.Task) ([]uint8, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}
	counts, err := conv.Count(task.Halo)
	if err != nil {
		return nil, err
	}
	return rule.Next(task.Halo.Interior(), counts)
}

// Local evaluates tasks in-process.
type Local struct {
	Convolver stencil.Convolver
}

// NewLocal returns a Local backend. A nil convolver selects stencil.Direct.
func NewLocal(conv stencil.Convolver) *Local {
	if conv == nil {
		conv = stencil.Direct{}
	}
	return &Local{Convolver: conv}
}

// Advance implements Backend.
func (l *Local) Advance(ctx context.Context, task tile.Task) ([]uint8, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Compute(l.Convolver, task)
}
