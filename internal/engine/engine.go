// Package engine drives a tiled life simulation for a fixed number of
// generations. Within a generation every tile is computed independently;
// the next grid is committed only after all tiles have finished.
package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"tilelife/internal/tile"
	"tilelife/pkg/core"
)

// State is the orchestrator lifecycle.
type State int

const (
	// StateIdle means no run has started.
	StateIdle State = iota
	// StateRunning means generations are being computed.
	StateRunning
	// StateDone means the last run reached the requested generation.
	StateDone
	// StateFailed means the last run was aborted.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Observer is called with every committed grid, starting with generation 0.
// It runs between generations and must not modify g.
type Observer func(generation int, g *core.Grid)

// Config holds the run parameters.
type Config struct {
	// Generations is the number of steps to compute.
	Generations int
	// ChunkSize is the tile edge length.
	ChunkSize int
	// Workers caps the number of tiles in flight. Zero uses runtime.NumCPU().
	Workers int
	// Backend evaluates tile tasks. Nil uses a Local backend with the direct
	// convolver.
	Backend Backend
	// Observer is optional.
	Observer Observer
}

// Validate rejects parameters that cannot describe a run.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return &ConfigError{Field: "chunk size", Reason: fmt.Sprintf("must be positive, got %d", c.ChunkSize)}
	}
	if c.Generations < 0 {
		return &ConfigError{Field: "generations", Reason: fmt.Sprintf("must not be negative, got %d", c.Generations)}
	}
	if c.Workers < 0 {
		return &ConfigError{Field: "workers", Reason: fmt.Sprintf("must not be negative, got %d", c.Workers)}
	}
	return nil
}

// Result is the outcome of a run. On failure Grid is the last fully
// committed generation.
type Result struct {
	Grid       *core.Grid
	Generation int
}

// Engine runs simulations with a fixed configuration. One run may be active
// at a time.
type Engine struct {
	cfg     Config
	backend Backend
	workers int

	mu    sync.Mutex
	state State
	part  *tile.Partition
}

// New validates cfg and constructs an Engine.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg, backend: cfg.Backend, workers: cfg.Workers}
	if e.backend == nil {
		e.backend = NewLocal(nil)
	}
	if e.workers == 0 {
		e.workers = runtime.NumCPU()
	}
	return e, nil
}

// State reports the current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) setState(s State) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

// partition returns the tiling for the grid dimensions, reusing the previous
// one when the dimensions have not changed.
func (e *Engine) partition(w, h int) (*tile.Partition, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.part != nil && e.part.Width == w && e.part.Height == h {
		return e.part, nil
	}
	p, err := tile.NewPartition(w, h, e.cfg.ChunkSize)
	if err != nil {
		return nil, err
	}
	e.part = p
	return p, nil
}

// Run advances g by the configured number of generations. g is never
// modified. If the run is aborted by a tile failure or by ctx, the returned
// Result still holds the last committed generation alongside the error.
func (e *Engine) Run(ctx context.Context, g *core.Grid) (Result, error) {
	if err := g.Validate(); err != nil {
		return Result{}, &ConfigError{Field: "grid", Reason: err.Error()}
	}
	part, err := e.partition(g.W, g.H)
	if err != nil {
		return Result{}, &ConfigError{Field: "partition", Reason: err.Error()}
	}

	e.mu.Lock()
	if e.state == StateRunning {
		e.mu.Unlock()
		return Result{}, errors.New("engine: a run is already in progress")
	}
	e.state = StateRunning
	e.mu.Unlock()

	cur := g
	e.observe(0, cur)
	for gen := 0; gen < e.cfg.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			e.setState(StateFailed)
			return Result{Grid: cur, Generation: gen}, fmt.Errorf("generation %d: %w", gen+1, err)
		}
		next, err := e.step(ctx, part, cur, gen+1)
		if err != nil {
			e.setState(StateFailed)
			return Result{Grid: cur, Generation: gen}, err
		}
		cur = next
		e.observe(gen+1, cur)
	}

	e.setState(StateDone)
	return Result{Grid: cur, Generation: e.cfg.Generations}, nil
}

// step computes generation gen from cur. Tiles write disjoint regions of a
// fresh buffer, which becomes a grid only after every tile has succeeded.
func (e *Engine) step(ctx context.Context, part *tile.Partition, cur *core.Grid, gen int) (*core.Grid, error) {
	next := make([]uint8, len(cur.Cells()))

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(e.workers)
	for _, t := range part.Tiles() {
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			halo, err := tile.Resolve(t, part, cur)
			if err != nil {
				return &ComputationError{Generation: gen, TX: t.TX, TY: t.TY, Err: err}
			}
			out, err := e.backend.Advance(gctx, tile.Task{Generation: gen, Tile: t, Halo: halo})
			if err != nil {
				if gctx.Err() != nil && errors.Is(err, gctx.Err()) {
					return err
				}
				return &ComputationError{Generation: gen, TX: t.TX, TY: t.TY, Err: err}
			}
			if len(out) != t.W*t.H {
				return &ComputationError{
					Generation: gen, TX: t.TX, TY: t.TY,
					Err: fmt.Errorf("backend returned %d cells, want %d", len(out), t.W*t.H),
				}
			}
			for i, v := range out {
				if v > 1 {
					return &ComputationError{
						Generation: gen, TX: t.TX, TY: t.TY,
						Err: fmt.Errorf("backend returned cell value %d at offset %d", v, i),
					}
				}
			}
			for r := 0; r < t.H; r++ {
				dst := cur.Index(t.X, t.Y+r)
				copy(next[dst:dst+t.W], out[r*t.W:(r+1)*t.W])
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("generation %d: %w", gen, ctxErr)
		}
		return nil, err
	}
	return core.FromCells(cur.W, cur.H, next)
}

func (e *Engine) observe(gen int, g *core.Grid) {
	if e.cfg.Observer != nil {
		e.cfg.Observer(gen, g)
	}
}
