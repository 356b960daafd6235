package remote

import (
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"sync"

	"tilelife/internal/engine"
	"tilelife/internal/stencil"
)

// Worker is the RPC service run by life-worker processes. It keeps no state
// between calls apart from convolver plan caches.
type Worker struct {
	mu    sync.Mutex
	convs map[string]stencil.Convolver
}

// NewWorker returns a Worker with an empty convolver cache.
func NewWorker() *Worker {
	return &Worker{convs: map[string]stencil.Convolver{}}
}

func (w *Worker) convolver(name string) (stencil.Convolver, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if c, ok := w.convs[name]; ok {
		return c, nil
	}
	c, ok := stencil.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown convolver %q", name)
	}
	w.convs[name] = c
	return c, nil
}

// AdvanceTile computes the next cells for the task in req.
func (w *Worker) AdvanceTile(req AdvanceRequest, res *AdvanceResponse) error {
	conv, err := w.convolver(req.Convolver)
	if err != nil {
		return err
	}
	cells, err := engine.Compute(conv, req.Task)
	if err != nil {
		return fmt.Errorf("tile (%d,%d): %w", req.Task.Tile.TX, req.Task.Tile.TY, err)
	}
	res.Cells = cells
	return nil
}

// Ping reports that the worker is up and which convolvers it supports.
func (w *Worker) Ping(req PingRequest, res *PingResponse) error {
	if req.Version != ProtocolVersion {
		return fmt.Errorf("protocol version %d, worker speaks %d", req.Version, ProtocolVersion)
	}
	res.Convolvers = stencil.Names()
	return nil
}

// Serve registers a Worker and serves RPC connections from l until l is
// closed.
func Serve(l net.Listener) error {
	server := rpc.NewServer()
	if err := server.RegisterName("Worker", NewWorker()); err != nil {
		return err
	}
	for {
		conn, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		go server.ServeConn(conn)
	}
}
