package remote

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"

	"tilelife/internal/engine"
	"tilelife/internal/tile"
	"tilelife/pkg/core"
	"tilelife/pkg/life"
)

func startWorker(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan error, 1)
	go func() { done <- Serve(l) }()
	t.Cleanup(func() {
		l.Close()
		if err := <-done; err != nil {
			t.Errorf("Serve: %v", err)
		}
	})
	return l.Addr().String()
}

func randomGrid(t *testing.T, w, h int, seed int64) *core.Grid {
	t.Helper()
	g, err := core.NewGrid(w, h)
	if err != nil {
		t.Fatal(err)
	}
	core.FillBinary(core.NewRNG(seed).Source(), g.Cells())
	return g
}

func TestPoolMatchesReference(t *testing.T) {
	addrs := []string{startWorker(t), startWorker(t), startWorker(t)}
	for _, conv := range []string{"direct", "fft"} {
		pool, err := Dial(context.Background(), addrs, conv)
		if err != nil {
			t.Fatal(err)
		}
		if pool.Size() != 3 {
			t.Fatalf("pool size = %d, want 3", pool.Size())
		}

		g := randomGrid(t, 19, 14, 3)
		e, err := engine.New(engine.Config{Generations: 6, ChunkSize: 5, Workers: 4, Backend: pool})
		if err != nil {
			t.Fatal(err)
		}
		res, err := e.Run(context.Background(), g)
		if err != nil {
			t.Fatal(err)
		}
		if !res.Grid.Equal(life.Run(g, 6)) {
			t.Fatalf("%s: remote run differs from reference", conv)
		}
		if err := pool.Close(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDialRejectsUnknownConvolver(t *testing.T) {
	_, err := Dial(context.Background(), []string{startWorker(t)}, "sobel")
	if err == nil || !strings.Contains(err.Error(), "sobel") {
		t.Fatalf("expected unsupported convolver error, got %v", err)
	}
}

func TestDialFailsWithoutWorkers(t *testing.T) {
	if _, err := Dial(context.Background(), nil, "direct"); err == nil {
		t.Fatal("expected error for empty address list")
	}
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := l.Addr().String()
	l.Close()
	if _, err := Dial(context.Background(), []string{addr}, "direct"); err == nil {
		t.Fatal("expected dial error for closed port")
	}
}

func TestWorkerRejectsMalformedTask(t *testing.T) {
	pool, err := Dial(context.Background(), []string{startWorker(t)}, "direct")
	if err != nil {
		t.Fatal(err)
	}
	defer pool.Close()

	task := tile.Task{Tile: tile.Tile{W: 2, H: 2}, Halo: tile.NewBlock(3, 3)}
	if _, err := pool.Advance(context.Background(), task); err == nil {
		t.Fatal("expected error for mismatched halo")
	}
}

func TestClosedPoolFailsRun(t *testing.T) {
	pool, err := Dial(context.Background(), []string{startWorker(t)}, "direct")
	if err != nil {
		t.Fatal(err)
	}
	pool.Close()

	e, err := engine.New(engine.Config{Generations: 2, ChunkSize: 4, Backend: pool})
	if err != nil {
		t.Fatal(err)
	}
	g := randomGrid(t, 8, 8, 1)
	res, err := e.Run(context.Background(), g)
	var compErr *engine.ComputationError
	if !errors.As(err, &compErr) {
		t.Fatalf("expected ComputationError, got %v", err)
	}
	if compErr.Generation != 1 {
		t.Fatalf("failed generation = %d, want 1", compErr.Generation)
	}
	if res.Generation != 0 || !res.Grid.Equal(g) {
		t.Fatal("result must hold the input grid")
	}
}

func TestWorkerPingVersion(t *testing.T) {
	w := NewWorker()
	var res PingResponse
	if err := w.Ping(PingRequest{Version: ProtocolVersion + 1}, &res); err == nil {
		t.Fatal("expected version mismatch error")
	}
	if err := w.Ping(PingRequest{Version: ProtocolVersion}, &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Convolvers) == 0 {
		t.Fatal("worker must report convolvers")
	}
}
