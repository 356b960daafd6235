package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"tilelife/internal/app"
	"tilelife/internal/engine"
	"tilelife/internal/lifeio"
	"tilelife/internal/remote"
	"tilelife/internal/stencil"
	"tilelife/pkg/core"
	"tilelife/pkg/life"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [input [output [generations [chunk]]]]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := cfg.Args(flag.Args()); err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *app.Config) error {
	grid, err := lifeio.ReadFile(cfg.Input)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	conv, _ := stencil.Lookup(cfg.Convolver)
	var backend engine.Backend = engine.NewLocal(conv)
	if addrs := cfg.RemoteAddrs(); len(addrs) > 0 {
		pool, err := remote.Dial(ctx, addrs, cfg.Convolver)
		if err != nil {
			return err
		}
		defer pool.Close()
		log.Printf("dispatching tiles to %d workers", pool.Size())
		backend = pool
	}

	start := time.Now()
	e, err := engine.New(engine.Config{
		Generations: cfg.Generations,
		ChunkSize:   cfg.ChunkSize,
		Workers:     cfg.Workers,
		Backend:     backend,
		Observer:    progress(cfg.Progress, start),
	})
	if err != nil {
		return err
	}
	res, err := e.Run(ctx, grid)
	if err != nil {
		var compErr *engine.ComputationError
		if errors.As(err, &compErr) {
			return fmt.Errorf("run aborted after %d committed generations: %w", res.Generation, err)
		}
		return fmt.Errorf("run stopped after %d committed generations: %w", res.Generation, err)
	}
	log.Printf("%d generations of %dx%d (chunk %d, %s) in %s, %d live cells",
		res.Generation, grid.W, grid.H, cfg.ChunkSize, cfg.Convolver,
		time.Since(start).Round(time.Millisecond), res.Grid.Alive())

	if cfg.Verify {
		if want := life.Run(grid, cfg.Generations); !want.Equal(res.Grid) {
			return errors.New("verification failed: tiled result differs from the untiled stepper")
		}
		log.Printf("verified against untiled stepper")
	}

	if cfg.Output == "" {
		return lifeio.Write(os.Stdout, res.Grid)
	}
	return lifeio.WriteFile(cfg.Output, res.Grid)
}

func progress(every int, start time.Time) engine.Observer {
	if every <= 0 {
		return nil
	}
	return func(gen int, g *core.Grid) {
		if gen%every != 0 {
			return
		}
		log.Printf("generation %d: %d live cells (%s)", gen, g.Alive(), time.Since(start).Round(time.Millisecond))
	}
}
