package app

import (
	"flag"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"tilelife/internal/engine"
	"tilelife/internal/stencil"
)

// Config represents the command-line parameters for the life binary.
type Config struct {
	Input       string
	Output      string
	Generations int
	ChunkSize   int
	Workers     int
	Convolver   string
	Remote      string
	Verify      bool
	Timeout     time.Duration
	Progress    int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Generations: 1,
		ChunkSize:   64,
		Workers:     runtime.NumCPU(),
		Convolver:   "direct",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Input, "in", c.Input, "input file with live cells")
	fs.StringVar(&c.Output, "out", c.Output, "output file (stdout when empty)")
	fs.IntVar(&c.Generations, "n", c.Generations, "number of generations")
	fs.IntVar(&c.ChunkSize, "chunk", c.ChunkSize, "tile edge length")
	fs.IntVar(&c.Workers, "workers", c.Workers, "tiles computed concurrently")
	fs.StringVar(&c.Convolver, "conv", c.Convolver, "neighbour counter: "+strings.Join(stencil.Names(), "|"))
	fs.StringVar(&c.Remote, "remote", c.Remote, "comma-separated life-worker addresses")
	fs.BoolVar(&c.Verify, "verify", c.Verify, "cross-check the result against the untiled stepper")
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "abort the run after this long (0 = no limit)")
	fs.IntVar(&c.Progress, "progress", c.Progress, "log every N generations (0 = off)")
}

// Args applies the positional form "input output generations chunkSize".
// Any subset of leading positions may be given; flags keep the rest.
func (c *Config) Args(args []string) error {
	if len(args) > 4 {
		return fmt.Errorf("too many arguments: %q", args)
	}
	if len(args) > 0 {
		c.Input = args[0]
	}
	if len(args) > 1 {
		c.Output = args[1]
	}
	if len(args) > 2 {
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return &engine.ConfigError{Field: "generations", Reason: fmt.Sprintf("%q is not a number", args[2])}
		}
		c.Generations = n
	}
	if len(args) > 3 {
		n, err := strconv.Atoi(args[3])
		if err != nil {
			return &engine.ConfigError{Field: "chunk size", Reason: fmt.Sprintf("%q is not a number", args[3])}
		}
		c.ChunkSize = n
	}
	return nil
}

// RemoteAddrs splits the -remote list, dropping empty entries.
func (c *Config) RemoteAddrs() []string {
	var addrs []string
	for _, a := range strings.Split(c.Remote, ",") {
		if a = strings.TrimSpace(a); a != "" {
			addrs = append(addrs, a)
		}
	}
	return addrs
}

// Validate rejects configurations that cannot start a run.
func (c *Config) Validate() error {
	if c.Input == "" {
		return &engine.ConfigError{Field: "input", Reason: "no input file given"}
	}
	if _, ok := stencil.Lookup(c.Convolver); !ok {
		return &engine.ConfigError{Field: "convolver", Reason: fmt.Sprintf("unknown %q, want one of %s", c.Convolver, strings.Join(stencil.Names(), ", "))}
	}
	if c.Timeout < 0 {
		return &engine.ConfigError{Field: "timeout", Reason: "must not be negative"}
	}
	if c.Progress < 0 {
		return &engine.ConfigError{Field: "progress", Reason: "must not be negative"}
	}
	return engine.Config{Generations: c.Generations, ChunkSize: c.ChunkSize, Workers: c.Workers}.Validate()
}
