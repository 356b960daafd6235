// Package lifeio reads and writes the sparse live-cell text format: a
// "width height" header followed by one "x y" line per live cell.
package lifeio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"tilelife/pkg/core"
)

// Read parses a grid. Blank lines are skipped and anything after the first
// two fields of a line is ignored.
func Read(r io.Reader) (*core.Grid, error) {
	sc := bufio.NewScanner(r)
	line := 0
	var g *core.Grid
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		a, b, err := pair(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if g == nil {
			g, err = core.NewGrid(a, b)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			continue
		}
		if !g.In(a, b) {
			return nil, fmt.Errorf("line %d: cell (%d,%d) outside %dx%d grid", line, a, b, g.W, g.H)
		}
		g.Set(a, b, true)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("missing \"width height\" header")
	}
	return g, nil
}

func pair(fields []string) (int, int, error) {
	if len(fields) < 2 {
		return 0, 0, fmt.Errorf("expected two integers, got %q", strings.Join(fields, " "))
	}
	a, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// Write emits the header and every live cell, ordered by x then y.
func Write(w io.Writer, g *core.Grid) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", g.W, g.H)
	for _, c := range g.LiveCells() {
		fmt.Fprintf(bw, "%d %d\n", c.X, c.Y)
	}
	return bw.Flush()
}

// ReadFile reads a grid from path.
func ReadFile(path string) (*core.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// WriteFile writes g to path, replacing any existing file.
func WriteFile(path string, g *core.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
