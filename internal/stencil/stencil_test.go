package stencil

import (
	"slices"
	"sync"
	"testing"

	"tilelife/internal/tile"
	"tilelife/pkg/core"
)

func randomBlock(w, h int, seed int64) tile.Block {
	b := tile.NewBlock(w, h)
	core.FillBinary(core.NewRNG(seed).Source(), b.Cells)
	return b
}

// naiveCount sums the eight offsets around block position (i+1, j+1).
func naiveCount(b tile.Block) []uint8 {
	out := make([]uint8, b.W*b.H)
	for i := 0; i < b.H; i++ {
		for j := 0; j < b.W; j++ {
			var sum uint8
			for di := -1; di <= 1; di++ {
				for dj := -1; dj <= 1; dj++ {
					if di == 0 && dj == 0 {
						continue
					}
					sum += b.At(i+1+di, j+1+dj)
				}
			}
			out[i*b.W+j] = sum
		}
	}
	return out
}

func TestDirectCountsKnownPattern(t *testing.T) {
	// Fully live 3x3 interior with a live border: every cell sees 8.
	b := tile.NewBlock(3, 3)
	for i := range b.Cells {
		b.Cells[i] = 1
	}
	got, err := Direct{}.Count(b)
	if err != nil {
		t.Fatal(err)
	}
	for i, n := range got {
		if n != 8 {
			t.Fatalf("cell %d: count %d, want 8", i, n)
		}
	}

	// A single live halo corner only touches the nearest interior cell.
	b = tile.NewBlock(2, 2)
	b.Cells[0] = 1
	got, _ = Direct{}.Count(b)
	if want := []uint8{1, 0, 0, 0}; !slices.Equal(got, want) {
		t.Fatalf("corner counts = %v, want %v", got, want)
	}
}

func TestConvolversMatchNaiveSum(t *testing.T) {
	shapes := [][2]int{{1, 1}, {1, 4}, {3, 1}, {2, 2}, {5, 3}, {8, 8}, {13, 7}}
	for _, name := range Names() {
		conv, ok := Lookup(name)
		if !ok {
			t.Fatalf("convolver %q not found", name)
		}
		for i, shape := range shapes {
			b := randomBlock(shape[0], shape[1], int64(i+1))
			got, err := conv.Count(b)
			if err != nil {
				t.Fatalf("%s: %v", name, err)
			}
			if want := naiveCount(b); !slices.Equal(got, want) {
				t.Fatalf("%s %dx%d: counts = %v, want %v", name, shape[0], shape[1], got, want)
			}
		}
	}
}

func TestConvolverRejectsMalformedBlock(t *testing.T) {
	bad := tile.Block{W: 3, H: 3, Cells: make([]uint8, 9)}
	for _, name := range Names() {
		conv, _ := Lookup(name)
		if _, err := conv.Count(bad); err == nil {
			t.Fatalf("%s: expected error for short block", name)
		}
	}
}

func TestFFTConcurrentUse(t *testing.T) {
	conv := NewFFT()
	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			b := randomBlock(6, 6, seed)
			got, err := conv.Count(b)
			if err != nil {
				errs <- err.Error()
				return
			}
			if !slices.Equal(got, naiveCount(b)) {
				errs <- "mismatch"
			}
		}(int64(i))
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Fatal(e)
	}
}

func TestRegistry(t *testing.T) {
	if want := []string{"direct", "fft"}; !slices.Equal(Names(), want) {
		t.Fatalf("Names() = %v, want %v", Names(), want)
	}
	if _, ok := Lookup("sobel"); ok {
		t.Fatal("unexpected convolver")
	}
	conv, _ := Lookup("fft")
	if conv.Name() != "fft" {
		t.Fatalf("Name() = %q", conv.Name())
	}
}
