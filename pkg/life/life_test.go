package life

import (
	"testing"

	"tilelife/pkg/core"
)

func TestBlinkerOscillation(t *testing.T) {
	g, err := core.NewGrid(5, 5)
	if err != nil {
		t.Fatal(err)
	}
	g.Set(2, 1, true)
	g.Set(2, 2, true)
	g.Set(2, 3, true)

	g = Step(g)

	expects := map[[2]int]bool{
		{1, 2}: true,
		{2, 2}: true,
		{3, 2}: true,
	}

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			alive := g.At(x, y) == 1
			_, shouldBeAlive := expects[[2]int{x, y}]
			if shouldBeAlive != alive {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v", x, y, alive, shouldBeAlive)
			}
		}
	}

	g = Step(g)

	expects = map[[2]int]bool{
		{2, 1}: true,
		{2, 2}: true,
		{2, 3}: true,
	}

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			alive := g.At(x, y) == 1
			_, shouldBeAlive := expects[[2]int{x, y}]
			if shouldBeAlive != alive {
				t.Fatalf("after second step cell (%d,%d) alive=%v, expected %v", x, y, alive, shouldBeAlive)
			}
		}
	}
}

func TestEdgesDoNotWrap(t *testing.T) {
	// A vertical blinker on the left edge would survive on a torus; with a
	// dead border it turns into a two-cell row and then dies out.
	g, _ := core.NewGrid(4, 4)
	g.Set(0, 0, true)
	g.Set(0, 1, true)
	g.Set(0, 2, true)

	g = Step(g)
	if got := g.Alive(); got != 2 {
		t.Fatalf("expected 2 live cells after one step, got %d", got)
	}
	if g.At(0, 1) != 1 || g.At(1, 1) != 1 {
		t.Fatalf("expected (0,1) and (1,1) alive, got %v", g.LiveCells())
	}
	if g.At(3, 1) != 0 {
		t.Fatal("cell on the opposite edge must stay dead")
	}

	g = Step(g)
	if got := g.Alive(); got != 0 {
		t.Fatalf("expected the pair to die, got %d live cells", got)
	}
}

func TestRunZeroReturnsInput(t *testing.T) {
	g, _ := core.NewGrid(3, 3)
	g.Set(1, 1, true)
	if out := Run(g, 0); out != g {
		t.Fatal("Run with zero generations must return the input grid")
	}
}
