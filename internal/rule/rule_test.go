package rule

import (
	"slices"
	"testing"
)

func TestApply(t *testing.T) {
	for n := uint8(0); n <= 8; n++ {
		for _, cur := range []uint8{0, 1} {
			want := uint8(0)
			if (cur == 1 && (n == 2 || n == 3)) || (cur == 0 && n == 3) {
				want = 1
			}
			if got := Apply(cur, n); got != want {
				t.Fatalf("Apply(%d, %d) = %d, want %d", cur, n, got, want)
			}
		}
	}
}

func TestNext(t *testing.T) {
	cells := []uint8{1, 0, 1, 0, 1, 1}
	counts := []uint8{1, 3, 2, 2, 4, 3}
	got, err := Next(cells, counts)
	if err != nil {
		t.Fatal(err)
	}
	if want := []uint8{0, 1, 1, 0, 0, 1}; !slices.Equal(got, want) {
		t.Fatalf("Next = %v, want %v", got, want)
	}
	if cells[0] != 1 {
		t.Fatal("Next must not modify its input")
	}
}

func TestNextRejectsBadInput(t *testing.T) {
	if _, err := Next([]uint8{0, 1}, []uint8{3}); err == nil {
		t.Fatal("expected length mismatch error")
	}
	if _, err := Next([]uint8{0}, []uint8{9}); err == nil {
		t.Fatal("expected out-of-range count error")
	}
}
