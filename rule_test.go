package life

import (
	"errors"
	"slices"
	"testing"
)

func TestNextCell(t *testing.T) {
	tests := []struct {
		current, sum, want uint32
	}{
		{0, 3, 1},
		{1, 3, 1},
		{1, 2, 1},
		{0, 2, 0},
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
		{1, 1, 0},
		{0, 4, 0},
		{1, 4, 0},
		{1, 8, 0},
	}
	for _, tt := range tests {
		if got := NextCell(tt.current, tt.sum); got != tt.want {
			t.Errorf("NextCell(%d, %d) = %d, want %d", tt.current, tt.sum, got, tt.want)
		}
	}
}

func TestNextStateAllDeadIsFixedPoint(t *testing.T) {
	g := Grid{Width: 7, Height: 5}
	cur := make([]uint32, g.Cells())

	next, err := NextState(cur, g)
	if err != nil {
		t.Fatalf("NextState: %v", err)
	}
	if !slices.Equal(next, cur) {
		t.Errorf("all-dead grid changed: %v", next)
	}
}

func TestNextStateBlinker(t *testing.T) {
	g := Grid{Width: 5, Height: 5}
	horizontal := make([]uint32, g.Cells())
	for x := 1; x <= 3; x++ {
		horizontal[g.Index(x, 2)] = 1
	}
	vertical := make([]uint32, g.Cells())
	for y := 1; y <= 3; y++ {
		vertical[g.Index(2, y)] = 1
	}

	next, err := NextState(horizontal, g)
	if err != nil {
		t.Fatalf("NextState: %v", err)
	}
	if !slices.Equal(next, vertical) {
		t.Errorf("blinker did not rotate:\n got %v\nwant %v", next, vertical)
	}

	back, _ := NextState(next, g)
	if !slices.Equal(back, horizontal) {
		t.Error("blinker period is not 2")
	}
}

func TestNextStateGliderWrapsAroundTorus(t *testing.T) {
	g := Grid{Width: 6, Height: 6}
	cells := make([]uint32, g.Cells())
	for _, p := range [][2]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}} {
		cells[g.Index(p[0], p[1])] = 1
	}

	// A glider moves one cell diagonally every 4 generations; after
	// 4*6 generations it is back where it started on a 6x6 torus.
	cur := cells
	for range 24 {
		var err error
		cur, err = NextState(cur, g)
		if err != nil {
			t.Fatalf("NextState: %v", err)
		}
		if Population(cur) != 5 {
			t.Fatalf("glider population = %d, want 5", Population(cur))
		}
	}
	if !slices.Equal(cur, cells) {
		t.Error("glider did not return to its start after crossing the torus")
	}
}

// On a 2x2 grid x-1 and x+1 name the same column, so the fixed offsets
// count each neighbor several times. The live row sees a sum of 2 and
// survives; the dead row sees 6 and stays dead.
func TestNextStateTwoByTwoAliasing(t *testing.T) {
	g := Grid{Width: 2, Height: 2}
	cur := []uint32{1, 1, 0, 0}

	wantSums := []uint32{2, 2, 6, 6}
	for i, want := range wantSums {
		x, y := g.Coord(i)
		if got := NeighborSum(cur, g, x, y); got != want {
			t.Errorf("NeighborSum(%d, %d) = %d, want %d", x, y, got, want)
		}
	}

	next, err := NextState(cur, g)
	if err != nil {
		t.Fatalf("NextState: %v", err)
	}
	if !slices.Equal(next, cur) {
		t.Errorf("NextState = %v, want %v", next, cur)
	}
}

func TestNextStateSizeMismatch(t *testing.T) {
	_, err := NextState(make([]uint32, 3), Grid{Width: 2, Height: 2})
	if !errors.Is(err, ErrStateSize) {
		t.Errorf("error = %v, want ErrStateSize", err)
	}
}

func TestPopulation(t *testing.T) {
	if got := Population([]uint32{0, 1, 1, 0, 1}); got != 3 {
		t.Errorf("Population = %d, want 3", got)
	}
}
