package life

import "testing"

func TestGridIndexWraparound(t *testing.T) {
	g := Grid{Width: 4, Height: 4}

	if got, want := g.Index(-1, 0), g.Index(3, 0); got != want {
		t.Errorf("Index(-1, 0) = %d, want Index(3, 0) = %d", got, want)
	}

	for _, tt := range []struct{ x, y, wx, wy int }{
		{-1, 0, 3, 0},
		{4, 0, 0, 0},
		{0, -1, 0, 3},
		{0, 4, 0, 0},
		{-1, -1, 3, 3},
		{4, 4, 0, 0},
		{9, -6, 1, 2},
	} {
		if got, want := g.Index(tt.x, tt.y), g.Index(tt.wx, tt.wy); got != want {
			t.Errorf("Index(%d, %d) = %d, want %d", tt.x, tt.y, got, want)
		}
	}
}

func TestGridIndexRectangular(t *testing.T) {
	g := Grid{Width: 5, Height: 3}

	if got := g.Index(4, 2); got != 14 {
		t.Errorf("Index(4, 2) = %d, want 14", got)
	}
	if got := g.Index(5, 3); got != 0 {
		t.Errorf("Index(5, 3) = %d, want 0", got)
	}
	if got := g.Index(-1, -1); got != 14 {
		t.Errorf("Index(-1, -1) = %d, want 14", got)
	}

	for i := range g.Cells() {
		x, y := g.Coord(i)
		if g.Index(x, y) != i {
			t.Errorf("Index(Coord(%d)) = %d", i, g.Index(x, y))
		}
	}
}

func TestInstanceCell(t *testing.T) {
	x, y := InstanceCell(10, 8)
	if x != 2 || y != 1 {
		t.Errorf("InstanceCell(10, 8) = (%d, %d), want (2, 1)", x, y)
	}

	x, y = InstanceCell(0, 8)
	if x != 0 || y != 0 {
		t.Errorf("InstanceCell(0, 8) = (%d, %d), want (0, 0)", x, y)
	}

	x, y = InstanceCell(31, 32)
	if x != 31 || y != 0 {
		t.Errorf("InstanceCell(31, 32) = (%d, %d), want (31, 0)", x, y)
	}
}

func TestCellColor(t *testing.T) {
	g := Grid{Width: 4, Height: 4}

	if c := g.CellColor(0, 0); c != (Color{R: 0, G: 0, B: 1, A: 1}) {
		t.Errorf("CellColor(0, 0) = %+v", c)
	}
	if c := g.CellColor(2, 1); c != (Color{R: 0.5, G: 0.25, B: 0.5, A: 1}) {
		t.Errorf("CellColor(2, 1) = %+v", c)
	}
}

func TestGridValidate(t *testing.T) {
	if err := (Grid{Width: 1, Height: 1}).Validate(); err != nil {
		t.Errorf("1x1 grid invalid: %v", err)
	}
	if err := (Grid{Width: 0, Height: 1}).Validate(); err == nil {
		t.Error("0x1 grid should be invalid")
	}
	if err := (Grid{Width: 1 << 20, Height: 1 << 20}).Validate(); err == nil {
		t.Error("grid with 2^40 cells should be invalid")
	}
}
