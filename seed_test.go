package life

import (
	"slices"
	"testing"
)

func TestSeedOdd(t *testing.T) {
	cells := SeedOdd(Grid{Width: 3, Height: 2})
	want := []uint32{0, 1, 0, 1, 0, 1}
	if !slices.Equal(cells, want) {
		t.Errorf("SeedOdd = %v, want %v", cells, want)
	}
}

func TestSeedRandomReproducible(t *testing.T) {
	cfg, err := NewConfig(WithGridSize(16, 16), WithSeed(7))
	if err != nil {
		t.Fatal(err)
	}

	a := SeedRandom(cfg.Grid, NewRand(cfg))
	b := SeedRandom(cfg.Grid, NewRand(cfg))
	if !slices.Equal(a, b) {
		t.Error("same seed produced different generations")
	}
	for i, c := range a {
		if c > 1 {
			t.Fatalf("cell %d = %d, want 0 or 1", i, c)
		}
	}
}

func TestSeedRandomDensity(t *testing.T) {
	cfg, _ := NewConfig(WithGridSize(128, 128), WithSeed(1))
	cells := SeedRandom(cfg.Grid, NewRand(cfg))

	live := Population(cells)
	frac := float64(live) / float64(len(cells))
	if frac < 0.45 || frac > 0.55 {
		t.Errorf("live fraction = %.3f, want about 0.5", frac)
	}
}
