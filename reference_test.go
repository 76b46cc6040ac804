package life

import (
	"errors"
	"slices"
	"testing"
)

func newTestReference(t *testing.T, opts ...Option) *Reference {
	t.Helper()
	cfg, err := NewConfig(opts...)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	r, err := NewReference(cfg, 4)
	if err != nil {
		t.Fatalf("NewReference: %v", err)
	}
	t.Cleanup(r.Close)
	return r
}

func TestReferenceMatchesNextState(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tile          int
	}{
		{"divisible", 32, 32, 8},
		{"ragged edge", 37, 21, 8},
		{"tile larger than grid", 5, 3, 16},
		{"unit tiles", 9, 9, 1},
		{"two by two", 2, 2, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestReference(t, WithGridSize(tt.width, tt.height), WithTileSize(tt.tile), WithSeed(99))
			g := r.Grid()
			cur := SeedRandom(g, NewRand(Config{Seed: 99, Seeded: true}))

			want, err := NextState(cur, g)
			if err != nil {
				t.Fatal(err)
			}
			got := make([]uint32, g.Cells())
			if err := r.Step(cur, got); err != nil {
				t.Fatalf("Step: %v", err)
			}
			if !slices.Equal(got, want) {
				t.Error("tiled reference differs from NextState")
			}
		})
	}
}

func TestReferenceWorkgroups(t *testing.T) {
	r := newTestReference(t, WithGridSize(33, 16), WithTileSize(8))
	x, y := r.Workgroups()
	if x != 5 || y != 2 {
		t.Errorf("Workgroups() = (%d, %d), want (5, 2)", x, y)
	}
}

func TestReferenceRunPingPong(t *testing.T) {
	r := newTestReference(t, WithGridSize(12, 10), WithTileSize(4))
	g := r.Grid()
	start := SeedRandom(g, NewRand(Config{Seed: 3, Seeded: true}))
	orig := slices.Clone(start)

	want := start
	for range 7 {
		want, _ = NextState(want, g)
	}

	got, err := r.Run(start, 7)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !slices.Equal(got, want) {
		t.Error("Run(7) differs from seven NextState calls")
	}
	if !slices.Equal(start, orig) {
		t.Error("Run modified its input")
	}

	zero, err := r.Run(start, 0)
	if err != nil || !slices.Equal(zero, start) {
		t.Errorf("Run(0) = %v, %v; want the input unchanged", zero, err)
	}
}

func TestReferenceErrors(t *testing.T) {
	r := newTestReference(t, WithGridSize(4, 4))

	if err := r.Step(make([]uint32, 3), make([]uint32, 16)); !errors.Is(err, ErrStateSize) {
		t.Errorf("Step with short input: %v, want ErrStateSize", err)
	}
	if _, err := r.Run(make([]uint32, 16), -1); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Run(-1): %v, want ErrInvalidConfig", err)
	}
}

func BenchmarkReferenceStep(b *testing.B) {
	cfg, _ := NewConfig(WithGridSize(256, 256), WithSeed(1))
	r, _ := NewReference(cfg, 0)
	defer r.Close()
	cur := SeedRandom(cfg.Grid, NewRand(cfg))
	next := make([]uint32, len(cur))

	b.ResetTimer()
	for range b.N {
		_ = r.Step(cur, next)
	}
}
