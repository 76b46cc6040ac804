package life

import "math/rand/v2"

// NewRand returns the random source for the initial generation: seeded
// from cfg.Seed when cfg.Seeded is set, otherwise from the process-wide
// source.
func NewRand(cfg Config) *rand.Rand {
	seed := cfg.Seed
	if !cfg.Seeded {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SeedRandom returns a generation where each cell is independently alive
// with probability 0.5.
func SeedRandom(g Grid, r *rand.Rand) []uint32 {
	cells := make([]uint32, g.Cells())
	for i := range cells {
		if r.Float64() > 0.5 {
			cells[i] = 1
		}
	}
	return cells
}

// SeedOdd returns a generation where cell i is alive iff i is odd. The
// second buffer is only scratch space for the first step's output, so its
// content never reaches the screen.
func SeedOdd(g Grid) []uint32 {
	cells := make([]uint32, g.Cells())
	for i := range cells {
		cells[i] = uint32(i % 2) //nolint:gosec // 0 or 1
	}
	return cells
}
