package life

import (
	"fmt"
	"math"
)

// Grid is the fixed width and height of the simulation in cells.
// The reference configuration is square, but any rectangle is supported.
type Grid struct {
	Width  int
	Height int
}

// Validate reports whether both dimensions are positive and the cell count
// fits the u32 instance index used by the render stage.
func (g Grid) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: grid %dx%d must be positive", ErrInvalidConfig, g.Width, g.Height)
	}
	if uint64(g.Width)*uint64(g.Height) > math.MaxUint32 {
		return fmt.Errorf("%w: grid %dx%d has too many cells", ErrInvalidConfig, g.Width, g.Height)
	}
	return nil
}

// Cells returns width*height.
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// String returns "WxH".
func (g Grid) String() string {
	return fmt.Sprintf("%dx%d", g.Width, g.Height)
}

// Index returns the flat row-major index of cell (x, y). Coordinates wrap
// toroidally, so x = -1 names the last column and x = Width the first.
func (g Grid) Index(x, y int) int {
	return wrap(y, g.Height)*g.Width + wrap(x, g.Width)
}

// Coord is the inverse of Index for in-range indices.
func (g Grid) Coord(i int) (x, y int) {
	return i % g.Width, i / g.Width
}

// InstanceCell maps a render instance index to its cell coordinate:
// (i mod width, floor(i / width)).
func InstanceCell(instance uint32, width int) (x, y uint32) {
	w := uint32(width) //nolint:gosec // grid dimensions validated to fit u32
	return instance % w, instance / w
}

// CellColor is the fragment color of cell (x, y): a gradient over the
// normalized grid coordinate that ignores the cell state.
func (g Grid) CellColor(x, y int) Color {
	cx := float64(x) / float64(g.Width)
	cy := float64(y) / float64(g.Height)
	return Color{R: cx, G: cy, B: 1 - cx, A: 1}
}

// wrap reduces v into [0, n) using Euclidean modulo.
func wrap(v, n int) int {
	m := v % n
	if m < 0 {
		m += n
	}
	return m
}
