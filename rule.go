package life

import "fmt"

// Offset is a relative neighbor position.
type Offset struct {
	DX, DY int
}

// NeighborOffsets lists the eight neighbors in the order the compute shader
// sums them. On grids smaller than 3x3 some offsets resolve to the same cell
// and that cell is counted once per offset.
var NeighborOffsets = [8]Offset{
	{+1, +1}, {+1, 0}, {+1, -1}, {0, -1},
	{-1, -1}, {-1, 0}, {-1, +1}, {0, +1},
}

// NextCell applies the life rule to one cell: a sum of 2 keeps the current
// state, a sum of 3 makes the cell alive, anything else kills it.
func NextCell(current, sum uint32) uint32 {
	switch sum {
	case 2:
		return current
	case 3:
		return 1
	default:
		return 0
	}
}

// NeighborSum returns the live-neighbor count of (x, y) in cells.
func NeighborSum(cells []uint32, g Grid, x, y int) uint32 {
	var sum uint32
	for _, o := range NeighborOffsets {
		sum += cells[g.Index(x+o.DX, y+o.DY)]
	}
	return sum
}

// NextState returns the generation after cur. cur is not modified.
func NextState(cur []uint32, g Grid) ([]uint32, error) {
	if len(cur) != g.Cells() {
		return nil, fmt.Errorf("%w: got %d cells for grid %v", ErrStateSize, len(cur), g)
	}
	next := make([]uint32, len(cur))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			i := g.Index(x, y)
			next[i] = NextCell(cur[i], NeighborSum(cur, g, x, y))
		}
	}
	return next, nil
}

// Population returns the number of live cells.
func Population(cells []uint32) int {
	n := 0
	for _, c := range cells {
		if c != 0 {
			n++
		}
	}
	return n
}
