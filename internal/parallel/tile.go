// Package parallel executes compute-style dispatches on the CPU.
//
// A dispatch covers a width x height domain with square workgroup tiles.
// Like a GPU dispatch, the tile count is rounded up, so tiles on the right
// and bottom edges contain invocations past the end of the domain. Those
// invocations are still visited; kernels that address memory modulo the
// domain size stay in range by construction.
//
// Tiles are independent and are handed to a WorkerPool in parallel.
package parallel

// Tile is one workgroup of a dispatch.
type Tile struct {
	// X and Y are the workgroup indices.
	X, Y int

	// Size is the workgroup edge length in invocations.
	Size int
}

// Origin returns the global invocation id of the tile's first invocation.
func (t Tile) Origin() (x, y int) {
	return t.X * t.Size, t.Y * t.Size
}

// Each calls fn with the global invocation id of every invocation in the
// tile, row by row. Ids may exceed the dispatch domain on edge tiles.
func (t Tile) Each(fn func(x, y int)) {
	ox, oy := t.Origin()
	for ly := range t.Size {
		for lx := range t.Size {
			fn(ox+lx, oy+ly)
		}
	}
}

// Dispatch is a two-dimensional grid of workgroup tiles.
type Dispatch struct {
	GroupsX, GroupsY int
	Size             int
}

// NewDispatch returns the smallest dispatch of size x size tiles covering
// a width x height domain.
func NewDispatch(width, height, size int) Dispatch {
	if width <= 0 || height <= 0 || size <= 0 {
		return Dispatch{Size: size}
	}
	return Dispatch{
		GroupsX: (width + size - 1) / size,
		GroupsY: (height + size - 1) / size,
		Size:    size,
	}
}

// Len returns the number of tiles.
func (d Dispatch) Len() int {
	return d.GroupsX * d.GroupsY
}

// Invocations returns the total number of invocations, including those past
// the domain edge.
func (d Dispatch) Invocations() int {
	return d.Len() * d.Size * d.Size
}

// Tiles returns every tile in row-major order.
func (d Dispatch) Tiles() []Tile {
	tiles := make([]Tile, 0, d.Len())
	for ty := range d.GroupsY {
		for tx := range d.GroupsX {
			tiles = append(tiles, Tile{X: tx, Y: ty, Size: d.Size})
		}
	}
	return tiles
}

// Run executes kernel for every invocation of the dispatch, one pool task
// per tile, and returns when all tiles are done.
func (d Dispatch) Run(pool *WorkerPool, kernel func(x, y int)) {
	tiles := d.Tiles()
	work := make([]func(), len(tiles))
	for i, t := range tiles {
		work[i] = func() { t.Each(kernel) }
	}
	pool.ExecuteAll(work)
}
