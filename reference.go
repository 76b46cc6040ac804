package life

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gogpu/life/internal/parallel"
)

// ErrAliasedWrite is returned when an invocation past the grid edge would
// write a different value than the in-range cell it aliases.
var ErrAliasedWrite = errors.New("life: aliased invocation disagrees with its cell")

// Reference steps a generation on the CPU by walking the same workgroup
// tile grid as the compute dispatch. It exists to check GPU output and to
// test the rule; it is never used in place of the GPU path.
//
// Invocations past the grid edge are evaluated and compared against the
// cell they alias instead of being written, so the output slice has exactly
// one writer per cell.
type Reference struct {
	grid     Grid
	dispatch parallel.Dispatch
	pool     *parallel.WorkerPool
}

// NewReference creates a reference executor for cfg.Grid and cfg.TileSize.
// workers <= 0 uses GOMAXPROCS.
func NewReference(cfg Config, workers int) (*Reference, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Reference{
		grid:     cfg.Grid,
		dispatch: parallel.NewDispatch(cfg.Grid.Width, cfg.Grid.Height, cfg.TileSize),
		pool:     parallel.NewWorkerPool(workers),
	}, nil
}

// Grid returns the grid the executor was built for.
func (r *Reference) Grid() Grid { return r.grid }

// Workgroups returns the dispatch size (tiles per axis).
func (r *Reference) Workgroups() (x, y int) {
	return r.dispatch.GroupsX, r.dispatch.GroupsY
}

// Step writes the generation after in to out. in is read-only.
func (r *Reference) Step(in, out []uint32) error {
	n := r.grid.Cells()
	if len(in) != n || len(out) != n {
		return fmt.Errorf("%w: in=%d out=%d cells, want %d", ErrStateSize, len(in), len(out), n)
	}

	var mismatches atomic.Int64
	g := r.grid
	r.dispatch.Run(r.pool, func(x, y int) {
		i := g.Index(x, y)
		v := NextCell(in[i], NeighborSum(in, g, x, y))
		if x < g.Width && y < g.Height {
			out[i] = v
			return
		}
		cx, cy := g.Coord(i)
		if v != NextCell(in[i], NeighborSum(in, g, cx, cy)) {
			mismatches.Add(1)
		}
	})

	if m := mismatches.Load(); m > 0 {
		return fmt.Errorf("%w: %d invocations", ErrAliasedWrite, m)
	}
	return nil
}

// Run advances cells by generations steps, ping-ponging between two
// buffers, and returns the final generation. cells is not modified.
func (r *Reference) Run(cells []uint32, generations int) ([]uint32, error) {
	if generations < 0 {
		return nil, fmt.Errorf("%w: negative generation count %d", ErrInvalidConfig, generations)
	}
	if len(cells) != r.grid.Cells() {
		return nil, fmt.Errorf("%w: got %d cells for grid %v", ErrStateSize, len(cells), r.grid)
	}
	bufs := [2][]uint32{
		append([]uint32(nil), cells...),
		make([]uint32, len(cells)),
	}
	for step := range generations {
		p := FramePlan(uint64(step)) //nolint:gosec // non-negative loop index
		if err := r.Step(bufs[p.ComputeIn], bufs[p.ComputeOut]); err != nil {
			return nil, fmt.Errorf("generation %d: %w", step, err)
		}
	}
	return bufs[Parity(uint64(generations))], nil //nolint:gosec // generations >= 0
}

// Close stops the worker pool.
func (r *Reference) Close() {
	r.pool.Close()
}
