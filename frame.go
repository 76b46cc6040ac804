package life

// Plan describes which state buffer each half of one frame touches.
// Buffer indices are 0 (A) and 1 (B).
type Plan struct {
	// ComputeBinding is the binding configuration used by the dispatch.
	ComputeBinding int
	// ComputeIn and ComputeOut are the buffers read and written by the dispatch.
	ComputeIn, ComputeOut int
	// RenderBinding is the binding configuration used by the draw.
	RenderBinding int
	// RenderIn is the buffer the draw visualizes.
	RenderIn int
	// NextStep is the step counter after the frame.
	NextStep uint64
}

// Parity reduces a step counter to the binding configuration it selects.
func Parity(step uint64) int {
	return int(step & 1)
}

// FramePlan returns the plan for the frame that starts at step. Binding
// configuration i reads buffer i and writes buffer 1-i. The render half
// always uses the configuration selected after the increment, whose input
// is the buffer the compute half just wrote.
func FramePlan(step uint64) Plan {
	c := Parity(step)
	next := step + 1
	r := Parity(next)
	return Plan{
		ComputeBinding: c,
		ComputeIn:      c,
		ComputeOut:     1 - c,
		RenderBinding:  r,
		RenderIn:       r,
		NextStep:       next,
	}
}

// WorkgroupCount returns the number of tiles needed to cover n cells with
// tiles of the given size (ceiling division).
func WorkgroupCount(n, tile int) int {
	return (n + tile - 1) / tile
}
