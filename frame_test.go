package life

import "testing"

func TestFramePlanAlternation(t *testing.T) {
	p0 := FramePlan(0)
	if p0.ComputeIn != 0 || p0.ComputeOut != 1 || p0.RenderIn != 1 {
		t.Errorf("step 0: compute %d->%d render %d, want 0->1 render 1", p0.ComputeIn, p0.ComputeOut, p0.RenderIn)
	}

	p1 := FramePlan(1)
	if p1.ComputeIn != 1 || p1.ComputeOut != 0 || p1.RenderIn != 0 {
		t.Errorf("step 1: compute %d->%d render %d, want 1->0 render 0", p1.ComputeIn, p1.ComputeOut, p1.RenderIn)
	}
}

func TestFramePlanRendersLatestWrite(t *testing.T) {
	for _, step := range []uint64{0, 1, 2, 3, 1 << 40, 1<<64 - 2} {
		p := FramePlan(step)
		if p.RenderIn != p.ComputeOut {
			t.Errorf("step %d: render reads %d, compute wrote %d", step, p.RenderIn, p.ComputeOut)
		}
		if p.RenderBinding != Parity(p.NextStep) {
			t.Errorf("step %d: render binding %d, want parity of next step", step, p.RenderBinding)
		}
		if p.ComputeBinding != p.ComputeIn || p.RenderBinding != p.RenderIn {
			t.Errorf("step %d: binding i must read buffer i", step)
		}
		if p.NextStep != step+1 {
			t.Errorf("step %d: NextStep = %d", step, p.NextStep)
		}
	}
}

func TestWorkgroupCount(t *testing.T) {
	tests := []struct{ n, tile, want int }{
		{32, 8, 4},
		{33, 8, 5},
		{1, 8, 1},
		{7, 1, 7},
	}
	for _, tt := range tests {
		if got := WorkgroupCount(tt.n, tt.tile); got != tt.want {
			t.Errorf("WorkgroupCount(%d, %d) = %d, want %d", tt.n, tt.tile, got, tt.want)
		}
	}
}
