package life

import "testing"

func TestQuadVertices(t *testing.T) {
	v := QuadVertices(DefaultCellScale)

	want := [12]float32{-0.8, -0.8, 0.8, -0.8, 0.8, 0.8, -0.8, -0.8, 0.8, 0.8, -0.8, 0.8}
	if v != want {
		t.Errorf("QuadVertices(0.8) = %v, want %v", v, want)
	}
	for i, f := range v {
		if f <= -1 || f >= 1 {
			t.Errorf("vertex component %d = %v must stay strictly inside one cell", i, f)
		}
	}
}
