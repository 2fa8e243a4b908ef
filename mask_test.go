package reveal

import "testing"

func TestNewMask(t *testing.T) {
	mask := NewMask(100, 100)
	if mask.Width() != 100 || mask.Height() != 100 {
		t.Errorf("expected 100x100, got %dx%d", mask.Width(), mask.Height())
	}

	// All values should be 0
	if mask.At(50, 50) != 0 {
		t.Errorf("expected 0, got %d", mask.At(50, 50))
	}
}

func TestNewMaskMinimumSize(t *testing.T) {
	mask := NewMask(0, -3)
	if mask.Width() != 1 || mask.Height() != 1 {
		t.Errorf("expected 1x1, got %dx%d", mask.Width(), mask.Height())
	}
}

func TestMaskClone(t *testing.T) {
	mask := NewMask(100, 100)
	mask.Data()[50*100+50] = 200

	clone := mask.Clone()
	mask.Clear()

	if clone.At(50, 50) != 200 {
		t.Errorf("clone should not be affected, expected 200, got %d", clone.At(50, 50))
	}
	if mask.At(50, 50) != 0 {
		t.Errorf("expected cleared mask, got %d", mask.At(50, 50))
	}
}

func TestMaskBounds(t *testing.T) {
	mask := NewMask(100, 100)

	// Out of bounds should return 0
	if mask.At(-1, 50) != 0 {
		t.Error("expected 0 for out of bounds (negative x)")
	}
	if mask.At(100, 50) != 0 {
		t.Error("expected 0 for out of bounds (x >= width)")
	}
	if mask.At(50, -1) != 0 {
		t.Error("expected 0 for out of bounds (negative y)")
	}
	if mask.At(50, 100) != 0 {
		t.Error("expected 0 for out of bounds (y >= height)")
	}
}

func TestMaskCoverage(t *testing.T) {
	mask := NewMask(10, 10)
	data := mask.Data()
	for i := range 25 {
		data[i] = 255
	}
	data[30] = 100

	tests := []struct {
		threshold uint8
		want      float64
	}{
		{255, 0.25},
		{100, 0.26},
		{1, 0.26},
	}
	for _, tt := range tests {
		if got := mask.Coverage(tt.threshold); got != tt.want {
			t.Errorf("Coverage(%d) = %v, want %v", tt.threshold, got, tt.want)
		}
	}
}

func TestMaskCoverageWithin(t *testing.T) {
	mask := NewMask(20, 20)
	data := mask.Data()
	for y := 5; y < 15; y++ {
		for x := 5; x < 15; x++ {
			data[y*20+x] = 255
		}
	}
	if got := mask.CoverageWithin(10, 10, 4, 255); got != 1 {
		t.Errorf("inner disc coverage = %v, want 1", got)
	}
	if got := mask.CoverageWithin(10, 10, 10, 255); got >= 1 || got <= 0 {
		t.Errorf("outer disc coverage = %v, want in (0,1)", got)
	}
	if got := mask.CoverageWithin(-50, -50, 2, 1); got != 0 {
		t.Errorf("off-mask disc coverage = %v, want 0", got)
	}
}

func TestMaskDominates(t *testing.T) {
	prev := NewMask(4, 4)
	prev.Data()[5] = 10

	cur := prev.Clone()
	cur.Data()[6] = 50
	if !cur.Dominates(prev) {
		t.Error("superset mask should dominate")
	}

	cur.Data()[5] = 9
	if cur.Dominates(prev) {
		t.Error("decreased pixel should break domination")
	}

	if NewMask(5, 4).Dominates(prev) {
		t.Error("size mismatch should not dominate")
	}
	if !cur.Dominates(nil) {
		t.Error("any mask dominates nil")
	}
}
