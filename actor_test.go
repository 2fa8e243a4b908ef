package reveal

import (
	"math"
	"testing"
)

func TestWindowLocalAndTarget(t *testing.T) {
	w := NewWindow(0.3, 0.6)
	if got := w.Local(0.45); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Local(0.45) = %v, want 0.5", got)
	}
	if got := w.Target(0.45, 100); got != 50 {
		t.Errorf("Target(0.45, 100) = %d, want 50", got)
	}

	tests := []struct {
		p    float64
		want int
	}{
		{0, 0},
		{0.29, 0},
		{0.3, 0},
		{0.6, 100},
		{1, 100},
	}
	for _, tt := range tests {
		if got := w.Target(tt.p, 100); got != tt.want {
			t.Errorf("Target(%v, 100) = %d, want %d", tt.p, got, tt.want)
		}
	}
}

func TestWindowTargetMonotonic(t *testing.T) {
	w := NewWindow(0.12, 0.83)
	prev := 0
	for i := 0; i <= 1000; i++ {
		got := w.Target(float64(i)/1000, 37)
		if got < prev {
			t.Fatalf("target decreased at p=%v: %d < %d", float64(i)/1000, got, prev)
		}
		if got > 37 {
			t.Fatalf("target %d exceeds steps", got)
		}
		prev = got
	}
}

func TestNewWindowClamps(t *testing.T) {
	tests := []struct {
		start, end float64
		want       Window
	}{
		{-0.5, 0.5, Window{0, 0.5}},
		{0.2, 1.7, Window{0.2, 1}},
		{0.8, 0.4, Window{0.8, 0.8}},
		{1.2, 1.5, Window{1, 1}},
	}
	for _, tt := range tests {
		if got := NewWindow(tt.start, tt.end); got != tt.want {
			t.Errorf("NewWindow(%v, %v) = %+v, want %+v", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestZeroLengthWindow(t *testing.T) {
	w := NewWindow(0.5, 0.5)
	if got := w.Local(0.49); got != 0 {
		t.Errorf("Local before start = %v, want 0", got)
	}
	if got := w.Local(0.5); got != 1 {
		t.Errorf("Local at start = %v, want 1", got)
	}
	if got := w.Target(0.5, 12); got != 12 {
		t.Errorf("Target at start = %d, want 12", got)
	}
}

func TestSizeMultiplier(t *testing.T) {
	if got := SizeMultiplier(0); math.Abs(got-0.2) > 1e-12 {
		t.Errorf("SizeMultiplier(0) = %v, want 0.2", got)
	}
	want := 0.2 + (1-math.Exp(-2.8))*1.4
	if got := SizeMultiplier(1); math.Abs(got-want) > 1e-12 {
		t.Errorf("SizeMultiplier(1) = %v, want %v", got, want)
	}
	prev := 0.0
	for i := 0; i <= 100; i++ {
		got := SizeMultiplier(float64(i) / 100)
		if got < prev {
			t.Fatalf("size multiplier decreased at %d", i)
		}
		prev = got
	}
}

func TestKindNames(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Errorf("ParseKind(%q): %v", k, err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %v", k, got)
		}
	}
	if _, err := ParseKind("splash"); err == nil {
		t.Error("expected error for unknown kind")
	}
	if got := Kind(200).String(); got != "Kind(200)" {
		t.Errorf("unexpected name for invalid kind: %q", got)
	}
}

func TestKindsPriorityOrder(t *testing.T) {
	want := []Kind{
		KindStroke, KindDroplet, KindSpiral, KindRadiant, KindWave,
		KindConnector, KindSweep, KindWash, KindSeal, KindCornerSeal,
	}
	got := Kinds()
	if len(got) != len(want) {
		t.Fatalf("got %d kinds, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Kinds()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
