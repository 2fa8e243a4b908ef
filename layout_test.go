package reveal

import "testing"

func TestNewLayout(t *testing.T) {
	tests := []struct {
		name  string
		vp    Viewport
		scale float64
		w, h  int
		unit  float64
	}{
		{"baseline", Viewport{1280, 720}, 0.5, 640, 360, 0.5},
		{"full hd", Viewport{1920, 1080}, 0.5, 960, 540, 0.75},
		{"quarter", Viewport{640, 360}, 1, 640, 360, 0.5},
		{"empty", Viewport{0, 0}, 0.5, 1, 1, 0.05},
		{"negative", Viewport{-10, 50}, 1, 1, 50, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLayout(tt.vp, tt.scale)
			if l.W != tt.w || l.H != tt.h {
				t.Errorf("mask = %dx%d, want %dx%d", l.W, l.H, tt.w, tt.h)
			}
			if diff := l.Unit - tt.unit; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("unit = %v, want %v", l.Unit, tt.unit)
			}
		})
	}
}

func TestCountFor(t *testing.T) {
	tests := []struct {
		vp   Viewport
		want int
	}{
		{Viewport{1280, 720}, 320},
		{Viewport{0, 0}, 240},
		{Viewport{640, 360}, 240},
		{Viewport{1920, 1080}, 450},
		{Viewport{1440, 720}, 360},
	}
	for _, tt := range tests {
		if got := countFor(tt.vp, 320, 240, 450); got != tt.want {
			t.Errorf("countFor(%v) = %d, want %d", tt.vp, got, tt.want)
		}
	}
}

func TestLayoutInside(t *testing.T) {
	l := NewLayout(Viewport{100, 100}, 1)
	if !l.Inside(Pt(-3, 50), 4) {
		t.Error("point within margin should be inside")
	}
	if l.Inside(Pt(-5, 50), 4) {
		t.Error("point beyond margin should be outside")
	}
	if !l.Inside(l.Center(), 0) {
		t.Error("centre should be inside")
	}
}
