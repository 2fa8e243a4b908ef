package reveal

import (
	"bytes"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
)

func TestNewFrame(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		wantW int
		wantH int
	}{
		{"regular", 64, 32, 64, 32},
		{"zero", 0, 0, 1, 1},
		{"negative", -4, 3, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFrame(tt.w, tt.h)
			if f.Width() != tt.wantW || f.Height() != tt.wantH {
				t.Errorf("NewFrame(%d, %d) = %dx%d, want %dx%d", tt.w, tt.h, f.Width(), f.Height(), tt.wantW, tt.wantH)
			}
			if len(f.Data()) != tt.wantW*tt.wantH*4 {
				t.Errorf("len(Data()) = %d", len(f.Data()))
			}
		})
	}
}

func TestFrameCloneAndClear(t *testing.T) {
	f := NewFrame(4, 4)
	f.RGBA().SetRGBA(1, 1, color.RGBA{R: 9, A: 255})

	c := f.Clone()
	f.Clear()
	if got := f.RGBAAt(1, 1); got != (color.RGBA{}) {
		t.Errorf("cleared pixel = %v", got)
	}
	if got := c.RGBAAt(1, 1); got != (color.RGBA{R: 9, A: 255}) {
		t.Errorf("clone pixel = %v", got)
	}
}

func TestFramePNG(t *testing.T) {
	f := NewFrame(3, 2)
	f.RGBA().SetRGBA(2, 1, color.RGBA{G: 200, A: 255})

	var buf bytes.Buffer
	if err := f.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("decoded bounds %v", b)
	}
	if _, g, _, _ := img.At(2, 1).RGBA(); g>>8 != 200 {
		t.Errorf("decoded green = %d", g>>8)
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := f.SavePNG(path); err != nil {
		t.Fatal(err)
	}
	if err := f.SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png")); err == nil {
		t.Error("SavePNG into a missing directory should fail")
	}
}
