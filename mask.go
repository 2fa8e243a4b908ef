package reveal

import (
	"image"
	"math"
)

// Mask is the single-channel reveal mask. Values range from 0 (background
// hidden) to 255 (background fully revealed). Paint only ever accumulates
// on a mask; it is cleared on restart and replaced on resize.
type Mask struct {
	width  int
	height int
	img    *image.Alpha
}

// NewMask creates a new empty mask with the given dimensions.
// Dimensions smaller than 1 are raised to 1.
func NewMask(width, height int) *Mask {
	width, height = max(width, 1), max(height, 1)
	return &Mask{
		width:  width,
		height: height,
		img:    image.NewAlpha(image.Rect(0, 0, width, height)),
	}
}

// Bounds returns the mask dimensions as an image.Rectangle.
func (m *Mask) Bounds() image.Rectangle {
	return m.img.Rect
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height.
func (m *Mask) Height() int { return m.height }

// At returns the mask value at (x, y).
// Returns 0 for coordinates outside the mask bounds.
func (m *Mask) At(x, y int) uint8 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return m.img.Pix[y*m.img.Stride+x]
}

// Clear clears the mask (sets all values to 0).
func (m *Mask) Clear() {
	clear(m.img.Pix)
}

// Clone creates a copy of the mask.
func (m *Mask) Clone() *Mask {
	c := NewMask(m.width, m.height)
	copy(c.img.Pix, m.img.Pix)
	return c
}

// Data returns the underlying mask data slice, row-major with stride Width.
func (m *Mask) Data() []uint8 {
	return m.img.Pix
}

// Image exposes the mask as an *image.Alpha for drawing and scaling.
func (m *Mask) Image() *image.Alpha {
	return m.img
}

// Coverage returns the fraction of mask pixels whose value is at least
// threshold.
func (m *Mask) Coverage(threshold uint8) float64 {
	n := 0
	for _, v := range m.img.Pix {
		if v >= threshold {
			n++
		}
	}
	return float64(n) / float64(len(m.img.Pix))
}

// CoverageWithin is Coverage restricted to the disc of radius r around
// (cx, cy). It returns 0 when the disc contains no pixel centres.
func (m *Mask) CoverageWithin(cx, cy, r float64, threshold uint8) float64 {
	x0 := max(0, int(math.Floor(cx-r)))
	x1 := min(m.width-1, int(math.Ceil(cx+r)))
	y0 := max(0, int(math.Floor(cy-r)))
	y1 := min(m.height-1, int(math.Ceil(cy+r)))
	total, hit := 0, 0
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy > r*r {
				continue
			}
			total++
			if m.img.Pix[y*m.img.Stride+x] >= threshold {
				hit++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(hit) / float64(total)
}

// Dominates reports whether every pixel of m is at least the matching
// pixel of prev. Masks of different sizes never dominate each other.
func (m *Mask) Dominates(prev *Mask) bool {
	if prev == nil {
		return true
	}
	if m.width != prev.width || m.height != prev.height {
		return false
	}
	for i, v := range m.img.Pix {
		if v < prev.img.Pix[i] {
			return false
		}
	}
	return true
}
