package reveal

import "math"

// Baseline viewport against which entity counts and sizes are normalised.
const (
	baselineW = 1280
	baselineH = 720
)

// Viewport is the size of the presentation surface in device pixels.
type Viewport struct {
	W, H int
}

// Area returns the viewport area relative to the 1280×720 baseline.
// Negative dimensions count as zero.
func (v Viewport) Area() float64 {
	w, h := max(v.W, 0), max(v.H, 0)
	return float64(w) * float64(h) / (baselineW * baselineH)
}

// Layout is the mask geometry derived from a viewport and a mask scale.
// It is recomputed on every resize.
type Layout struct {
	Viewport Viewport
	// Scale is the number of mask pixels per device pixel.
	Scale float64
	// W and H are the mask dimensions; never smaller than 1×1.
	W, H int
	// Unit is the number of mask pixels per baseline pixel. Entity sizes
	// are specified in baseline pixels and multiplied by Unit.
	Unit float64
}

// NewLayout computes the mask layout for vp at the given mask scale.
func NewLayout(vp Viewport, scale float64) Layout {
	if scale <= 0 {
		scale = 1
	}
	w := max(1, int(math.Round(float64(max(vp.W, 0))*scale)))
	h := max(1, int(math.Round(float64(max(vp.H, 0))*scale)))
	norm := max(math.Sqrt(vp.Area()), 0.1)
	return Layout{
		Viewport: vp,
		Scale:    scale,
		W:        w,
		H:        h,
		Unit:     scale * norm,
	}
}

// Center returns the centre of the mask.
func (l Layout) Center() Point {
	return Point{X: float64(l.W) / 2, Y: float64(l.H) / 2}
}

// Margin is how far an entity may wander beyond the mask edge before its
// heading is redirected.
func (l Layout) Margin() float64 {
	return 0.04 * float64(min(l.W, l.H))
}

// Inside reports whether p lies within the mask extended by margin.
func (l Layout) Inside(p Point, margin float64) bool {
	return p.X >= -margin && p.Y >= -margin &&
		p.X <= float64(l.W)+margin && p.Y <= float64(l.H)+margin
}

// RandomPoint returns a uniform position on the mask.
func (l Layout) RandomPoint(r *Rand) Point {
	return Point{X: r.Uniform(0, float64(l.W)), Y: r.Uniform(0, float64(l.H))}
}

// countFor scales base by the viewport area and clamps the result.
func countFor(vp Viewport, base float64, lo, hi int) int {
	return int(math.Round(clamp(base*vp.Area(), float64(lo), float64(hi))))
}
