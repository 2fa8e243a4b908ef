// Package pattern generates the placeholder background shown when no
// background image is configured: a smooth colour field driven by simplex
// noise and mapped through a colour gradient.
package pattern

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/ojrac/opensimplex-go"
)

// Stop is one colour of a gradient at position Pos in [0, 1].
type Stop struct {
	Col colorful.Color
	Pos float64
}

// Gradient is a list of stops sorted by position.
type Gradient []Stop

// At returns the colour at t, blended in HCL space between the
// surrounding stops. t outside the stops clamps to the end colours.
func (g Gradient) At(t float64) colorful.Color {
	if len(g) == 0 {
		return colorful.Color{}
	}
	for i := 0; i < len(g)-1; i++ {
		c1, c2 := g[i], g[i+1]
		if c1.Pos <= t && t <= c2.Pos {
			if c2.Pos == c1.Pos {
				return c2.Col
			}
			k := (t - c1.Pos) / (c2.Pos - c1.Pos)
			return c1.Col.BlendHcl(c2.Col, k).Clamped()
		}
	}
	if t < g[0].Pos {
		return g[0].Col
	}
	return g[len(g)-1].Col
}

// ParseGradient builds an evenly spaced gradient from hex colours.
func ParseGradient(hex ...string) (Gradient, error) {
	g := make(Gradient, len(hex))
	for i, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, err
		}
		pos := 0.0
		if len(hex) > 1 {
			pos = float64(i) / float64(len(hex)-1)
		}
		g[i] = Stop{Col: c, Pos: pos}
	}
	return g, nil
}

// Default is an ink-and-ochre palette that reads well through the reveal.
var Default = Gradient{
	{colorful.Hsv(222, 0.62, 0.32), 0.0},
	{colorful.Hsv(200, 0.45, 0.55), 0.35},
	{colorful.Hsv(38, 0.55, 0.85), 0.7},
	{colorful.Hsv(12, 0.7, 0.6), 1.0},
}

// Options controls the noise field.
type Options struct {
	Seed int64
	// Scale is the feature size in pixels.
	Scale float64
	// Octaves of noise summed, each at twice the frequency and half the
	// amplitude of the previous one.
	Octaves  int
	Gradient Gradient
}

// Render draws a w×h pattern.
func Render(w, h int, opts Options) *image.RGBA {
	w, h = max(w, 1), max(h, 1)
	if opts.Scale <= 0 {
		opts.Scale = 0.35 * float64(max(w, h))
	}
	if opts.Octaves <= 0 {
		opts.Octaves = 3
	}
	if len(opts.Gradient) == 0 {
		opts.Gradient = Default
	}

	noise := opensimplex.NewNormalized(opts.Seed)
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	// Normalizing by the total amplitude keeps the sum in [0, 1].
	total := 0.0
	for o := range opts.Octaves {
		total += math.Pow(0.5, float64(o))
	}
	for y := range h {
		for x := range w {
			v := 0.0
			freq, amp := 1/opts.Scale, 1.0
			for range opts.Octaves {
				v += amp * noise.Eval2(float64(x)*freq, float64(y)*freq)
				freq *= 2
				amp *= 0.5
			}
			r, g, b := opts.Gradient.At(v / total).RGB255()
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
