package reveal

import (
	"image"
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// PaintStats counts the primitives painted onto a surface.
type PaintStats struct {
	Blobs  int `json:"blobs"`
	Lines  int `json:"lines"`
	Stamps int `json:"stamps"`
}

// Surface is the painting context handed to steppers. It owns the mask,
// the rasterizers that draw into it and the session's random source.
//
// All painting is alpha-over, so mask values never decrease.
type Surface struct {
	mask    *Mask
	layout  Layout
	brushes *BrushSet
	rng     *Rand
	stats   PaintStats

	ras     vector.Rasterizer
	src     image.Uniform
	scan    *rasterx.ScannerGV
	line    *rasterx.Stroker
	scratch []uint8
}

// NewSurface creates a surface with a fresh mask sized to layout.
// brushes may be nil.
func NewSurface(layout Layout, brushes *BrushSet, rng *Rand) *Surface {
	m := NewMask(layout.W, layout.H)
	scan := rasterx.NewScannerGV(1, 1, m.img, m.img.Rect)
	return &Surface{
		mask:    m,
		layout:  layout,
		brushes: brushes,
		rng:     rng,
		scan:    scan,
		line:    rasterx.NewStroker(1, 1, scan),
	}
}

// Mask returns the surface mask.
func (s *Surface) Mask() *Mask { return s.mask }

// Layout returns the geometry the surface was created for.
func (s *Surface) Layout() Layout { return s.layout }

// Stats returns the primitive counters.
func (s *Surface) Stats() PaintStats { return s.stats }

// brush returns a random loaded brush, or nil when none is available.
func (s *Surface) brush() *Brush {
	if s.brushes == nil {
		return nil
	}
	return s.brushes.Pick(s.rng)
}

func alphaByte(a float64) uint8 {
	return uint8(math.Round(clamp(a, 0, 1) * 255))
}

// FillBlob rasterizes b with anti-aliased coverage at the given alpha.
func (s *Surface) FillBlob(b Blob, alpha float64) {
	a := alphaByte(alpha)
	if a == 0 {
		return
	}
	var pts [blobVertices]Point
	b.outline(s.rng, &pts)

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	r := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	).Intersect(s.mask.Bounds())
	if r.Empty() {
		return
	}

	// Rasterizer coordinates are relative to r.Min.
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	s.ras.Reset(r.Dx(), r.Dy())
	s.ras.MoveTo(float32(pts[0].X-ox), float32(pts[0].Y-oy))
	for _, p := range pts[1:] {
		s.ras.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	s.ras.ClosePath()

	s.src.C = color.Alpha{A: a}
	s.ras.Draw(s.mask.img, r, &s.src, image.Point{})
	s.stats.Blobs++
}

// Line strokes an anti-aliased segment with round caps.
func (s *Surface) Line(a, b Point, width, alpha float64) {
	al := alphaByte(alpha)
	if al == 0 || width <= 0 {
		return
	}
	pad := width/2 + 2
	r := image.Rect(
		int(math.Floor(math.Min(a.X, b.X)-pad)), int(math.Floor(math.Min(a.Y, b.Y)-pad)),
		int(math.Ceil(math.Max(a.X, b.X)+pad)), int(math.Ceil(math.Max(a.Y, b.Y)+pad)),
	).Intersect(s.mask.Bounds())
	if r.Empty() {
		return
	}

	// The stroke is rasterized into a scratch buffer at the origin and then
	// composited, since the scanner draws over its whole destination.
	w, h := r.Dx(), r.Dy()
	if cap(s.scratch) < w*h {
		s.scratch = make([]uint8, w*h)
	}
	buf := &image.Alpha{Pix: s.scratch[:w*h], Stride: w, Rect: image.Rect(0, 0, w, h)}
	clear(buf.Pix)

	s.scan.Dest = buf
	s.scan.Targ = buf.Rect
	s.line.SetBounds(w, h)
	s.line.SetStroke(fixed.Int26_6(width*64), 4<<6, rasterx.RoundCap, nil, rasterx.RoundGap, rasterx.Round)
	s.scan.SetColor(color.Alpha{A: al})

	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	s.line.Start(rasterx.ToFixedP(a.X-ox, a.Y-oy))
	s.line.Line(rasterx.ToFixedP(b.X-ox, b.Y-oy))
	s.line.Stop(false)
	s.line.Draw()
	draw.Draw(s.mask.img, r, buf, image.Point{}, draw.Over)
	s.stats.Lines++
}

// Stamp draws brush centred at c, uniformly scaled, rotated by rotation
// radians and faded to alpha. An unrotated stamp is a plain scaled blit.
func (s *Surface) Stamp(brush *Brush, c Point, scale, rotation, alpha float64) {
	al := alphaByte(alpha)
	if brush == nil || al == 0 || scale <= 0 {
		return
	}
	src := brush.img
	sr := src.Bounds()
	s.src.C = color.Alpha{A: al}
	opts := &draw.Options{SrcMask: &s.src}

	if rotation == 0 {
		w := float64(sr.Dx()) * scale
		h := float64(sr.Dy()) * scale
		dr := image.Rect(
			int(math.Round(c.X-w/2)), int(math.Round(c.Y-h/2)),
			int(math.Round(c.X+w/2)), int(math.Round(c.Y+h/2)),
		)
		if dr.Empty() || !dr.Overlaps(s.mask.Bounds()) {
			return
		}
		draw.ApproxBiLinear.Scale(s.mask.img, dr, src, sr, draw.Over, opts)
		s.stats.Stamps++
		return
	}

	sin, cos := math.Sincos(rotation)
	a, b := scale*cos, -scale*sin
	d, e := scale*sin, scale*cos
	cx := float64(sr.Min.X) + float64(sr.Dx())/2
	cy := float64(sr.Min.Y) + float64(sr.Dy())/2
	m := f64.Aff3{
		a, b, c.X - (a*cx + b*cy),
		d, e, c.Y - (d*cx + e*cy),
	}
	draw.ApproxBiLinear.Transform(s.mask.img, m, src, sr, draw.Over, opts)
	s.stats.Stamps++
}

// Dab paints a soft round mark of the given radius at a random rotation.
// It stamps a random brush when one is loaded and falls back to a blob
// otherwise.
func (s *Surface) Dab(c Point, radius, alpha float64) {
	s.dab(c, radius, s.rng.Angle(), alpha)
}

func (s *Surface) dab(c Point, radius, rotation, alpha float64) {
	if b := s.brush(); b != nil {
		s.Stamp(b, c, 2*radius/float64(b.Size()), rotation, alpha)
		return
	}
	s.FillBlob(NewBlob(s.rng, c, radius, 0.18), alpha)
}
