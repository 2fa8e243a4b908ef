package reveal

import (
	"image"
	"image/color"
	"log/slog"
	"math"

	"golang.org/x/image/draw"

	"github.com/mpalenque/brush-sub000/internal/blend"
	"github.com/mpalenque/brush-sub000/internal/cache"
	"github.com/mpalenque/brush-sub000/internal/pool"
)

// backgroundCacheSize is the number of viewport sizes whose scaled
// background is kept.
const backgroundCacheSize = 4

// Overlay is a decorative layer multiplied over the revealed image.
type Overlay struct {
	Image   image.Image
	Opacity float64
}

// compositor turns the mask into a visible frame.
type compositor struct {
	log        *slog.Logger
	vp         Viewport
	paper      color.RGBA
	background image.Image
	overlays   []Overlay

	scaled  *cache.Cache[Viewport, *image.RGBA]
	buffers *pool.Pool
	layers  []*image.RGBA
	maskUp  *image.Alpha
	frame   *Frame
	warned  bool
}

func newCompositor(log *slog.Logger, vp Viewport, bg image.Image, overlays []Overlay, paper color.RGBA) *compositor {
	c := &compositor{
		log:        log,
		paper:      paper,
		background: bg,
		overlays:   overlays,
		scaled:     cache.New[Viewport, *image.RGBA](backgroundCacheSize),
		buffers:    pool.New(len(overlays)),
	}
	c.resize(vp)
	return c
}

// resize reallocates the viewport-sized buffers and re-renders the overlay
// layers. Overlay buffers come from the pool and are reused until the next
// resize.
func (c *compositor) resize(vp Viewport) {
	c.vp = vp
	w, h := max(vp.W, 1), max(vp.H, 1)
	c.frame = NewFrame(w, h)
	c.maskUp = image.NewAlpha(image.Rect(0, 0, w, h))

	for _, l := range c.layers {
		c.buffers.Put(l)
	}
	c.layers = c.layers[:0]
	for _, o := range c.overlays {
		buf := c.buffers.Get(w, h)
		coverScale(buf, o.Image, draw.ApproxBiLinear)
		c.layers = append(c.layers, buf)
	}
}

// coverScale scales src to fill dst, cropping the excess centrally.
func coverScale(dst *image.RGBA, src image.Image, s draw.Scaler) {
	if src == nil {
		return
	}
	sb := src.Bounds()
	if sb.Empty() {
		return
	}
	dw, dh := float64(dst.Rect.Dx()), float64(dst.Rect.Dy())
	k := math.Max(dw/float64(sb.Dx()), dh/float64(sb.Dy()))
	cw, ch := dw/k, dh/k
	x0 := float64(sb.Min.X) + (float64(sb.Dx())-cw)/2
	y0 := float64(sb.Min.Y) + (float64(sb.Dy())-ch)/2
	sr := image.Rect(
		int(math.Round(x0)), int(math.Round(y0)),
		int(math.Round(x0+cw)), int(math.Round(y0+ch)),
	).Intersect(sb)
	if sr.Empty() {
		sr = sb
	}
	s.Scale(dst, dst.Rect, src, sr, draw.Src, nil)
}

func (c *compositor) scaledBackground() *image.RGBA {
	return c.scaled.GetOrCreate(c.vp, func() *image.RGBA {
		buf := image.NewRGBA(c.frame.Bounds())
		coverScale(buf, c.background, draw.CatmullRom)
		return buf
	})
}

// render composites the background revealed through m onto paper, then
// multiplies the overlay layers on top.
func (c *compositor) render(m *Mask) *Frame {
	f := c.frame
	f.Clear()

	if c.background != nil {
		copy(f.img.Pix, c.scaledBackground().Pix)
	} else if !c.warned {
		c.warned = true
		c.log.Warn("no background image, rendering paper only")
	}

	draw.ApproxBiLinear.Scale(c.maskUp, c.maskUp.Rect, m.img, m.img.Rect, draw.Src, nil)
	blend.Mask(f.img.Pix, c.maskUp.Pix)
	blend.Solid(f.img.Pix, c.paper.R, c.paper.G, c.paper.B, 255, blend.BlendDestinationOver)

	for i, l := range c.layers {
		blend.Span(f.img.Pix, l.Pix, blend.BlendMultiply, clamp(c.overlays[i].Opacity, 0, 1))
	}
	return f
}
