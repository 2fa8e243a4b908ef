package reveal

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register JPEG brush decoding
	_ "image/png"  // register PNG brush decoding
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/ojrac/opensimplex-go"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// svgBrushSize is the raster size of the longer side of an SVG brush.
const svgBrushSize = 256

// Brush is an alpha raster stamped onto the mask.
type Brush struct {
	name string
	img  *image.Alpha
}

// NewBrush converts img into a brush. Images with transparency contribute
// their alpha channel; fully opaque images contribute inverted luminance,
// so dark paint on white paper becomes opaque.
func NewBrush(name string, img image.Image) *Brush {
	b := img.Bounds()
	out := image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy()))
	opaque := true
	for y := b.Min.Y; y < b.Max.Y && opaque; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				opaque = false
				break
			}
		}
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.At(x, y)
			var v uint8
			if opaque {
				v = 255 - color.GrayModel.Convert(c).(color.Gray).Y
			} else {
				_, _, _, a := c.RGBA()
				v = uint8(a >> 8)
			}
			out.Pix[(y-b.Min.Y)*out.Stride+(x-b.Min.X)] = v
		}
	}
	return &Brush{name: name, img: out}
}

// Name returns the brush name (the file name for loaded brushes).
func (b *Brush) Name() string { return b.name }

// Size returns the longer side of the brush raster in pixels.
func (b *Brush) Size() int { return max(b.img.Rect.Dx(), b.img.Rect.Dy(), 1) }

// Image returns the brush alpha raster.
func (b *Brush) Image() *image.Alpha { return b.img }

// ProceduralBrush renders a round brush of the given size whose radial
// falloff is broken up by simplex-noise grain.
func ProceduralBrush(seed int64, size int) *Brush {
	size = max(size, 4)
	noise := opensimplex.NewNormalized(seed)
	img := image.NewAlpha(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	freq := 6 / float64(size)
	for y := range size {
		for x := range size {
			dx, dy := (float64(x)+0.5-c)/c, (float64(y)+0.5-c)/c
			d := math.Hypot(dx, dy)
			if d >= 1 {
				continue
			}
			falloff := 1 - smoothstep((d-0.55)/0.45)
			grain := 0.55 + 0.45*noise.Eval2(float64(x)*freq, float64(y)*freq)
			img.Pix[y*img.Stride+x] = alphaByte(falloff * grain)
		}
	}
	return &Brush{name: fmt.Sprintf("procedural-%d", seed), img: img}
}

// ProceduralBrushes returns n procedural brushes seeded consecutively.
func ProceduralBrushes(seed int64, n, size int) []*Brush {
	out := make([]*Brush, 0, n)
	for i := range n {
		out = append(out, ProceduralBrush(seed+int64(i), size))
	}
	return out
}

// LoadBrush reads a PNG, JPEG or SVG brush file.
func LoadBrush(path string) (*Brush, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open brush: %w", err)
	}
	defer f.Close()

	name := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		icon, err := oksvg.ReadIconStream(f, oksvg.IgnoreErrorMode)
		if err != nil {
			return nil, fmt.Errorf("parse svg brush %s: %w", name, err)
		}
		return NewBrush(name, rasterizeSVG(icon)), nil
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode brush %s: %w", name, err)
	}
	return NewBrush(name, img), nil
}

func rasterizeSVG(icon *oksvg.SvgIcon) *image.RGBA {
	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		vw, vh = 1, 1
	}
	k := svgBrushSize / math.Max(vw, vh)
	w, h := max(1, int(math.Round(vw*k))), max(1, int(math.Round(vh*k)))
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return img
}

var brushExts = []string{".png", ".jpg", ".jpeg", ".svg"}

// LoadBrushDir loads every brush file in dir in name order. Files that
// fail to load are skipped and reported in the joined error.
func LoadBrushDir(dir string) ([]*Brush, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read brush dir: %w", err)
	}
	var (
		out  []*Brush
		errs []error
	)
	for _, e := range entries {
		if e.IsDir() || !slices.Contains(brushExts, strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		b, err := LoadBrush(filepath.Join(dir, e.Name()))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, b)
	}
	return out, errors.Join(errs...)
}

// BrushSet is the set of brushes a session stamps with. It may be filled
// in the background while sessions are already running; until then Pick
// returns nil and painters use their fallback shapes.
type BrushSet struct {
	brushes atomic.Pointer[[]*Brush]
}

// NewBrushSet returns a set holding brushes.
func NewBrushSet(brushes ...*Brush) *BrushSet {
	bs := &BrushSet{}
	bs.Set(brushes)
	return bs
}

// Set replaces the brushes of the set.
func (bs *BrushSet) Set(brushes []*Brush) {
	cp := slices.Clone(brushes)
	bs.brushes.Store(&cp)
}

// Len returns the number of loaded brushes.
func (bs *BrushSet) Len() int {
	p := bs.brushes.Load()
	if p == nil {
		return 0
	}
	return len(*p)
}

// Pick returns a random brush, or nil when the set is empty.
func (bs *BrushSet) Pick(r *Rand) *Brush {
	p := bs.brushes.Load()
	if p == nil || len(*p) == 0 {
		return nil
	}
	return (*p)[r.IntRange(0, len(*p)-1)]
}

// LoadAsync loads dir in a new goroutine and publishes the result. The
// returned channel is closed when loading ends. Failures are logged and
// leave the set unchanged.
func (bs *BrushSet) LoadAsync(ctx context.Context, dir string) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		brushes, err := LoadBrushDir(dir)
		if err != nil {
			Logger().Warn("brush loading failed", "dir", dir, "error", err)
		}
		if ctx.Err() != nil || len(brushes) == 0 {
			return
		}
		bs.Set(brushes)
		Logger().Info("brushes loaded", "dir", dir, "count", len(brushes))
	}()
	return done
}
