package reveal

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
)

// Frame is a composited output frame in premultiplied RGBA.
type Frame struct {
	width  int
	height int
	img    *image.RGBA
}

// NewFrame creates a transparent frame with the given dimensions.
func NewFrame(width, height int) *Frame {
	width, height = max(width, 1), max(height, 1)
	return &Frame{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Width returns the width of the frame.
func (f *Frame) Width() int {
	return f.width
}

// Height returns the height of the frame.
func (f *Frame) Height() int {
	return f.height
}

// Data returns the raw pixel data (premultiplied RGBA, stride 4*Width).
func (f *Frame) Data() []uint8 {
	return f.img.Pix
}

// RGBA returns the frame as an *image.RGBA sharing its pixels.
func (f *Frame) RGBA() *image.RGBA {
	return f.img
}

// Clear makes every pixel transparent.
func (f *Frame) Clear() {
	clear(f.img.Pix)
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	c := NewFrame(f.width, f.height)
	copy(c.img.Pix, f.img.Pix)
	return c
}

// EncodePNG writes the frame as PNG.
func (f *Frame) EncodePNG(w io.Writer) error {
	return png.Encode(w, f.img)
}

// SavePNG saves the frame to a PNG file.
func (f *Frame) SavePNG(path string) error {
	file, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := f.EncodePNG(file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// At implements the image.Image interface.
func (f *Frame) At(x, y int) color.Color {
	return f.img.At(x, y)
}

// RGBAAt returns the premultiplied pixel at (x, y).
func (f *Frame) RGBAAt(x, y int) color.RGBA {
	return f.img.RGBAAt(x, y)
}

// Bounds implements the image.Image interface.
func (f *Frame) Bounds() image.Rectangle {
	return f.img.Rect
}

// ColorModel implements the image.Image interface.
func (f *Frame) ColorModel() color.Model {
	return color.RGBAModel
}
