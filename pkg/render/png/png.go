// Package png draws symbols onto a raster image and encodes it as PNG.
package png

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/symbol"
)

// Canvas is a symbol.Canvas backed by a gg context. Coordinates are
// offset and then scaled into pixels.
type Canvas struct {
	dc *gg.Context

	scale  float64
	dx, dy float64
}

var _ symbol.Canvas = (*Canvas)(nil)

type options struct {
	scale      float64
	dx, dy     float64
	background color.Color
	face       font.Face
}

// Option configures NewCanvas.
type Option func(*options)

// WithScale sets pixels per surface unit (default 1).
func WithScale(s float64) Option {
	return func(o *options) { o.scale = s }
}

// WithOffset shifts every coordinate by (dx, dy) surface units.
func WithOffset(dx, dy float64) Option {
	return func(o *options) { o.dx, o.dy = dx, dy }
}

// WithBackground fills the image before drawing. Nil leaves it transparent.
func WithBackground(c color.Color) Option {
	return func(o *options) { o.background = c }
}

// WithFace sets the face used for text. It should already be sized for
// the scale in use.
func WithFace(f font.Face) Option {
	return func(o *options) { o.face = f }
}

// NewCanvas creates an image for a page of width x height surface units.
func NewCanvas(width, height float64, opts ...Option) (*Canvas, error) {
	o := options{scale: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.scale <= 0 || math.IsNaN(o.scale) || math.IsInf(o.scale, 0) {
		return nil, fmt.Errorf("invalid scale %g", o.scale)
	}

	w := int(math.Ceil(width * o.scale))
	h := int(math.Ceil(height * o.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty page %dx%d", w, h)
	}

	dc := gg.NewContext(w, h)
	if o.background != nil {
		dc.SetColor(o.background)
		dc.Clear()
	}
	dc.SetColor(color.Black)
	if o.face != nil {
		dc.SetFontFace(o.face)
	}

	return &Canvas{dc: dc, scale: o.scale, dx: o.dx, dy: o.dy}, nil
}

func (c *Canvas) pt(x, y float64) (float64, float64) {
	return (x + c.dx) * c.scale, (y + c.dy) * c.scale
}

func (c *Canvas) Save()    { c.dc.Push() }
func (c *Canvas) Restore() { c.dc.Pop() }

func (c *Canvas) SetColor(col color.Color) { c.dc.SetColor(col) }

func (c *Canvas) SetLineWidth(w float64) { c.dc.SetLineWidth(w * c.scale) }

func (c *Canvas) MoveTo(x, y float64) {
	c.dc.MoveTo(c.pt(x, y))
}

func (c *Canvas) LineTo(x, y float64) {
	c.dc.LineTo(c.pt(x, y))
}

func (c *Canvas) Rectangle(x, y, w, h float64) {
	px, py := c.pt(x, y)
	c.dc.DrawRectangle(px, py, w*c.scale, h*c.scale)
}

func (c *Canvas) Stroke() { c.dc.Stroke() }

func (c *Canvas) FillText(text string, x, y float64) {
	if text == "" {
		return
	}
	px, py := c.pt(x, y)
	c.dc.DrawString(text, px, py)
}

// Image returns the drawn image.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// Encode writes the image as PNG.
func (c *Canvas) Encode(w io.Writer) error {
	if err := c.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
