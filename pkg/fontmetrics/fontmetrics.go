// Package fontmetrics measures text with an OpenType face so layouts can be
// computed before any drawing surface exists.
//
// The default face is Go Regular at 10 units, matching the default font
// size of most vector backends. Measurements are in the same units as the
// face size (DPI is fixed at 72, so one point is one unit).
package fontmetrics

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/symbol"
)

// DefaultSize is the font size used when none is given.
const DefaultSize = 10.0

// Face is a loaded font face that implements symbol.Measurer.
type Face struct {
	face font.Face
	size float64
	data []byte
}

var _ symbol.Measurer = (*Face)(nil)

type options struct {
	size float64
	data []byte
	path string
}

// Option configures New.
type Option func(*options)

// WithSize sets the font size.
func WithSize(size float64) Option {
	return func(o *options) { o.size = size }
}

// WithFontData uses the given TrueType/OpenType font instead of Go Regular.
func WithFontData(data []byte) Option {
	return func(o *options) { o.data = data }
}

// WithFontFile loads the font from path.
func WithFontFile(path string) Option {
	return func(o *options) { o.path = path }
}

// New loads a face.
func New(opts ...Option) (*Face, error) {
	o := options{size: DefaultSize, data: goregular.TTF}
	for _, opt := range opts {
		opt(&o)
	}
	if o.size <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %g", o.size)
	}
	if o.path != "" {
		data, err := os.ReadFile(o.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font: %w", err)
		}
		o.data = data
	}

	f, err := opentype.Parse(o.data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    o.size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}

	return &Face{face: face, size: o.size, data: o.data}, nil
}

// Measure returns the ink extents of text.
func (f *Face) Measure(text string) symbol.Extents {
	if text == "" {
		return symbol.Extents{}
	}
	bounds, advance := font.BoundString(f.face, text)
	return symbol.Extents{
		XBearing: toFloat(bounds.Min.X),
		YBearing: toFloat(bounds.Min.Y),
		Width:    toFloat(bounds.Max.X - bounds.Min.X),
		Height:   toFloat(bounds.Max.Y - bounds.Min.Y),
		XAdvance: toFloat(advance),
	}
}

// LineHeight is the ascent plus descent of the face.
func (f *Face) LineHeight() float64 {
	m := f.face.Metrics()
	return toFloat(m.Ascent + m.Descent)
}

// Ascent is the distance from the baseline to the top of a line.
func (f *Face) Ascent() float64 {
	return toFloat(f.face.Metrics().Ascent)
}

// Size returns the font size.
func (f *Face) Size() float64 {
	return f.size
}

// Face exposes the underlying face for raster backends.
func (f *Face) Face() font.Face {
	return f.face
}

// Data returns the raw font file the face was built from.
func (f *Face) Data() []byte {
	return f.data
}

// Close releases the face.
func (f *Face) Close() error {
	return f.face.Close()
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
