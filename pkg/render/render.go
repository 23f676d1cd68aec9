// Package render turns a symbol into a finished page.
//
// Drawing happens twice: first onto a recording canvas to find the ink
// bounds, then the recording is replayed onto the output backend with the
// page sized to those bounds plus a margin.
package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/fontmetrics"
	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/render/png"
	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/render/record"
	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/render/svg"
	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/symbol"
)

// Format is an output file format.
type Format int

const (
	FormatPNG Format = iota
	FormatSVG
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatSVG:
		return "svg"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat parses "png" or "svg".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return FormatPNG, nil
	case "svg":
		return FormatSVG, nil
	default:
		return 0, fmt.Errorf("unsupported output format %q (want png or svg)", s)
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return 0, fmt.Errorf("cannot infer output format from %q", path)
	}
	return ParseFormat(ext)
}

// Options controls page rendering.
type Options struct {
	Margin float64 // Blank border around the ink, in surface units
	Scale  float64 // Pixels per unit for raster output
	Font   *fontmetrics.Face

	// Transparent skips the background fill.
	Transparent bool
}

// DefaultOptions returns a 10 unit margin at 2x raster scale.
func DefaultOptions() Options {
	return Options{Margin: 10, Scale: 2}
}

// Page is a recorded symbol with the page geometry worked out.
type Page struct {
	Width, Height float64
	// OffsetX and OffsetY move symbol coordinates onto the page.
	OffsetX, OffsetY float64

	rec *record.Canvas
}

// Record draws sym onto a recording and sizes a page around the ink.
func Record(sym *symbol.Symbol, l *symbol.Layout, margin float64) (*Page, error) {
	if err := l.Config.Validate(); err != nil {
		return nil, err
	}
	if margin < 0 {
		return nil, fmt.Errorf("margin must not be negative, got %g", margin)
	}

	rec := record.New()
	sym.Draw(rec, l)
	if err := rec.Err(); err != nil {
		return nil, fmt.Errorf("recording %q: %w", sym.Name, err)
	}

	bounds, ok := rec.Bounds(l.Measurer())
	if !ok {
		bounds = symbol.Rect{}
	}

	return &Page{
		Width:   bounds.W + 2*margin,
		Height:  bounds.H + 2*margin,
		OffsetX: margin - bounds.X,
		OffsetY: margin - bounds.Y,
		rec:     rec,
	}, nil
}

// Recording returns the primitives drawn for the page.
func (p *Page) Recording() *record.Canvas {
	return p.rec
}

// Replay draws the page onto c, which is assumed to apply the page offset.
func (p *Page) Replay(c symbol.Canvas) {
	p.rec.Replay(c)
}

// Render draws sym and encodes it in format f.
func Render(sym *symbol.Symbol, l *symbol.Layout, f Format, opts Options) ([]byte, error) {
	page, err := Record(sym, l, opts.Margin)
	if err != nil {
		return nil, err
	}

	switch f {
	case FormatPNG:
		return renderPNG(page, l, opts)
	case FormatSVG:
		return renderSVG(page, l, opts), nil
	default:
		return nil, fmt.Errorf("unsupported output format %v", f)
	}
}

func renderPNG(page *Page, l *symbol.Layout, opts Options) ([]byte, error) {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	fontOpts := []fontmetrics.Option{fontmetrics.WithSize(fontmetrics.DefaultSize * scale)}
	if opts.Font != nil {
		fontOpts = []fontmetrics.Option{
			fontmetrics.WithSize(opts.Font.Size() * scale),
			fontmetrics.WithFontData(opts.Font.Data()),
		}
	}
	face, err := fontmetrics.New(fontOpts...)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	pngOpts := []png.Option{
		png.WithScale(scale),
		png.WithOffset(page.OffsetX, page.OffsetY),
		png.WithFace(face.Face()),
	}
	if !opts.Transparent {
		pngOpts = append(pngOpts, png.WithBackground(l.Palette.Background))
	}

	c, err := png.NewCanvas(page.Width, page.Height, pngOpts...)
	if err != nil {
		return nil, err
	}
	page.Replay(c)

	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderSVG(page *Page, l *symbol.Layout, opts Options) []byte {
	svgOpts := []svg.Option{svg.WithOffset(page.OffsetX, page.OffsetY)}
	if opts.Font != nil {
		svgOpts = append(svgOpts,
			svg.WithFontSize(opts.Font.Size()),
			svg.WithEmbeddedFont(opts.Font.Data()))
	}
	if !opts.Transparent {
		svgOpts = append(svgOpts, svg.WithBackground(l.Palette.Background))
	}

	c := svg.NewCanvas(page.Width, page.Height, svgOpts...)
	page.Replay(c)
	return c.Bytes()
}

// WriteFile renders sym to path, picking the format from the extension.
func WriteFile(path string, sym *symbol.Symbol, l *symbol.Layout, opts Options) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Render(sym, l, f, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
