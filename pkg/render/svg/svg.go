// Package svg draws symbols as an SVG document.
package svg

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/symbol"
)

// FontFamily is the CSS family used for text.
const FontFamily = "Go"

const fallbackFamily = `'Go', 'DejaVu Sans', sans-serif`

type state struct {
	color     color.NRGBA
	lineWidth float64
}

// Canvas is a symbol.Canvas that builds an SVG document in memory.
type Canvas struct {
	width, height float64
	dx, dy        float64
	fontSize      float64
	background    *color.NRGBA
	fontData      []byte

	cur   state
	stack []state
	path  strings.Builder
	body  bytes.Buffer
}

var _ symbol.Canvas = (*Canvas)(nil)

// Option configures NewCanvas.
type Option func(*Canvas)

// WithOffset shifts every coordinate by (dx, dy).
func WithOffset(dx, dy float64) Option {
	return func(c *Canvas) { c.dx, c.dy = dx, dy }
}

// WithFontSize sets the text size (default 10).
func WithFontSize(size float64) Option {
	return func(c *Canvas) { c.fontSize = size }
}

// WithBackground paints a full-page rectangle first.
func WithBackground(col color.Color) Option {
	return func(c *Canvas) {
		bg := color.NRGBAModel.Convert(col).(color.NRGBA)
		c.background = &bg
	}
}

// WithEmbeddedFont embeds a TrueType font so viewers draw the same glyphs
// that were measured.
func WithEmbeddedFont(ttf []byte) Option {
	return func(c *Canvas) { c.fontData = ttf }
}

// NewCanvas creates an SVG page of the given size.
func NewCanvas(width, height float64, opts ...Option) *Canvas {
	c := &Canvas{
		width:    width,
		height:   height,
		fontSize: 10,
		cur:      state{color: color.NRGBA{A: 255}, lineWidth: 1},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Canvas) Save() {
	c.stack = append(c.stack, c.cur)
}

func (c *Canvas) Restore() {
	if n := len(c.stack); n > 0 {
		c.cur = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

func (c *Canvas) SetColor(col color.Color) {
	c.cur.color = color.NRGBAModel.Convert(col).(color.NRGBA)
}

func (c *Canvas) SetLineWidth(w float64) {
	c.cur.lineWidth = w
}

func (c *Canvas) MoveTo(x, y float64) {
	fmt.Fprintf(&c.path, "M%s %s ", num(x+c.dx), num(y+c.dy))
}

func (c *Canvas) LineTo(x, y float64) {
	fmt.Fprintf(&c.path, "L%s %s ", num(x+c.dx), num(y+c.dy))
}

func (c *Canvas) Rectangle(x, y, w, h float64) {
	fmt.Fprintf(&c.path, "M%s %s h%s v%s h%s Z ",
		num(x+c.dx), num(y+c.dy), num(w), num(h), num(-w))
}

func (c *Canvas) Stroke() {
	d := strings.TrimSpace(c.path.String())
	c.path.Reset()
	if d == "" {
		return
	}
	fmt.Fprintf(&c.body, `  <path d="%s" fill="none" stroke="%s"%s stroke-width="%s"/>`+"\n",
		d, hex(c.cur.color), opacity("stroke-opacity", c.cur.color), num(c.cur.lineWidth))
}

func (c *Canvas) FillText(text string, x, y float64) {
	if text == "" {
		return
	}
	fmt.Fprintf(&c.body, `  <text x="%s" y="%s" fill="%s"%s>`,
		num(x+c.dx), num(y+c.dy), hex(c.cur.color), opacity("fill-opacity", c.cur.color))
	xml.EscapeText(&c.body, []byte(text))
	c.body.WriteString("</text>\n")
}

// WriteTo writes the complete document.
func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(c.width), num(c.height), num(c.width), num(c.height))

	buf.WriteString("  <style>\n")
	if len(c.fontData) > 0 {
		fmt.Fprintf(&buf, "    @font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }\n",
			FontFamily, base64.StdEncoding.EncodeToString(c.fontData))
	}
	fmt.Fprintf(&buf, "    text { font-family: %s; font-size: %spx; white-space: pre; }\n", fallbackFamily, num(c.fontSize))
	buf.WriteString("  </style>\n")

	if c.background != nil {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", hex(*c.background))
	}
	buf.Write(c.body.Bytes())
	buf.WriteString("</svg>\n")

	n, err := w.Write(buf.Bytes())
	if err != nil {
		return int64(n), fmt.Errorf("failed to write svg: %w", err)
	}
	return int64(n), nil
}

// Bytes returns the complete document.
func (c *Canvas) Bytes() []byte {
	var buf bytes.Buffer
	c.WriteTo(&buf)
	return buf.Bytes()
}

// num formats a coordinate to two decimals without trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func opacity(attr string, c color.NRGBA) string {
	if c.A == 255 {
		return ""
	}
	return fmt.Sprintf(` %s="%s"`, attr, num(float64(c.A)/255))
}
