// Package record provides a Canvas that records drawing primitives instead
// of painting them. A recording can be replayed onto another canvas,
// measured for its ink bounds, or dumped as text.
package record

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/symbol"
)

// ErrUnbalanced reports a Restore without a matching Save, or a Save that
// was never restored.
var ErrUnbalanced = errors.New("unbalanced save/restore")

// Kind identifies a recorded primitive.
type Kind int

const (
	Save Kind = iota
	Restore
	SetColor
	SetLineWidth
	MoveTo
	LineTo
	Rectangle
	Stroke
	FillText
)

var kindNames = map[Kind]string{
	Save:         "save",
	Restore:      "restore",
	SetColor:     "color",
	SetLineWidth: "line-width",
	MoveTo:       "move",
	LineTo:       "line",
	Rectangle:    "rect",
	Stroke:       "stroke",
	FillText:     "text",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Op is one recorded primitive. Only the fields meaningful for Kind are set.
type Op struct {
	Kind  Kind
	X, Y  float64
	W, H  float64
	Width float64
	Color color.NRGBA
	Text  string
}

func (op Op) String() string {
	switch op.Kind {
	case SetColor:
		return fmt.Sprintf("%s #%02x%02x%02x%02x", op.Kind, op.Color.R, op.Color.G, op.Color.B, op.Color.A)
	case SetLineWidth:
		return fmt.Sprintf("%s %g", op.Kind, op.Width)
	case MoveTo, LineTo:
		return fmt.Sprintf("%s %.2f,%.2f", op.Kind, op.X, op.Y)
	case Rectangle:
		return fmt.Sprintf("%s %.2f,%.2f %.2fx%.2f", op.Kind, op.X, op.Y, op.W, op.H)
	case FillText:
		return fmt.Sprintf("%s %.2f,%.2f %q", op.Kind, op.X, op.Y, op.Text)
	default:
		return op.Kind.String()
	}
}

// Canvas records every call made to it.
type Canvas struct {
	ops   []Op
	depth int
	err   error
}

var _ symbol.Canvas = (*Canvas)(nil)

// New returns an empty recording.
func New() *Canvas {
	return &Canvas{}
}

func (c *Canvas) add(op Op) {
	c.ops = append(c.ops, op)
}

func (c *Canvas) Save() {
	c.depth++
	c.add(Op{Kind: Save})
}

func (c *Canvas) Restore() {
	if c.depth == 0 {
		if c.err == nil {
			c.err = fmt.Errorf("%w: restore at depth 0 (op %d)", ErrUnbalanced, len(c.ops))
		}
		return
	}
	c.depth--
	c.add(Op{Kind: Restore})
}

func (c *Canvas) SetColor(col color.Color) {
	c.add(Op{Kind: SetColor, Color: color.NRGBAModel.Convert(col).(color.NRGBA)})
}

func (c *Canvas) SetLineWidth(w float64) {
	c.add(Op{Kind: SetLineWidth, Width: w})
}

func (c *Canvas) MoveTo(x, y float64) {
	c.add(Op{Kind: MoveTo, X: x, Y: y})
}

func (c *Canvas) LineTo(x, y float64) {
	c.add(Op{Kind: LineTo, X: x, Y: y})
}

func (c *Canvas) Rectangle(x, y, w, h float64) {
	c.add(Op{Kind: Rectangle, X: x, Y: y, W: w, H: h})
}

func (c *Canvas) Stroke() {
	c.add(Op{Kind: Stroke})
}

func (c *Canvas) FillText(text string, x, y float64) {
	c.add(Op{Kind: FillText, X: x, Y: y, Text: text})
}

// Ops returns a copy of the recorded primitives.
func (c *Canvas) Ops() []Op {
	return append([]Op(nil), c.ops...)
}

// Texts returns the FillText ops in order.
func (c *Canvas) Texts() []Op {
	var out []Op
	for _, op := range c.ops {
		if op.Kind == FillText {
			out = append(out, op)
		}
	}
	return out
}

// Err reports save/restore misuse seen so far, or a Save still open.
func (c *Canvas) Err() error {
	if c.err != nil {
		return c.err
	}
	if c.depth != 0 {
		return fmt.Errorf("%w: %d save(s) not restored", ErrUnbalanced, c.depth)
	}
	return nil
}

// Reset drops the recording.
func (c *Canvas) Reset() {
	c.ops = c.ops[:0]
	c.depth = 0
	c.err = nil
}

// Replay issues the recorded primitives, in order, on dst.
func (c *Canvas) Replay(dst symbol.Canvas) {
	for _, op := range c.ops {
		switch op.Kind {
		case Save:
			dst.Save()
		case Restore:
			dst.Restore()
		case SetColor:
			dst.SetColor(op.Color)
		case SetLineWidth:
			dst.SetLineWidth(op.Width)
		case MoveTo:
			dst.MoveTo(op.X, op.Y)
		case LineTo:
			dst.LineTo(op.X, op.Y)
		case Rectangle:
			dst.Rectangle(op.X, op.Y, op.W, op.H)
		case Stroke:
			dst.Stroke()
		case FillText:
			dst.FillText(op.Text, op.X, op.Y)
		}
	}
}

// String dumps one primitive per line, indented by save depth.
func (c *Canvas) String() string {
	var b strings.Builder
	depth := 0
	for _, op := range c.ops {
		if op.Kind == Restore && depth > 0 {
			depth--
		}
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(op.String())
		b.WriteByte('\n')
		if op.Kind == Save {
			depth++
		}
	}
	return b.String()
}

// Bounds returns the box covering everything the recording paints: stroked
// paths widened by half their line width, and the ink box of every text.
// ok is false when nothing is painted.
func (c *Canvas) Bounds(m symbol.Measurer) (r symbol.Rect, ok bool) {
	var bb box
	lineWidth := 1.0
	var widths []float64
	var path []symbol.Point

	for _, op := range c.ops {
		switch op.Kind {
		case Save:
			widths = append(widths, lineWidth)
		case Restore:
			if n := len(widths); n > 0 {
				lineWidth = widths[n-1]
				widths = widths[:n-1]
			}
		case SetLineWidth:
			lineWidth = op.Width
		case MoveTo, LineTo:
			path = append(path, symbol.Point{X: op.X, Y: op.Y})
		case Rectangle:
			path = append(path,
				symbol.Point{X: op.X, Y: op.Y},
				symbol.Point{X: op.X + op.W, Y: op.Y + op.H})
		case Stroke:
			half := lineWidth / 2
			for _, p := range path {
				bb.add(p.X-half, p.Y-half)
				bb.add(p.X+half, p.Y+half)
			}
			path = path[:0]
		case FillText:
			if op.Text == "" {
				continue
			}
			e := m.Measure(op.Text)
			if e.Width == 0 && e.Height == 0 {
				continue
			}
			x := op.X + e.XBearing
			y := op.Y + e.YBearing
			bb.add(x, y)
			bb.add(x+e.Width, y+e.Height)
		}
	}
	if !bb.valid {
		return symbol.Rect{}, false
	}
	return symbol.Rect{X: bb.minX, Y: bb.minY, W: bb.maxX - bb.minX, H: bb.maxY - bb.minY}, true
}

type box struct {
	minX, minY, maxX, maxY float64
	valid                  bool
}

func (b *box) add(x, y float64) {
	if !b.valid {
		b.minX, b.maxX, b.minY, b.maxY = x, x, y, y
		b.valid = true
		return
	}
	b.minX = math.Min(b.minX, x)
	b.minY = math.Min(b.minY, y)
	b.maxX = math.Max(b.maxX, x)
	b.maxY = math.Max(b.maxY, y)
}
