// Package gio draws symbols with Gio operations for on-screen preview.
package gio

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/font/opentype"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/render"
	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/symbol"
)

// NewTheme returns a material theme that shapes labels with the font the
// layout was measured with. fontData is a TrueType or OpenType file (or
// collection); nil keeps the Go fonts, which fontmetrics measures by
// default. The Go fonts stay in the collection as glyph fallback.
func NewTheme(fontData []byte) (*material.Theme, error) {
	th := material.NewTheme()
	collection := gofont.Collection()
	if len(fontData) > 0 {
		faces, err := opentype.ParseCollection(fontData)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font: %w", err)
		}
		if len(faces) == 0 {
			return nil, fmt.Errorf("font file has no faces")
		}
		th.Face = faces[0].Font.Typeface
		collection = append(faces, collection...)
	}
	th.Shaper = text.NewShaper(text.WithCollection(collection), text.NoSystemFonts())
	return th, nil
}

type state struct {
	color color.NRGBA
	width float32
}

type segment struct {
	move bool
	pt   f32.Point
}

// Canvas is a symbol.Canvas that appends to gtx.Ops. Surface units are
// offset and then scaled into pixels.
type Canvas struct {
	gtx      layout.Context
	theme    *material.Theme
	offset   f32.Point
	scale    float32
	fontSize float32

	cur   state
	stack []state
	path  []segment
}

var _ symbol.Canvas = (*Canvas)(nil)

// NewCanvas draws into gtx. fontSize is in surface units.
func NewCanvas(gtx layout.Context, th *material.Theme, offset f32.Point, scale, fontSize float32) *Canvas {
	return &Canvas{
		gtx:      gtx,
		theme:    th,
		offset:   offset,
		scale:    scale,
		fontSize: fontSize,
		cur:      state{color: color.NRGBA{A: 255}, width: 1},
	}
}

func (c *Canvas) pt(x, y float64) f32.Point {
	return f32.Pt((float32(x)+c.offset.X)*c.scale, (float32(y)+c.offset.Y)*c.scale)
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
	c.cur.width = float32(w)
}

func (c *Canvas) MoveTo(x, y float64) {
	c.path = append(c.path, segment{move: true, pt: c.pt(x, y)})
}

func (c *Canvas) LineTo(x, y float64) {
	c.path = append(c.path, segment{pt: c.pt(x, y)})
}

func (c *Canvas) Rectangle(x, y, w, h float64) {
	c.MoveTo(x, y)
	c.LineTo(x+w, y)
	c.LineTo(x+w, y+h)
	c.LineTo(x, y+h)
	c.LineTo(x, y)
}

func (c *Canvas) Stroke() {
	if len(c.path) == 0 {
		return
	}
	var p clip.Path
	p.Begin(c.gtx.Ops)
	for _, s := range c.path {
		if s.move {
			p.MoveTo(s.pt)
		} else {
			p.LineTo(s.pt)
		}
	}
	c.path = c.path[:0]

	paint.FillShape(c.gtx.Ops, c.cur.color, clip.Stroke{
		Path:  p.End(),
		Width: c.cur.width * c.scale,
	}.Op())
}

// FillText lays the label out off-screen first so its baseline can be
// placed on y.
func (c *Canvas) FillText(s string, x, y float64) {
	if s == "" {
		return
	}
	gtx := c.gtx
	gtx.Constraints = layout.Constraints{Max: image.Pt(1<<20, 1<<20)}

	pxPerSp := gtx.Metric.PxPerSp
	if pxPerSp == 0 {
		pxPerSp = 1
	}
	lbl := material.Label(c.theme, unit.Sp(c.fontSize*c.scale/pxPerSp), s)
	lbl.Color = c.cur.color
	lbl.MaxLines = 1

	macro := op.Record(gtx.Ops)
	dims := lbl.Layout(gtx)
	call := macro.Stop()

	at := c.pt(x, y)
	at.Y -= float32(dims.Size.Y - dims.Baseline)
	stack := op.Affine(f32.Affine2D{}.Offset(at)).Push(gtx.Ops)
	call.Add(gtx.Ops)
	stack.Pop()
}

// Depth reports how many Save calls are waiting for a Restore.
func (c *Canvas) Depth() int {
	return len(c.stack)
}

// View is a widget that shows a recorded page. Dragging pans and the
// scroll wheel zooms.
type View struct {
	Page       *render.Page
	Background color.NRGBA
	FontSize   float64
	Camera     Camera

	fit      bool
	dragging bool
	last     f32.Point
}

// SetPage replaces the page. With fit set the camera is refitted on the
// next frame.
func (v *View) SetPage(p *render.Page, fit bool) {
	v.Page = p
	v.fit = v.fit || fit
}

// Fit requests that the next frame shows the whole page.
func (v *View) Fit() {
	v.fit = true
}

// Update applies pointer input received since the last frame.
func (v *View) Update(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  v,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: -1 << 10, Max: 1 << 10},
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch e.Kind {
		case pointer.Press:
			v.dragging = e.Buttons == pointer.ButtonPrimary
			v.last = e.Position
		case pointer.Drag:
			if v.dragging {
				v.Camera.Pan(float64(e.Position.X-v.last.X), float64(e.Position.Y-v.last.Y))
				v.last = e.Position
			}
		case pointer.Release:
			v.dragging = false
		case pointer.Scroll:
			factor := 1 - float64(e.Scroll.Y)*0.01
			if factor < 0.5 {
				factor = 0.5
			}
			v.Camera.ZoomAt(float64(e.Position.X), float64(e.Position.Y), factor)
		}
	}
}

// Layout fills the available space with the background and draws the page
// through the camera.
func (v *View) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	size := gtx.Constraints.Max
	area := clip.Rect{Max: size}.Push(gtx.Ops)
	defer area.Pop()

	paint.Fill(gtx.Ops, v.Background)
	event.Op(gtx.Ops, v)

	if v.Page == nil || v.Page.Width <= 0 || v.Page.Height <= 0 {
		return layout.Dimensions{Size: size}
	}
	if v.Camera.Zoom == 0 {
		v.Camera = NewCamera()
		v.fit = true
	}
	v.Camera.SetScreen(size)
	if v.fit {
		v.Camera.Fit(symbol.Rect{W: v.Page.Width, H: v.Page.Height})
		v.fit = false
	}

	zoom := v.Camera.Zoom
	offset := f32.Pt(
		float32(v.Page.OffsetX-v.Camera.CenterX+float64(size.X)/(2*zoom)),
		float32(v.Page.OffsetY-v.Camera.CenterY+float64(size.Y)/(2*zoom)),
	)
	c := NewCanvas(gtx, th, offset, float32(zoom), float32(v.FontSize))
	v.Page.Replay(c)
	return layout.Dimensions{Size: size}
}

// FitScale is the largest scale at which a w x h page fits in px.
func FitScale(w, h float64, px image.Point) float32 {
	if w <= 0 || h <= 0 || px.X <= 0 || px.Y <= 0 {
		return 1
	}
	sx := float32(px.X) / float32(w)
	sy := float32(px.Y) / float32(h)
	if sx < sy {
		return sx
	}
	return sy
}
