package gio

import (
	"image"
	"image/color"
	"testing"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/fontmetrics"
	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/render"
	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/symbol"
)

func newContext(w, h int) layout.Context {
	return layout.Context{
		Ops:         new(op.Ops),
		Constraints: layout.Exact(image.Pt(w, h)),
		Metric:      unit.Metric{PxPerDp: 1, PxPerSp: 1},
	}
}

func testTheme(t *testing.T) *material.Theme {
	t.Helper()
	th, err := NewTheme(nil)
	if err != nil {
		t.Fatalf("NewTheme: %v", err)
	}
	return th
}

func TestNewTheme(t *testing.T) {
	th, err := NewTheme(goregular.TTF)
	if err != nil {
		t.Fatalf("NewTheme: %v", err)
	}
	if th.Shaper == nil {
		t.Fatal("no shaper")
	}
	if th.Face == "" {
		t.Error("typeface of the loaded font was not selected")
	}

	if _, err := NewTheme([]byte("not a font")); err == nil {
		t.Error("expected error for invalid font data")
	}
}

func TestCanvasState(t *testing.T) {
	c := NewCanvas(newContext(100, 100), testTheme(t), f32.Point{}, 2, 10)

	red := color.NRGBA{R: 255, A: 255}
	c.Save()
	c.SetColor(red)
	c.SetLineWidth(3)
	c.MoveTo(0, 0)
	c.LineTo(10, 0)
	c.Stroke()
	if c.cur.color != red || c.cur.width != 3 {
		t.Errorf("state not applied: %+v", c.cur)
	}
	c.Restore()

	if c.cur.color != (color.NRGBA{A: 255}) || c.cur.width != 1 {
		t.Errorf("state not restored: %+v", c.cur)
	}
	if c.Depth() != 0 {
		t.Errorf("depth %d after balanced calls", c.Depth())
	}
	c.Restore()
	if c.Depth() != 0 {
		t.Error("extra Restore changed depth")
	}
}

func TestCanvasScalesPoints(t *testing.T) {
	c := NewCanvas(newContext(100, 100), testTheme(t), f32.Pt(5, 1), 2, 10)
	c.Rectangle(0, 0, 10, 4)
	if len(c.path) != 5 {
		t.Fatalf("rectangle has %d segments", len(c.path))
	}
	if got := c.path[0].pt; got != f32.Pt(10, 2) {
		t.Errorf("first point %v, want (10,2)", got)
	}
	if got := c.path[2].pt; got != f32.Pt(30, 10) {
		t.Errorf("opposite corner %v, want (30,10)", got)
	}
	c.Stroke()
	if len(c.path) != 0 {
		t.Error("Stroke did not consume the path")
	}
}

func TestFitScale(t *testing.T) {
	tests := []struct {
		w, h float64
		px   image.Point
		want float32
	}{
		{100, 50, image.Pt(200, 200), 2},
		{100, 50, image.Pt(400, 50), 1},
		{0, 50, image.Pt(400, 50), 1},
	}
	for _, tt := range tests {
		if got := FitScale(tt.w, tt.h, tt.px); got != tt.want {
			t.Errorf("FitScale(%g, %g, %v) = %g, want %g", tt.w, tt.h, tt.px, got, tt.want)
		}
	}
}

func TestViewDrawsPage(t *testing.T) {
	face, err := fontmetrics.New()
	if err != nil {
		t.Fatal(err)
	}
	l := symbol.NewLayout(face)

	s := symbol.NewSection("")
	s.AddPin(symbol.NewPin("clk", symbol.In))
	s.AddPin(symbol.NewPin("q", symbol.Out).WithBus(true))
	sym := symbol.New("reg")
	sym.AddSection(s)

	page, err := render.Record(sym, l, 10)
	if err != nil {
		t.Fatal(err)
	}

	gtx := newContext(300, 200)
	v := &View{Page: page, Background: l.Palette.Background, FontSize: face.Size()}
	dims := v.Layout(gtx, testTheme(t))
	if dims.Size != image.Pt(300, 200) {
		t.Errorf("dims %v", dims.Size)
	}
}
