package record

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/symbol"
)

type boxMeasurer struct{}

func (boxMeasurer) Measure(text string) symbol.Extents {
	if text == "" {
		return symbol.Extents{}
	}
	w := float64(len(text)) * 5
	return symbol.Extents{Width: w, Height: 8, YBearing: -7, XAdvance: w}
}

func TestRecordAndReplay(t *testing.T) {
	src := New()
	src.Save()
	src.SetColor(color.NRGBA{R: 10, A: 255})
	src.SetLineWidth(2)
	src.MoveTo(1, 2)
	src.LineTo(3, 4)
	src.Stroke()
	src.Restore()
	src.Rectangle(0, 0, 10, 5)
	src.Stroke()
	src.FillText("hi", 5, 6)

	dst := New()
	src.Replay(dst)

	a, b := src.Ops(), dst.Ops()
	if len(a) != len(b) {
		t.Fatalf("replayed %d ops, want %d", len(b), len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("op %d: %v != %v", i, a[i], b[i])
		}
	}
	if err := dst.Err(); err != nil {
		t.Errorf("Err() = %v", err)
	}
}

func TestUnbalanced(t *testing.T) {
	c := New()
	c.Restore()
	if err := c.Err(); !errors.Is(err, ErrUnbalanced) {
		t.Errorf("Err() = %v, want ErrUnbalanced", err)
	}

	c = New()
	c.Save()
	if err := c.Err(); !errors.Is(err, ErrUnbalanced) {
		t.Errorf("open save: Err() = %v, want ErrUnbalanced", err)
	}

	c.Restore()
	if err := c.Err(); err != nil {
		t.Errorf("balanced: Err() = %v", err)
	}
}

func TestBounds(t *testing.T) {
	c := New()
	if _, ok := c.Bounds(boxMeasurer{}); ok {
		t.Fatal("empty recording should have no bounds")
	}

	c.Save()
	c.SetLineWidth(2)
	c.Rectangle(10, 20, 30, 40)
	c.Stroke()
	c.Restore()

	r, ok := c.Bounds(boxMeasurer{})
	if !ok {
		t.Fatal("expected bounds")
	}
	if r != (symbol.Rect{X: 9, Y: 19, W: 32, H: 42}) {
		t.Errorf("stroke bounds = %+v", r)
	}

	// Text hangs left of the rectangle and above it.
	c.FillText("abc", 0, 15)
	r, _ = c.Bounds(boxMeasurer{})
	if r.X != 0 || r.Y != 8 {
		t.Errorf("text not included: %+v", r)
	}

	// An unstroked path paints nothing.
	c.MoveTo(-100, -100)
	if r2, _ := c.Bounds(boxMeasurer{}); r2 != r {
		t.Errorf("unstroked path changed bounds to %+v", r2)
	}
}

func TestBoundsRestoresLineWidth(t *testing.T) {
	c := New()
	c.Save()
	c.SetLineWidth(10)
	c.Restore()
	c.MoveTo(0, 0)
	c.LineTo(10, 0)
	c.Stroke()

	r, _ := c.Bounds(boxMeasurer{})
	if r.H != 1 {
		t.Errorf("height %g, want 1 from the default line width", r.H)
	}
}

func TestString(t *testing.T) {
	c := New()
	c.Save()
	c.FillText("x", 1, 2)
	c.Restore()

	want := "save\n  text 1.00,2.00 \"x\"\nrestore\n"
	if got := c.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
	if !strings.Contains(Op{Kind: SetColor, Color: color.NRGBA{R: 255, A: 255}}.String(), "#ff0000ff") {
		t.Error("colour op not formatted as hex")
	}
}
