package symbol_test

import (
	"math"
	"testing"
	"unicode/utf8"

	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/render/record"
	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/symbol"
)

// fixedMeasurer gives every rune the same advance so sizes are easy to
// work out by hand.
type fixedMeasurer struct {
	charWidth float64
	height    float64
	bearing   float64
}

func (m fixedMeasurer) Measure(text string) symbol.Extents {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return symbol.Extents{}
	}
	w := float64(n) * m.charWidth
	return symbol.Extents{
		Width:    w,
		Height:   m.height,
		YBearing: m.bearing,
		XAdvance: w,
	}
}

// countingMeasurer records how often each string is measured.
type countingMeasurer struct {
	fixedMeasurer
	calls map[string]int
}

func (m *countingMeasurer) Measure(text string) symbol.Extents {
	m.calls[text]++
	return m.fixedMeasurer.Measure(text)
}

func newTestLayout() *symbol.Layout {
	return symbol.NewLayout(fixedMeasurer{charWidth: 6, height: 10, bearing: -8})
}

func examplePins() []symbol.Pin {
	return []symbol.Pin{
		symbol.NewPin("i_foo", symbol.In).WithBus(true).WithType("logic [15:0]"),
		symbol.NewPin("o_bar", symbol.Out).WithType("logic"),
		symbol.NewPin("i_foobar", symbol.In).WithType("logic"),
		symbol.NewPin("i_barfoo", symbol.In).WithBus(true).WithType("logic [15:0]"),
	}
}

func exampleSection() *symbol.Section {
	s := symbol.NewSection("")
	for _, p := range examplePins() {
		s.AddPin(p)
	}
	return s
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestExampleSectionRows(t *testing.T) {
	l := newTestLayout()
	s := exampleSection()

	left, right := s.Columns()
	wantLeft := []string{"i_foo", "i_foobar", "i_barfoo"}
	if len(left) != len(wantLeft) {
		t.Fatalf("left column has %d pins, want %d", len(left), len(wantLeft))
	}
	for i, p := range left {
		if p.Name != wantLeft[i] {
			t.Errorf("left[%d] = %s, want %s", i, p.Name, wantLeft[i])
		}
	}
	if len(right) != 1 || right[0].Name != "o_bar" {
		t.Fatalf("right column = %v, want [o_bar]", right)
	}

	if got := s.Rows(); got != 3 {
		t.Errorf("Rows() = %d, want 3", got)
	}

	cfg := l.Config
	want := cfg.PinSpacing*2 + 3*10 + 2*cfg.TopBottomPadding
	if got := s.Height(l); !approx(got, want) {
		t.Errorf("Height() = %g, want %g", got, want)
	}
}

func TestSectionHeightEmpty(t *testing.T) {
	l := newTestLayout()
	s := symbol.NewSection("empty")

	h := s.Height(l)
	if math.IsNaN(h) || h < 0 {
		t.Fatalf("Height() = %g for empty section", h)
	}
	if want := 2 * l.Config.TopBottomPadding; !approx(h, want) {
		t.Errorf("Height() = %g, want %g", h, want)
	}
	if s.Rows() != 0 {
		t.Errorf("Rows() = %d, want 0", s.Rows())
	}
}

func TestSectionHeightMonotonic(t *testing.T) {
	l := newTestLayout()
	s := symbol.NewSection("")
	prev := s.Height(l)

	dirs := []symbol.Direction{symbol.In, symbol.Out, symbol.In, symbol.InOut, symbol.In, symbol.In}
	for i, d := range dirs {
		s.AddPin(symbol.NewPin("p", d))
		h := s.Height(l)
		if h < prev {
			t.Fatalf("after pin %d height dropped from %g to %g", i, prev, h)
		}
		prev = h
	}
}

func TestSectionHeightOrderInvariant(t *testing.T) {
	l := newTestLayout()
	pins := examplePins()

	forward := symbol.NewSection("")
	backward := symbol.NewSection("")
	for i := range pins {
		forward.AddPin(pins[i])
		backward.AddPin(pins[len(pins)-1-i])
	}

	if a, b := forward.Height(l), backward.Height(l); !approx(a, b) {
		t.Errorf("height depends on order: %g vs %g", a, b)
	}
}

func TestSectionWidths(t *testing.T) {
	l := newTestLayout()
	cfg := l.Config
	s := exampleSection()

	// Widest left name is i_foobar/i_barfoo (8 runes), right is o_bar (5).
	wantInner := (cfg.TextPadding + 8*6) + cfg.TextSeparator + (cfg.TextPadding + 5*6)
	if got := s.MinInnerWidth(l); !approx(got, wantInner) {
		t.Errorf("MinInnerWidth() = %g, want %g", got, wantInner)
	}

	// Widest type is "logic [15:0]" (12 runes).
	wantOuter := cfg.StemLength + cfg.TextPadding + 12*6
	if got := s.MinOuterWidth(l); !approx(got, wantOuter) {
		t.Errorf("MinOuterWidth() = %g, want %g", got, wantOuter)
	}
}

func TestSectionInnerWidthCountsInOut(t *testing.T) {
	l := newTestLayout()
	cfg := l.Config

	s := symbol.NewSection("")
	s.AddPin(symbol.NewPin("a", symbol.In))
	s.AddPin(symbol.NewPin("bidirectional", symbol.InOut))

	want := (cfg.TextPadding + 6) + cfg.TextSeparator + (cfg.TextPadding + 13*6)
	if got := s.MinInnerWidth(l); !approx(got, want) {
		t.Errorf("MinInnerWidth() = %g, want %g", got, want)
	}
}

func TestPinEmptyType(t *testing.T) {
	l := newTestLayout()
	cfg := l.Config
	p := symbol.NewPin("clk", symbol.In).WithType("")

	if got, want := p.OuterWidth(l), cfg.StemLength+cfg.TextPadding; !approx(got, want) {
		t.Errorf("OuterWidth() = %g, want %g", got, want)
	}

	rec := record.New()
	p.Draw(rec, l, symbol.Point{X: 100, Y: 50})
	if err := rec.Err(); err != nil {
		t.Fatalf("unbalanced drawing: %v", err)
	}

	texts := rec.Texts()
	if len(texts) != 2 {
		t.Fatalf("got %d text ops, want 2", len(texts))
	}
	if texts[0].Text != "clk" || !approx(texts[0].X, 100+cfg.TextPadding) {
		t.Errorf("name drawn as %v", texts[0])
	}

	var strokes int
	for _, op := range rec.Ops() {
		if op.Kind == record.Stroke {
			strokes++
		}
	}
	if strokes != 1 {
		t.Errorf("got %d strokes, want 1 stem", strokes)
	}
}

func TestPinDefaults(t *testing.T) {
	p := symbol.NewPin("x", symbol.Out)
	if p.Type != symbol.DefaultPinType {
		t.Errorf("Type = %q, want %q", p.Type, symbol.DefaultPinType)
	}
	if p.Bus {
		t.Error("new pin should be a wire")
	}

	q := p.WithBus(true)
	if p.Bus || !q.Bus {
		t.Error("WithBus must return a modified copy")
	}
}

// textSpans returns the horizontal extent of each text op relative to x0.
func textSpans(t *testing.T, l *symbol.Layout, ops []record.Op, x0 float64) [][2]float64 {
	t.Helper()
	var spans [][2]float64
	for _, op := range ops {
		w := l.Measure(op.Text).Width
		spans = append(spans, [2]float64{op.X - x0, op.X + w - x0})
	}
	return spans
}

func TestPinMirrorSymmetry(t *testing.T) {
	l := newTestLayout()
	const x0, y0 = 200.0, 40.0

	tests := []struct {
		name, typ string
		bus       bool
	}{
		{"i_foo", "logic [15:0]", true},
		{"clk", "", false},
		{"", "bit", false},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.typ, func(t *testing.T) {
			in := symbol.Pin{Name: tt.name, Type: tt.typ, Direction: symbol.In, Bus: tt.bus}
			out := in
			out.Direction = symbol.Out

			recIn, recOut := record.New(), record.New()
			in.Draw(recIn, l, symbol.Point{X: x0, Y: y0})
			out.Draw(recOut, l, symbol.Point{X: x0, Y: y0})

			a := textSpans(t, l, recIn.Texts(), x0)
			b := textSpans(t, l, recOut.Texts(), x0)
			if len(a) != len(b) {
				t.Fatalf("text op counts differ: %d vs %d", len(a), len(b))
			}
			for i := range a {
				if !approx(a[i][0], -b[i][1]) || !approx(a[i][1], -b[i][0]) {
					t.Errorf("text %d: in span %v is not the mirror of out span %v", i, a[i], b[i])
				}
			}

			var lineIn, lineOut record.Op
			for _, op := range recIn.Ops() {
				if op.Kind == record.LineTo {
					lineIn = op
				}
			}
			for _, op := range recOut.Ops() {
				if op.Kind == record.LineTo {
					lineOut = op
				}
			}
			if !approx(lineIn.X-x0, -(lineOut.X - x0)) || !approx(lineIn.Y, lineOut.Y) {
				t.Errorf("stems are not mirrored: %v vs %v", lineIn, lineOut)
			}
		})
	}
}

func TestPinStem(t *testing.T) {
	l := newTestLayout()
	cfg := l.Config

	for _, bus := range []bool{false, true} {
		p := symbol.NewPin("d", symbol.Out).WithBus(bus)
		rec := record.New()
		p.Draw(rec, l, symbol.Point{X: 10, Y: 30})

		wantWidth := cfg.WireStemWidth
		if bus {
			wantWidth = cfg.BusStemWidth
		}

		var width float64
		var move, line record.Op
		for _, op := range rec.Ops() {
			switch op.Kind {
			case record.SetLineWidth:
				width = op.Width
			case record.MoveTo:
				move = op
			case record.LineTo:
				line = op
			}
		}
		if width != wantWidth {
			t.Errorf("bus=%v: stem width %g, want %g", bus, width, wantWidth)
		}
		// Bearing -8 lifts the stem by 4 above the baseline.
		if !approx(move.Y, 26) || !approx(line.Y, 26) {
			t.Errorf("bus=%v: stem at y=%g..%g, want 26", bus, move.Y, line.Y)
		}
		if !approx(move.X, 10) || !approx(line.X, 10+cfg.StemLength) {
			t.Errorf("bus=%v: stem from %g to %g", bus, move.X, line.X)
		}
	}
}

func TestSectionDrawPartitionOrder(t *testing.T) {
	l := newTestLayout()
	s := symbol.NewSection("")
	s.AddPin(symbol.NewPin("A", symbol.In))
	s.AddPin(symbol.NewPin("B", symbol.Out))
	s.AddPin(symbol.NewPin("C", symbol.In))
	s.AddPin(symbol.NewPin("D", symbol.Out))

	r := symbol.Rect{X: 50, Y: 20, W: 80, H: s.Height(l)}
	rec := record.New()
	s.Draw(rec, l, r)

	var left, right []record.Op
	for _, op := range rec.Texts() {
		if op.Text == symbol.DefaultPinType {
			continue
		}
		if op.X > r.X && op.X < r.X+r.W/2 {
			left = append(left, op)
		} else {
			right = append(right, op)
		}
	}

	check := func(col string, ops []record.Op, want []string) {
		t.Helper()
		if len(ops) != len(want) {
			t.Fatalf("%s column has %d names, want %d", col, len(ops), len(want))
		}
		for i, op := range ops {
			if op.Text != want[i] {
				t.Errorf("%s[%d] = %s, want %s", col, i, op.Text, want[i])
			}
		}
	}
	check("left", left, []string{"A", "C"})
	check("right", right, []string{"B", "D"})

	// First anchor sits one row below the padding, the next one pitch lower.
	cfg := l.Config
	if want := r.Y + cfg.TopBottomPadding + 10; !approx(left[0].Y, want) {
		t.Errorf("first row baseline %g, want %g", left[0].Y, want)
	}
	if want := left[0].Y + 10 + cfg.PinSpacing; !approx(left[1].Y, want) {
		t.Errorf("second row baseline %g, want %g", left[1].Y, want)
	}
	if !approx(left[0].Y, right[0].Y) {
		t.Errorf("columns out of step: %g vs %g", left[0].Y, right[0].Y)
	}
}

func TestSymbolSectionsAligned(t *testing.T) {
	l := newTestLayout()

	narrow := symbol.NewSection("narrow")
	narrow.AddPin(symbol.NewPin("a", symbol.In).WithType("t"))

	wide := symbol.NewSection("wide")
	wide.AddPin(symbol.NewPin("a_much_longer_name", symbol.In).WithType("a long type label"))
	wide.AddPin(symbol.NewPin("q", symbol.Out))

	sym := symbol.New("U1")
	sym.AddSection(narrow)
	sym.AddSection(wide)

	rec := record.New()
	sym.Draw(rec, l)
	if err := rec.Err(); err != nil {
		t.Fatal(err)
	}

	var rects []record.Op
	for _, op := range rec.Ops() {
		if op.Kind == record.Rectangle {
			rects = append(rects, op)
		}
	}
	if len(rects) != 2 {
		t.Fatalf("got %d rectangles, want 2", len(rects))
	}

	inner, outer := sym.Widths(l)
	for i, r := range rects {
		if !approx(r.X, outer) || !approx(r.W, inner) {
			t.Errorf("section %d at x=%g w=%g, want x=%g w=%g", i, r.X, r.W, outer, inner)
		}
	}

	// Sections stack without gaps.
	if want := rects[0].Y + rects[0].H; !approx(rects[1].Y, want) {
		t.Errorf("second section top %g, want %g", rects[1].Y, want)
	}
	if want := 10 + l.Config.NameSpacing; !approx(rects[0].Y, want) {
		t.Errorf("first section top %g, want %g", rects[0].Y, want)
	}
	if !approx(rects[0].H, narrow.Height(l)) || !approx(rects[1].H, wide.Height(l)) {
		t.Error("section heights not taken from each section")
	}
}

func TestSymbolNameCentred(t *testing.T) {
	l := newTestLayout()
	sym := symbol.New("My symbol")
	sym.AddSection(exampleSection())

	rec := record.New()
	sym.Draw(rec, l)

	name := rec.Texts()[0]
	if name.Text != "My symbol" {
		t.Fatalf("first text is %q, want the symbol name", name.Text)
	}
	inner, outer := sym.Widths(l)
	w := l.Measure("My symbol").Width
	if !approx(name.X, outer+(inner-w)/2) {
		t.Errorf("name at x=%g, want %g", name.X, outer+(inner-w)/2)
	}
	if !approx(name.Y, 10) {
		t.Errorf("name baseline %g, want 10", name.Y)
	}
}

func TestSymbolDrawIdempotent(t *testing.T) {
	l := newTestLayout()
	sym := symbol.New("My symbol")
	sym.AddSection(exampleSection())
	sym.AddSection(exampleSection())

	a, b := record.New(), record.New()
	sym.Draw(a, l)
	sym.Draw(b, l)

	opsA, opsB := a.Ops(), b.Ops()
	if len(opsA) != len(opsB) {
		t.Fatalf("op counts differ: %d vs %d", len(opsA), len(opsB))
	}
	for i := range opsA {
		if opsA[i] != opsB[i] {
			t.Fatalf("op %d differs: %v vs %v", i, opsA[i], opsB[i])
		}
	}
}

func TestSymbolSize(t *testing.T) {
	l := newTestLayout()
	sym := symbol.New("My symbol")
	sym.AddSection(exampleSection())

	w, h := sym.Size(l)
	inner, outer := sym.Widths(l)
	if !approx(w, 2*outer+inner) {
		t.Errorf("width %g, want %g", w, 2*outer+inner)
	}
	wantH := 10 + l.Config.NameSpacing + exampleSection().Height(l)
	if !approx(h, wantH) {
		t.Errorf("height %g, want %g", h, wantH)
	}

	empty := symbol.New("")
	if w, h := empty.Size(l); w != 0 || !approx(h, l.Config.NameSpacing) {
		t.Errorf("empty symbol size %gx%g", w, h)
	}
}

type panicCanvas struct {
	*record.Canvas
	after int
}

func (p *panicCanvas) Stroke() {
	p.after--
	if p.after < 0 {
		panic("backend failure")
	}
	p.Canvas.Stroke()
}

func TestDrawRestoresOnPanic(t *testing.T) {
	l := newTestLayout()
	c := &panicCanvas{Canvas: record.New(), after: 1}

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic from canvas")
			}
		}()
		exampleSection().Draw(c, l, symbol.Rect{W: 100, H: 100})
	}()

	if err := c.Err(); err != nil {
		t.Errorf("state not restored after panic: %v", err)
	}
}

func TestRowHeightMeasuredOnce(t *testing.T) {
	m := &countingMeasurer{
		fixedMeasurer: fixedMeasurer{charWidth: 6, height: 10, bearing: -8},
		calls:         make(map[string]int),
	}
	l := symbol.NewLayout(m)

	sym := symbol.New("My symbol")
	sym.AddSection(exampleSection())
	sym.AddSection(exampleSection())
	sym.Size(l)
	sym.Draw(record.New(), l)

	ref := l.Config.ReferenceText
	if got := m.calls[ref]; got != 1 {
		t.Errorf("%q measured %d times, want 1", ref, got)
	}

	l.Config.ReferenceText = "Xg"
	h := exampleSection().Height(l)
	if got := m.calls["Xg"]; got != 1 {
		t.Errorf("new reference measured %d times, want 1", got)
	}
	// 3 rows of 10 with 2 gaps of 5 and 10 padding top and bottom.
	if !approx(h, 60) {
		t.Errorf("Height = %g, want 60", h)
	}
}
