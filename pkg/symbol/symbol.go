// Package symbol lays out and draws schematic symbols: a named box made of
// stacked sections, each with input pins down its left edge and output
// pins down its right edge.
//
// Sizes flow bottom-up (pin, section, symbol) from text measurements
// supplied by a Measurer; drawing flows top-down onto a Canvas. All
// sections of a symbol share one inner and outer width so their borders
// and pin columns line up.
package symbol

// Symbol is the top-level diagram: a name over a vertical stack of sections.
type Symbol struct {
	Name string

	sections []*Section
}

// New returns an empty symbol.
func New(name string) *Symbol {
	return &Symbol{Name: name}
}

// AddSection appends s below the existing sections.
func (sym *Symbol) AddSection(s *Section) {
	sym.sections = append(sym.sections, s)
}

// Sections returns the sections in drawing order.
func (sym *Symbol) Sections() []*Section {
	return append([]*Section(nil), sym.sections...)
}

// Widths returns the inner and outer widths shared by every section:
// the largest each section asks for.
func (sym *Symbol) Widths(l *Layout) (inner, outer float64) {
	for _, s := range sym.sections {
		inner = max(inner, s.MinInnerWidth(l))
		outer = max(outer, s.MinOuterWidth(l))
	}
	return inner, outer
}

// SectionRects returns the rectangle each section is drawn in.
func (sym *Symbol) SectionRects(l *Layout) []Rect {
	inner, outer := sym.Widths(l)
	y := l.Measure(sym.Name).Height + l.Config.NameSpacing

	rects := make([]Rect, 0, len(sym.sections))
	for _, s := range sym.sections {
		h := s.Height(l)
		rects = append(rects, Rect{X: outer, Y: y, W: inner, H: h})
		y += h
	}
	return rects
}

// Size is the width and height the symbol occupies when drawn at the
// origin, including the stems and type labels on both sides.
func (sym *Symbol) Size(l *Layout) (w, h float64) {
	inner, outer := sym.Widths(l)
	h = l.Measure(sym.Name).Height + l.Config.NameSpacing
	for _, s := range sym.sections {
		h += s.Height(l)
	}
	return 2*outer + inner, h
}

// Draw paints the symbol with its top-left corner at the canvas origin.
func (sym *Symbol) Draw(c Canvas, l *Layout) {
	inner, outer := sym.Widths(l)
	name := l.Measure(sym.Name)

	scoped(c, func() {
		c.SetColor(l.Palette.Name)
		c.FillText(sym.Name, outer+(inner-name.Width)/2, name.Height)
	})

	for i, r := range sym.SectionRects(l) {
		sym.sections[i].Draw(c, l, r)
	}
}
