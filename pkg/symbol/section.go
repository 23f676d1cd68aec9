package symbol

// Section is a bordered group of pins split into a left column of inputs
// and a right column of everything else.
type Section struct {
	// Name is carried for callers and file formats; it is not drawn.
	Name string

	pins []Pin
}

// NewSection returns an empty section.
func NewSection(name string) *Section {
	return &Section{Name: name}
}

// AddPin appends p. Pins keep their insertion order.
func (s *Section) AddPin(p Pin) {
	s.pins = append(s.pins, p)
}

// Pins returns a copy of the pins in insertion order.
func (s *Section) Pins() []Pin {
	return append([]Pin(nil), s.pins...)
}

// Columns partitions the pins by side, keeping relative order within each.
func (s *Section) Columns() (left, right []Pin) {
	for _, p := range s.pins {
		if p.Direction.isLeft() {
			left = append(left, p)
		} else {
			right = append(right, p)
		}
	}
	return left, right
}

// Rows is the number of rows in the taller column.
func (s *Section) Rows() int {
	var left, right int
	for _, p := range s.pins {
		if p.Direction.isLeft() {
			left++
		} else {
			right++
		}
	}
	return max(left, right)
}

// Height is the section height. Every row uses the same pitch, including
// the empty rows of the shorter column. A section without pins is just
// its top and bottom padding.
func (s *Section) Height(l *Layout) float64 {
	cfg := l.Config
	rows := s.Rows()
	if rows == 0 {
		return 2 * cfg.TopBottomPadding
	}
	n := float64(rows)
	return cfg.PinSpacing*(n-1) + n*l.rowHeight() + 2*cfg.TopBottomPadding
}

// MinInnerWidth is the width needed between the borders so the widest
// left name and the widest right name do not touch.
func (s *Section) MinInnerWidth(l *Layout) float64 {
	var left, right float64
	for _, p := range s.pins {
		w := p.InnerWidth(l)
		if p.Direction.isLeft() {
			left = max(left, w)
		} else {
			right = max(right, w)
		}
	}
	return left + l.Config.TextSeparator + right
}

// MinOuterWidth is the widest stem plus type label on either side.
func (s *Section) MinOuterWidth(l *Layout) float64 {
	var w float64
	for _, p := range s.pins {
		w = max(w, p.OuterWidth(l))
	}
	return w
}

// Draw strokes the border at r and draws each column down its edge.
func (s *Section) Draw(c Canvas, l *Layout, r Rect) {
	cfg := l.Config
	scoped(c, func() {
		scoped(c, func() {
			c.SetColor(l.Palette.Body)
			c.SetLineWidth(cfg.BorderWidth)
			c.Rectangle(r.X, r.Y, r.W, r.H)
			c.Stroke()
		})

		left, right := s.Columns()
		drawColumn(c, l, left, r.X, r.Y+cfg.TopBottomPadding)
		drawColumn(c, l, right, r.X+r.W, r.Y+cfg.TopBottomPadding)
	})
}

// drawColumn walks pins down from top. The pitch is added before each
// pin, so anchors sit on the baseline of their row.
func drawColumn(c Canvas, l *Layout, pins []Pin, x, top float64) {
	y := top
	for _, p := range pins {
		y += p.Height(l)
		p.Draw(c, l, Point{X: x, Y: y})
		y += l.Config.PinSpacing
	}
}
