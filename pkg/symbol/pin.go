package symbol

// DefaultPinType is the type label given to pins created with NewPin.
const DefaultPinType = "cc"

// Pin is a single labelled connection point.
//
// A Pin is a value; the With* helpers return modified copies.
type Pin struct {
	Name      string
	Type      string
	Direction Direction
	Bus       bool
}

// NewPin returns a wire pin with the default type label.
func NewPin(name string, dir Direction) Pin {
	return Pin{Name: name, Type: DefaultPinType, Direction: dir}
}

// WithType returns a copy of p with the given type label.
func (p Pin) WithType(t string) Pin {
	p.Type = t
	return p
}

// WithBus returns a copy of p with the bus flag set to bus.
func (p Pin) WithBus(bus bool) Pin {
	p.Bus = bus
	return p
}

// InnerWidth is the space the name and its padding take inside the border.
func (p Pin) InnerWidth(l *Layout) float64 {
	return l.Config.TextPadding + l.Measure(p.Name).Width
}

// OuterWidth is the space the stem and type label take outside the border.
func (p Pin) OuterWidth(l *Layout) float64 {
	return l.Config.StemLength + l.Config.TextPadding + l.Measure(p.Type).Width
}

// Height is the row pitch. It is the same for every pin so that rows line
// up across columns regardless of the glyphs in each name.
func (p Pin) Height(l *Layout) float64 {
	return l.rowHeight()
}

func (p Pin) stemWidth(cfg Config) float64 {
	if p.Bus {
		return cfg.BusStemWidth
	}
	return cfg.WireStemWidth
}

// Draw paints the pin with its stem attached to the border at anchor.
// Left-column pins grow inward to the right, right-column pins to the
// left; the two are mirror images around the anchor.
func (p Pin) Draw(c Canvas, l *Layout, anchor Point) {
	cfg := l.Config
	sd := p.Direction.side()
	inward := -sd.sign

	name := l.Measure(p.Name)
	typ := l.Measure(p.Type)

	scoped(c, func() {
		scoped(c, func() {
			c.SetColor(l.Palette.PinName)
			x := anchor.X + inward*cfg.TextPadding
			c.FillText(p.Name, textX(x, name.Width, inward), anchor.Y)
		})

		// Centre the stem on the glyphs rather than on the baseline.
		stemY := anchor.Y + name.YBearing/2
		scoped(c, func() {
			c.SetColor(l.Palette.Stem)
			c.SetLineWidth(p.stemWidth(cfg))
			c.MoveTo(anchor.X, stemY)
			c.LineTo(anchor.X+sd.sign*cfg.StemLength, stemY)
			c.Stroke()
		})

		scoped(c, func() {
			c.SetColor(l.Palette.PinType)
			x := anchor.X + sd.sign*(cfg.TextPadding+cfg.StemLength)
			c.FillText(p.Type, textX(x, typ.Width, sd.sign), anchor.Y)
		})
	})
}
