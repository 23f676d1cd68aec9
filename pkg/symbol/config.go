package symbol

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid layout config")

// Config holds the fixed distances used by the layout, in surface units.
type Config struct {
	StemLength       float64 `toml:"stem_length" yaml:"stem_length"`               // border to type label gap
	WireStemWidth    float64 `toml:"wire_stem_width" yaml:"wire_stem_width"`       // stem stroke for single wires
	BusStemWidth     float64 `toml:"bus_stem_width" yaml:"bus_stem_width"`         // stem stroke for buses
	TextPadding      float64 `toml:"text_padding" yaml:"text_padding"`             // gap between border/stem and text
	TopBottomPadding float64 `toml:"top_bottom_padding" yaml:"top_bottom_padding"` // section vertical margin
	PinSpacing       float64 `toml:"pin_spacing" yaml:"pin_spacing"`               // gap between rows
	TextSeparator    float64 `toml:"text_separator" yaml:"text_separator"`         // gap between left and right names
	NameSpacing      float64 `toml:"name_spacing" yaml:"name_spacing"`             // symbol name to first section
	BorderWidth      float64 `toml:"border_width" yaml:"border_width"`             // section rectangle stroke

	// ReferenceText is measured to get the row pitch shared by every pin.
	ReferenceText string `toml:"reference_text" yaml:"reference_text"`
}

// DefaultConfig returns the stock layout distances.
func DefaultConfig() Config {
	return Config{
		StemLength:       15,
		WireStemWidth:    1,
		BusStemWidth:     2,
		TextPadding:      5,
		TopBottomPadding: 10,
		PinSpacing:       5,
		TextSeparator:    10,
		NameSpacing:      5,
		BorderWidth:      1.5,
		ReferenceText:    "Hello world",
	}
}

// Validate checks that every distance is finite and not negative.
func (c Config) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"stem_length", c.StemLength},
		{"wire_stem_width", c.WireStemWidth},
		{"bus_stem_width", c.BusStemWidth},
		{"text_padding", c.TextPadding},
		{"top_bottom_padding", c.TopBottomPadding},
		{"pin_spacing", c.PinSpacing},
		{"text_separator", c.TextSeparator},
		{"name_spacing", c.NameSpacing},
		{"border_width", c.BorderWidth},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidConfig, f.name)
		}
		if f.v < 0 {
			return fmt.Errorf("%w: %s is negative (%g)", ErrInvalidConfig, f.name, f.v)
		}
	}
	return nil
}

// Layout carries everything sizing and drawing need: the distances, the
// text measurer and the colours.
type Layout struct {
	Config  Config
	Palette Palette

	m Measurer

	// Row pitch cache, valid while Config.ReferenceText equals refText.
	refText   string
	refHeight float64
	refValid  bool
}

// NewLayout creates a layout with the default config and light palette.
func NewLayout(m Measurer) *Layout {
	return &Layout{
		Config:  DefaultConfig(),
		Palette: PaletteFor(ThemeLight),
		m:       m,
	}
}

// Measure returns the extents of text.
func (l *Layout) Measure(text string) Extents {
	return l.m.Measure(text)
}

// Measurer returns the measurer the layout was created with.
func (l *Layout) Measurer() Measurer {
	return l.m
}

// rowHeight is the pitch shared by every pin row. The reference text is
// measured once and measured again only if Config.ReferenceText changes.
func (l *Layout) rowHeight() float64 {
	if !l.refValid || l.refText != l.Config.ReferenceText {
		l.refText = l.Config.ReferenceText
		l.refHeight = l.m.Measure(l.refText).Height
		l.refValid = true
	}
	return l.refHeight
}
