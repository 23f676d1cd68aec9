package symbol

import (
	"fmt"
	"image/color"
	"strings"
)

// Theme represents a color scheme for symbol rendering
type Theme int

const (
	// ThemeLight is black ink on white with grey type labels
	ThemeLight Theme = iota
	// ThemeDark is a dark background theme (dark gray/black background)
	ThemeDark
	// ThemeKiCad uses the KiCad schematic editor colours
	ThemeKiCad
)

// Palette defines the colours used for each symbol element
type Palette struct {
	Background color.NRGBA

	Body    color.NRGBA // Section rectangles
	Name    color.NRGBA // Symbol name
	Stem    color.NRGBA // Pin stems
	PinName color.NRGBA // Pin names inside the border
	PinType color.NRGBA // Muted type labels outside the border
}

// PaletteFor returns the palette for the given theme
func PaletteFor(theme Theme) Palette {
	switch theme {
	case ThemeDark:
		return darkPalette()
	case ThemeKiCad:
		return kicadPalette()
	default:
		return lightPalette()
	}
}

func lightPalette() Palette {
	return Palette{
		Background: color.NRGBA{R: 255, G: 255, B: 255, A: 255}, // White
		Body:       color.NRGBA{R: 0, G: 0, B: 0, A: 255},       // Black
		Name:       color.NRGBA{R: 0, G: 0, B: 0, A: 255},       // Black
		Stem:       color.NRGBA{R: 0, G: 0, B: 0, A: 255},       // Black
		PinName:    color.NRGBA{R: 0, G: 0, B: 0, A: 255},       // Black
		PinType:    color.NRGBA{R: 128, G: 128, B: 128, A: 255}, // 50% grey
	}
}

// darkPalette returns bright colours for a dark background
func darkPalette() Palette {
	return Palette{
		Background: color.NRGBA{R: 30, G: 30, B: 30, A: 255},    // Dark gray (almost black)
		Body:       color.NRGBA{R: 255, G: 100, B: 100, A: 255}, // Light red
		Name:       color.NRGBA{R: 255, G: 255, B: 255, A: 255}, // White
		Stem:       color.NRGBA{R: 255, G: 100, B: 100, A: 255}, // Light red
		PinName:    color.NRGBA{R: 100, G: 255, B: 255, A: 255}, // Cyan
		PinType:    color.NRGBA{R: 150, G: 150, B: 150, A: 255}, // Mid grey
	}
}

// kicadPalette returns KiCad-style light theme colors
func kicadPalette() Palette {
	return Palette{
		Background: color.NRGBA{R: 245, G: 244, B: 239, A: 255}, // Paper
		Body:       color.NRGBA{R: 132, G: 0, B: 0, A: 255},     // Dark red
		Name:       color.NRGBA{R: 0, G: 0, B: 0, A: 255},       // Black
		Stem:       color.NRGBA{R: 132, G: 0, B: 0, A: 255},     // Dark red
		PinName:    color.NRGBA{R: 0, G: 100, B: 100, A: 255},   // Teal
		PinType:    color.NRGBA{R: 132, G: 132, B: 132, A: 255}, // Grey
	}
}

// String returns the theme name as a string
func (t Theme) String() string {
	switch t {
	case ThemeLight:
		return "light"
	case ThemeDark:
		return "dark"
	case ThemeKiCad:
		return "kicad"
	default:
		return "unknown"
	}
}

// ParseTheme parses a theme name as printed by Theme.String.
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(s) {
	case "", "light":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	case "kicad":
		return ThemeKiCad, nil
	default:
		return ThemeLight, fmt.Errorf("unknown theme %q (want light, dark or kicad)", s)
	}
}

// Next cycles through the themes.
func (t Theme) Next() Theme {
	switch t {
	case ThemeLight:
		return ThemeDark
	case ThemeDark:
		return ThemeKiCad
	default:
		return ThemeLight
	}
}
