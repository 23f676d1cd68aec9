// Package config loads the otsym settings file.
//
// The file is TOML. Every key is optional and falls back to the built-in
// default:
//
//	theme = "dark"
//
//	[font]
//	path = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"
//	size = 12
//
//	[layout]
//	stem_length = 20
//	pin_spacing = 4
//
//	[render]
//	margin = 8
//	scale = 3
//	transparent = true
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/fontmetrics"
	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/render"
	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/symbol"
)

// Config is the settings file contents.
type Config struct {
	Theme  string        `toml:"theme"`
	Font   Font          `toml:"font"`
	Layout symbol.Config `toml:"layout"`
	Render Render        `toml:"render"`
}

type Font struct {
	Path string  `toml:"path"` // TrueType/OpenType file, empty for Go Regular
	Size float64 `toml:"size"`
}

type Render struct {
	Margin      float64 `toml:"margin"`
	Scale       float64 `toml:"scale"`
	Transparent bool    `toml:"transparent"`
}

// Default returns the settings used without a file.
func Default() Config {
	opts := render.DefaultOptions()
	return Config{
		Theme:  symbol.ThemeLight.String(),
		Font:   Font{Size: fontmetrics.DefaultSize},
		Layout: symbol.DefaultConfig(),
		Render: Render{Margin: opts.Margin, Scale: opts.Scale},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every section of the file.
func (c Config) Validate() error {
	if _, err := symbol.ParseTheme(c.Theme); err != nil {
		return err
	}
	if !(c.Font.Size > 0) || math.IsInf(c.Font.Size, 0) {
		return fmt.Errorf("font size must be positive, got %g", c.Font.Size)
	}
	if !(c.Render.Scale > 0) || math.IsInf(c.Render.Scale, 0) {
		return fmt.Errorf("render scale must be positive, got %g", c.Render.Scale)
	}
	if !(c.Render.Margin >= 0) || math.IsInf(c.Render.Margin, 0) {
		return fmt.Errorf("render margin must not be negative, got %g", c.Render.Margin)
	}
	return c.Layout.Validate()
}

// LoadFace opens the configured font at the configured size.
func (c Config) LoadFace() (*fontmetrics.Face, error) {
	opts := []fontmetrics.Option{fontmetrics.WithSize(c.Font.Size)}
	if c.Font.Path != "" {
		opts = append(opts, fontmetrics.WithFontFile(c.Font.Path))
	}
	return fontmetrics.New(opts...)
}

// Apply copies the layout distances and theme palette onto l.
func (c Config) Apply(l *symbol.Layout) error {
	theme, err := symbol.ParseTheme(c.Theme)
	if err != nil {
		return err
	}
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	l.Config = c.Layout
	l.Palette = symbol.PaletteFor(theme)
	return nil
}

// NewLayout loads the font and returns a layout configured from c. The
// face is returned so callers can close it and hand it to render.
func (c Config) NewLayout() (*symbol.Layout, *fontmetrics.Face, error) {
	face, err := c.LoadFace()
	if err != nil {
		return nil, nil, err
	}
	l := symbol.NewLayout(face)
	if err := c.Apply(l); err != nil {
		face.Close()
		return nil, nil, err
	}
	return l, face, nil
}

// RenderOptions returns page options using face for text.
func (c Config) RenderOptions(face *fontmetrics.Face) render.Options {
	return render.Options{
		Margin:      c.Render.Margin,
		Scale:       c.Render.Scale,
		Font:        face,
		Transparent: c.Render.Transparent,
	}
}
