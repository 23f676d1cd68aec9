package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSymbol/internal/config"
)

var (
	// Global flags
	verbose     bool
	configPath  string
	themeFlag   string
	fontFlag    string
	fontSize    float64
	scaleFlag   float64
	marginFlag  float64
	transparent bool
)

var rootCmd = &cobra.Command{
	Use:   "otsym",
	Short: "OpenTraceSymbol - schematic symbol layout and rendering",
	Long: `OpenTraceSymbol (otsym) lays out schematic block symbols from a list of
pins and renders them to PNG or SVG.

Symbols come from .sym (s-expression) or .yaml files, or are built from the
port list of a BSDL device description.

Examples:
  otsym demo -o demo.png                     # Render the built-in example
  otsym render counter.sym -o counter.svg    # Render a symbol file
  otsym bsdl STM32F405.bsd -o stm32.yaml     # Convert a BSDL file
  otsym info counter.sym                     # Show pins and sizes
  otsym view counter.sym                     # Open a preview window`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := log.InfoLevel
		if verbose {
			level = log.DebugLevel
		}
		cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styleIconError.Render(iconError)+" "+err.Error())
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	pf.StringVarP(&configPath, "config", "c", "", "settings file (TOML)")
	pf.StringVar(&themeFlag, "theme", "", "colour theme: light, dark or kicad")
	pf.StringVar(&fontFlag, "font", "", "TrueType/OpenType font file")
	pf.Float64Var(&fontSize, "font-size", 0, "font size in surface units")
	pf.Float64Var(&scaleFlag, "scale", 0, "pixels per unit for PNG output")
	pf.Float64Var(&marginFlag, "margin", 0, "blank border around the symbol")
	pf.BoolVar(&transparent, "transparent", false, "leave the background unpainted")
}

// loadConfig reads the settings file and applies any flags given on the
// command line on top of it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.Theme = themeFlag
	}
	if flags.Changed("font") {
		cfg.Font.Path = fontFlag
	}
	if flags.Changed("font-size") {
		cfg.Font.Size = fontSize
	}
	if flags.Changed("scale") {
		cfg.Render.Scale = scaleFlag
	}
	if flags.Changed("margin") {
		cfg.Render.Margin = marginFlag
	}
	if flags.Changed("transparent") {
		cfg.Render.Transparent = transparent
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	loggerFromContext(cmd.Context()).Debug("settings",
		"config", configPath, "theme", cfg.Theme, "font", cfg.Font.Path,
		"size", cfg.Font.Size, "scale", cfg.Render.Scale)
	return cfg, nil
}
