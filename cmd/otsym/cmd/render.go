package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/render"
	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/symbol"
)

var renderOutput string

var renderCmd = &cobra.Command{
	Use:   "render <symbol_file>",
	Short: "Render a symbol to PNG or SVG",
	Long: `Render a symbol file (.sym, .yaml) or BSDL file (.bsd) to an image.
The output format follows the extension of --output.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file (.png or .svg), default <input>.png")
	renderCmd.Flags().BoolVar(&pinNumbers, "pin-numbers", false, "append physical pin numbers (BSDL input)")
}

func runRender(cmd *cobra.Command, args []string) error {
	sym, err := loadSymbol(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := renderOutput
	if out == "" {
		out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".png"
	}
	return writeImage(cmd, out, sym)
}

// writeImage renders sym with the current settings and reports the file.
func writeImage(cmd *cobra.Command, path string, sym *symbol.Symbol) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	l, face, err := cfg.NewLayout()
	if err != nil {
		return err
	}
	defer face.Close()

	p := newProgress(loggerFromContext(cmd.Context()))
	if err := render.WriteFile(path, sym, l, cfg.RenderOptions(face)); err != nil {
		return err
	}
	p.done("rendered " + path)

	w, h := sym.Size(l)
	printSuccess(cmd.OutOrStdout(), "Rendered %s (%s)", styleValue.Render(sym.Name),
		styleDim.Render(fmt.Sprintf("%.0f×%.0f", w, h)))
	printFile(cmd.OutOrStdout(), path)
	return nil
}
