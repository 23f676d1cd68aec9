package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/render"
)

var layoutCmd = &cobra.Command{
	Use:   "layout <symbol_file>",
	Short: "Print the drawing operations for a symbol",
	Long: `Lay the symbol out and print every drawing primitive it produces, one
per line and indented by save depth. Useful for checking positions without
looking at an image.`,
	Args: cobra.ExactArgs(1),
	RunE: runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.Flags().BoolVar(&pinNumbers, "pin-numbers", false, "append physical pin numbers (BSDL input)")
}

func runLayout(cmd *cobra.Command, args []string) error {
	sym, err := loadSymbol(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	l, face, err := cfg.NewLayout()
	if err != nil {
		return err
	}
	defer face.Close()

	page, err := render.Record(sym, l, cfg.Render.Margin)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprint(w, page.Recording().String())
	fmt.Fprintln(w, styleDim.Render(fmt.Sprintf("page %.2f×%.2f offset %.2f,%.2f",
		page.Width, page.Height, page.OffsetX, page.OffsetY)))
	return nil
}
