package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/bsdl"
	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/symfile"
)

var bsdlOutput string

var bsdlCmd = &cobra.Command{
	Use:   "bsdl <bsdl_file>",
	Short: "Build a symbol from a BSDL file",
	Long: `Build a symbol from the port list of a BSDL file.

TAP ports go to a JTAG section, linkage ports to Power and the rest to IO.
With --output ending in .sym or .yaml the symbol definition is written;
with .png or .svg it is rendered. Without --output the .sym form is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runBSDL,
}

func init() {
	rootCmd.AddCommand(bsdlCmd)
	bsdlCmd.Flags().StringVarP(&bsdlOutput, "output", "o", "", "output file (.sym, .yaml, .png, .svg)")
	bsdlCmd.Flags().BoolVar(&pinNumbers, "pin-numbers", false, "append physical pin numbers")
}

func runBSDL(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())

	entity, err := parseBSDL(args[0])
	if err != nil {
		return err
	}
	info := entity.DeviceInfo()
	logger.Info("parsed BSDL", "entity", entity.Name, "ports", len(entity.Ports()), "package", info.Package)

	sym, err := bsdl.SymbolFromEntity(entity, bsdl.SymbolOptions{PinNumbers: pinNumbers})
	if err != nil {
		return err
	}

	if bsdlOutput == "" {
		return symfile.Encode(cmd.OutOrStdout(), sym, symfile.FormatSexp)
	}

	switch strings.ToLower(filepath.Ext(bsdlOutput)) {
	case ".png", ".svg":
		return writeImage(cmd, bsdlOutput, sym)
	}

	if err := symfile.Save(bsdlOutput, sym); err != nil {
		return err
	}
	printSuccess(cmd.OutOrStdout(), "Converted %s (%s)", styleValue.Render(sym.Name),
		styleDim.Render(fmt.Sprintf("%d sections", len(sym.Sections()))))
	printFile(cmd.OutOrStdout(), bsdlOutput)
	return nil
}
