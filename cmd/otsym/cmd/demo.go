package cmd

import (
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/symbol"
)

var demoOutput string

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Render the built-in example symbol",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeImage(cmd, demoOutput, demoSymbol())
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().StringVarP(&demoOutput, "output", "o", "demo.png", "output file (.png or .svg)")
}

// demoSymbol is a four pin block with two buses.
func demoSymbol() *symbol.Symbol {
	s := symbol.NewSection("")
	s.AddPin(symbol.NewPin("i_foo", symbol.In).WithBus(true).WithType("logic [15:0]"))
	s.AddPin(symbol.NewPin("o_bar", symbol.Out).WithType("logic"))
	s.AddPin(symbol.NewPin("i_foobar", symbol.In).WithType("logic"))
	s.AddPin(symbol.NewPin("i_barfoo", symbol.In).WithBus(true).WithType("logic [15:0]"))

	sym := symbol.New("My symbol")
	sym.AddSection(s)
	return sym
}
