package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/idcode"
	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/symbol"
)

var infoCmd = &cobra.Command{
	Use:   "info <symbol_file>",
	Short: "Show symbol information",
	Long: `Display the sections and pins of a symbol together with the sizes the
layout computes for them. BSDL files also show the device identification.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().BoolVar(&pinNumbers, "pin-numbers", false, "append physical pin numbers (BSDL input)")
}

func runInfo(cmd *cobra.Command, args []string) error {
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

	w := cmd.OutOrStdout()
	if isBSDL(args[0]) {
		entity, err := parseBSDL(args[0])
		if err != nil {
			return err
		}
		info := entity.DeviceInfo()
		fmt.Fprintln(w, styleTitle.Render("Device"))
		printKeyValue(w, "Entity", entity.Name)
		if info.Package != "" {
			printKeyValue(w, "Package", info.Package)
		}
		if info.IDCode != "" {
			printIDCode(w, info.IDCode)
		}
		if info.InstructionLength > 0 {
			printKeyValue(w, "IR length", fmt.Sprint(info.InstructionLength))
		}
		if info.BoundaryLength > 0 {
			printKeyValue(w, "Boundary", fmt.Sprintf("%d cells", info.BoundaryLength))
		}
		fmt.Fprintln(w)
	}

	showSymbolSummary(w, sym, l)
	return nil
}

func printIDCode(w io.Writer, bits string) {
	id, err := idcode.Parse(bits)
	if err != nil {
		printKeyValue(w, "IDCODE", bits)
		return
	}
	printKeyValue(w, "IDCODE", id.String())
	m, _ := id.Manufacturer()
	printKeyValue(w, "Manufacturer", m.Name)
	printKeyValue(w, "Part", fmt.Sprintf("0x%04X", id.PartNumber()))
}

func showSymbolSummary(w io.Writer, sym *symbol.Symbol, l *symbol.Layout) {
	width, height := sym.Size(l)
	inner, outer := sym.Widths(l)

	fmt.Fprintln(w, styleTitle.Render("Symbol"))
	printKeyValue(w, "Name", sym.Name)
	printKeyValue(w, "Size", fmt.Sprintf("%.1f × %.1f", width, height))
	printKeyValue(w, "Body width", fmt.Sprintf("%.1f", inner))
	printKeyValue(w, "Pin reach", fmt.Sprintf("%.1f", outer))

	for i, s := range sym.Sections() {
		fmt.Fprintln(w)
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("section %d", i+1)
		}
		left, right := s.Columns()
		fmt.Fprintf(w, "%s %s\n", styleSection.Render(name),
			styleDim.Render(fmt.Sprintf("%d rows · height %.1f", s.Rows(), s.Height(l))))
		for _, p := range left {
			printPin(w, iconIn, p)
		}
		for _, p := range right {
			printPin(w, iconOut, p)
		}
	}
}

func printPin(w io.Writer, icon string, p symbol.Pin) {
	var tags []string
	tags = append(tags, p.Direction.String())
	if p.Bus {
		tags = append(tags, "bus")
	}
	fmt.Fprintf(w, "  %s %-20s %s %s\n",
		styleNumber.Render(icon), p.Name, styleValue.Render(p.Type),
		styleDim.Render(strings.Join(tags, " ")))
}
