// Package symfile loads and saves symbol definitions.
//
// Two formats are understood. The s-expression form (.sym):
//
//	(symbol "My symbol"
//	  (section "bus"
//	    (pin "i_foo" in bus (type "logic [15:0]"))
//	    (pin "o_bar" out)))
//
// and the same tree written as YAML (.yaml, .yml).
package symfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/symbol"
)

var (
	// ErrSyntax reports malformed input.
	ErrSyntax = errors.New("syntax error")
	// ErrUnknownDirection reports a pin direction other than in, out or inout.
	ErrUnknownDirection = errors.New("unknown pin direction")
)

// Format is a symbol file format.
type Format int

const (
	FormatSexp Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatSexp:
		return "sym"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat accepts sym, sexp, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "sym", "sexp":
		return FormatSexp, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("unsupported symbol format %q (want sym or yaml)", s)
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Load reads the symbol file at path.
func Load(path string) (*symbol.Symbol, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open symbol file: %w", err)
	}
	defer f.Close()

	sym, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sym, nil
}

// Decode reads one symbol in the given format.
func Decode(r io.Reader, format Format) (*symbol.Symbol, error) {
	switch format {
	case FormatSexp:
		return decodeSexp(r)
	case FormatYAML:
		return decodeYAML(r)
	default:
		return nil, fmt.Errorf("unsupported symbol format %v", format)
	}
}

// Encode writes sym in the given format.
func Encode(w io.Writer, sym *symbol.Symbol, format Format) error {
	switch format {
	case FormatSexp:
		return encodeSexp(w, sym)
	case FormatYAML:
		return encodeYAML(w, sym)
	default:
		return fmt.Errorf("unsupported symbol format %v", format)
	}
}

// Save writes sym to path in the format given by its extension.
func Save(path string, sym *symbol.Symbol) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create symbol file: %w", err)
	}
	if err := Encode(f, sym, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func parseDirection(s string, line int) (symbol.Direction, error) {
	d, err := symbol.ParseDirection(s)
	if err != nil {
		if line > 0 {
			return 0, fmt.Errorf("%w %q at line %d", ErrUnknownDirection, s, line)
		}
		return 0, fmt.Errorf("%w %q", ErrUnknownDirection, s)
	}
	return d, nil
}

func decodeSexp(r io.Reader) (*symbol.Symbol, error) {
	nodes, err := parseSexp(r)
	if err != nil {
		return nil, err
	}
	if len(nodes) != 1 {
		return nil, syntaxError(1, "want exactly one (symbol ...) form, got %d", len(nodes))
	}
	root := nodes[0]
	if root.head() != "symbol" {
		return nil, syntaxError(root.line, "want (symbol ...)")
	}

	name, rest, err := nameArg(root)
	if err != nil {
		return nil, err
	}
	sym := symbol.New(name)
	for _, child := range rest {
		if child.head() != "section" {
			return nil, syntaxError(child.line, "want (section ...) inside symbol")
		}
		s, err := sectionFromNode(child)
		if err != nil {
			return nil, err
		}
		sym.AddSection(s)
	}
	return sym, nil
}

// nameArg returns the string after the keyword and the remaining items.
func nameArg(n *node) (string, []*node, error) {
	if len(n.list) < 2 || n.list[1].isList() {
		return "", nil, syntaxError(n.line, "(%s) needs a name", n.head())
	}
	return n.list[1].atom, n.list[2:], nil
}

func sectionFromNode(n *node) (*symbol.Section, error) {
	name, rest, err := nameArg(n)
	if err != nil {
		return nil, err
	}
	s := symbol.NewSection(name)
	for _, child := range rest {
		if child.head() != "pin" {
			return nil, syntaxError(child.line, "want (pin ...) inside section")
		}
		p, err := pinFromNode(child)
		if err != nil {
			return nil, err
		}
		s.AddPin(p)
	}
	return s, nil
}

func pinFromNode(n *node) (symbol.Pin, error) {
	name, rest, err := nameArg(n)
	if err != nil {
		return symbol.Pin{}, err
	}
	if len(rest) == 0 || rest[0].isList() {
		return symbol.Pin{}, syntaxError(n.line, "pin %q needs a direction", name)
	}
	dir, err := parseDirection(rest[0].atom, rest[0].line)
	if err != nil {
		return symbol.Pin{}, err
	}

	pin := symbol.NewPin(name, dir)
	for _, opt := range rest[1:] {
		switch {
		case !opt.isList() && opt.atom == "bus":
			pin = pin.WithBus(true)
		case !opt.isList() && opt.atom == "wire":
			pin = pin.WithBus(false)
		case opt.head() == "type":
			if len(opt.list) != 2 || opt.list[1].isList() {
				return symbol.Pin{}, syntaxError(opt.line, "(type) takes one string")
			}
			pin = pin.WithType(opt.list[1].atom)
		default:
			return symbol.Pin{}, syntaxError(opt.line, "unexpected pin option in %q", name)
		}
	}
	return pin, nil
}

func encodeSexp(w io.Writer, sym *symbol.Symbol) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "(symbol %s", strconv.Quote(sym.Name))
	for _, s := range sym.Sections() {
		fmt.Fprintf(&sb, "\n  (section %s", strconv.Quote(s.Name))
		for _, p := range s.Pins() {
			fmt.Fprintf(&sb, "\n    (pin %s %s", strconv.Quote(p.Name), p.Direction)
			if p.Bus {
				sb.WriteString(" bus")
			}
			if p.Type != symbol.DefaultPinType {
				fmt.Fprintf(&sb, " (type %s)", strconv.Quote(p.Type))
			}
			sb.WriteString(")")
		}
		sb.WriteString(")")
	}
	sb.WriteString(")\n")

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write symbol: %w", err)
	}
	return nil
}
