package symfile

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/symbol"
)

type yamlSymbol struct {
	Name     string        `yaml:"name"`
	Sections []yamlSection `yaml:"sections"`
}

type yamlSection struct {
	Name string    `yaml:"name"`
	Pins []yamlPin `yaml:"pins"`
}

type yamlPin struct {
	Name      string  `yaml:"name"`
	Direction string  `yaml:"direction"`
	Bus       bool    `yaml:"bus,omitempty"`
	Type      *string `yaml:"type,omitempty"`
}

func decodeYAML(r io.Reader) (*symbol.Symbol, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc yamlSymbol
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrSyntax)
		}
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	sym := symbol.New(doc.Name)
	for _, ys := range doc.Sections {
		s := symbol.NewSection(ys.Name)
		for _, yp := range ys.Pins {
			dir, err := parseDirection(yp.Direction, 0)
			if err != nil {
				return nil, fmt.Errorf("pin %q: %w", yp.Name, err)
			}
			p := symbol.NewPin(yp.Name, dir).WithBus(yp.Bus)
			if yp.Type != nil {
				p = p.WithType(*yp.Type)
			}
			s.AddPin(p)
		}
		sym.AddSection(s)
	}
	return sym, nil
}

func encodeYAML(w io.Writer, sym *symbol.Symbol) error {
	doc := yamlSymbol{Name: sym.Name}
	for _, s := range sym.Sections() {
		ys := yamlSection{Name: s.Name}
		for _, p := range s.Pins() {
			yp := yamlPin{Name: p.Name, Direction: p.Direction.String(), Bus: p.Bus}
			if p.Type != symbol.DefaultPinType {
				t := p.Type
				yp.Type = &t
			}
			ys.Pins = append(ys.Pins, yp)
		}
		doc.Sections = append(doc.Sections, ys)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to write symbol: %w", err)
	}
	return enc.Close()
}
