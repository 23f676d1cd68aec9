package bsdl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/symbol"
)

// ErrNoPorts is returned for an entity without a port clause.
var ErrNoPorts = errors.New("entity declares no ports")

// Section names used by SymbolFromEntity.
const (
	SectionJTAG  = "JTAG"
	SectionIO    = "IO"
	SectionPower = "Power"
)

// SymbolOptions controls SymbolFromEntity.
type SymbolOptions struct {
	// PinNumbers appends the physical pin numbers from the pin map to
	// each pin name.
	PinNumbers bool
}

// SymbolFromEntity builds a symbol from the entity ports. TAP signals go to
// a JTAG section, linkage ports (supplies, grounds, no-connects) to a Power
// section and every other port to an IO section. Empty sections are left
// out.
func SymbolFromEntity(e *Entity, opts SymbolOptions) (*symbol.Symbol, error) {
	ports := e.Ports()
	if len(ports) == 0 {
		return nil, fmt.Errorf("%s: %w", e.Name, ErrNoPorts)
	}

	tap := e.TAPSignals()
	var pinMap map[string][]string
	if opts.PinNumbers {
		pinMap = e.PinMap()
	}

	jtag := symbol.NewSection(SectionJTAG)
	io := symbol.NewSection(SectionIO)
	power := symbol.NewSection(SectionPower)

	for _, port := range ports {
		pin, err := pinFromSignal(port)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name, err)
		}
		key := strings.ToUpper(port.Name)
		if pins, ok := pinMap[key]; ok {
			pin.Name = fmt.Sprintf("%s (%s)", pin.Name, strings.Join(pins, ","))
		}

		switch {
		case tap[key] != "":
			jtag.AddPin(pin)
		case port.Mode == "linkage":
			power.AddPin(pin)
		default:
			io.AddPin(pin)
		}
	}

	sym := symbol.New(e.Name)
	for _, s := range []*symbol.Section{jtag, io, power} {
		if len(s.Pins()) > 0 {
			sym.AddSection(s)
		}
	}
	return sym, nil
}

func pinFromSignal(sig Signal) (symbol.Pin, error) {
	var dir symbol.Direction
	switch sig.Mode {
	case "in", "linkage":
		dir = symbol.In
	case "out", "buffer":
		dir = symbol.Out
	case "inout":
		dir = symbol.InOut
	default:
		return symbol.Pin{}, fmt.Errorf("port %s: unknown mode %q", sig.Name, sig.Mode)
	}

	pin := symbol.NewPin(sig.Name, dir)
	if sig.Type != nil && sig.Type.Vector {
		pin = pin.WithBus(true)
	}

	switch {
	case sig.Mode == "linkage":
		pin = pin.WithType("linkage")
	case sig.Type != nil && sig.Type.Vector && sig.Type.Range != nil:
		r := sig.Type.Range
		pin = pin.WithType(fmt.Sprintf("bit_vector(%d %s %d)", r.From, strings.ToLower(r.Dir), r.To))
	default:
		pin = pin.WithType("bit")
	}
	return pin, nil
}
