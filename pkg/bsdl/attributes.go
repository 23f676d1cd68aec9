package bsdl

import (
	"strings"
)

// TAPRole names the function of a test access port signal.
type TAPRole string

const (
	TAPScanIn    TAPRole = "TDI"
	TAPScanOut   TAPRole = "TDO"
	TAPScanMode  TAPRole = "TMS"
	TAPScanReset TAPRole = "TRST"
	TAPScanClock TAPRole = "TCK"
)

var tapAttributes = map[string]TAPRole{
	"TAP_SCAN_IN":    TAPScanIn,
	"TAP_SCAN_OUT":   TAPScanOut,
	"TAP_SCAN_MODE":  TAPScanMode,
	"TAP_SCAN_RESET": TAPScanReset,
	"TAP_SCAN_CLOCK": TAPScanClock,
}

// TAPSignals maps upper-cased port names to the TAP role given by the
// TAP_SCAN_* attributes.
func (e *Entity) TAPSignals() map[string]TAPRole {
	roles := make(map[string]TAPRole)
	for _, attr := range e.Attributes() {
		if role, ok := tapAttributes[strings.ToUpper(attr.Name)]; ok {
			roles[strings.ToUpper(attr.Of)] = role
		}
	}
	return roles
}

// DeviceInfo is the identification data of a device.
type DeviceInfo struct {
	Package           string // Default PHYSICAL_PIN_MAP generic
	IDCode            string // 32-bit ID code, may contain X wildcards
	InstructionLength int
	BoundaryLength    int
}

// DeviceInfo collects identification attributes.
func (e *Entity) DeviceInfo() DeviceInfo {
	var info DeviceInfo
	if e.Generic != nil {
		for _, g := range e.Generic.Generics {
			if strings.EqualFold(g.Name, "PHYSICAL_PIN_MAP") && g.Default != nil {
				info.Package = unquote(*g.Default)
			}
		}
	}
	for _, attr := range e.Attributes() {
		switch strings.ToUpper(attr.Name) {
		case "INSTRUCTION_LENGTH":
			info.InstructionLength, _ = attr.Value.Int()
		case "BOUNDARY_LENGTH":
			info.BoundaryLength, _ = attr.Value.Int()
		case "IDCODE_REGISTER":
			info.IDCode = strings.Join(strings.Fields(attr.Value.Text()), "")
		}
	}
	return info
}

// PinMap returns the physical pins of each port from the PIN_MAP_STRING
// constant selected by the PHYSICAL_PIN_MAP generic, or the first one
// declared when the generic is absent. Vector ports map to one pin per bit.
// Port names are upper-cased.
func (e *Entity) PinMap() map[string][]string {
	want := e.DeviceInfo().Package

	var chosen *Constant
	for _, c := range e.Constants() {
		if !strings.EqualFold(c.Type, "PIN_MAP_STRING") {
			continue
		}
		if chosen == nil || strings.EqualFold(c.Name, want) {
			chosen = c
		}
	}
	if chosen == nil {
		return nil
	}
	return parsePinMap(chosen.Value.Text())
}

// parsePinMap splits "A : 1, B : (2, 3)" into {A: [1], B: [2 3]}. An
// unclosed list ends the map; the entries before it are kept.
func parsePinMap(s string) map[string][]string {
	pins := make(map[string][]string)
	for len(s) > 0 {
		colon := strings.IndexByte(s, ':')
		if colon < 0 {
			break
		}
		name := strings.TrimSpace(strings.TrimLeft(s[:colon], ", "))
		rest := strings.TrimSpace(s[colon+1:])

		var value string
		if strings.HasPrefix(rest, "(") {
			end := strings.IndexByte(rest, ')')
			if end < 0 {
				break
			}
			value, rest = rest[1:end], rest[end+1:]
		} else if comma := strings.IndexByte(rest, ','); comma >= 0 {
			value, rest = rest[:comma], rest[comma+1:]
		} else {
			value, rest = rest, ""
		}

		var list []string
		for _, v := range strings.Split(value, ",") {
			if v = strings.TrimSpace(v); v != "" {
				list = append(list, v)
			}
		}
		if name != "" && len(list) > 0 {
			pins[strings.ToUpper(name)] = list
		}
		s = rest
	}
	return pins
}
