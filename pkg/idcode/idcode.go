// Package idcode decodes IEEE 1149.1 IDCODE values as they appear in BSDL
// IDCODE_REGISTER attributes, where any bit may be an X wildcard.
package idcode

import (
	"errors"
	"fmt"
	"strings"
)

// ErrLength is returned for bit strings that are not 32 bits long.
var ErrLength = errors.New("idcode must be 32 bits")

// IDCode is a decoded IDCODE. Mask has a 1 for every bit that was given
// as 0 or 1; wildcard bits are 0 in both Raw and Mask.
type IDCode struct {
	Raw  uint32
	Mask uint32
}

// Parse decodes a 32 character bit string, MSB first. X or x marks a bit
// that varies between device revisions.
func Parse(bits string) (IDCode, error) {
	bits = strings.Join(strings.Fields(bits), "")
	if len(bits) != 32 {
		return IDCode{}, fmt.Errorf("%w, got %d", ErrLength, len(bits))
	}
	var id IDCode
	for i, r := range bits {
		bit := uint32(1) << (31 - i)
		switch r {
		case '1':
			id.Raw |= bit
			id.Mask |= bit
		case '0':
			id.Mask |= bit
		case 'x', 'X':
		default:
			return IDCode{}, fmt.Errorf("invalid idcode bit %q at position %d", r, i)
		}
	}
	return id, nil
}

// FromUint32 wraps a fully known IDCODE.
func FromUint32(raw uint32) IDCode {
	return IDCode{Raw: raw, Mask: 0xFFFFFFFF}
}

// Version is bits [31:28].
func (id IDCode) Version() uint8 { return uint8(id.Raw >> 28 & 0xF) }

// PartNumber is bits [27:12].
func (id IDCode) PartNumber() uint16 { return uint16(id.Raw >> 12 & 0xFFFF) }

// ManufacturerCode is the JEP106 code in bits [11:1].
func (id IDCode) ManufacturerCode() uint16 { return uint16(id.Raw >> 1 & 0x7FF) }

// Valid reports whether the mandatory bit 0 is set.
func (id IDCode) Valid() bool { return id.Raw&1 == 1 }

// VersionKnown reports whether the version field has no wildcards.
func (id IDCode) VersionKnown() bool { return id.Mask>>28 == 0xF }

// Manufacturer looks up the JEP106 vendor.
func (id IDCode) Manufacturer() (Manufacturer, bool) {
	return LookupManufacturer(id.ManufacturerCode())
}

// String prints the value in hex, with the version as X when it is a
// wildcard.
func (id IDCode) String() string {
	if id.VersionKnown() {
		return fmt.Sprintf("0x%08X", id.Raw)
	}
	return fmt.Sprintf("0xX%07X", id.Raw&0x0FFFFFFF)
}
