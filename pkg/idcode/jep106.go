package idcode

import "fmt"

// Manufacturer is a JEP106 vendor entry.
type Manufacturer struct {
	Code         uint16
	Name         string
	Abbreviation string
}

var manufacturers = map[uint16]Manufacturer{}

func init() {
	for _, m := range []Manufacturer{
		{0x001, "AMD", "AMD"},
		{0x004, "Fujitsu", "Fujitsu"},
		{0x009, "Intel", "Intel"},
		{0x00E, "Freescale (Motorola)", "Freescale"},
		{0x00F, "National", "National"},
		{0x010, "NEC", "NEC"},
		{0x015, "Philips Semi. (Signetics)", "Philips"},
		{0x017, "Texas Instruments", "TI"},
		{0x018, "Toshiba", "Toshiba"},
		{0x01C, "Mitsubishi", "Mitsubishi"},
		{0x01F, "Atmel", "Atmel"},
		{0x020, "STMicroelectronics", "STM"},
		{0x025, "Analog Devices", "ADI"},
		{0x02E, "Cypress", "Cypress"},
		{0x031, "Xilinx", "Xilinx"},
		{0x03D, "Altera", "Altera"},
		{0x041, "Lattice", "Lattice"},
		{0x049, "Infineon", "Infineon"},
		{0x06E, "Microchip", "Microchip"},
		{0x093, "ARM", "ARM"},
		{0x0B7, "Espressif", "Espressif"},
		{0x13B, "Nordic Semiconductor", "Nordic"},
		{0x1F1, "Raspberry Pi", "RPi"},
	} {
		manufacturers[m.Code] = m
	}
}

// LookupManufacturer returns the vendor for a JEP106 code. Unknown codes
// get a placeholder entry and false.
func LookupManufacturer(code uint16) (Manufacturer, bool) {
	if m, ok := manufacturers[code]; ok {
		return m, true
	}
	return Manufacturer{
		Code:         code,
		Name:         fmt.Sprintf("Unknown (0x%03X)", code),
		Abbreviation: "Unknown",
	}, false
}
