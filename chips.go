package ctsmon

import "fmt"

// VendorIDFTDI is the USB vendor ID of Future Technology Devices International
const VendorIDFTDI = 0x0403

// ChipFamily tags a bridge chip family with a known pin layout
type ChipFamily string

const (
	ChipFT232R  ChipFamily = "FT232R"
	ChipFT2232  ChipFamily = "FT2232"
	ChipFT4232  ChipFamily = "FT4232"
	ChipFT232H  ChipFamily = "FT232H"
	ChipFT230X  ChipFamily = "FT230X"
	ChipUnknown ChipFamily = ""
)

// BitLayout holds the bit position of each control line in the pin byte
type BitLayout struct {
	CTS uint8
	RTS uint8
	DSR uint8
	DTR uint8
	// ActiveLow means a cleared bit is an asserted line
	ActiveLow bool
}

// Decode maps a raw pin byte onto a SignalState of asserted lines
func (l BitLayout) Decode(pins byte) SignalState {
	if l.ActiveLow {
		pins = ^pins
	}
	return SignalState{
		CTS: pins&(1<<l.CTS) != 0,
		RTS: pins&(1<<l.RTS) != 0,
		DSR: pins&(1<<l.DSR) != 0,
		DTR: pins&(1<<l.DTR) != 0,
	}
}

// Chip describes one supported bridge chip
type Chip struct {
	Family    ChipFamily
	Name      string
	VendorID  uint16
	ProductID uint16
	Layout    BitLayout
}

func (c Chip) String() string {
	return fmt.Sprintf("%s (%04X:%04X)", c.Name, c.VendorID, c.ProductID)
}

// uartLayout is the async bit-bang mapping of the UART pins on ADBUS/D0..D7:
// TXD D0, RXD D1, RTS# D2, CTS# D3, DTR# D4, DSR# D5, DCD# D6, RI# D7.
// The handshake pins are active low, so a pin reading 0 is an asserted line.
var uartLayout = BitLayout{CTS: 3, RTS: 2, DSR: 5, DTR: 4, ActiveLow: true}

// knownChips is keyed by USB product ID under VendorIDFTDI
var knownChips = map[uint16]Chip{
	0x6001: {Family: ChipFT232R, Name: "FTDI FT232R", VendorID: VendorIDFTDI, ProductID: 0x6001, Layout: uartLayout},
	0x6010: {Family: ChipFT2232, Name: "FTDI FT2232", VendorID: VendorIDFTDI, ProductID: 0x6010, Layout: uartLayout},
	0x6011: {Family: ChipFT4232, Name: "FTDI FT4232", VendorID: VendorIDFTDI, ProductID: 0x6011, Layout: uartLayout},
	0x6014: {Family: ChipFT232H, Name: "FTDI FT232H", VendorID: VendorIDFTDI, ProductID: 0x6014, Layout: uartLayout},
	0x6015: {Family: ChipFT230X, Name: "FTDI FT230X", VendorID: VendorIDFTDI, ProductID: 0x6015, Layout: uartLayout},
}

// LookupChip returns the chip descriptor for a vendor/product pair
func LookupChip(vendorID, productID uint16) (Chip, bool) {
	if vendorID != VendorIDFTDI {
		return Chip{}, false
	}
	chip, ok := knownChips[productID]
	return chip, ok
}
