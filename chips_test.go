package ctsmon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupChip(t *testing.T) {
	tests := []struct {
		vid, pid uint16
		family   ChipFamily
		ok       bool
	}{
		{0x0403, 0x6001, ChipFT232R, true},
		{0x0403, 0x6010, ChipFT2232, true},
		{0x0403, 0x6011, ChipFT4232, true},
		{0x0403, 0x6014, ChipFT232H, true},
		{0x0403, 0x6015, ChipFT230X, true},
		{0x0403, 0x1234, ChipUnknown, false},
		{0x10c4, 0x6001, ChipUnknown, false},
	}

	for _, tt := range tests {
		chip, ok := LookupChip(tt.vid, tt.pid)
		assert.Equal(t, tt.ok, ok, "%04x:%04x", tt.vid, tt.pid)
		assert.Equal(t, tt.family, chip.Family, "%04x:%04x", tt.vid, tt.pid)
		if ok {
			assert.Equal(t, tt.pid, chip.ProductID)
		}
	}
}

func TestBitLayoutDecode(t *testing.T) {
	tests := []struct {
		name string
		pins byte
		want SignalState
	}{
		{"all pins low", 0x00, SignalState{CTS: true, RTS: true, DSR: true, DTR: true}},
		{"all pins high", 0xFF, SignalState{}},
		{"CTS asserted", 0xFF &^ (1 << 3), SignalState{CTS: true}},
		{"RTS asserted", 0xFF &^ (1 << 2), SignalState{RTS: true}},
		{"DTR asserted", 0xFF &^ (1 << 4), SignalState{DTR: true}},
		{"DSR asserted", 0xFF &^ (1 << 5), SignalState{DSR: true}},
		{"data and DCD/RI ignored", 0b0011_1100, SignalState{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, uartLayout.Decode(tt.pins))
		})
	}
}

func TestBitLayoutActiveHigh(t *testing.T) {
	l := BitLayout{CTS: 0, RTS: 1, DSR: 2, DTR: 3}
	assert.Equal(t, SignalState{CTS: true, DTR: true}, l.Decode(0b1001))
}

func TestChipString(t *testing.T) {
	chip, _ := LookupChip(0x0403, 0x6014)
	assert.Equal(t, "FTDI FT232H (0403:6014)", chip.String())
}
