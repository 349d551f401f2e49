package ctsmon

import (
	"fmt"
	"sync"
)

// pinReader reads the raw pin byte of a bridge chip in bit-bang mode
type pinReader interface {
	ReadPins() (byte, error)
	Close() error
}

// gpioSource decodes pin bytes with the chip's bit layout
type gpioSource struct {
	mu     sync.Mutex
	pins   pinReader
	chip   Chip
	closed bool
}

// Ensure gpioSource implements Source at compile time
var _ Source = (*gpioSource)(nil)

func newGPIOSource(pins pinReader, chip Chip) *gpioSource {
	return &gpioSource{pins: pins, chip: chip}
}

// Sample reads one pin byte
func (g *gpioSource) Sample() (SignalState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return SignalState{}, ErrPortClosed
	}

	b, err := g.pins.ReadPins()
	if err != nil {
		return SignalState{}, fmt.Errorf("%w: reading %s pins: %v", ErrIOFailure, g.chip.Name, err)
	}
	return g.chip.Layout.Decode(b), nil
}

// Kind reports SourceDirectGPIO
func (g *gpioSource) Kind() SourceKind {
	return SourceDirectGPIO
}

// Chip returns the descriptor chosen at classification time
func (g *gpioSource) Chip() Chip {
	return g.chip
}

// Close releases the USB handle
func (g *gpioSource) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return ErrPortClosed
	}
	g.closed = true
	return g.pins.Close()
}
