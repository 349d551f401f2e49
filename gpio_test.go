package ctsmon

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePins struct {
	values []byte
	err    error
	reads  int
	closes int
}

func (f *fakePins) ReadPins() (byte, error) {
	if f.err != nil {
		return 0, f.err
	}
	v := f.values[f.reads%len(f.values)]
	f.reads++
	return v, nil
}

func (f *fakePins) Close() error {
	f.closes++
	return nil
}

func TestGPIOSourceSample(t *testing.T) {
	pins := &fakePins{values: []byte{0xFF &^ (1 << 3), 0xFF &^ (1<<2 | 1<<5)}}
	src := newGPIOSource(pins, knownChips[0x6001])

	assert.Equal(t, SourceDirectGPIO, src.Kind())
	assert.Equal(t, ChipFT232R, src.Chip().Family)

	state, err := src.Sample()
	require.NoError(t, err)
	assert.Equal(t, SignalState{CTS: true}, state)

	state, err = src.Sample()
	require.NoError(t, err)
	assert.Equal(t, SignalState{RTS: true, DSR: true}, state)
}

func TestGPIOSourceReadError(t *testing.T) {
	pins := &fakePins{err: errors.New("LIBUSB_ERROR_NO_DEVICE")}
	src := newGPIOSource(pins, knownChips[0x6010])

	_, err := src.Sample()
	assert.ErrorIs(t, err, ErrIOFailure)
	assert.Contains(t, err.Error(), "FT2232")
}

func TestGPIOSourceClose(t *testing.T) {
	pins := &fakePins{values: []byte{0}}
	src := newGPIOSource(pins, knownChips[0x6014])

	require.NoError(t, src.Close())
	assert.ErrorIs(t, src.Close(), ErrPortClosed)
	assert.Equal(t, 1, pins.closes)

	_, err := src.Sample()
	assert.ErrorIs(t, err, ErrPortClosed)
}
