package ctsmon

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var capableFT2232 = Classification{
	Capable:     true,
	Chip:        knownChips[0x6010],
	Bus:         5,
	Address:     7,
	HasLocation: true,
}

func TestOpenSourceFallbackDeterminism(t *testing.T) {
	direct := &fakeSource{samples: []SignalState{{}}, kind: SourceDirectGPIO}
	line := &fakeSource{samples: []SignalState{{}}, kind: SourceLineStatus}

	var directCalls, lineCalls int
	backends := Backends{
		Direct: func(device string, cls Classification) (Source, error) {
			directCalls++
			return nil, ErrDirectUnavailable
		},
		Line: func(device string) (Source, error) {
			lineCalls++
			return line, nil
		},
	}

	// A failing direct open must always land on line status
	for i := 0; i < 3; i++ {
		src, err := OpenSource("/dev/ttyUSB0", capableFT2232, backends)
		require.NoError(t, err)
		assert.Equal(t, SourceLineStatus, src.Kind())
	}
	assert.Equal(t, 3, directCalls)
	assert.Equal(t, 3, lineCalls)

	backends.Direct = func(device string, cls Classification) (Source, error) {
		return direct, nil
	}
	src, err := OpenSource("/dev/ttyUSB0", capableFT2232, backends)
	require.NoError(t, err)
	assert.Equal(t, SourceDirectGPIO, src.Kind())
	assert.Equal(t, 3, lineCalls, "line backend must not open when direct succeeds")
}

func TestOpenSourceNotCapableSkipsDirect(t *testing.T) {
	backends := Backends{
		Direct: func(device string, cls Classification) (Source, error) {
			t.Fatal("direct backend must not be tried for a NotCapable device")
			return nil, nil
		},
		Line: func(device string) (Source, error) {
			return &fakeSource{samples: []SignalState{{}}}, nil
		},
	}

	src, err := OpenSource("/dev/ttyS0", notCapable("not usb"), backends)
	require.NoError(t, err)
	assert.Equal(t, SourceLineStatus, src.Kind())
}

func TestOpenSourceLineFailure(t *testing.T) {
	cause := errors.New("no such file")
	backends := Backends{
		Direct: func(device string, cls Classification) (Source, error) {
			return nil, ErrDirectUnavailable
		},
		Line: func(device string) (Source, error) {
			return nil, cause
		},
	}

	_, err := OpenSource("/dev/ttyUSB0", capableFT2232, backends)
	assert.ErrorIs(t, err, ErrDeviceUnavailable)
	assert.NotErrorIs(t, err, ErrDirectUnavailable)

	backends.Line = nil
	_, err = OpenSource("/dev/ttyUSB0", notCapable("x"), backends)
	assert.ErrorIs(t, err, ErrDeviceUnavailable)
}

func TestSourceKindString(t *testing.T) {
	assert.Equal(t, "line-status", SourceLineStatus.String())
	assert.Equal(t, "direct-gpio", SourceDirectGPIO.String())
	assert.Equal(t, "unknown", SourceKind(9).String())
}
