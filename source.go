package ctsmon

import (
	"errors"
	"fmt"

	"github.com/womat/debug"
)

// SourceKind identifies which backend a Source reads from
type SourceKind int

const (
	SourceLineStatus SourceKind = iota // OS modem-status ioctl
	SourceDirectGPIO                   // USB bridge pin read
)

func (k SourceKind) String() string {
	switch k {
	case SourceLineStatus:
		return "line-status"
	case SourceDirectGPIO:
		return "direct-gpio"
	default:
		return "unknown"
	}
}

// Source samples the control lines of one device.
// A Source is owned by a single goroutine and closed exactly once.
type Source interface {
	Sample() (SignalState, error)
	Kind() SourceKind
	Close() error
}

// Backends holds the constructors OpenSource chooses between
type Backends struct {
	// Direct acquires the bridge chip described by cls
	Direct func(device string, cls Classification) (Source, error)
	// Line opens the device through the OS serial driver
	Line func(device string) (Source, error)
}

// DefaultBackends returns the gousb direct backend and the termios line backend
func DefaultBackends() Backends {
	return Backends{
		Direct: OpenDirect,
		Line:   OpenLineStatus,
	}
}

// OpenSource opens the preferred Source for device.
// A DirectCapable classification is tried first; any failure there falls
// back to the line-status backend. Only a line-status failure is returned.
func OpenSource(device string, cls Classification, backends Backends) (Source, error) {
	if cls.Capable && backends.Direct != nil {
		debug.InfoLog.Printf("%s: %s detected, attempting direct GPIO monitoring", device, cls.Chip.Name)

		src, err := backends.Direct(device, cls)
		if err == nil {
			debug.InfoLog.Printf("%s: direct GPIO monitoring initialized", device)
			return src, nil
		}
		debug.DebugLog.Printf("%s: direct GPIO failed, falling back to line status: %v", device, err)
	}

	if backends.Line == nil {
		return nil, fmt.Errorf("%w: %s: no line-status backend", ErrDeviceUnavailable, device)
	}

	src, err := backends.Line(device)
	if err != nil {
		if errors.Is(err, ErrDeviceUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	return src, nil
}
