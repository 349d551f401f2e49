package ctsmon

import (
	"errors"
	"fmt"
)

// Predefined error types for robust error handling
var (
	ErrInvalidConfig     = errors.New("invalid monitor configuration")
	ErrDeviceUnavailable = errors.New("serial device unavailable")
	ErrIOFailure         = errors.New("signal sample failed")
	ErrOutput            = errors.New("output sink failure")
	ErrPortClosed        = errors.New("signal source is closed")
	ErrNotPrimed         = errors.New("detector has no initial sample")

	// Configuration details, all of which match ErrInvalidConfig
	ErrIntervalTooShort  = fmt.Errorf("%w: polling interval below minimum", ErrInvalidConfig)
	ErrUnknownMode       = fmt.Errorf("%w: unknown monitor mode", ErrInvalidConfig)
	ErrUnknownTimeFormat = fmt.Errorf("%w: unknown time format", ErrInvalidConfig)
	ErrMissingDevice     = fmt.Errorf("%w: serial device must be specified", ErrInvalidConfig)

	// Direct GPIO errors. These never leave OpenSource.
	ErrDirectUnavailable = errors.New("direct GPIO access not available")
)
