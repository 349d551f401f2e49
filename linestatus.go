package ctsmon

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// lineSource samples control lines with the TIOCMGET ioctl
type lineSource struct {
	mu     sync.Mutex
	fd     int
	device string
	closed bool
}

// Ensure lineSource implements Source at compile time
var _ Source = (*lineSource)(nil)

// OpenLineStatus opens device through the OS serial driver.
// The port is put in raw mode with modem control ignored, since only the
// line levels are read and no data is ever transferred.
func OpenLineStatus(device string) (Source, error) {
	fd, err := unix.Open(device, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", ErrDeviceUnavailable, device, openErrorCause(err))
	}

	if err := configureRaw(fd); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: %s: %v", ErrDeviceUnavailable, device, err)
	}

	// A device that cannot report modem status is no use to us
	if _, err := getModemStatus(fd); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: %s does not report modem status: %v", ErrDeviceUnavailable, device, err)
	}

	return &lineSource{fd: fd, device: device}, nil
}

// openErrorCause maps the common open(2) failures onto readable causes
func openErrorCause(err error) error {
	switch {
	case errors.Is(err, unix.ENOENT), errors.Is(err, unix.ENXIO), errors.Is(err, unix.ENODEV):
		return fmt.Errorf("device not found: %w", err)
	case errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM):
		return fmt.Errorf("permission denied: %w", err)
	case errors.Is(err, unix.EBUSY):
		return fmt.Errorf("device in use: %w", err)
	default:
		return err
	}
}

// configureRaw applies a minimal raw termios setup
func configureRaw(fd int) error {
	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("failed to get termios: %v", err)
	}

	// cfmakeraw equivalent
	termios.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	termios.Oflag &^= unix.OPOST
	termios.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	termios.Cflag &^= unix.CSIZE | unix.PARENB
	termios.Cflag |= unix.CS8

	// Ignore modem control lines for open/close, no hardware flow control
	termios.Cflag |= unix.CLOCAL
	termios.Cflag &^= unix.CRTSCTS

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
		return fmt.Errorf("failed to set termios: %v", err)
	}
	return nil
}

// getModemStatus retrieves modem control signals using unix package
func getModemStatus(fd int) (int, error) {
	return unix.IoctlGetInt(fd, unix.TIOCMGET)
}

// decodeModemStatus maps TIOCM bits onto a SignalState
func decodeModemStatus(status int) SignalState {
	return SignalState{
		CTS: status&unix.TIOCM_CTS != 0,
		RTS: status&unix.TIOCM_RTS != 0,
		DSR: status&unix.TIOCM_DSR != 0,
		DTR: status&unix.TIOCM_DTR != 0,
	}
}

// Sample reads all four lines in one ioctl
func (l *lineSource) Sample() (SignalState, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return SignalState{}, ErrPortClosed
	}

	status, err := getModemStatus(l.fd)
	if err != nil {
		return SignalState{}, fmt.Errorf("%w: reading modem status of %s: %v", ErrIOFailure, l.device, err)
	}
	return decodeModemStatus(status), nil
}

// Kind reports SourceLineStatus
func (l *lineSource) Kind() SourceKind {
	return SourceLineStatus
}

// Close releases the file descriptor
func (l *lineSource) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrPortClosed
	}

	err := unix.Close(l.fd)
	l.closed = true
	return err
}
