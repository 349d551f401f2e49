package ctsmon

import (
	"fmt"
	"time"

	"github.com/google/gousb"
	"github.com/womat/debug"
)

// FTDI vendor requests (libftdi SIO_* values)
const (
	ftdiRequestOut = 0x40 // Host-to-device, vendor, device recipient
	ftdiRequestIn  = 0xC0 // Device-to-host, vendor, device recipient

	sioReset      = 0x00
	sioSetBitmode = 0x0B
	sioReadPins   = 0x0C

	sioResetSIO = 0

	bitmodeReset   = 0x00
	bitmodeBitbang = 0x01

	// bitbangInputMask configures every pin as an input so nothing is driven
	bitbangInputMask = 0x00

	ftdiControlTimeout = time.Second
)

// ftdiPins holds an opened FTDI channel in async bit-bang mode
type ftdiPins struct {
	ctx   *gousb.Context
	dev   *gousb.Device
	cfg   *gousb.Config
	intf  *gousb.Interface
	index uint16 // wIndex selects the channel: interface number + 1
}

// OpenDirect acquires the bridge chip described by cls and switches it to
// bit-bang input mode. It fails whenever the chip cannot be claimed; the
// caller is expected to fall back to OpenLineStatus.
func OpenDirect(device string, cls Classification) (Source, error) {
	if !cls.Capable {
		return nil, fmt.Errorf("%w: %s", ErrDirectUnavailable, cls.Reason)
	}

	pins, err := openFTDIPins(cls)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDirectUnavailable, device, err)
	}
	return newGPIOSource(pins, cls.Chip), nil
}

func openFTDIPins(cls Classification) (*ftdiPins, error) {
	ctx, err := newUSBContext()
	if err != nil {
		return nil, err
	}

	devs, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		if uint16(desc.Vendor) != cls.Chip.VendorID || uint16(desc.Product) != cls.Chip.ProductID {
			return false
		}
		if cls.HasLocation && (desc.Bus != cls.Bus || desc.Address != cls.Address) {
			return false
		}
		return true
	})
	if len(devs) == 0 {
		ctx.Close()
		if err != nil {
			return nil, fmt.Errorf("USB error: %w", err)
		}
		return nil, fmt.Errorf("device not found (VID:0x%04X PID:0x%04X)", cls.Chip.VendorID, cls.Chip.ProductID)
	}

	// Keep the first match only
	dev := devs[0]
	for _, extra := range devs[1:] {
		extra.Close()
	}
	dev.ControlTimeout = ftdiControlTimeout

	// The ftdi_sio driver owns the interface while the tty exists
	if err := dev.SetAutoDetach(true); err != nil {
		debug.DebugLog.Printf("auto-detach not supported: %v", err)
	}

	p := &ftdiPins{ctx: ctx, dev: dev, index: uint16(cls.Interface) + 1}

	if err := p.claim(cls.Interface); err != nil {
		p.Close()
		return nil, err
	}

	if _, err := dev.Control(ftdiRequestOut, sioReset, sioResetSIO, p.index, nil); err != nil {
		p.Close()
		return nil, fmt.Errorf("reset failed: %w", err)
	}
	if err := p.setBitmode(bitbangInputMask, bitmodeBitbang); err != nil {
		p.Close()
		return nil, fmt.Errorf("unable to set bitbang mode: %w", err)
	}

	return p, nil
}

// claim takes the interface backing the channel
func (p *ftdiPins) claim(num int) error {
	cfg, err := p.dev.Config(1)
	if err != nil {
		return fmt.Errorf("failed to get config: %w", err)
	}
	p.cfg = cfg

	intf, err := cfg.Interface(num, 0)
	if err != nil {
		return fmt.Errorf("failed to claim interface %d: %w", num, err)
	}
	p.intf = intf
	return nil
}

func (p *ftdiPins) setBitmode(mask, mode uint8) error {
	value := uint16(mode)<<8 | uint16(mask)
	_, err := p.dev.Control(ftdiRequestOut, sioSetBitmode, value, p.index, nil)
	return err
}

// ReadPins returns the instantaneous level of D0..D7
func (p *ftdiPins) ReadPins() (byte, error) {
	buf := make([]byte, 1)
	n, err := p.dev.Control(ftdiRequestIn, sioReadPins, 0, p.index, buf)
	if err != nil {
		return 0, fmt.Errorf("USB read failed: %w", err)
	}
	if n != 1 {
		return 0, fmt.Errorf("short pin read: %d bytes", n)
	}
	return buf[0], nil
}

// Close leaves bit-bang mode and releases USB resources
func (p *ftdiPins) Close() error {
	if p.intf != nil {
		if err := p.setBitmode(0, bitmodeReset); err != nil {
			debug.DebugLog.Printf("failed to reset bitmode: %v", err)
		}
		p.intf.Close()
		p.intf = nil
	}
	if p.cfg != nil {
		p.cfg.Close()
		p.cfg = nil
	}
	if p.dev != nil {
		p.dev.Close()
		p.dev = nil
	}
	if p.ctx != nil {
		p.ctx.Close()
		p.ctx = nil
	}
	return nil
}
