package ctsmon

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/womat/debug"
)

// usbSerialPattern matches device nodes created by usb-serial drivers such as ftdi_sio
var usbSerialPattern = regexp.MustCompile(`^/dev/ttyUSB\d+$`)

// USBDevice is the part of a USB device descriptor the classifier needs
type USBDevice struct {
	Bus       int
	Address   int
	VendorID  uint16
	ProductID uint16
}

// Enumerator lists attached USB devices without opening them
type Enumerator interface {
	Devices() ([]USBDevice, error)
}

// Classification is the classifier verdict for one device path
type Classification struct {
	Capable bool
	Chip    Chip
	// Bus and Address pin the USB device when HasLocation is set
	Bus         int
	Address     int
	HasLocation bool
	// Interface is the chip channel backing the tty (0 = A)
	Interface int
	// Reason explains a NotCapable verdict
	Reason string
}

func (c Classification) String() string {
	if !c.Capable {
		return fmt.Sprintf("not capable (%s)", c.Reason)
	}
	if c.HasLocation {
		return fmt.Sprintf("direct capable: %s at bus %03d device %03d", c.Chip, c.Bus, c.Address)
	}
	return fmt.Sprintf("direct capable: %s", c.Chip)
}

func notCapable(format string, args ...any) Classification {
	return Classification{Reason: fmt.Sprintf(format, args...)}
}

// Classifier decides whether a device can be read through direct GPIO
type Classifier struct {
	Enumerator Enumerator
	// PortInfo narrows the match to the tty's own USB device when it can
	PortInfo func(device string) (*PortInfo, error)
}

// NewClassifier returns a classifier backed by gousb and sysfs
func NewClassifier() *Classifier {
	return &Classifier{
		Enumerator: NewUSBEnumerator(),
		PortInfo:   GetPortInfo,
	}
}

// Classify never opens the device and never fails; every problem yields NotCapable
func (c *Classifier) Classify(device string) Classification {
	path := device
	if resolved, err := filepath.EvalSymlinks(device); err == nil {
		path = resolved
	}
	if !usbSerialPattern.MatchString(path) {
		return notCapable("%s is not a USB serial device node", path)
	}

	if c.Enumerator == nil {
		return notCapable("USB enumeration not available")
	}
	devices, err := c.Enumerator.Devices()
	if err != nil {
		debug.DebugLog.Printf("USB enumeration failed: %v", err)
		return notCapable("USB enumeration failed: %v", err)
	}

	var bus, address, intf int
	var located bool
	if c.PortInfo != nil {
		if info, err := c.PortInfo(device); err == nil {
			bus, address, located = info.USBLocation()
			if n, err := strconv.ParseUint(info.InterfaceNumber, 16, 8); err == nil {
				intf = int(n)
			}
		}
	}

	for _, dev := range devices {
		debug.TraceLog.Printf("usb bus %03d device %03d: %04x:%04x", dev.Bus, dev.Address, dev.VendorID, dev.ProductID)
		chip, ok := LookupChip(dev.VendorID, dev.ProductID)
		if !ok {
			continue
		}
		if located && (dev.Bus != bus || dev.Address != address) {
			continue
		}
		return Classification{
			Capable:     true,
			Chip:        chip,
			Bus:         dev.Bus,
			Address:     dev.Address,
			HasLocation: true,
			Interface:   intf,
		}
	}

	if located {
		return notCapable("USB device at bus %03d device %03d is not a supported bridge chip", bus, address)
	}
	return notCapable("no supported bridge chip attached")
}
