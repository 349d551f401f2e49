package ctsmon

import (
	"fmt"

	"github.com/google/gousb"
)

// usbEnumerator lists devices through libusb
type usbEnumerator struct{}

// NewUSBEnumerator returns an Enumerator backed by gousb
func NewUSBEnumerator() Enumerator {
	return usbEnumerator{}
}

// Devices walks the bus without opening any device
func (usbEnumerator) Devices() ([]USBDevice, error) {
	ctx, err := newUSBContext()
	if err != nil {
		return nil, err
	}
	defer ctx.Close()

	var devices []USBDevice
	_, err = ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		devices = append(devices, USBDevice{
			Bus:       desc.Bus,
			Address:   desc.Address,
			VendorID:  uint16(desc.Vendor),
			ProductID: uint16(desc.Product),
		})
		return false
	})
	if err != nil && err != gousb.ErrorAccess {
		return devices, fmt.Errorf("failed to enumerate devices: %w", err)
	}
	return devices, nil
}

// newUSBContext wraps gousb.NewContext, which panics when libusb cannot initialise
func newUSBContext() (ctx *gousb.Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			ctx = nil
			err = fmt.Errorf("%w: libusb init: %v", ErrDirectUnavailable, r)
		}
	}()
	return gousb.NewContext(), nil
}
