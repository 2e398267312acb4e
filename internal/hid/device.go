package hid

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/karalabe/hid"
)

// Device is a connection to a touch digitizer HID device.
type Device struct {
	vendorID  uint16
	productID uint16
	device    *hid.Device
	mu        sync.Mutex
	closed    bool
}

func executableName() string {
	return "touchsense"
}

// NewDevice opens a connection to a digitizer with the specified vendor
// and product IDs. Devices expose multiple interfaces and not all of
// them can be opened, so every matching interface is tried in turn.
func NewDevice(vendorID, productID uint16) (*Device, error) {
	devices := hid.Enumerate(vendorID, productID)
	if len(devices) == 0 {
		allDevices := hid.Enumerate(0, 0)
		if len(allDevices) == 0 {
			return nil, fmt.Errorf("no HID devices found on system - check USB connection")
		}
		return nil, fmt.Errorf("no device found with VendorID=0x%04X, ProductID=0x%04X\n"+
			"  Run '"+executableName()+" devices' to see available digitizers",
			vendorID, productID)
	}

	var lastErr error
	for _, devInfo := range devices {
		dev, err := devInfo.Open()
		if err == nil {
			return &Device{
				vendorID:  vendorID,
				productID: productID,
				device:    dev,
			}, nil
		}
		lastErr = err
	}

	if len(devices) == 1 {
		return nil, fmt.Errorf("failed to open device 0x%04X:0x%04X: %w\n"+
			"  This may be a permissions issue. On macOS, try:\n"+
			"  1. System Settings > Privacy & Security > Input Monitoring\n"+
			"  2. Add Terminal (or your terminal app) to the list",
			vendorID, productID, lastErr)
	}
	return nil, fmt.Errorf("failed to open any of %d interfaces for device 0x%04X:0x%04X: %w\n"+
		"  This may be a permissions issue. On macOS, try:\n"+
		"  1. System Settings > Privacy & Security > Input Monitoring\n"+
		"  2. Add Terminal (or your terminal app) to the list",
		len(devices), vendorID, productID, lastErr)
}

// Close closes the device connection. Safe to call multiple times.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	if d.device != nil {
		return d.device.Close()
	}
	return nil
}

// ReadReports continuously reads touch reports from the device and sends
// them to the channel. Malformed reports are skipped; read errors end
// the loop.
func (d *Device) ReadReports(ctx context.Context, reports chan<- TouchReport) error {
	buf := make([]byte, 64)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		d.mu.Lock()
		if d.closed {
			d.mu.Unlock()
			return fmt.Errorf("device closed")
		}
		dev := d.device
		d.mu.Unlock()

		n, err := dev.Read(buf)
		if err != nil {
			return fmt.Errorf("read error: %w", err)
		}
		if n == 0 {
			continue
		}

		rep, err := ParseTouchReport(buf[:n])
		if err != nil {
			continue
		}

		select {
		case reports <- *rep:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Write sends raw data to the device.
func (d *Device) Write(data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return fmt.Errorf("device closed")
	}

	_, err := d.device.Write(data)
	return err
}

// Vibrate sends a haptic pulse pattern to the device. Device satisfies
// haptic.Sink so it can be handed straight to a haptic dispatcher.
func (d *Device) Vibrate(pattern []time.Duration) error {
	return d.Write(EncodeFeedback(pattern))
}

// Reconnect closes any existing connection and reopens the device.
func (d *Device) Reconnect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.device != nil {
		d.device.Close()
		d.device = nil
	}
	d.closed = false

	devices := hid.Enumerate(d.vendorID, d.productID)
	if len(devices) == 0 {
		return fmt.Errorf("device not found")
	}

	var lastErr error
	for _, devInfo := range devices {
		dev, err := devInfo.Open()
		if err == nil {
			d.device = dev
			return nil
		}
		lastErr = err
	}

	return fmt.Errorf("failed to open device: %w", lastErr)
}

// WaitForDevice polls until the device becomes available and connects.
func (d *Device) WaitForDevice(ctx context.Context, pollInterval time.Duration) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := d.Reconnect(); err == nil {
				return nil
			}
		}
	}
}
