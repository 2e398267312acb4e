package hid

import (
	"github.com/karalabe/hid"
)

// DeviceInfo contains information about a discovered HID device.
type DeviceInfo struct {
	VendorID     uint16
	ProductID    uint16
	Path         string
	Manufacturer string
	Product      string
	SerialNumber string
	UsagePage    uint16
	Usage        uint16
}

// IsDigitizer reports whether the device advertises the digitizer usage
// page.
func (d DeviceInfo) IsDigitizer() bool {
	return d.UsagePage == UsagePageDigitizer
}

// ListDevices returns all HID devices visible on the system.
func ListDevices() ([]DeviceInfo, error) {
	devices := hid.Enumerate(0, 0)

	result := make([]DeviceInfo, len(devices))
	for i, d := range devices {
		result[i] = toInfo(d)
	}
	return result, nil
}

// ListDigitizers returns the devices on the digitizer usage page. Touch
// screens and touch pads both live there.
func ListDigitizers() ([]DeviceInfo, error) {
	all, err := ListDevices()
	if err != nil {
		return nil, err
	}

	var result []DeviceInfo
	for _, d := range all {
		if d.IsDigitizer() {
			result = append(result, d)
		}
	}
	return result, nil
}

// FindDevice searches for a device matching the given vendor and product
// IDs. A nil result with a nil error means no match.
func FindDevice(vendorID, productID uint16) (*DeviceInfo, error) {
	devices := hid.Enumerate(vendorID, productID)
	if len(devices) == 0 {
		return nil, nil
	}

	info := toInfo(devices[0])
	return &info, nil
}

func toInfo(d hid.DeviceInfo) DeviceInfo {
	return DeviceInfo{
		VendorID:     d.VendorID,
		ProductID:    d.ProductID,
		Path:         d.Path,
		Manufacturer: d.Manufacturer,
		Product:      d.Product,
		SerialNumber: d.Serial,
		UsagePage:    d.UsagePage,
		Usage:        d.Usage,
	}
}
