package ui

import (
	"fmt"
	"strings"
)

// DeviceInfo carries the display fields for a discovered digitizer.
type DeviceInfo struct {
	VendorID     uint16
	ProductID    uint16
	Manufacturer string
	Product      string
	Digitizer    bool
}

// PrintDeviceList displays a styled list of HID devices, flagging the
// ones on the digitizer usage page.
func PrintDeviceList(devices []DeviceInfo) {
	if len(devices) == 0 {
		fmt.Println(Warning("No HID devices found"))
		return
	}

	digitizers := 0
	for _, d := range devices {
		if d.Digitizer {
			digitizers++
		}
	}

	fmt.Println()
	fmt.Println(Title("HID Devices"))
	fmt.Println(Muted(fmt.Sprintf("Found %d device(s), %d digitizer(s)", len(devices), digitizers)))
	fmt.Println()

	for _, d := range devices {
		printDevice(d)
	}
	fmt.Println()
}

func printDevice(d DeviceInfo) {
	idLine := DeviceIDStyle.Render(fmt.Sprintf("  0x%04X:0x%04X", d.VendorID, d.ProductID))

	name := d.Product
	if name == "" {
		name = "Unknown Device"
	}

	var details []string
	details = append(details, DeviceNameStyle.Render(name))
	if d.Manufacturer != "" {
		details = append(details, DeviceManufacturerStyle.Render("by "+d.Manufacturer))
	}
	if d.Digitizer {
		details = append(details, SuccessStyle.Render("digitizer"))
	}

	fmt.Printf("%s  %s\n", idLine, strings.Join(details, " "))
}
