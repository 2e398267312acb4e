package hid

import (
	"encoding/binary"
	"fmt"
	"time"

	"touchsense/internal/force"
	"touchsense/internal/touch"
)

// Report IDs
const (
	ReportIDTouch    byte = 0x03
	ReportIDFeedback byte = 0x04
)

// Digitizer usage identifiers, for filtering enumeration results.
const (
	UsagePageDigitizer uint16 = 0x0D
	UsageTouchScreen   uint16 = 0x04
)

// Touch report flags
const (
	FlagPressureValid byte = 0x01
)

const (
	maxContacts     = 10
	maxPulses       = 8
	contactSize     = 6
	touchHeaderSize = 3
	timestampSize   = 4
)

// TouchReport is one decoded multi-touch frame from the digitizer.
type TouchReport struct {
	Contacts    []touch.Contact
	TimestampMs uint32
	HasPressure bool
}

// ParseTouchReport parses a raw HID report into a TouchReport.
// Expected format:
//
//	Byte 0: Report ID (0x03)
//	Byte 1: Flags (bit 0 set when pressure bytes are valid)
//	Byte 2: Contact count (0..10)
//	Per contact (6 bytes): contact ID, X (u16 LE), Y (u16 LE), pressure (0..255)
//	Tail: Timestamp (ms since boot, little-endian u32)
func ParseTouchReport(data []byte) (*TouchReport, error) {
	if len(data) < touchHeaderSize+timestampSize {
		return nil, fmt.Errorf("touch report too short: %d bytes", len(data))
	}
	if data[0] != ReportIDTouch {
		return nil, fmt.Errorf("unexpected report ID: 0x%02X", data[0])
	}

	flags := data[1]
	count := int(data[2])
	if count > maxContacts {
		return nil, fmt.Errorf("contact count %d exceeds maximum %d", count, maxContacts)
	}

	need := touchHeaderSize + count*contactSize + timestampSize
	if len(data) < need {
		return nil, fmt.Errorf("touch report truncated: %d bytes, need %d for %d contacts",
			len(data), need, count)
	}

	hasPressure := flags&FlagPressureValid != 0
	rep := &TouchReport{
		Contacts:    make([]touch.Contact, count),
		HasPressure: hasPressure,
	}
	for i := 0; i < count; i++ {
		off := touchHeaderSize + i*contactSize
		rep.Contacts[i] = touch.Contact{
			ID:          int(data[off]),
			X:           float64(binary.LittleEndian.Uint16(data[off+1 : off+3])),
			Y:           float64(binary.LittleEndian.Uint16(data[off+3 : off+5])),
			Pressure:    force.Normalize(float64(data[off+5]), 255),
			HasPressure: hasPressure,
		}
	}
	rep.TimestampMs = binary.LittleEndian.Uint32(data[need-timestampSize : need])

	return rep, nil
}

// EncodeFeedback serializes a haptic pulse pattern for transmission.
// Format:
//
//	Byte 0: Report ID (0x04)
//	Byte 1: Pulse count (max 8)
//	Per pulse: duration in ms (u16 LE)
//
// Patterns longer than the device limit are truncated; durations are
// clamped to the u16 range.
func EncodeFeedback(pattern []time.Duration) []byte {
	if len(pattern) > maxPulses {
		pattern = pattern[:maxPulses]
	}

	buf := make([]byte, 2+len(pattern)*2)
	buf[0] = ReportIDFeedback
	buf[1] = byte(len(pattern))
	for i, d := range pattern {
		ms := d.Milliseconds()
		if ms < 0 {
			ms = 0
		}
		if ms > 0xFFFF {
			ms = 0xFFFF
		}
		binary.LittleEndian.PutUint16(buf[2+i*2:], uint16(ms))
	}
	return buf
}
