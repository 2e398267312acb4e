// Package force feature-detects and normalizes pressure-capable input.
// No classification logic lives here; the classifier's force branch
// consumes the normalized signal.
package force

import "sync"

// Detector probes once for pressure support and normalizes raw pressure
// readings into [0, 1].
type Detector struct {
	probe     func() bool
	once      sync.Once
	supported bool
}

// NewDetector creates a detector using the given capability probe. A nil
// probe reports no pressure support, so force gestures never classify.
func NewDetector(probe func() bool) *Detector {
	if probe == nil {
		probe = func() bool { return false }
	}
	return &Detector{probe: probe}
}

// Supported reports whether the input source delivers pressure. The probe
// runs once and the result is treated as a permanent capability flag.
func (d *Detector) Supported() bool {
	d.once.Do(func() { d.supported = d.probe() })
	return d.supported
}

// Normalize maps a raw pressure reading to [0, 1]. Readings already in
// unit range pass through clamped; larger readings are scaled by the
// source's full-scale payload value (e.g. 255 for single-byte HID
// pressure fields).
func Normalize(raw, fullScale float64) float64 {
	if raw <= 0 {
		return 0
	}
	if fullScale > 1 {
		raw /= fullScale
	}
	if raw > 1 {
		return 1
	}
	return raw
}

// Normalize on a Detector is a convenience for callers already holding
// the capability probe.
func (d *Detector) Normalize(raw, fullScale float64) float64 {
	return Normalize(raw, fullScale)
}
