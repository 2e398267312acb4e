// Package haptic fires device vibration patterns keyed to gesture type
// and security tier. Side effect only, no classification state.
package haptic

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Intensity selects a vibration pattern.
type Intensity int

const (
	Light Intensity = iota
	Medium
	Heavy
	Success
	Warning
	Error
)

func (i Intensity) String() string {
	switch i {
	case Light:
		return "light"
	case Medium:
		return "medium"
	case Heavy:
		return "heavy"
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", int(i))
	}
}

// Pattern returns the on/off vibration segments for the intensity.
func (i Intensity) Pattern() []time.Duration {
	ms := time.Millisecond
	switch i {
	case Light:
		return []time.Duration{10 * ms}
	case Medium:
		return []time.Duration{25 * ms}
	case Heavy:
		return []time.Duration{50 * ms}
	case Success:
		return []time.Duration{15 * ms, 30 * ms, 15 * ms}
	case Warning:
		return []time.Duration{30 * ms, 40 * ms, 30 * ms}
	case Error:
		return []time.Duration{50 * ms, 50 * ms, 50 * ms, 50 * ms, 50 * ms}
	default:
		return nil
	}
}

// Sink delivers a vibration pattern to the device.
type Sink interface {
	Vibrate(pattern []time.Duration) error
}

// NopSink discards patterns; used when the device has no actuator.
type NopSink struct{}

func (NopSink) Vibrate([]time.Duration) error { return nil }

// minTriggerInterval prevents redundant buzzing during rapid move events.
const minTriggerInterval = 50 * time.Millisecond

// Dispatcher rate-limits and forwards haptic triggers to a sink. Construct
// one per recognizer wiring; there is deliberately no package-level instance.
type Dispatcher struct {
	sink Sink

	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

// NewDispatcher creates a dispatcher. A nil sink is treated as NopSink.
func NewDispatcher(sink Sink) *Dispatcher {
	if sink == nil {
		sink = NopSink{}
	}
	return &Dispatcher{sink: sink, now: time.Now}
}

// SetNowFunc overrides the clock used for rate limiting.
func (d *Dispatcher) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		d.now = fn
	}
}

// Trigger fires the pattern for the intensity, unless a trigger already
// fired within the minimum interval. Reports whether the pattern was sent.
func (d *Dispatcher) Trigger(i Intensity) bool {
	d.mu.Lock()
	now := d.now()
	if !d.last.IsZero() && now.Sub(d.last) < minTriggerInterval {
		d.mu.Unlock()
		return false
	}
	d.last = now
	d.mu.Unlock()

	if err := d.sink.Vibrate(i.Pattern()); err != nil {
		log.Printf("haptic: %s trigger failed: %v", i, err)
		return false
	}
	return true
}
