// Package velocity computes instantaneous 2D velocity over a short
// rolling window of touch samples.
package velocity

import "math"

// maxSamples bounds the rolling window. A short window avoids lag while
// damping single-sample jitter.
const maxSamples = 8

type sample struct {
	x, y float64
	t    int64 // milliseconds
}

// Tracker keeps a bounded buffer of recent positions per gesture session.
// The zero value is ready to use.
type Tracker struct {
	samples []sample
}

// Add appends a position sample taken at the given timestamp.
func (tr *Tracker) Add(x, y float64, timestampMs int64) {
	if len(tr.samples) == maxSamples {
		copy(tr.samples, tr.samples[1:])
		tr.samples = tr.samples[:maxSamples-1]
	}
	tr.samples = append(tr.samples, sample{x: x, y: y, t: timestampMs})
}

// Velocity returns the velocity in px/ms over the retained window, or
// zero if fewer than 2 samples were recorded or no time elapsed.
func (tr *Tracker) Velocity() (vx, vy float64) {
	if len(tr.samples) < 2 {
		return 0, 0
	}
	first := tr.samples[0]
	last := tr.samples[len(tr.samples)-1]
	dt := float64(last.t - first.t)
	if dt <= 0 {
		return 0, 0
	}
	return (last.x - first.x) / dt, (last.y - first.y) / dt
}

// Speed returns the magnitude of the current velocity in px/ms.
func (tr *Tracker) Speed() float64 {
	vx, vy := tr.Velocity()
	return math.Sqrt(vx*vx + vy*vy)
}

// Reset discards all samples. Called on session end.
func (tr *Tracker) Reset() {
	tr.samples = tr.samples[:0]
}
