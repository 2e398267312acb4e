package trace

import (
	"sync"
	"time"

	"touchsense/internal/touch"
)

// Recorder captures live samples into a trace. The first sample anchors
// the time origin, so recorded offsets start at zero regardless of when
// recording was armed.
type Recorder struct {
	mu    sync.Mutex
	now   func() time.Time
	start time.Time
	tr    Trace
}

// NewRecorder creates an empty recorder.
func NewRecorder(name, profile string) *Recorder {
	return &Recorder{
		now: time.Now,
		tr:  Trace{Name: name, Profile: profile},
	}
}

// SetNowFunc overrides the clock, for tests.
func (r *Recorder) SetNowFunc(fn func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fn != nil {
		r.now = fn
	}
}

// Process appends a sample. Recorder satisfies Processor, so it can tee
// the same input stream the recognizer sees.
func (r *Recorder) Process(phase touch.Phase, points []touch.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if len(r.tr.Samples) == 0 {
		r.start = now
	}

	s := Sample{
		AtMs:  now.Sub(r.start).Milliseconds(),
		Phase: phase.String(),
	}
	for _, p := range points {
		c := Contact{ID: p.ID, X: p.X, Y: p.Y}
		if p.HasPressure {
			pressure := p.Pressure
			c.Pressure = &pressure
		}
		s.Contacts = append(s.Contacts, c)
	}
	r.tr.Samples = append(r.tr.Samples, s)
}

// Len reports the number of captured samples.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tr.Samples)
}

// Trace returns a copy of the captured trace.
func (r *Recorder) Trace() *Trace {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Trace{Name: r.tr.Name, Profile: r.tr.Profile}
	out.Samples = make([]Sample, len(r.tr.Samples))
	copy(out.Samples, r.tr.Samples)
	return &out
}
