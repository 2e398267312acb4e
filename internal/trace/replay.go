package trace

import (
	"context"
	"fmt"
	"sync"
	"time"

	"touchsense/internal/touch"
)

// Processor consumes replayed samples. *gesture.Recognizer satisfies it.
type Processor interface {
	Process(phase touch.Phase, points []touch.Point)
}

// Clock is a settable clock the replayer seeks to each sample's offset.
// Hand its Now to the recognizer so replayed durations and velocities
// match the recording instead of the replay host's speed.
type Clock struct {
	mu     sync.Mutex
	base   time.Time
	offset time.Duration
}

// NewClock starts a replay clock at the current wall time.
func NewClock() *Clock {
	return &Clock{base: time.Now()}
}

// Now returns the base time plus the current seek offset.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.base.Add(c.offset)
}

func (c *Clock) seek(d time.Duration) {
	c.mu.Lock()
	c.offset = d
	c.mu.Unlock()
}

// Options control replay pacing.
type Options struct {
	// Realtime paces samples by their recorded offsets, so wall-clock
	// timers (long press, double tap window) fire as they did live.
	Realtime bool

	// Speed scales realtime pacing; 2 plays twice as fast. Zero means 1.
	Speed float64

	// Settle is how long to wait after the last sample for held-back
	// events, such as a tap waiting out its double-tap window.
	Settle time.Duration
}

// Replayer feeds a trace into a processor.
type Replayer struct {
	proc  Processor
	clock *Clock
	opts  Options
}

// NewReplayer builds a replayer. The clock may be nil when the processor
// runs on the wall clock; pair a nil clock with Realtime pacing or the
// replayed durations collapse.
func NewReplayer(proc Processor, clock *Clock, opts Options) *Replayer {
	if opts.Speed <= 0 {
		opts.Speed = 1
	}
	return &Replayer{proc: proc, clock: clock, opts: opts}
}

// Run replays the trace from the first sample to the last. The context
// cancels between samples.
func (r *Replayer) Run(ctx context.Context, tr *Trace) error {
	if err := tr.Validate(); err != nil {
		return err
	}

	var prevMs int64
	for i, s := range tr.Samples {
		if r.opts.Realtime {
			wait := time.Duration(float64(s.AtMs-prevMs)/r.opts.Speed) * time.Millisecond
			if wait > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(wait):
				}
			}
		} else {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		prevMs = s.AtMs

		if r.clock != nil {
			r.clock.seek(time.Duration(s.AtMs) * time.Millisecond)
		}

		phase, err := touch.ParsePhase(s.Phase)
		if err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
		r.proc.Process(phase, s.Points())
	}

	if r.opts.Settle > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.opts.Settle):
		}
	}
	return nil
}
