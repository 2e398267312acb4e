package gesture

import (
	"math"
	"sync"
	"time"
)

// momentumFrame is the decay tick interval, roughly one display frame.
const momentumFrame = 16 * time.Millisecond

// momentumRun is one cancelable decay loop. Cancel may race with the
// loop's own natural stop, so it is idempotent.
type momentumRun struct {
	stop chan struct{}
	once sync.Once
}

func (m *momentumRun) cancel() {
	m.once.Do(func() { close(m.stop) })
}

// startMomentumLocked hands the final session velocity to a decaying
// per-frame loop. Each tick applies exponential decay and reports the
// frame delta to the consumer until the magnitude drops below the
// profile's stop threshold. Held under r.mu.
func (r *Recognizer) startMomentumLocked(vx, vy float64) {
	if r.onMomentum == nil || !r.profile.Momentum.Enabled {
		return
	}

	decay := r.profile.Momentum.DecayRate
	stopAt := r.profile.Momentum.StopThreshold
	if math.Hypot(vx, vy) < stopAt {
		return
	}

	r.stopMomentumLocked()
	run := &momentumRun{stop: make(chan struct{})}
	r.momentum = run
	consumer := r.onMomentum

	go func() {
		ticker := time.NewTicker(momentumFrame)
		defer ticker.Stop()

		dtMs := float64(momentumFrame.Milliseconds())
		factor := math.Exp(-decay * dtMs)
		for {
			select {
			case <-run.stop:
				return
			case <-ticker.C:
				vx *= factor
				vy *= factor
				if math.Hypot(vx, vy) < stopAt {
					return
				}
				consumer(vx*dtMs, vy*dtMs)
			}
		}
	}()
}

// stopMomentumLocked cancels any in-flight decay loop. Held under r.mu.
func (r *Recognizer) stopMomentumLocked() {
	if r.momentum != nil {
		r.momentum.cancel()
		r.momentum = nil
	}
}
