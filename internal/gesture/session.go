package gesture

import (
	"time"

	"github.com/google/uuid"

	"touchsense/internal/geom"
	"touchsense/internal/touch"
	"touchsense/internal/velocity"
)

// session is the live state for one continuous interaction, from first
// contact to last contact lifting. The session owns its long-press timer
// so cleanup is structural: ending the session stops the timer.
type session struct {
	id            string
	startTime     time.Time
	startPoints   []touch.Point
	currentPoints []touch.Point
	touchCount    int

	// Baselines for pinch/rotate, captured whenever the session has two
	// or more contacts.
	initialDistance float64
	initialAngle    float64

	// Latched readings. Contacts lift one at a time, so by the time the
	// last one goes up the live geometry no longer describes the gesture;
	// end events report these instead.
	lastScale    float64
	lastRotation float64
	peakPressure float64

	// committed and gtype mirror the resolver's decision for fast access
	// on the sampling path.
	committed bool
	gtype     Type

	// maxTravel is the farthest the centroid has strayed from the start
	// centroid; long-press and tap require it to stay within tolerance
	// for the whole interaction.
	maxTravel float64

	startX, startY float64
	lastX, lastY   float64

	tracker   velocity.Tracker
	longPress *time.Timer

	shake shakeState
}

// shakeState counts direction reversals along the X axis. A reversal is
// recorded when the contact swings back by at least the configured
// amplitude from the most recent extreme.
type shakeState struct {
	dir     int // -1, 0, +1
	anchorX float64
	times   []int64 // reversal timestamps, ms
}

func newSession(points []touch.Point, now time.Time) *session {
	s := &session{
		id:            uuid.NewString(),
		startTime:     now,
		startPoints:   snapshotPoints(points),
		currentPoints: snapshotPoints(points),
		touchCount:    len(points),
		lastScale:     1,
		peakPressure:  -1,
	}
	s.startX, s.startY = geom.Centroid(points)
	s.lastX, s.lastY = s.startX, s.startY
	s.shake.anchorX = s.startX
	s.captureBaselines()
	s.latchPressure()
	s.tracker.Add(s.startX, s.startY, now.UnixMilli())
	return s
}

// captureBaselines records the pairwise distance and angle of the first
// two contacts as the pinch/rotate reference. Re-invoked on touch count
// transitions so scale and rotation restart from the new geometry.
func (s *session) captureBaselines() {
	if len(s.currentPoints) < 2 {
		s.initialDistance = 0
		s.initialAngle = 0
		return
	}
	s.initialDistance = geom.Distance(s.currentPoints[0], s.currentPoints[1])
	s.initialAngle = geom.AngleDegrees(s.currentPoints[0], s.currentPoints[1])
}

// update applies a move sample and refreshes the derived quantities.
func (s *session) update(points []touch.Point, now time.Time) {
	s.currentPoints = snapshotPoints(points)
	x, y := geom.Centroid(points)
	s.tracker.Add(x, y, now.UnixMilli())

	if len(s.currentPoints) >= 2 && s.initialDistance > 0 {
		s.lastScale = s.scale()
		s.lastRotation = s.rotation()
	}
	s.latchPressure()

	if d := s.travel(); d > s.maxTravel {
		s.maxTravel = d
	}
	s.lastX, s.lastY = x, y
}

// latchPressure keeps peakPressure at the highest reading seen so far.
func (s *session) latchPressure() {
	if p := s.maxPressure(); p > s.peakPressure {
		s.peakPressure = p
	}
}

// setTouchCount handles contacts being added or removed mid-session.
// This is a count transition, not data corruption: the id set is allowed
// to change here and only here.
func (s *session) setTouchCount(points []touch.Point) {
	s.currentPoints = snapshotPoints(points)
	s.touchCount = len(points)
	s.captureBaselines()
	s.latchPressure()
}

// travel is the distance from the start centroid to the current centroid.
func (s *session) travel() float64 {
	x, y := geom.Centroid(s.currentPoints)
	dx := x - s.startX
	dy := y - s.startY
	return geom.Distance(touch.Point{}, touch.Point{X: dx, Y: dy})
}

// delta is the displacement from the start centroid.
func (s *session) delta() (dx, dy float64) {
	x, y := geom.Centroid(s.currentPoints)
	return x - s.startX, y - s.startY
}

// scale returns currentPairDistance/initialPairDistance for multi-touch
// sessions. A zero-distance baseline is guarded and reads as scale 1.
func (s *session) scale() float64 {
	if len(s.currentPoints) < 2 || s.initialDistance == 0 {
		return 1
	}
	return geom.Distance(s.currentPoints[0], s.currentPoints[1]) / s.initialDistance
}

// rotation returns the angle delta in degrees from the initial pair
// angle, normalized to (-180, 180].
func (s *session) rotation() float64 {
	if len(s.currentPoints) < 2 {
		return 0
	}
	current := geom.AngleDegrees(s.currentPoints[0], s.currentPoints[1])
	return geom.NormalizeAngle(current - s.initialAngle)
}

// maxPressure returns the highest normalized pressure among current
// contacts, or -1 when none report pressure.
func (s *session) maxPressure() float64 {
	max := -1.0
	for _, p := range s.currentPoints {
		if p.HasPressure && p.Pressure > max {
			max = p.Pressure
		}
	}
	return max
}

// trackShake feeds the centroid X position into the reversal counter and
// returns the number of reversals inside the window.
func (s *session) trackShake(x float64, nowMs int64, amplitude float64, windowMs int) int {
	st := &s.shake
	switch st.dir {
	case 0:
		if x-st.anchorX >= amplitude {
			st.dir = 1
			st.anchorX = x
		} else if st.anchorX-x >= amplitude {
			st.dir = -1
			st.anchorX = x
		}
	case 1:
		if x > st.anchorX {
			st.anchorX = x
		} else if st.anchorX-x >= amplitude {
			st.dir = -1
			st.anchorX = x
			st.times = append(st.times, nowMs)
		}
	case -1:
		if x < st.anchorX {
			st.anchorX = x
		} else if x-st.anchorX >= amplitude {
			st.dir = 1
			st.anchorX = x
			st.times = append(st.times, nowMs)
		}
	}

	// Drop reversals that fell out of the window.
	cutoff := nowMs - int64(windowMs)
	keep := st.times[:0]
	for _, t := range st.times {
		if t >= cutoff {
			keep = append(keep, t)
		}
	}
	st.times = keep
	return len(st.times)
}

// stopTimers cancels the session's pending timers. Always called on
// session end, cancel and recognizer close.
func (s *session) stopTimers() {
	if s.longPress != nil {
		s.longPress.Stop()
		s.longPress = nil
	}
}

func snapshotPoints(points []touch.Point) []touch.Point {
	out := make([]touch.Point, len(points))
	copy(out, points)
	return out
}
