// Package gesture turns streams of normalized touch points into discrete,
// mutually-exclusive gesture events.
//
// A Recognizer owns one active gesture session at a time, re-evaluates the
// classification on every move sample until the session commits to a type,
// and emits transition events to typed subscribers. The classification
// precedence is fixed: force press, pinch, rotate, shake, swipe, pan,
// long press, tap, double tap. The first matching type wins and the
// conflict resolver suppresses every other type for the session.
package gesture

import (
	"log"
	"math"
	"sync"
	"time"

	"touchsense/internal/config"
	"touchsense/internal/force"
	"touchsense/internal/geom"
	"touchsense/internal/haptic"
	"touchsense/internal/touch"
)

// Unsubscribe removes a listener. Calling it more than once is a no-op.
type Unsubscribe func()

// MomentumFunc receives per-frame decayed deltas after a pan or swipe
// ends with momentum enabled. It is called from a dedicated goroutine.
type MomentumFunc func(dx, dy float64)

// pendingTap holds a provisional single tap back for the double-tap
// window. If a second qualifying tap lands inside the window the held
// event is discarded, never sent.
type pendingTap struct {
	event Event
	point touch.Point
	timer *time.Timer
}

// Recognizer classifies touch input into gesture events.
type Recognizer struct {
	mu       sync.Mutex
	profile  config.Profile
	resolver *Resolver
	force    *force.Detector
	haptics  *haptic.Dispatcher
	now      func() time.Time

	sess    *session
	pending *pendingTap

	listeners  map[Type]map[int]func(Event)
	nextHandle int

	onMomentum MomentumFunc
	momentum   *momentumRun

	closed bool
}

// Option configures a Recognizer.
type Option func(*Recognizer)

// WithResolver supplies a shared conflict resolver.
func WithResolver(res *Resolver) Option {
	return func(r *Recognizer) { r.resolver = res }
}

// WithForceDetector enables the force-press branch of classification.
func WithForceDetector(d *force.Detector) Option {
	return func(r *Recognizer) { r.force = d }
}

// WithHaptics lets the recognizer fire feedback at long-press and
// force-press commitment. All other haptics are the consumer's business.
func WithHaptics(d *haptic.Dispatcher) Option {
	return func(r *Recognizer) { r.haptics = d }
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(r *Recognizer) {
		if now != nil {
			r.now = now
		}
	}
}

// WithMomentumConsumer registers the decay-loop consumer for pan/swipe
// momentum.
func WithMomentumConsumer(fn MomentumFunc) Option {
	return func(r *Recognizer) { r.onMomentum = fn }
}

// New creates a recognizer for the given threshold profile.
func New(profile config.Profile, opts ...Option) *Recognizer {
	r := &Recognizer{
		profile:   profile,
		now:       time.Now,
		listeners: make(map[Type]map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.resolver == nil {
		r.resolver = NewResolver()
	}
	return r
}

// On subscribes a listener for a gesture type. Multiple listeners per
// type are permitted; the returned Unsubscribe is idempotent.
func (r *Recognizer) On(t Type, fn func(Event)) Unsubscribe {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || fn == nil {
		return func() {}
	}
	if r.listeners[t] == nil {
		r.listeners[t] = make(map[int]func(Event))
	}
	handle := r.nextHandle
	r.nextHandle++
	r.listeners[t][handle] = fn

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if m := r.listeners[t]; m != nil {
			delete(m, handle)
		}
	}
}

// SetProfile swaps the threshold profile. The new thresholds apply from
// the next sample; an in-flight session keeps its committed type.
func (r *Recognizer) SetProfile(p config.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profile = p
}

// Profile returns the active threshold profile.
func (r *Recognizer) Profile() config.Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.profile
}

// Process routes a normalized sample to the matching handler.
func (r *Recognizer) Process(phase touch.Phase, points []touch.Point) {
	switch phase {
	case touch.PhaseStart:
		r.TouchStart(points)
	case touch.PhaseMove:
		r.TouchMove(points)
	case touch.PhaseEnd:
		r.TouchEnd(points)
	case touch.PhaseCancel:
		r.Cancel()
	}
}

// TouchStart begins a session, or records a touch count increase when a
// session is already live. Empty input is ignored.
func (r *Recognizer) TouchStart(points []touch.Point) {
	if len(points) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	// A new contact always interrupts momentum from the previous gesture.
	r.stopMomentumLocked()

	if r.sess != nil {
		r.sess.setTouchCount(points)
		return
	}

	s := newSession(points, r.now())
	r.sess = s

	delay := time.Duration(r.profile.LongPress.DelayMs) * time.Millisecond
	sid := s.id
	s.longPress = time.AfterFunc(delay, func() { r.longPressFired(sid) })
}

// TouchMove applies a move sample: derived quantities are refreshed, the
// classification is re-evaluated until the session commits, and committed
// continuous gestures emit move-phase updates.
func (r *Recognizer) TouchMove(points []touch.Point) {
	if len(points) == 0 {
		return
	}

	r.mu.Lock()
	if r.closed || r.sess == nil {
		r.mu.Unlock()
		return
	}

	s := r.sess
	s.update(points, r.now())

	var out []Event
	if !s.committed {
		out = r.classifyLocked(s)
	} else if isContinuous(s.gtype) {
		out = append(out, r.buildEventLocked(s, s.gtype, PhaseMove))
	}
	r.mu.Unlock()

	r.dispatch(out)
}

// TouchEnd finalizes the session when the last contact lifts. A non-empty
// argument lists the contacts still down and is treated as a touch count
// decrease; the session continues.
func (r *Recognizer) TouchEnd(remaining []touch.Point) {
	r.mu.Lock()
	if r.closed || r.sess == nil {
		r.mu.Unlock()
		return
	}

	s := r.sess
	if len(remaining) > 0 {
		s.setTouchCount(remaining)
		r.mu.Unlock()
		return
	}

	s.stopTimers()
	duration := r.now().Sub(s.startTime)

	var out []Event
	if s.committed {
		out = append(out, r.buildEventLocked(s, s.gtype, PhaseEnd))
	} else {
		out = r.finishUncommittedLocked(s, duration)
	}
	if s.committed && (s.gtype == TypePan || s.gtype == TypeSwipe) {
		vx, vy := s.tracker.Velocity()
		r.startMomentumLocked(vx, vy)
	}

	r.resolver.Reset(s.id)
	s.tracker.Reset()
	r.sess = nil
	r.mu.Unlock()

	r.dispatch(out)
}

// Cancel force-ends the session without a terminal event: all session
// timers are cleared and the resolver entry is freed.
func (r *Recognizer) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopMomentumLocked()
	if r.sess == nil {
		return
	}
	r.sess.stopTimers()
	r.resolver.Reset(r.sess.id)
	r.sess = nil
}

// Close releases every timer, the momentum loop and all subscriptions.
// Safe to call multiple times.
func (r *Recognizer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true

	if r.sess != nil {
		r.sess.stopTimers()
		r.resolver.Reset(r.sess.id)
		r.sess = nil
	}
	if r.pending != nil {
		r.pending.timer.Stop()
		r.pending = nil
	}
	r.stopMomentumLocked()
	r.listeners = make(map[Type]map[int]func(Event))
}

// classifyLocked evaluates the precedence order against the current
// sample. At most one commit happens per session; the resolver enforces
// it even against a racing timer callback.
func (r *Recognizer) classifyLocked(s *session) []Event {
	p := r.profile
	now := r.now()
	duration := now.Sub(s.startTime)

	// Shake reversal tracking advances on every single-touch sample so
	// the window is measured over the whole interaction.
	var reversals int
	if s.touchCount == 1 {
		x, _ := geom.Centroid(s.currentPoints)
		reversals = s.trackShake(x, now.UnixMilli(), p.Shake.MinAmplitudePx, p.Shake.WindowMs)
	}

	switch {
	case r.force != nil && r.force.Supported() && s.maxPressure() >= p.Force.Threshold:
		return r.commitLocked(s, TypeForcePress)

	case s.touchCount >= 2 && math.Abs(s.scale()-1) > p.Pinch.ScaleThreshold:
		return r.commitLocked(s, TypePinch)

	case s.touchCount >= 2 && math.Abs(s.rotation()) > p.Rotate.AngleThresholdDeg:
		return r.commitLocked(s, TypeRotate)

	case s.touchCount == 1 && reversals >= p.Shake.MinReversals:
		return r.commitLocked(s, TypeShake)

	case s.touchCount == 1 && s.travel() >= p.Swipe.MinDistancePx &&
		(s.tracker.Speed() >= p.Swipe.MinVelocity ||
			duration <= time.Duration(p.Swipe.MaxDurationMs)*time.Millisecond):
		return r.commitLocked(s, TypeSwipe)

	// Pan waits until a swipe is no longer attainable: committing at the
	// first tolerance crossing would lock out every faster gesture.
	case s.touchCount == 1 && s.travel() >= p.Tap.MovementTolerancePx &&
		duration > time.Duration(p.Swipe.MaxDurationMs)*time.Millisecond &&
		s.tracker.Speed() < p.Swipe.MinVelocity:
		return r.commitLocked(s, TypePan)
	}

	return nil
}

// commitLocked marks the session's type through the resolver and builds
// the start-phase event. Long-press and force-press commitment may fire
// haptic feedback directly as UX confirmation.
func (r *Recognizer) commitLocked(s *session, t Type) []Event {
	if !r.resolver.TryCommit(s.id, t) {
		return nil
	}
	s.committed = true
	s.gtype = t

	if r.haptics != nil && (t == TypeLongPress || t == TypeForcePress) {
		r.haptics.Trigger(haptic.Heavy)
	}
	return []Event{r.buildEventLocked(s, t, PhaseStart)}
}

// finishUncommittedLocked handles contact-end for a session that never
// committed during moves: a final swipe/pan pass over the whole
// interaction, then the tap / double-tap decision.
func (r *Recognizer) finishUncommittedLocked(s *session, duration time.Duration) []Event {
	p := r.profile

	// Movement that ended while a swipe was still attainable gets its
	// final classification here, so non-trivial interactions never end
	// without a committed type.
	if s.touchCount == 1 && s.travel() >= p.Swipe.MinDistancePx &&
		(s.tracker.Speed() >= p.Swipe.MinVelocity ||
			duration <= time.Duration(p.Swipe.MaxDurationMs)*time.Millisecond) {
		if !r.resolver.TryCommit(s.id, TypeSwipe) {
			return nil
		}
		s.committed = true
		s.gtype = TypeSwipe
		return []Event{r.buildEventLocked(s, TypeSwipe, PhaseEnd)}
	}
	if s.touchCount == 1 && s.maxTravel > p.Tap.MovementTolerancePx {
		if !r.resolver.TryCommit(s.id, TypePan) {
			return nil
		}
		s.committed = true
		s.gtype = TypePan
		return []Event{r.buildEventLocked(s, TypePan, PhaseEnd)}
	}

	if duration > time.Duration(p.Tap.MaxDurationMs)*time.Millisecond ||
		s.maxTravel > p.Tap.MovementTolerancePx {
		// Held still past the tap window without long-press firing:
		// ends unclassified.
		return nil
	}

	cx, cy := geom.Centroid(s.currentPoints)
	endPt := touch.Point{X: cx, Y: cy, TimestampMs: r.now().UnixMilli()}

	// A live pending tap means we are inside the double-tap time window:
	// the window timer clears it at expiry.
	if pt := r.pending; pt != nil && geom.Distance(endPt, pt.point) <= p.DoubleTap.DistancePx {
		pt.timer.Stop()
		r.pending = nil
		if !r.resolver.TryCommit(s.id, TypeDoubleTap) {
			return nil
		}
		s.committed = true
		s.gtype = TypeDoubleTap
		// The held single tap is superseded: collapsed, never sent.
		return []Event{r.buildEventLocked(s, TypeDoubleTap, PhaseEnd)}
	}

	if !r.resolver.TryCommit(s.id, TypeTap) {
		return nil
	}
	s.committed = true
	s.gtype = TypeTap

	// A pending tap too far away to pair up is flushed now: holding two
	// provisional taps would let one vanish.
	var out []Event
	if pt := r.pending; pt != nil {
		pt.timer.Stop()
		out = append(out, pt.event)
		r.pending = nil
	}

	held := &pendingTap{
		event: r.buildEventLocked(s, TypeTap, PhaseEnd),
		point: endPt,
	}
	timeout := time.Duration(p.DoubleTap.TimeoutMs) * time.Millisecond
	held.timer = time.AfterFunc(timeout, func() { r.tapWindowExpired(held) })
	r.pending = held
	return out
}

// tapWindowExpired releases a held single tap after the double-tap
// window passes without a second tap.
func (r *Recognizer) tapWindowExpired(held *pendingTap) {
	r.mu.Lock()
	if r.closed || r.pending != held {
		r.mu.Unlock()
		return
	}
	r.pending = nil
	ev := held.event
	r.mu.Unlock()

	r.dispatch([]Event{ev})
}

// longPressFired runs at long-press delay expiry. It classifies only if
// the session is still the same one, uncommitted, single-touch, and its
// travel never exceeded the movement tolerance.
func (r *Recognizer) longPressFired(sessionID string) {
	r.mu.Lock()
	s := r.sess
	if r.closed || s == nil || s.id != sessionID || s.committed ||
		s.touchCount != 1 || s.maxTravel > r.profile.Tap.MovementTolerancePx {
		r.mu.Unlock()
		return
	}
	out := r.commitLocked(s, TypeLongPress)
	r.mu.Unlock()

	r.dispatch(out)
}

// buildEventLocked snapshots the session into an immutable event and
// applies the profile's security tags.
func (r *Recognizer) buildEventLocked(s *session, t Type, phase Phase) Event {
	now := r.now()
	dx, dy := s.delta()
	vx, vy := s.tracker.Velocity()

	var data Data
	switch t {
	case TypeSwipe, TypePan:
		data.Direction = DirectionOf(dx, dy)
		data.Distance = s.travel()
		data.VelocityX = vx
		data.VelocityY = vy
	case TypePinch:
		data.Scale = s.lastScale
	case TypeRotate:
		data.Rotation = s.lastRotation
	case TypeForcePress:
		data.Force = s.peakPressure
	case TypeShake:
		data.Distance = s.travel()
	case TypeTap:
		data.TapCount = 1
	case TypeDoubleTap:
		data.TapCount = 2
	}

	ev := Event{
		Type:      t,
		Phase:     phase,
		SessionID: s.id,
		Touches:   snapshotPoints(s.currentPoints),
		StartTime: s.startTime,
		EndTime:   now,
		Duration:  now.Sub(s.startTime),
		Data:      data,
	}

	name := t.String()
	for _, n := range r.profile.Security.Sensitive {
		if n == name {
			ev.Sensitive = true
		}
	}
	for _, n := range r.profile.Security.RequireConfirmation {
		if n == name {
			ev.RequiresConfirmation = true
		}
	}
	return ev
}

// dispatch delivers events outside the recognizer lock, in emission
// order. A panicking listener is contained and logged; the remaining
// listeners still run.
func (r *Recognizer) dispatch(events []Event) {
	for _, ev := range events {
		r.mu.Lock()
		fns := make([]func(Event), 0, len(r.listeners[ev.Type]))
		for _, fn := range r.listeners[ev.Type] {
			fns = append(fns, fn)
		}
		r.mu.Unlock()

		for _, fn := range fns {
			callListener(fn, ev)
		}
	}
}

func callListener(fn func(Event), ev Event) {
	defer func() {
		if p := recover(); p != nil {
			log.Printf("gesture: %s listener panicked: %v", ev.Type, p)
		}
	}()
	fn(ev)
}

// isContinuous reports whether a committed gesture keeps emitting
// move-phase updates while contacts stay down.
func isContinuous(t Type) bool {
	return t == TypePan || t == TypePinch || t == TypeRotate
}
