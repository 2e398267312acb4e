package hid

import (
	"touchsense/internal/touch"
)

// FrameTracker derives interaction phase edges from consecutive touch
// reports. Digitizers report absolute contact sets per frame; the
// recognizer wants start/move/end transitions, so the tracker diffs the
// contact ID set against the previous frame.
type FrameTracker struct {
	prev map[int]struct{}
}

// NewFrameTracker returns a tracker with an empty previous frame.
func NewFrameTracker() *FrameTracker {
	return &FrameTracker{prev: make(map[int]struct{})}
}

// Track classifies a report against the previous frame and returns the
// sample to feed downstream. The phase rules, in order:
//
//   - no previous contacts, some now: start
//   - previous contacts, none now: end (no remaining contacts)
//   - a new contact ID appeared: start (touch count increase)
//   - a contact ID disappeared: end carrying the remaining contacts
//   - same ID set: move
func (ft *FrameTracker) Track(rep *TouchReport) touch.Sample {
	cur := make(map[int]struct{}, len(rep.Contacts))
	for _, c := range rep.Contacts {
		cur[c.ID] = struct{}{}
	}

	phase := ft.classify(cur)
	ft.prev = cur

	return touch.Sample{Phase: phase, Contacts: rep.Contacts}
}

// Reset forgets the previous frame, so the next report classifies as if
// it were the first. Used after a device reconnect.
func (ft *FrameTracker) Reset() {
	ft.prev = make(map[int]struct{})
}

func (ft *FrameTracker) classify(cur map[int]struct{}) touch.Phase {
	switch {
	case len(ft.prev) == 0 && len(cur) > 0:
		return touch.PhaseStart
	case len(cur) == 0 && len(ft.prev) > 0:
		return touch.PhaseEnd
	case len(cur) == 0:
		// Empty frame after an empty frame: nothing happened, but the
		// report is still well formed. Treat as a harmless end.
		return touch.PhaseEnd
	}

	for id := range cur {
		if _, ok := ft.prev[id]; !ok {
			return touch.PhaseStart
		}
	}
	for id := range ft.prev {
		if _, ok := cur[id]; !ok {
			return touch.PhaseEnd
		}
	}
	return touch.PhaseMove
}
