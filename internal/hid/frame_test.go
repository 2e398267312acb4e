package hid

import (
	"testing"

	"touchsense/internal/touch"
)

func report(ids ...int) *TouchReport {
	rep := &TouchReport{}
	for _, id := range ids {
		rep.Contacts = append(rep.Contacts, touch.Contact{ID: id, X: float64(id * 10)})
	}
	return rep
}

func TestFrameTrackerLifecycle(t *testing.T) {
	ft := NewFrameTracker()

	tests := []struct {
		name string
		rep  *TouchReport
		want touch.Phase
	}{
		{"first contact", report(0), touch.PhaseStart},
		{"held still", report(0), touch.PhaseMove},
		{"second finger lands", report(0, 1), touch.PhaseStart},
		{"both move", report(0, 1), touch.PhaseMove},
		{"first finger lifts", report(1), touch.PhaseEnd},
		{"remaining moves", report(1), touch.PhaseMove},
		{"all lifted", report(), touch.PhaseEnd},
	}
	for _, tt := range tests {
		sample := ft.Track(tt.rep)
		if sample.Phase != tt.want {
			t.Errorf("%s: phase = %v, want %v", tt.name, sample.Phase, tt.want)
		}
		if len(sample.Contacts) != len(tt.rep.Contacts) {
			t.Errorf("%s: %d contacts carried, want %d",
				tt.name, len(sample.Contacts), len(tt.rep.Contacts))
		}
	}
}

func TestFrameTrackerPartialLiftCarriesRemaining(t *testing.T) {
	ft := NewFrameTracker()
	ft.Track(report(0, 1, 2))

	sample := ft.Track(report(0, 2))
	if sample.Phase != touch.PhaseEnd {
		t.Fatalf("phase = %v, want end", sample.Phase)
	}
	if len(sample.Contacts) != 2 {
		t.Fatalf("end sample carries %d contacts, want the 2 remaining", len(sample.Contacts))
	}
}

func TestFrameTrackerReset(t *testing.T) {
	ft := NewFrameTracker()
	ft.Track(report(0))
	ft.Reset()

	sample := ft.Track(report(0))
	if sample.Phase != touch.PhaseStart {
		t.Fatalf("phase after reset = %v, want start", sample.Phase)
	}
}

func TestFrameTrackerEmptyFrames(t *testing.T) {
	ft := NewFrameTracker()

	sample := ft.Track(report())
	if sample.Phase != touch.PhaseEnd {
		t.Fatalf("empty-after-empty phase = %v, want end", sample.Phase)
	}
	if len(sample.Contacts) != 0 {
		t.Fatalf("empty frame carried %d contacts", len(sample.Contacts))
	}
}
