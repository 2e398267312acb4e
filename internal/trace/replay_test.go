package trace

import (
	"context"
	"sync"
	"testing"
	"time"

	"touchsense/internal/config"
	"touchsense/internal/gesture"
	"touchsense/internal/touch"
)

// sampleSink records everything the replayer feeds it.
type sampleSink struct {
	mu      sync.Mutex
	phases  []touch.Phase
	touches [][]touch.Point
}

func (s *sampleSink) Process(phase touch.Phase, points []touch.Point) {
	s.mu.Lock()
	s.phases = append(s.phases, phase)
	s.touches = append(s.touches, points)
	s.mu.Unlock()
}

func TestReplayFeedsEverySample(t *testing.T) {
	tr, err := Parse([]byte(sampleTrace))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	sink := &sampleSink{}
	rp := NewReplayer(sink, NewClock(), Options{})
	if err := rp.Run(context.Background(), tr); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []touch.Phase{touch.PhaseStart, touch.PhaseMove, touch.PhaseEnd}
	if len(sink.phases) != len(want) {
		t.Fatalf("fed %d samples, want %d", len(sink.phases), len(want))
	}
	for i, p := range want {
		if sink.phases[i] != p {
			t.Errorf("sample %d phase = %v, want %v", i, sink.phases[i], p)
		}
	}
}

func TestReplayClockDrivesDurations(t *testing.T) {
	tr, err := Parse([]byte(sampleTrace))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	clock := NewClock()
	rec := gesture.New(config.Default(), gesture.WithClock(clock.Now))
	defer rec.Close()

	var mu sync.Mutex
	var events []gesture.Event
	for _, typ := range gesture.Types() {
		rec.On(typ, func(ev gesture.Event) {
			mu.Lock()
			events = append(events, ev)
			mu.Unlock()
		})
	}

	// 50px in 80ms is a swipe under the default profile, but only if the
	// recognizer sees the trace's own timeline.
	rp := NewReplayer(rec, clock, Options{})
	if err := rp.Run(context.Background(), tr); err != nil {
		t.Fatalf("Run: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(events) == 0 {
		t.Fatal("replay produced no gesture events")
	}
	if events[0].Type != gesture.TypeSwipe {
		t.Errorf("first event = %v, want swipe", events[0].Type)
	}
	if events[0].Data.Direction != gesture.DirectionRight {
		t.Errorf("direction = %v, want right", events[0].Data.Direction)
	}
}

func TestReplayRealtimePacing(t *testing.T) {
	tr := &Trace{Samples: []Sample{
		{AtMs: 0, Phase: "start", Contacts: []Contact{{ID: 0, X: 0, Y: 0}}},
		{AtMs: 60, Phase: "end"},
	}}

	sink := &sampleSink{}
	rp := NewReplayer(sink, nil, Options{Realtime: true})

	begin := time.Now()
	if err := rp.Run(context.Background(), tr); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if elapsed := time.Since(begin); elapsed < 50*time.Millisecond {
		t.Errorf("realtime replay of a 60ms trace finished in %v", elapsed)
	}
}

func TestReplayCancellation(t *testing.T) {
	tr := &Trace{Samples: []Sample{
		{AtMs: 0, Phase: "start", Contacts: []Contact{{ID: 0, X: 0, Y: 0}}},
		{AtMs: 5000, Phase: "end"},
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	sink := &sampleSink{}
	rp := NewReplayer(sink, nil, Options{Realtime: true})
	if err := rp.Run(ctx, tr); err == nil {
		t.Fatal("Run ignored context cancellation")
	}
}

func TestRecorderRoundTrip(t *testing.T) {
	rec := NewRecorder("captured", "default")

	base := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	now := base
	rec.SetNowFunc(func() time.Time { return now })

	rec.Process(touch.PhaseStart, []touch.Point{{ID: 0, X: 5, Y: 5}})
	now = base.Add(40 * time.Millisecond)
	rec.Process(touch.PhaseMove, []touch.Point{{ID: 0, X: 25, Y: 5, Pressure: 0.5, HasPressure: true}})
	now = base.Add(90 * time.Millisecond)
	rec.Process(touch.PhaseEnd, nil)

	tr := rec.Trace()
	if err := tr.Validate(); err != nil {
		t.Fatalf("recorded trace invalid: %v", err)
	}
	if tr.DurationMs() != 90 {
		t.Errorf("duration = %dms, want 90", tr.DurationMs())
	}
	if tr.Samples[1].AtMs != 40 {
		t.Errorf("sample 1 offset = %d, want 40", tr.Samples[1].AtMs)
	}
	if tr.Samples[1].Contacts[0].Pressure == nil {
		t.Error("recorder dropped the pressure field")
	}
}
