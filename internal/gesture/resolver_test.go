package gesture

import (
	"sync"
	"testing"
)

func TestResolverSingleCommit(t *testing.T) {
	res := NewResolver()

	if !res.TryCommit("s1", TypeSwipe) {
		t.Fatal("first TryCommit returned false")
	}
	if res.TryCommit("s1", TypeSwipe) {
		t.Error("second TryCommit for the same type returned true")
	}
	if res.TryCommit("s1", TypePan) {
		t.Error("TryCommit for a different type returned true")
	}

	got, ok := res.Committed("s1")
	if !ok || got != TypeSwipe {
		t.Errorf("Committed = %v, %v; want swipe, true", got, ok)
	}
}

func TestResolverIndependentSessions(t *testing.T) {
	res := NewResolver()

	if !res.TryCommit("a", TypeTap) {
		t.Fatal("commit for session a failed")
	}
	if !res.TryCommit("b", TypePinch) {
		t.Fatal("commit for session b failed")
	}
	if res.Len() != 2 {
		t.Errorf("Len = %d, want 2", res.Len())
	}

	res.Reset("a")
	if _, ok := res.Committed("a"); ok {
		t.Error("session a still committed after Reset")
	}
	if _, ok := res.Committed("b"); !ok {
		t.Error("Reset(a) cleared session b")
	}
}

func TestResolverConcurrentCommits(t *testing.T) {
	res := NewResolver()

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0

	for _, typ := range Types() {
		wg.Add(1)
		go func(typ Type) {
			defer wg.Done()
			if res.TryCommit("race", typ) {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(typ)
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("%d concurrent commits won, want exactly 1", wins)
	}
}
