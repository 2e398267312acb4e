package touch

import (
	"testing"
	"time"
)

func TestNormalizeEmpty(t *testing.T) {
	n := NewNormalizer()
	if got := n.Normalize(nil); got != nil {
		t.Errorf("Normalize(nil) = %v, want nil", got)
	}
	if got := n.Normalize([]Contact{}); got != nil {
		t.Errorf("Normalize(empty) = %v, want nil", got)
	}
}

func TestNormalizeStampsNormalizationTime(t *testing.T) {
	fixed := time.UnixMilli(1234567890)
	n := NewNormalizer()
	n.SetNowFunc(func() time.Time { return fixed })

	pts := n.Normalize([]Contact{
		{ID: 3, X: 10, Y: 20},
		{ID: 7, X: 30, Y: 40, Pressure: 0.5, HasPressure: true},
	})

	if len(pts) != 2 {
		t.Fatalf("got %d points, want 2", len(pts))
	}
	for _, p := range pts {
		if p.TimestampMs != fixed.UnixMilli() {
			t.Errorf("TimestampMs = %d, want %d", p.TimestampMs, fixed.UnixMilli())
		}
	}
	if pts[0].ID != 3 || pts[1].ID != 7 {
		t.Errorf("ids = %d,%d, want 3,7", pts[0].ID, pts[1].ID)
	}
	if !pts[1].HasPressure || pts[1].Pressure != 0.5 {
		t.Errorf("pressure = %v/%v, want 0.5/true", pts[1].Pressure, pts[1].HasPressure)
	}
}

func TestNormalizeClampsPressure(t *testing.T) {
	n := NewNormalizer()
	pts := n.Normalize([]Contact{
		{ID: 0, Pressure: 1.8, HasPressure: true},
		{ID: 1, Pressure: -0.2, HasPressure: true},
	})
	if pts[0].Pressure != 1 {
		t.Errorf("pressure = %v, want clamped to 1", pts[0].Pressure)
	}
	if pts[1].Pressure != 0 {
		t.Errorf("pressure = %v, want clamped to 0", pts[1].Pressure)
	}
}

func TestMouseSample(t *testing.T) {
	s := MouseSample(PhaseStart, 5, 6)
	if len(s.Contacts) != 1 {
		t.Fatalf("got %d contacts, want 1", len(s.Contacts))
	}
	c := s.Contacts[0]
	if c.ID != 0 || c.X != 5 || c.Y != 6 || c.HasPressure {
		t.Errorf("unexpected synthetic contact: %+v", c)
	}

	end := MouseSample(PhaseEnd, 5, 6)
	if len(end.Contacts) != 0 {
		t.Errorf("end sample carries %d contacts, want 0", len(end.Contacts))
	}
}

func TestParsePhase(t *testing.T) {
	tests := []struct {
		in   string
		want Phase
		err  bool
	}{
		{"start", PhaseStart, false},
		{"move", PhaseMove, false},
		{"end", PhaseEnd, false},
		{"cancel", PhaseCancel, false},
		{"hover", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePhase(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParsePhase(%q) err = %v, want err=%v", tt.in, err, tt.err)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParsePhase(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
