package gesture

import "testing"

func TestTypeStringRoundTrip(t *testing.T) {
	for _, typ := range Types() {
		got, err := ParseType(typ.String())
		if err != nil {
			t.Fatalf("ParseType(%q) error: %v", typ.String(), err)
		}
		if got != typ {
			t.Errorf("ParseType(%q) = %v, want %v", typ.String(), got, typ)
		}
	}
}

func TestParseTypeUnknown(t *testing.T) {
	if _, err := ParseType("triple_tap"); err == nil {
		t.Fatal("ParseType accepted an unknown name")
	}
}

func TestDirectionOf(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   Direction
	}{
		{0, 0, DirectionNone},
		{10, 3, DirectionRight},
		{-10, 3, DirectionLeft},
		{3, 10, DirectionDown},
		{3, -10, DirectionUp},
		{10, 10, DirectionRight}, // ties go to the horizontal axis
		{-5, -5, DirectionLeft},
	}
	for _, tt := range tests {
		if got := DirectionOf(tt.dx, tt.dy); got != tt.want {
			t.Errorf("DirectionOf(%v, %v) = %v, want %v", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		p    Phase
		want string
	}{
		{PhaseStart, "start"},
		{PhaseMove, "move"},
		{PhaseEnd, "end"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(tt.p), got, tt.want)
		}
	}
}
