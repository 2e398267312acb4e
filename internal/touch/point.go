package touch

import "fmt"

// Point is one physical contact at one instant. Immutable once recorded.
type Point struct {
	X           float64
	Y           float64
	TimestampMs int64
	ID          int
	Pressure    float64 // normalized to [0, 1] when HasPressure is set
	HasPressure bool
}

func (p Point) String() string {
	return fmt.Sprintf("#%d(%.1f,%.1f)", p.ID, p.X, p.Y)
}

// Contact is a raw, un-normalized contact as reported by an input source.
type Contact struct {
	ID          int
	X           float64
	Y           float64
	Pressure    float64
	HasPressure bool
}

// Phase describes which edge of an interaction a sample belongs to.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseMove
	PhaseEnd
	PhaseCancel
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMove:
		return "move"
	case PhaseEnd:
		return "end"
	case PhaseCancel:
		return "cancel"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// ParsePhase converts a phase name as used in trace files.
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "start":
		return PhaseStart, nil
	case "move":
		return PhaseMove, nil
	case "end":
		return PhaseEnd, nil
	case "cancel":
		return PhaseCancel, nil
	default:
		return 0, fmt.Errorf("unknown touch phase %q", s)
	}
}

// Sample is a raw input event carrying zero or more simultaneous contacts.
type Sample struct {
	Phase    Phase
	Contacts []Contact
}

// MouseSample builds a sample for mouse-emulated input: a single synthetic
// contact with id 0 and no pressure. End and cancel samples carry no
// contacts, since the only contact just lifted.
func MouseSample(phase Phase, x, y float64) Sample {
	s := Sample{Phase: phase}
	if phase == PhaseStart || phase == PhaseMove {
		s.Contacts = []Contact{{ID: 0, X: x, Y: y}}
	}
	return s
}
