package gesture

import (
	"fmt"
	"math"
	"time"

	"touchsense/internal/touch"
)

// Type identifies a gesture. The declaration order is the classification
// precedence: when several thresholds are exceeded by the same sample,
// the lowest value wins.
type Type int

const (
	TypeForcePress Type = iota
	TypePinch
	TypeRotate
	TypeShake
	TypeSwipe
	TypePan
	TypeLongPress
	TypeTap
	TypeDoubleTap
)

func (t Type) String() string {
	switch t {
	case TypeForcePress:
		return "force_press"
	case TypePinch:
		return "pinch"
	case TypeRotate:
		return "rotate"
	case TypeShake:
		return "shake"
	case TypeSwipe:
		return "swipe"
	case TypePan:
		return "pan"
	case TypeLongPress:
		return "long_press"
	case TypeTap:
		return "tap"
	case TypeDoubleTap:
		return "double_tap"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// Types lists every gesture type in precedence order.
func Types() []Type {
	return []Type{
		TypeForcePress, TypePinch, TypeRotate, TypeShake, TypeSwipe,
		TypePan, TypeLongPress, TypeTap, TypeDoubleTap,
	}
}

// ParseType converts a wire name such as "long_press" back to a Type.
func ParseType(s string) (Type, error) {
	for _, t := range Types() {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown gesture type %q", s)
}

// Phase marks where in a gesture's life an event was emitted.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseMove
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMove:
		return "move"
	case PhaseEnd:
		return "end"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// Direction is the dominant axis of a swipe or pan.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}

// DirectionOf derives the direction from a displacement vector. The
// dominant axis wins; a zero vector has no direction.
func DirectionOf(dx, dy float64) Direction {
	if dx == 0 && dy == 0 {
		return DirectionNone
	}
	if math.Abs(dx) >= math.Abs(dy) {
		if dx > 0 {
			return DirectionRight
		}
		return DirectionLeft
	}
	if dy > 0 {
		return DirectionDown
	}
	return DirectionUp
}

// Data carries the gesture-specific fields of an event. Unused fields
// are zero.
type Data struct {
	Direction Direction
	Distance  float64
	VelocityX float64 // px per ms
	VelocityY float64
	Scale     float64 // pinch: current distance / initial distance
	Rotation  float64 // rotate: degrees from initial angle
	Force     float64 // force press: normalized pressure
	TapCount  int     // tap: 1, double tap: 2
}

// Event is an immutable emission delivered to subscribers. It is never
// mutated after emission; Touches is a snapshot.
type Event struct {
	Type      Type
	Phase     Phase
	SessionID string
	Touches   []touch.Point
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Data      Data

	// Sensitive and RequiresConfirmation reflect the active profile's
	// security policy. Enforcement is the consumer's responsibility.
	Sensitive            bool
	RequiresConfirmation bool
}

func (e Event) String() string {
	return fmt.Sprintf("%s/%s(%d touches, %s)", e.Type, e.Phase, len(e.Touches), e.Duration.Round(time.Millisecond))
}
