package touch

import "time"

// Normalizer converts heterogeneous raw input into canonical touch points.
// Timestamps are stamped at normalization time rather than event time so
// that touch and mouse-emulated sources share one time base.
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer creates a normalizer using the wall clock.
func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now}
}

// SetNowFunc overrides the clock used for timestamping.
func (n *Normalizer) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		n.now = fn
	}
}

// Normalize produces exactly one Point per physical contact. Empty input
// returns an empty (nil) output, never an error.
func (n *Normalizer) Normalize(contacts []Contact) []Point {
	if len(contacts) == 0 {
		return nil
	}

	ts := n.now().UnixMilli()
	points := make([]Point, len(contacts))
	for i, c := range contacts {
		points[i] = Point{
			X:           c.X,
			Y:           c.Y,
			TimestampMs: ts,
			ID:          c.ID,
			Pressure:    clampUnit(c.Pressure),
			HasPressure: c.HasPressure,
		}
	}
	return points
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
