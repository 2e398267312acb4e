// Package geom provides the pure geometry helpers used by gesture
// classification: distance, angle and centroid over touch points.
package geom

import (
	"math"

	"touchsense/internal/touch"
)

// Distance returns the euclidean distance between two points.
func Distance(p1, p2 touch.Point) float64 {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// AngleDegrees returns the angle of the vector from p1 to p2 in degrees,
// in the range (-180, 180].
func AngleDegrees(p1, p2 touch.Point) float64 {
	return math.Atan2(p2.Y-p1.Y, p2.X-p1.X) * 180 / math.Pi
}

// Centroid returns the arithmetic mean of the point coordinates. The
// zero point is returned for empty input.
func Centroid(points []touch.Point) (x, y float64) {
	if len(points) == 0 {
		return 0, 0
	}
	for _, p := range points {
		x += p.X
		y += p.Y
	}
	n := float64(len(points))
	return x / n, y / n
}

// NormalizeAngle wraps an angle delta into (-180, 180] so that rotation
// across the atan2 discontinuity reads as the short way around.
func NormalizeAngle(deg float64) float64 {
	for deg > 180 {
		deg -= 360
	}
	for deg <= -180 {
		deg += 360
	}
	return deg
}
