package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"touchsense/internal/touch"
)

func pt(x, y float64) touch.Point {
	return touch.Point{X: x, Y: y}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 touch.Point
		want   float64
	}{
		{"same point", pt(5, 5), pt(5, 5), 0},
		{"horizontal", pt(0, 0), pt(3, 0), 3},
		{"vertical", pt(0, 0), pt(0, 4), 4},
		{"pythagorean", pt(0, 0), pt(3, 4), 5},
		{"negative coords", pt(-3, -4), pt(0, 0), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Distance(tt.p1, tt.p2), 1e-9)
		})
	}
}

func TestAngleDegrees(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 touch.Point
		want   float64
	}{
		{"east", pt(0, 0), pt(1, 0), 0},
		{"south", pt(0, 0), pt(0, 1), 90},
		{"west", pt(0, 0), pt(-1, 0), 180},
		{"north", pt(0, 0), pt(0, -1), -90},
		{"diagonal", pt(0, 0), pt(1, 1), 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AngleDegrees(tt.p1, tt.p2), 1e-9)
		})
	}
}

func TestAngleDegreesDegenerate(t *testing.T) {
	// Identical points: atan2(0, 0) is defined as 0, not NaN.
	got := AngleDegrees(pt(2, 2), pt(2, 2))
	assert.False(t, math.IsNaN(got))
	assert.Equal(t, 0.0, got)
}

func TestCentroid(t *testing.T) {
	x, y := Centroid(nil)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)

	x, y = Centroid([]touch.Point{pt(2, 4)})
	assert.Equal(t, 2.0, x)
	assert.Equal(t, 4.0, y)

	x, y = Centroid([]touch.Point{pt(0, 0), pt(10, 20), pt(20, 40)})
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 20, y, 1e-9)
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{180, 180},
		{-180, 180},
		{270, -90},
		{-270, 90},
		{350, -10},
		{-350, 10},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizeAngle(tt.in), 1e-9, "NormalizeAngle(%v)", tt.in)
	}
}
