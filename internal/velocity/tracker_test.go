package velocity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVelocityTooFewSamples(t *testing.T) {
	var tr Tracker
	vx, vy := tr.Velocity()
	assert.Zero(t, vx)
	assert.Zero(t, vy)

	tr.Add(10, 10, 0)
	vx, vy = tr.Velocity()
	assert.Zero(t, vx)
	assert.Zero(t, vy)
}

func TestVelocityZeroElapsed(t *testing.T) {
	var tr Tracker
	tr.Add(0, 0, 100)
	tr.Add(50, 50, 100)
	vx, vy := tr.Velocity()
	assert.Zero(t, vx)
	assert.Zero(t, vy)
}

func TestVelocityOverWindow(t *testing.T) {
	var tr Tracker
	tr.Add(0, 0, 0)
	tr.Add(10, 5, 50)
	tr.Add(40, 20, 100)

	vx, vy := tr.Velocity()
	assert.InDelta(t, 0.4, vx, 1e-9) // 40px over 100ms
	assert.InDelta(t, 0.2, vy, 1e-9)
	assert.InDelta(t, 0.4472, tr.Speed(), 1e-3)
}

func TestVelocityBoundedBuffer(t *testing.T) {
	var tr Tracker
	// Fast early samples should fall out of the window.
	tr.Add(0, 0, 0)
	tr.Add(1000, 0, 1)
	for i := 0; i < maxSamples; i++ {
		tr.Add(1000, 0, int64(10+i*10))
	}

	vx, vy := tr.Velocity()
	assert.Zero(t, vx)
	assert.Zero(t, vy)
}

func TestReset(t *testing.T) {
	var tr Tracker
	tr.Add(0, 0, 0)
	tr.Add(100, 0, 100)
	tr.Reset()

	vx, vy := tr.Velocity()
	assert.Zero(t, vx)
	assert.Zero(t, vy)
}
