package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapDisabledPassthrough(t *testing.T) {
	c := DefaultConfig()
	x, y := c.Snap(5.6, 2.3)
	assert.Equal(t, 5.6, x)
	assert.Equal(t, 2.3, y)
}

func TestSnapRoundsToNearestIntersection(t *testing.T) {
	c := Config{Enabled: true, TimeStep: 1, ValueStep: 1}

	x, y := c.Snap(5.6, 2.3)
	assert.InDelta(t, 6.0, x, 1e-12)
	assert.InDelta(t, 2.0, y, 1e-12)

	c.SetSteps(0.5, 0.25)
	x, y = c.Snap(1.3, -0.6)
	assert.InDelta(t, 1.5, x, 1e-12)
	assert.InDelta(t, -0.5, y, 1e-12)
}

func TestSnapClampsTimeToZero(t *testing.T) {
	c := Config{Enabled: true, TimeStep: 1, ValueStep: 1}
	x, y := c.Snap(-3.4, -3.4)
	assert.Equal(t, 0.0, x)
	assert.InDelta(t, -3.0, y, 1e-12) // value axis may be negative
}

func TestSnapIdempotent(t *testing.T) {
	c := Config{Enabled: true, TimeStep: 0.3, ValueStep: 0.7}
	for _, p := range [][2]float64{{5.6, 2.3}, {-1, 4}, {0.15, 0.35}, {123.4, -56.7}} {
		x1, y1 := c.Snap(p[0], p[1])
		x2, y2 := c.Snap(x1, y1)
		assert.InDelta(t, x1, x2, 1e-9)
		assert.InDelta(t, y1, y2, 1e-9)
	}
}

func TestSetStepsFloorsNonPositive(t *testing.T) {
	c := DefaultConfig()
	c.SetSteps(0, -5)
	assert.Equal(t, MinStep, c.TimeStep)
	assert.Equal(t, MinStep, c.ValueStep)

	c.SetSteps(2.5, 0.1)
	assert.Equal(t, 2.5, c.TimeStep)
	assert.Equal(t, 0.1, c.ValueStep)
}
