// Package grid provides grid-snap quantization for display-space coordinates.
package grid

import "math"

// MinStep is the floor applied to non-positive grid steps.
const MinStep = 0.001

// Config holds the grid-snap settings in display units.
type Config struct {
	Enabled   bool
	TimeStep  float64
	ValueStep float64
}

// DefaultConfig returns the session default: snapping off, unit steps.
func DefaultConfig() Config {
	return Config{Enabled: false, TimeStep: 1.0, ValueStep: 1.0}
}

// SetSteps updates the grid steps, flooring non-positive values to MinStep.
func (c *Config) SetSteps(timeStep, valueStep float64) {
	if timeStep <= 0 {
		timeStep = MinStep
	}
	if valueStep <= 0 {
		valueStep = MinStep
	}
	c.TimeStep = timeStep
	c.ValueStep = valueStep
}

// Snap rounds a display-space coordinate pair to the nearest grid
// intersection and clamps the time to be non-negative. When snapping is
// disabled the input is returned unchanged. Snap is idempotent.
func (c Config) Snap(timeDisplay, valueDisplay float64) (float64, float64) {
	if !c.Enabled {
		return timeDisplay, valueDisplay
	}
	if c.TimeStep <= 0 || c.ValueStep <= 0 {
		return timeDisplay, valueDisplay
	}

	t := math.Round(timeDisplay/c.TimeStep) * c.TimeStep
	v := math.Round(valueDisplay/c.ValueStep) * c.ValueStep
	if t < 0 {
		t = 0
	}
	return t, v
}
