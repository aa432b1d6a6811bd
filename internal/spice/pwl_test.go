package spice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pwl-editor/internal/units"
	"pwl-editor/internal/waveform"
)

func TestFormatCanonical(t *testing.T) {
	got := Format([]waveform.Breakpoint{{Time: 0, Value: 0}, {Time: 1e-6, Value: 0.5}})
	assert.Equal(t, "PWL(0 0 1e-06 0.5)", got)
}

func TestFormatSortsByTime(t *testing.T) {
	got := Format([]waveform.Breakpoint{
		{Time: 2e-6, Value: 1},
		{Time: 0, Value: 0},
		{Time: 1e-6, Value: -0.25},
	})
	assert.Equal(t, "PWL(0 0 1e-06 -0.25 2e-06 1)", got)
}

func TestFormatSixSignificantDigits(t *testing.T) {
	got := Format([]waveform.Breakpoint{
		{Time: 1.2345678e-6, Value: 3.14159265},
		{Time: 2, Value: 1000000},
	})
	assert.Equal(t, "PWL(1.23457e-06 3.14159 2 1e+06)", got)
}

func TestFormatInsufficientPoints(t *testing.T) {
	assert.Equal(t, InsufficientPoints, Format(nil))
	assert.Equal(t, InsufficientPoints, Format([]waveform.Breakpoint{{Time: 0, Value: 1}}))
}

func TestSourceName(t *testing.T) {
	assert.Equal(t, "V", SourceName(units.Voltage))
	assert.Equal(t, "I", SourceName(units.Current))
}
