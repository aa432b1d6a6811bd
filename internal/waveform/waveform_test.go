package waveform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pwl-editor/internal/grid"
)

func sorted(s *Set) bool {
	pts := s.Points()
	for i := 0; i < len(pts)-1; i++ {
		if pts[i].Time > pts[i+1].Time {
			return false
		}
	}
	return true
}

func TestNewSetDefaults(t *testing.T) {
	s := NewSet()
	require.Equal(t, 2, s.Len())
	assert.Equal(t, Breakpoint{Time: 0, Value: 0}, s.At(0))
	assert.Equal(t, Breakpoint{Time: 1e-6, Value: 0}, s.At(1))
}

func TestInsertKeepsTimeOrder(t *testing.T) {
	s := NewSet()

	idx := s.Insert(5e-7, 1.5)
	assert.Equal(t, 1, idx, "inserted between the two defaults")
	assert.True(t, sorted(s))

	idx = s.Insert(2e-6, -1)
	assert.Equal(t, 3, idx)
	assert.True(t, sorted(s))
}

func TestInsertClampsNegativeTime(t *testing.T) {
	s := NewSet()
	idx := s.Insert(-3, 1)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 0.0, s.At(0).Time)
}

func TestInsertTieBreak(t *testing.T) {
	// An equal-time point lands right after the last strictly earlier point,
	// so it slots in ahead of the existing tie. Ties represent a vertical
	// jump, so both orderings are valid PWL; this one is deterministic.
	s := NewSet(Breakpoint{0, 0}, Breakpoint{1, 5})
	idx := s.Insert(1, 9)
	assert.Equal(t, 1, idx)
	assert.Equal(t, Breakpoint{1, 9}, s.At(1))
	assert.Equal(t, Breakpoint{1, 5}, s.At(2))
	assert.True(t, sorted(s))
}

func TestDeleteEnforcesMinimum(t *testing.T) {
	s := NewSet(Breakpoint{0, 0}, Breakpoint{1, 1}, Breakpoint{2, 2})

	require.NoError(t, s.Delete(1))
	assert.Equal(t, 2, s.Len())

	assert.ErrorIs(t, s.Delete(0), ErrMinimumPoints)
	assert.Equal(t, 2, s.Len())

	assert.ErrorIs(t, s.Delete(5), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.Delete(-1), ErrIndexOutOfRange)
}

func TestMoveResortsAndRelocates(t *testing.T) {
	s := NewSet(Breakpoint{0, 0}, Breakpoint{1, 1}, Breakpoint{2, 2})

	// Move the first point past the others.
	idx, err := s.Move(0, 3, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
	assert.True(t, sorted(s))
	assert.Equal(t, Breakpoint{3, 7}, s.At(idx))

	// Negative time clamps to zero and the point moves to the front.
	idx, err = s.Move(idx, -5, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, Breakpoint{0, 7}, s.At(0))

	_, err = s.Move(99, 0, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestNearestManhattanWithTolerance(t *testing.T) {
	// Display units: seconds and volts (scale 1).
	s := NewSet(Breakpoint{0, 0}, Breakpoint{5, 2}, Breakpoint{10, 0})

	idx := s.Nearest(5.3, 1.8, 1, 1, 1.0)
	assert.Equal(t, 1, idx)

	// Same query with a tight tolerance misses.
	idx = s.Nearest(5.3, 1.8, 1, 1, 0.4)
	assert.Equal(t, -1, idx)
}

func TestNearestUsesDisplayScales(t *testing.T) {
	// Real point (5e-6 s, 2e-3 V) queried at display (5, 2) with μs/mV scales.
	s := NewSet(Breakpoint{0, 0}, Breakpoint{5e-6, 2e-3})
	idx := s.Nearest(5, 2, 1e-6, 1e-3, 0.5)
	assert.Equal(t, 1, idx)
}

func TestAppendDefault(t *testing.T) {
	s := NewSet(Breakpoint{0, 0}, Breakpoint{3e-6, 1})
	idx := s.AppendDefault(1e-6)
	assert.Equal(t, 2, idx)
	assert.InDelta(t, 4e-6, s.At(idx).Time, 1e-18)
	assert.Equal(t, 0.0, s.At(idx).Value)
	assert.True(t, sorted(s))
}

func TestSnapAll(t *testing.T) {
	cfg := grid.Config{Enabled: true, TimeStep: 1, ValueStep: 1}
	// Display units μs/mV.
	s := NewSet(Breakpoint{5.6e-6, 2.3e-3}, Breakpoint{1.2e-6, -0.7e-3})

	s.SnapAll(cfg, 1e-6, 1e-3)

	assert.True(t, sorted(s))
	assert.InDelta(t, 1e-6, s.At(0).Time, 1e-18)
	assert.InDelta(t, -1e-3, s.At(0).Value, 1e-15)
	assert.InDelta(t, 6e-6, s.At(1).Time, 1e-18)
	assert.InDelta(t, 2e-3, s.At(1).Value, 1e-15)

	// Disabled snapping leaves points alone.
	before := s.Points()
	s.SnapAll(grid.DefaultConfig(), 1e-6, 1e-3)
	assert.Equal(t, before, s.Points())
}

func TestEvaluate(t *testing.T) {
	s := NewSet(Breakpoint{0, 0}, Breakpoint{2, 4}, Breakpoint{4, 0})

	assert.InDelta(t, 2.0, s.Evaluate(1), 1e-12)
	assert.InDelta(t, 4.0, s.Evaluate(2), 1e-12)
	assert.InDelta(t, 1.0, s.Evaluate(3.5), 1e-12)

	// Outside the range clamps to the endpoints.
	assert.InDelta(t, 0.0, s.Evaluate(-1), 1e-12)
	assert.InDelta(t, 0.0, s.Evaluate(99), 1e-12)
}

func TestEvaluateVerticalJump(t *testing.T) {
	s := NewSet(Breakpoint{0, 0}, Breakpoint{1, 0}, Breakpoint{1, 5}, Breakpoint{2, 5})
	assert.InDelta(t, 5.0, s.Evaluate(1), 1e-12, "jump collapses to the later value")
	assert.InDelta(t, 5.0, s.Evaluate(1.5), 1e-12)
}
