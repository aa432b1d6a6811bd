// Package waveform provides the ordered breakpoint model of a PWL source.
package waveform

import (
	"errors"
	"math"
	"sort"

	"pwl-editor/internal/grid"
)

// MinPoints is the minimum breakpoint count for a valid PWL source.
const MinPoints = 2

// matchTolerance is the absolute tolerance used to relocate a point after a
// re-sort (time and value compared independently).
const matchTolerance = 1e-12

// ErrMinimumPoints is returned when a delete would leave fewer than MinPoints.
var ErrMinimumPoints = errors.New("at least 2 points are required for PWL")

// ErrIndexOutOfRange is returned for operations on a nonexistent breakpoint.
var ErrIndexOutOfRange = errors.New("breakpoint index out of range")

// Breakpoint is one (time, value) control point in base SI units
// (seconds and volts or amps).
type Breakpoint struct {
	Time  float64
	Value float64
}

// Set is a time-sorted sequence of breakpoints. Equal times are allowed and
// represent a vertical jump.
type Set struct {
	points []Breakpoint
}

// DefaultPoints returns the initial session breakpoints: (0s, 0) and (1μs, 0).
func DefaultPoints() []Breakpoint {
	return []Breakpoint{{Time: 0, Value: 0}, {Time: 1e-6, Value: 0}}
}

// NewSet creates a set from the given points, sorted by time.
// With no points the session defaults are used.
func NewSet(points ...Breakpoint) *Set {
	if len(points) == 0 {
		points = DefaultPoints()
	}
	s := &Set{points: append([]Breakpoint(nil), points...)}
	s.sortByTime()
	return s
}

// Len returns the number of breakpoints.
func (s *Set) Len() int { return len(s.points) }

// At returns the breakpoint at index i.
func (s *Set) At(i int) Breakpoint { return s.points[i] }

// Points returns a copy of the breakpoints in time order.
func (s *Set) Points() []Breakpoint {
	return append([]Breakpoint(nil), s.points...)
}

// Times returns all breakpoint times in order.
func (s *Set) Times() []float64 {
	ts := make([]float64, len(s.points))
	for i, p := range s.points {
		ts[i] = p.Time
	}
	return ts
}

// Values returns all breakpoint values in time order.
func (s *Set) Values() []float64 {
	vs := make([]float64, len(s.points))
	for i, p := range s.points {
		vs[i] = p.Value
	}
	return vs
}

// MaxTime returns the largest breakpoint time, or 0 for an empty set.
func (s *Set) MaxTime() float64 {
	var maxT float64
	for _, p := range s.points {
		if p.Time > maxT {
			maxT = p.Time
		}
	}
	return maxT
}

// Insert adds a breakpoint at the given real time and value and returns its
// index. Negative times are clamped to 0. The slot is found by scanning in
// time order: the new point lands immediately after the last existing point
// whose time is strictly less than its own, which makes the tie-break for
// equal times deterministic.
func (s *Set) Insert(realTime, realValue float64) int {
	if realTime < 0 {
		realTime = 0
	}

	idx := 0
	for i, p := range s.points {
		if realTime > p.Time {
			idx = i + 1
		} else {
			break
		}
	}

	s.points = append(s.points, Breakpoint{})
	copy(s.points[idx+1:], s.points[idx:])
	s.points[idx] = Breakpoint{Time: realTime, Value: realValue}
	return idx
}

// Delete removes the breakpoint at index i. It fails without modifying the
// set when the index is invalid or the removal would leave fewer than
// MinPoints breakpoints.
func (s *Set) Delete(i int) error {
	if i < 0 || i >= len(s.points) {
		return ErrIndexOutOfRange
	}
	if len(s.points) <= MinPoints {
		return ErrMinimumPoints
	}
	s.points = append(s.points[:i], s.points[i+1:]...)
	return nil
}

// Move replaces the breakpoint at index i with the given real coordinates,
// re-sorts the set, and returns the moved point's new index. The point is
// relocated by a tolerance match on (time, value) because re-sorting
// invalidates slot indices; -1 is returned when no match is found.
func (s *Set) Move(i int, realTime, realValue float64) (int, error) {
	if i < 0 || i >= len(s.points) {
		return -1, ErrIndexOutOfRange
	}
	if realTime < 0 {
		realTime = 0
	}

	s.points[i] = Breakpoint{Time: realTime, Value: realValue}
	s.sortByTime()

	for j, p := range s.points {
		if math.Abs(p.Time-realTime) < matchTolerance && math.Abs(p.Value-realValue) < matchTolerance {
			return j, nil
		}
	}
	return -1, nil
}

// Nearest returns the index of the breakpoint closest to the display-space
// query point (x, y) by Manhattan distance, converting each breakpoint with
// the given unit scales. The hit is accepted only if the distance is below
// tolerance; -1 reports a miss.
func (s *Set) Nearest(x, y, timeScale, valueScale, tolerance float64) int {
	best := -1
	bestDist := math.Inf(1)
	for i, p := range s.points {
		d := math.Abs(x-p.Time/timeScale) + math.Abs(y-p.Value/valueScale)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	if best < 0 || bestDist >= tolerance {
		return -1
	}
	return best
}

// AppendDefault adds a zero-valued breakpoint one display time-unit after the
// current maximum time (at time 0 when the set is empty), re-sorts, and
// returns the new point's index.
func (s *Set) AppendDefault(timeScale float64) int {
	var newTime float64
	if len(s.points) > 0 {
		newTime = s.MaxTime() + timeScale
	}

	s.points = append(s.points, Breakpoint{Time: newTime, Value: 0})
	s.sortByTime()

	for i, p := range s.points {
		if math.Abs(p.Time-newTime) < matchTolerance && math.Abs(p.Value) < matchTolerance {
			return i
		}
	}
	return len(s.points) - 1
}

// SnapAll snaps every breakpoint to the grid by converting to display units,
// snapping, and converting back, then re-sorts by time. It is a no-op when
// snapping is disabled.
func (s *Set) SnapAll(cfg grid.Config, timeScale, valueScale float64) {
	if !cfg.Enabled {
		return
	}
	for i, p := range s.points {
		t, v := cfg.Snap(p.Time/timeScale, p.Value/valueScale)
		s.points[i] = Breakpoint{Time: t * timeScale, Value: v * valueScale}
	}
	s.sortByTime()
}

func (s *Set) sortByTime() {
	sort.SliceStable(s.points, func(i, j int) bool {
		return s.points[i].Time < s.points[j].Time
	})
}
