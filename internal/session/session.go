// Package session owns the state of one waveform editing session.
package session

import (
	"errors"
	"fmt"
	"sync"

	"pwl-editor/internal/grid"
	"pwl-editor/internal/spice"
	"pwl-editor/internal/units"
	"pwl-editor/internal/view"
	"pwl-editor/internal/waveform"
)

// NoSelection marks the absence of a selected breakpoint.
const NoSelection = -1

// ErrNoSelection is returned by operations that need a selected breakpoint.
var ErrNoSelection = errors.New("no point selected")

// EventType identifies session change notifications.
type EventType int

const (
	EventPointsChanged EventType = iota
	EventViewChanged
	EventUnitsChanged
	EventSelectionChanged
	EventGridChanged
	EventDocumentLoaded
	EventDocumentSaved
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// Session is the explicitly owned model of one editor instance. It is
// mutated synchronously by UI event handlers; there is no background
// mutation. Multiple independent sessions may coexist (there is no process
// singleton), which is what the tests rely on.
type Session struct {
	mu sync.RWMutex

	points *waveform.Set
	units  *units.System
	grid   grid.Config
	view   view.Range

	selected     int
	documentPath string
	modified     bool

	listeners map[EventType][]EventListener
}

// New creates a session with the documented defaults: points (0,0) and
// (1μs,0), a voltage source in μs/mV, view x [0,10] y [-5,5], grid off.
func New() *Session {
	return &Session{
		points:    waveform.NewSet(),
		units:     units.NewSystem(),
		grid:      grid.DefaultConfig(),
		view:      view.DefaultRange(),
		selected:  NoSelection,
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the given event type.
func (s *Session) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

func (s *Session) emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()
	for _, l := range listeners {
		l(data)
	}
}

func (s *Session) setModified() {
	s.modified = true
	s.emit(EventModified, true)
}

// Points returns the breakpoints in time order.
func (s *Session) Points() []waveform.Breakpoint { return s.points.Points() }

// PointCount returns the number of breakpoints.
func (s *Session) PointCount() int { return s.points.Len() }

// Units returns the active unit system.
func (s *Session) Units() *units.System { return s.units }

// Grid returns the grid-snap configuration.
func (s *Session) Grid() grid.Config { return s.grid }

// View returns the current view range in display units.
func (s *Session) View() view.Range { return s.view }

// Selected returns the selected breakpoint index, or NoSelection.
func (s *Session) Selected() int { return s.selected }

// Modified reports whether the session changed since the last save or load.
func (s *Session) Modified() bool { return s.modified }

// DocumentPath returns the path of the last saved or loaded document.
func (s *Session) DocumentPath() string { return s.documentPath }

// DisplayPoints returns the breakpoints converted to the active display units.
func (s *Session) DisplayPoints() []waveform.Breakpoint {
	pts := s.points.Points()
	for i, p := range pts {
		pts[i] = waveform.Breakpoint{
			Time:  s.units.ToDisplayTime(p.Time),
			Value: s.units.ToDisplayValue(p.Value),
		}
	}
	return pts
}

// hitTolerance is the view-relative nearest-point acceptance distance:
// 10% of the larger view span, so hit-testing scales with the zoom level.
func (s *Session) hitTolerance() float64 {
	tol := s.view.XSpan()
	if ys := s.view.YSpan(); ys > tol {
		tol = ys
	}
	return 0.1 * tol
}

// SelectNearest selects the breakpoint nearest to the display-space point
// (x, y) and returns its index, or clears the selection and returns
// NoSelection when nothing is within tolerance.
func (s *Session) SelectNearest(x, y float64) int {
	idx := s.points.Nearest(x, y, s.units.TimeScale(), s.units.ValueScale(), s.hitTolerance())
	s.setSelected(idx)
	return idx
}

// ClearSelection deselects any selected breakpoint.
func (s *Session) ClearSelection() { s.setSelected(NoSelection) }

func (s *Session) setSelected(idx int) {
	if idx < NoSelection || idx >= s.points.Len() {
		idx = NoSelection // fail safe on inconsistent indices
	}
	if idx == s.selected {
		return
	}
	s.selected = idx
	s.emit(EventSelectionChanged, idx)
}

// InsertAt inserts a breakpoint at the display-space point (x, y), applying
// grid snap and unit conversion, and selects it.
func (s *Session) InsertAt(x, y float64) {
	x, y = s.grid.Snap(x, y)
	idx := s.points.Insert(s.units.ToRealTime(x), s.units.ToRealValue(y))
	s.setSelected(idx)
	s.setModified()
	s.emit(EventPointsChanged, nil)
}

// AddPoint appends a zero-valued breakpoint one display time-unit after the
// latest breakpoint and selects it.
func (s *Session) AddPoint() {
	idx := s.points.AppendDefault(s.units.TimeScale())
	s.setSelected(idx)
	s.setModified()
	s.emit(EventPointsChanged, nil)
}

// MoveSelected moves the selected breakpoint to the display-space point
// (x, y), applying grid snap and unit conversion. The selection follows the
// point across the re-sort; if it cannot be relocated the selection is
// cleared rather than left dangling.
func (s *Session) MoveSelected(x, y float64) error {
	if s.selected == NoSelection {
		return ErrNoSelection
	}
	x, y = s.grid.Snap(x, y)

	idx, err := s.points.Move(s.selected, s.units.ToRealTime(x), s.units.ToRealValue(y))
	if err != nil {
		s.setSelected(NoSelection)
		return err
	}
	s.setSelected(idx)
	s.setModified()
	s.emit(EventPointsChanged, nil)
	return nil
}

// DeleteSelected removes the selected breakpoint. It fails when nothing is
// selected or when the removal would leave fewer than two points.
func (s *Session) DeleteSelected() error {
	if s.selected == NoSelection {
		return ErrNoSelection
	}
	if err := s.points.Delete(s.selected); err != nil {
		return err
	}
	s.setSelected(NoSelection)
	s.setModified()
	s.emit(EventPointsChanged, nil)
	return nil
}

// SetSourceKind switches between voltage and current sources, revalidating
// the value unit against the new table.
func (s *Session) SetSourceKind(kind units.SourceKind) {
	s.units.SetKind(kind)
	s.setModified()
	s.emit(EventUnitsChanged, nil)
}

// SetTimeUnit selects the display time unit.
func (s *Session) SetTimeUnit(symbol string) {
	if s.units.SetTimeUnit(symbol) {
		s.setModified()
		s.emit(EventUnitsChanged, nil)
	}
}

// SetValueUnit selects the display value unit.
func (s *Session) SetValueUnit(symbol string) {
	if s.units.SetValueUnit(symbol) {
		s.setModified()
		s.emit(EventUnitsChanged, nil)
	}
}

// SetGridEnabled toggles grid snapping. Enabling it snaps every existing
// breakpoint to the grid.
func (s *Session) SetGridEnabled(enabled bool) {
	s.grid.Enabled = enabled
	if enabled {
		s.snapAll()
	}
	s.setModified()
	s.emit(EventGridChanged, nil)
}

// SetGridSteps updates the grid step sizes (display units). Non-positive
// steps are floored. Active snapping re-snaps all breakpoints.
func (s *Session) SetGridSteps(timeStep, valueStep float64) {
	s.grid.SetSteps(timeStep, valueStep)
	if s.grid.Enabled {
		s.snapAll()
	}
	s.setModified()
	s.emit(EventGridChanged, nil)
}

// snapAll bulk-snaps the breakpoints and re-resolves the selection by value,
// since the re-sort invalidates slot indices.
func (s *Session) snapAll() {
	var target *waveform.Breakpoint
	if s.selected != NoSelection && s.selected < s.points.Len() {
		p := s.points.At(s.selected)
		t, v := s.grid.Snap(s.units.ToDisplayTime(p.Time), s.units.ToDisplayValue(p.Value))
		target = &waveform.Breakpoint{Time: s.units.ToRealTime(t), Value: s.units.ToRealValue(v)}
	}

	s.points.SnapAll(s.grid, s.units.TimeScale(), s.units.ValueScale())

	if target != nil {
		// The target coordinates were produced by the same snap expression,
		// so the match is exact up to float identity.
		s.setSelected(s.points.Nearest(target.Time, target.Value, 1, 1, 1e-12))
	}
	s.emit(EventPointsChanged, nil)
}

// Zoom rescales the view about its center.
func (s *Session) Zoom(factor float64) {
	s.view.Zoom(factor)
	s.emit(EventViewChanged, nil)
}

// ZoomAt rescales the selected axes about a display-space point.
func (s *Session) ZoomAt(x, y, factor float64, axis view.Axis) {
	s.view.ZoomAt(x, y, factor, axis)
	s.emit(EventViewChanged, nil)
}

// Pan shifts the view a quarter span in the given direction.
func (s *Session) Pan(dir func(*view.Range)) {
	dir(&s.view)
	s.emit(EventViewChanged, nil)
}

// PanBy shifts the view by a display-unit delta (drag panning).
func (s *Session) PanBy(dx, dy float64) {
	s.view.PanBy(dx, dy)
	s.emit(EventViewChanged, nil)
}

// SetXRange sets the visible time range directly.
func (s *Session) SetXRange(min, max float64) {
	s.view.SetX(min, max)
	s.emit(EventViewChanged, nil)
}

// SetYRange sets the visible value range directly.
func (s *Session) SetYRange(min, max float64) {
	s.view.SetY(min, max)
	s.emit(EventViewChanged, nil)
}

// AutoScale fits the view to the breakpoints with a 10% margin per axis.
func (s *Session) AutoScale() {
	pts := s.DisplayPoints()
	times := make([]float64, len(pts))
	values := make([]float64, len(pts))
	for i, p := range pts {
		times[i] = p.Time
		values[i] = p.Value
	}
	s.view.AutoFit(times, values, view.AutoFitMargin)
	s.emit(EventViewChanged, nil)
}

// PWLText returns the canonical PWL source text for the current breakpoints.
func (s *Session) PWLText() string {
	return spice.Format(s.points.Points())
}

// EvaluateAt returns the waveform value, in display units, at the given
// display-unit time.
func (s *Session) EvaluateAt(displayTime float64) float64 {
	real := s.points.Evaluate(s.units.ToRealTime(displayTime))
	return s.units.ToDisplayValue(real)
}

// SelectedInfo returns a display-unit readout of the selected breakpoint,
// or the empty string when nothing is selected.
func (s *Session) SelectedInfo() string {
	if s.selected == NoSelection {
		return ""
	}
	p := s.points.At(s.selected)
	return fmt.Sprintf("Point %d: (%.3f %s, %.3f %s)",
		s.selected+1,
		s.units.ToDisplayTime(p.Time), s.units.TimeUnit(),
		s.units.ToDisplayValue(p.Value), s.units.ValueUnit())
}
