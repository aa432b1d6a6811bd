// Package view provides the visible display-unit rectangle with zoom and pan.
package view

import (
	"gonum.org/v1/gonum/floats"
)

// Axis selects which axes a zoom or pan operation affects.
type Axis int

const (
	AxisBoth Axis = iota
	AxisX
	AxisY
)

// PanFraction is the fraction of the span shifted by a directional pan.
const PanFraction = 0.25

// AutoFitMargin is the default margin fraction applied around auto-fit data.
const AutoFitMargin = 0.1

// minSpan keeps the view from collapsing to a zero-area rectangle.
const minSpan = 1e-15

// Range is the visible rectangle in display units. Invariants: XMin >= 0
// (simulated time cannot precede zero), XMax > XMin, YMax > YMin. The value
// axis has no floor and XMax no ceiling; values may be negative.
type Range struct {
	XMin, XMax float64
	YMin, YMax float64
}

// DefaultRange returns the session default view: x [0,10], y [-5,5].
func DefaultRange() Range {
	return Range{XMin: 0, XMax: 10, YMin: -5, YMax: 5}
}

// XSpan returns the width of the view.
func (r Range) XSpan() float64 { return r.XMax - r.XMin }

// YSpan returns the height of the view.
func (r Range) YSpan() float64 { return r.YMax - r.YMin }

// Zoom rescales both spans around the view center. A factor below 1 zooms
// in, above 1 zooms out.
func (r *Range) Zoom(factor float64) {
	cx := (r.XMin + r.XMax) / 2
	cy := (r.YMin + r.YMax) / 2
	r.ZoomAt(cx, cy, factor, AxisBoth)
}

// ZoomAt rescales the selected axes around an arbitrary display-space point,
// used for cursor-centered wheel zoom.
func (r *Range) ZoomAt(cx, cy, factor float64, axis Axis) {
	if factor <= 0 {
		return
	}
	if axis == AxisBoth || axis == AxisX {
		half := r.XSpan() * factor / 2
		r.XMin = cx - half
		r.XMax = cx + half
	}
	if axis == AxisBoth || axis == AxisY {
		half := r.YSpan() * factor / 2
		r.YMin = cy - half
		r.YMax = cy + half
	}
	r.normalize()
}

// PanLeft shifts the view left by PanFraction of the x span.
func (r *Range) PanLeft() { r.PanBy(-r.XSpan()*PanFraction, 0) }

// PanRight shifts the view right by PanFraction of the x span.
func (r *Range) PanRight() { r.PanBy(r.XSpan()*PanFraction, 0) }

// PanUp shifts the view up by PanFraction of the y span.
func (r *Range) PanUp() { r.PanBy(0, r.YSpan()*PanFraction) }

// PanDown shifts the view down by PanFraction of the y span.
func (r *Range) PanDown() { r.PanBy(0, -r.YSpan()*PanFraction) }

// PanBy shifts the view by an arbitrary display-unit delta, used for
// drag-panning. The x shift is reduced rather than rejected so that XMin
// never goes below zero; the span is preserved.
func (r *Range) PanBy(dx, dy float64) {
	if r.XMin+dx < 0 {
		dx = -r.XMin
	}
	r.XMin += dx
	r.XMax += dx
	r.YMin += dy
	r.YMax += dy
	r.normalize()
}

// SetX sets the x range directly, preserving the invariants.
func (r *Range) SetX(min, max float64) {
	r.XMin = min
	r.XMax = max
	r.normalize()
}

// SetY sets the y range directly, preserving the invariants.
func (r *Range) SetY(min, max float64) {
	r.YMin = min
	r.YMax = max
	r.normalize()
}

// AutoFit sets the view to cover the given display-space samples with a
// margin of marginFraction of the span per axis. A zero span gets a margin
// of one display unit instead.
func (r *Range) AutoFit(times, values []float64, marginFraction float64) {
	if len(times) == 0 || len(values) == 0 {
		return
	}

	tMin, tMax := floats.Min(times), floats.Max(times)
	margin := 1.0
	if span := tMax - tMin; span > 0 {
		margin = span * marginFraction
	}
	r.XMin = tMin - margin
	r.XMax = tMax + margin

	vMin, vMax := floats.Min(values), floats.Max(values)
	margin = 1.0
	if span := vMax - vMin; span > 0 {
		margin = span * marginFraction
	}
	r.YMin = vMin - margin
	r.YMax = vMax + margin

	r.normalize()
}

// normalize restores the range invariants. A clamp that would collapse a
// span instead preserves the span and shifts the whole window.
func (r *Range) normalize() {
	if r.XMax <= r.XMin {
		r.XMax = r.XMin + minSpan
	}
	if r.YMax <= r.YMin {
		r.YMax = r.YMin + minSpan
	}
	if r.XMin < 0 {
		r.XMax -= r.XMin
		r.XMin = 0
	}
}
