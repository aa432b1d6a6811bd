// Package editor turns abstract input gestures into session operations.
//
// The controller is an explicit state machine driven by press/move/release/
// scroll events whose coordinates are already in display units. It runs
// single-threaded and cooperatively: every handler completes synchronously,
// so a gesture either finishes or fails atomically within one event.
package editor

import (
	"pwl-editor/internal/session"
	"pwl-editor/internal/view"
	"pwl-editor/pkg/geometry"
)

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// Modifier identifies the active scroll-wheel modifier key.
type Modifier int

const (
	ModifierNone  Modifier = iota
	ModifierCtrl           // y-only zoom
	ModifierShift          // x-only zoom
)

// State is the controller's gesture state.
type State int

const (
	Idle State = iota
	Panning
	DraggingPoint
)

// Wheel zoom factors: scrolling up tightens the view, scrolling down widens it.
const (
	zoomInFactor  = 0.9
	zoomOutFactor = 1.1
)

// Controller owns the gesture state of one editor instance.
type Controller struct {
	session *session.Session
	state   State

	// panAnchor is the display-space press position of a pan drag. It is
	// deliberately not advanced on move: event coordinates are display
	// units, which shift under the cursor as the view pans, so the
	// anchor-to-current delta stays correct across the whole drag.
	panAnchor geometry.Point2D
}

// New creates a controller in the Idle state.
func New(s *session.Session) *Controller {
	return &Controller{session: s, state: Idle}
}

// State returns the current gesture state.
func (c *Controller) State() State { return c.state }

// Press handles a pointer-button press at a display-space position.
func (c *Controller) Press(pos geometry.Point2D, button Button, doubleClick bool) {
	if c.state != Idle {
		return
	}

	if button == ButtonSecondary || button == ButtonMiddle {
		c.state = Panning
		c.panAnchor = pos
		return
	}

	// Primary press: select a nearby point, or clear the selection and
	// insert a new point on double-click.
	if c.session.SelectNearest(pos.X, pos.Y) != session.NoSelection {
		return
	}
	if doubleClick {
		c.session.InsertAt(pos.X, pos.Y)
	}
}

// Move handles pointer motion. primaryHeld reports whether the primary
// button is down during the motion.
func (c *Controller) Move(pos geometry.Point2D, primaryHeld bool) {
	switch c.state {
	case Panning:
		delta := c.panAnchor.Sub(pos)
		c.session.PanBy(delta.X, delta.Y)

	case Idle:
		if primaryHeld && c.session.Selected() != session.NoSelection {
			c.state = DraggingPoint
			c.session.MoveSelected(pos.X, pos.Y)
		}

	case DraggingPoint:
		if !primaryHeld {
			c.state = Idle
			return
		}
		if c.session.MoveSelected(pos.X, pos.Y) != nil {
			// Selection lost mid-drag; fail safe and stop dragging.
			c.state = Idle
		}
	}
}

// Release handles a pointer-button release.
func (c *Controller) Release(button Button) {
	switch c.state {
	case Panning:
		if button == ButtonSecondary || button == ButtonMiddle {
			c.state = Idle
		}
	case DraggingPoint:
		if button == ButtonPrimary {
			c.state = Idle
		}
	}
}

// Scroll handles a wheel event at a display-space position. up selects
// zooming in; the modifier restricts the zoom to one axis (Ctrl = y-only,
// Shift = x-only, none = both), anchored at the cursor.
func (c *Controller) Scroll(pos geometry.Point2D, up bool, mod Modifier) {
	factor := zoomOutFactor
	if up {
		factor = zoomInFactor
	}

	axis := view.AxisBoth
	switch mod {
	case ModifierCtrl:
		axis = view.AxisY
	case ModifierShift:
		axis = view.AxisX
	}

	c.session.ZoomAt(pos.X, pos.Y, factor, axis)
}
