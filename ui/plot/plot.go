// Package plot provides the interactive waveform plot widget.
package plot

import (
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"pwl-editor/internal/editor"
	"pwl-editor/internal/session"
	"pwl-editor/pkg/geometry"
)

// Widget renders the waveform and feeds mouse gestures into the editor
// state machine.
type Widget struct {
	widget.BaseWidget

	session *session.Session
	ctrl    *editor.Controller
	raster  *fynecanvas.Raster

	// Most recent modifier state, captured from mouse events because
	// scroll events do not carry modifiers.
	lastMod fyne.KeyModifier

	onStatus func(text string)
}

// New creates the plot widget for a session. The widget refreshes itself on
// every session change.
func New(s *session.Session) *Widget {
	w := &Widget{
		session: s,
		ctrl:    editor.New(s),
	}
	w.raster = fynecanvas.NewRaster(w.draw)
	w.raster.ScaleMode = fynecanvas.ImageScalePixels
	w.ExtendBaseWidget(w)

	for _, ev := range []session.EventType{
		session.EventPointsChanged,
		session.EventViewChanged,
		session.EventUnitsChanged,
		session.EventSelectionChanged,
		session.EventGridChanged,
	} {
		s.On(ev, func(interface{}) { w.Refresh() })
	}
	return w
}

// OnStatus sets a callback for cursor readout text.
func (w *Widget) OnStatus(callback func(text string)) {
	w.onStatus = callback
}

// Controller returns the gesture state machine, exposed for keyboard-driven
// actions in the window chrome.
func (w *Widget) Controller() *editor.Controller { return w.ctrl }

// CreateRenderer implements fyne.Widget.
func (w *Widget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(w.raster)
}

// MinSize keeps the plot usable at small window sizes.
func (w *Widget) MinSize() fyne.Size {
	return fyne.NewSize(480, 320)
}

// Refresh redraws the plot.
func (w *Widget) Refresh() {
	w.raster.Refresh()
	w.BaseWidget.Refresh()
}

func (w *Widget) draw(width, height int) image.Image {
	return Render(SnapshotFrame(w.session), width, height)
}

// displayPos converts a widget-relative pixel position to display units.
func (w *Widget) displayPos(pos fyne.Position) geometry.Point2D {
	size := w.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return geometry.Point2D{}
	}
	v := w.session.View()
	x := v.XMin + float64(pos.X)/float64(size.Width)*v.XSpan()
	y := v.YMax - float64(pos.Y)/float64(size.Height)*v.YSpan()
	return geometry.NewPoint2D(x, y)
}

func mapButton(b desktop.MouseButton) editor.Button {
	switch b {
	case desktop.MouseButtonSecondary:
		return editor.ButtonSecondary
	case desktop.MouseButtonTertiary:
		return editor.ButtonMiddle
	default:
		return editor.ButtonPrimary
	}
}

// MouseDown implements desktop.Mouseable.
func (w *Widget) MouseDown(ev *desktop.MouseEvent) {
	w.lastMod = ev.Modifier
	w.ctrl.Press(w.displayPos(ev.Position), mapButton(ev.Button), false)
}

// MouseUp implements desktop.Mouseable.
func (w *Widget) MouseUp(ev *desktop.MouseEvent) {
	w.ctrl.Release(mapButton(ev.Button))
}

// DoubleTapped inserts a breakpoint at the cursor.
func (w *Widget) DoubleTapped(ev *fyne.PointEvent) {
	w.ctrl.Press(w.displayPos(ev.Position), editor.ButtonPrimary, true)
}

// Tapped implements fyne.Tappable; selection already happened on MouseDown.
func (w *Widget) Tapped(*fyne.PointEvent) {}

// MouseIn implements desktop.Hoverable.
func (w *Widget) MouseIn(ev *desktop.MouseEvent) {
	w.lastMod = ev.Modifier
}

// MouseMoved implements desktop.Hoverable. It drives point dragging and
// panning, and reports the cursor readout.
func (w *Widget) MouseMoved(ev *desktop.MouseEvent) {
	w.lastMod = ev.Modifier
	pos := w.displayPos(ev.Position)
	w.ctrl.Move(pos, ev.Button&desktop.MouseButtonPrimary != 0)

	if w.onStatus != nil {
		u := w.session.Units()
		w.onStatus(fmt.Sprintf("t=%.3f %s  value=%.3f %s",
			pos.X, u.TimeUnit(), w.session.EvaluateAt(pos.X), u.ValueUnit()))
	}
}

// MouseOut implements desktop.Hoverable.
func (w *Widget) MouseOut() {
	if w.onStatus != nil {
		w.onStatus("")
	}
}

// Scrolled implements fyne.Scrollable: wheel zooming anchored at the cursor.
// Ctrl restricts the zoom to the value axis, Shift to the time axis.
func (w *Widget) Scrolled(ev *fyne.ScrollEvent) {
	mod := editor.ModifierNone
	if w.lastMod&fyne.KeyModifierControl != 0 {
		mod = editor.ModifierCtrl
	} else if w.lastMod&fyne.KeyModifierShift != 0 {
		mod = editor.ModifierShift
	}
	w.ctrl.Scroll(w.displayPos(ev.Position), ev.Scrolled.DY > 0, mod)
}
