package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pwl-editor/internal/session"
	"pwl-editor/pkg/geometry"
)

func pt(x, y float64) geometry.Point2D { return geometry.NewPoint2D(x, y) }

func TestPrimaryPressSelectsNearbyPoint(t *testing.T) {
	s := session.New()
	s.InsertAt(5, 2)
	s.ClearSelection()
	c := New(s)

	c.Press(pt(5.2, 1.9), ButtonPrimary, false)

	assert.Equal(t, Idle, c.State())
	assert.Equal(t, 2, s.Selected())
}

func TestPrimaryPressAwayFromPointsClearsSelection(t *testing.T) {
	s := session.New()
	s.InsertAt(5, 2)
	c := New(s)

	c.Press(pt(8, -4), ButtonPrimary, false)

	assert.Equal(t, Idle, c.State())
	assert.Equal(t, session.NoSelection, s.Selected())
	assert.Equal(t, 3, s.PointCount(), "single click does not insert")
}

func TestDoubleClickInserts(t *testing.T) {
	s := session.New()
	c := New(s)

	c.Press(pt(5, 2), ButtonPrimary, true)

	assert.Equal(t, Idle, c.State())
	require.Equal(t, 3, s.PointCount())
	pts := s.Points()
	assert.InDelta(t, 5e-6, pts[2].Time, 1e-18)
	assert.InDelta(t, 2e-3, pts[2].Value, 1e-15)
}

func TestDoubleClickNearPointSelectsInstead(t *testing.T) {
	s := session.New()
	s.InsertAt(5, 2)
	s.ClearSelection()
	c := New(s)

	c.Press(pt(5.1, 2.1), ButtonPrimary, true)

	assert.Equal(t, 3, s.PointCount(), "no insert when a point is in range")
	assert.Equal(t, 2, s.Selected())
}

func TestPanDrag(t *testing.T) {
	s := session.New()
	c := New(s)

	c.Press(pt(5, 0), ButtonSecondary, false)
	assert.Equal(t, Panning, c.State())

	// Cursor moved left and down one display unit: the view follows.
	c.Move(pt(4, -1), false)
	v := s.View()
	assert.InDelta(t, 1.0, v.XMin, 1e-12)
	assert.InDelta(t, 11.0, v.XMax, 1e-12)
	assert.InDelta(t, -4.0, v.YMin, 1e-12)

	c.Release(ButtonSecondary)
	assert.Equal(t, Idle, c.State())
}

func TestPanDragMiddleButton(t *testing.T) {
	s := session.New()
	c := New(s)

	c.Press(pt(3, 3), ButtonMiddle, false)
	assert.Equal(t, Panning, c.State())
	c.Release(ButtonPrimary)
	assert.Equal(t, Panning, c.State(), "only the pan button ends the pan")
	c.Release(ButtonMiddle)
	assert.Equal(t, Idle, c.State())
}

func TestPanClampAtTimeOrigin(t *testing.T) {
	s := session.New()
	c := New(s)

	c.Press(pt(2, 0), ButtonSecondary, false)
	c.Move(pt(7, 0), false) // drag right: view pans left, clamped at zero

	v := s.View()
	assert.Equal(t, 0.0, v.XMin)
	assert.InDelta(t, 10.0, v.XSpan(), 1e-12)
}

func TestDragSelectedPoint(t *testing.T) {
	s := session.New()
	s.InsertAt(5, 2)
	c := New(s)

	c.Move(pt(6, 3), true)
	assert.Equal(t, DraggingPoint, c.State())

	c.Move(pt(7, 1), true)
	pts := s.Points()
	assert.InDelta(t, 7e-6, pts[2].Time, 1e-18)
	assert.InDelta(t, 1e-3, pts[2].Value, 1e-15)

	c.Release(ButtonPrimary)
	assert.Equal(t, Idle, c.State())
}

func TestMoveWithoutSelectionStaysIdle(t *testing.T) {
	s := session.New()
	c := New(s)

	c.Move(pt(6, 3), true)
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, 2, s.PointCount())
}

func TestScrollZoom(t *testing.T) {
	s := session.New()
	c := New(s)

	c.Scroll(pt(5, 0), true, ModifierNone)
	v := s.View()
	assert.InDelta(t, 9.0, v.XSpan(), 1e-12)
	assert.InDelta(t, 9.0, v.YSpan(), 1e-12)

	c.Scroll(pt(5, 0), false, ModifierNone)
	v = s.View()
	assert.InDelta(t, 9.9, v.XSpan(), 1e-12)
}

func TestScrollZoomAxisModifiers(t *testing.T) {
	s := session.New()
	c := New(s)

	c.Scroll(pt(5, 0), true, ModifierCtrl)
	v := s.View()
	assert.InDelta(t, 10.0, v.XSpan(), 1e-12, "Ctrl restricts zoom to y")
	assert.InDelta(t, 9.0, v.YSpan(), 1e-12)

	c.Scroll(pt(5, 0), true, ModifierShift)
	v = s.View()
	assert.InDelta(t, 9.0, v.XSpan(), 1e-12, "Shift restricts zoom to x")
	assert.InDelta(t, 9.0, v.YSpan(), 1e-12)
}
