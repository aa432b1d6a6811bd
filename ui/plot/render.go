package plot

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"pwl-editor/internal/grid"
	"pwl-editor/internal/session"
	"pwl-editor/internal/view"
	"pwl-editor/internal/waveform"
)

// maxGridLines caps the generated grid lines per axis so a degenerate tiny
// grid step cannot produce unbounded output.
const maxGridLines = 1000

// Frame is one renderable snapshot of the editor state, with breakpoints
// already converted to display units.
type Frame struct {
	Points     []waveform.Breakpoint
	Selected   int
	View       view.Range
	Grid       grid.Config
	TimeLabel  string
	ValueLabel string
}

var (
	backgroundColor = color.RGBA{255, 255, 255, 255}
	axisColor       = color.RGBA{60, 60, 60, 255}
	gridColor       = color.RGBA{190, 190, 190, 255}
	lineColor       = color.RGBA{30, 80, 200, 255}
	markerColor     = color.RGBA{30, 80, 200, 255}
	selectedColor   = color.RGBA{220, 40, 40, 255}
	selectedEdge    = color.RGBA{130, 10, 10, 255}
	labelColor      = color.RGBA{80, 80, 80, 255}
)

const (
	markerRadius      = 4
	selectedRadius    = 6
	axisTickCount     = 5
	leftGutter        = 8
	bottomGutter      = 16
	annotationOffsetX = 6
	annotationOffsetY = -6
)

// Render draws a frame into a fresh RGBA image of the given pixel size.
func Render(f Frame, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fill(img, backgroundColor)
	if w <= 0 || h <= 0 {
		return img
	}

	toPx := func(x, y float64) (int, int) {
		px := (x - f.View.XMin) / f.View.XSpan() * float64(w)
		py := (f.View.YMax - y) / f.View.YSpan() * float64(h)
		return int(math.Round(px)), int(math.Round(py))
	}

	if f.Grid.Enabled {
		drawGrid(img, f, toPx)
	}
	drawTicks(img, f, w, h)
	drawPolyline(img, f, toPx)
	drawMarkers(img, f, toPx)
	drawAxisLabels(img, f, w, h)

	return img
}

// GridLines returns the grid-line positions for one axis: multiples of step
// within [min, max], capped at maxGridLines entries.
func GridLines(min, max, step float64) []float64 {
	if step <= 0 || max <= min {
		return nil
	}
	var lines []float64
	x := math.Floor(min/step) * step
	for count := 0; x <= max && count < maxGridLines; count++ {
		if x >= min {
			lines = append(lines, x)
		}
		x += step
	}
	return lines
}

func drawGrid(img *image.RGBA, f Frame, toPx func(x, y float64) (int, int)) {
	b := img.Bounds()
	for _, x := range GridLines(f.View.XMin, f.View.XMax, f.Grid.TimeStep) {
		px, _ := toPx(x, 0)
		drawVLine(img, px, b.Min.Y, b.Max.Y-1, gridColor)
	}
	for _, y := range GridLines(f.View.YMin, f.View.YMax, f.Grid.ValueStep) {
		_, py := toPx(0, y)
		drawHLine(img, b.Min.X, b.Max.X-1, py, gridColor)
	}
}

// drawTicks draws evenly spaced tick labels along the bottom and left edges.
func drawTicks(img *image.RGBA, f Frame, w, h int) {
	for i := 0; i <= axisTickCount; i++ {
		frac := float64(i) / float64(axisTickCount)

		x := f.View.XMin + frac*f.View.XSpan()
		px := int(frac * float64(w))
		drawText(img, px+2, h-4, formatTick(x), labelColor)

		y := f.View.YMin + frac*f.View.YSpan()
		py := int((1 - frac) * float64(h))
		if py > 12 {
			drawText(img, leftGutter, py-2, formatTick(y), labelColor)
		}
	}
}

func drawPolyline(img *image.RGBA, f Frame, toPx func(x, y float64) (int, int)) {
	for i := 0; i < len(f.Points)-1; i++ {
		x0, y0 := toPx(f.Points[i].Time, f.Points[i].Value)
		x1, y1 := toPx(f.Points[i+1].Time, f.Points[i+1].Value)
		drawLine(img, x0, y0, x1, y1, lineColor)
	}
}

func drawMarkers(img *image.RGBA, f Frame, toPx func(x, y float64) (int, int)) {
	for i, p := range f.Points {
		px, py := toPx(p.Time, p.Value)
		if i == f.Selected {
			fillCircle(img, px, py, selectedRadius, selectedColor)
			drawCircle(img, px, py, selectedRadius, selectedEdge)
			drawCircle(img, px, py, selectedRadius+1, selectedEdge)
		} else {
			fillCircle(img, px, py, markerRadius, markerColor)
		}
		annotation := fmt.Sprintf("(%.3f, %.3f)", p.Time, p.Value)
		drawText(img, px+annotationOffsetX, py+annotationOffsetY, annotation, labelColor)
	}
}

func drawAxisLabels(img *image.RGBA, f Frame, w, h int) {
	drawText(img, w/2-len(f.TimeLabel)*7/2, h-bottomGutter, f.TimeLabel, axisColor)
	drawText(img, leftGutter, 14, f.ValueLabel, axisColor)
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func fill(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func drawHLine(img *image.RGBA, x0, x1, y int, c color.RGBA) {
	if y < img.Bounds().Min.Y || y >= img.Bounds().Max.Y {
		return
	}
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y, c)
	}
}

func drawVLine(img *image.RGBA, x, y0, y1 int, c color.RGBA) {
	if x < img.Bounds().Min.X || x >= img.Bounds().Max.X {
		return
	}
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x, y, c)
	}
}

// drawLine draws a line segment with the integer midpoint algorithm.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		setPixel(img, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func drawCircle(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	x, y := r, 0
	err := 1 - r
	for x >= y {
		setPixel(img, cx+x, cy+y, c)
		setPixel(img, cx-x, cy+y, c)
		setPixel(img, cx+x, cy-y, c)
		setPixel(img, cx-x, cy-y, c)
		setPixel(img, cx+y, cy+x, c)
		setPixel(img, cx-y, cy+x, c)
		setPixel(img, cx+y, cy-x, c)
		setPixel(img, cx-y, cy-x, c)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

func fillCircle(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				setPixel(img, cx+dx, cy+dy, c)
			}
		}
	}
}

func setPixel(img *image.RGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetRGBA(x, y, c)
	}
}

func drawText(img *image.RGBA, x, y int, s string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// SnapshotFrame builds a render frame from the current session state.
func SnapshotFrame(s *session.Session) Frame {
	u := s.Units()
	return Frame{
		Points:     s.DisplayPoints(),
		Selected:   s.Selected(),
		View:       s.View(),
		Grid:       s.Grid(),
		TimeLabel:  fmt.Sprintf("Time (%s)", u.TimeUnit()),
		ValueLabel: fmt.Sprintf("%s (%s)", u.Kind(), u.ValueUnit()),
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
