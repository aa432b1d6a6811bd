// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"pwl-editor/internal/session"
	"pwl-editor/internal/units"
	"pwl-editor/internal/version"
	"pwl-editor/internal/view"
	"pwl-editor/ui/plot"
)

const helpText = "Left: select/drag points, Double-click: add | " +
	"Wheel: zoom, Wheel+Ctrl/Shift: Y/X zoom, Middle/Right+drag: pan"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app     fyne.App
	session *session.Session
	plot    *plot.Widget

	sourceSelect    *widget.Select
	timeUnitSelect  *widget.Select
	valueUnitSelect *widget.Select
	gridCheck       *widget.Check
	timeGridEntry   *widget.Entry
	valueGridEntry  *widget.Entry
	rangeEntries    rangeEntries
	statusLabel     *widget.Label
	pwlOutput       *widget.Entry
}

type rangeEntries struct {
	xMin, xMax, yMin, yMax *widget.Entry
}

// New creates the main window for a session.
func New(fyneApp fyne.App, sess *session.Session) *MainWindow {
	win := fyneApp.NewWindow("SPICE PWL Generator")

	mw := &MainWindow{
		Window:  win,
		app:     fyneApp,
		session: sess,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.refreshOutputs()

	win.Resize(fyne.NewSize(1200, 800))
	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.plot = plot.New(mw.session)
	mw.plot.OnStatus(func(text string) {
		if text == "" {
			mw.updateStatus()
			return
		}
		mw.statusLabel.SetText(text)
	})

	controls := mw.createControls()
	gridRow := mw.createGridRow()
	sidePanel := mw.createSidePanel()

	mw.statusLabel = widget.NewLabel(helpText)
	mw.statusLabel.Truncation = fyne.TextTruncateEllipsis

	mw.pwlOutput = widget.NewMultiLineEntry()
	mw.pwlOutput.Wrapping = fyne.TextWrapBreak
	mw.pwlOutput.Disable() // display/copy surface only

	bottom := container.NewBorder(nil, nil, nil, nil,
		container.NewVBox(mw.statusLabel, mw.pwlOutput))

	content := container.NewBorder(
		container.NewVBox(controls, gridRow), // top
		bottom,                               // bottom
		nil,                                  // left
		sidePanel,                            // right
		mw.plot,                              // center
	)
	mw.SetContent(content)
}

// createControls builds the source/unit selectors and the action buttons.
func (mw *MainWindow) createControls() fyne.CanvasObject {
	mw.sourceSelect = widget.NewSelect([]string{"Voltage", "Current"}, func(s string) {
		mw.session.SetSourceKind(units.ParseSourceKind(s))
	})
	mw.sourceSelect.SetSelected(mw.session.Units().Kind().String())

	mw.timeUnitSelect = widget.NewSelect(units.TimeTable.Symbols, func(s string) {
		mw.session.SetTimeUnit(s)
	})
	mw.timeUnitSelect.SetSelected(mw.session.Units().TimeUnit())

	mw.valueUnitSelect = widget.NewSelect(
		units.ValueTable(mw.session.Units().Kind()).Symbols,
		func(s string) { mw.session.SetValueUnit(s) },
	)
	mw.valueUnitSelect.SetSelected(mw.session.Units().ValueUnit())

	return container.NewHBox(
		widget.NewLabel("Source Type:"), mw.sourceSelect,
		widget.NewLabel("Time Unit:"), mw.timeUnitSelect,
		widget.NewLabel("Value Unit:"), mw.valueUnitSelect,
		widget.NewButton("Add Point", mw.onAddPoint),
		widget.NewButton("Delete Point", mw.onDeletePoint),
		widget.NewButton("Generate PWL", mw.onGeneratePWL),
		widget.NewButton("Save", mw.onSave),
		widget.NewButton("Load", mw.onLoad),
	)
}

// createGridRow builds the grid-snap toggle and step entries.
func (mw *MainWindow) createGridRow() fyne.CanvasObject {
	mw.gridCheck = widget.NewCheck("Grid Snap", func(enabled bool) {
		mw.session.SetGridEnabled(enabled)
	})
	mw.gridCheck.SetChecked(mw.session.Grid().Enabled)

	mw.timeGridEntry = numberEntry(mw.session.Grid().TimeStep, mw.onGridSizeChange)
	mw.valueGridEntry = numberEntry(mw.session.Grid().ValueStep, mw.onGridSizeChange)

	return container.NewHBox(
		mw.gridCheck,
		widget.NewLabel("Time Grid:"), mw.timeGridEntry,
		widget.NewLabel("Value Grid:"), mw.valueGridEntry,
	)
}

// createSidePanel builds the view-range controls.
func (mw *MainWindow) createSidePanel() fyne.CanvasObject {
	v := mw.session.View()
	mw.rangeEntries = rangeEntries{
		xMin: numberEntry(v.XMin, mw.onRangeChange),
		xMax: numberEntry(v.XMax, mw.onRangeChange),
		yMin: numberEntry(v.YMin, mw.onRangeChange),
		yMax: numberEntry(v.YMax, mw.onRangeChange),
	}

	return container.NewVBox(
		widget.NewLabel("Y Range"),
		widget.NewLabel("Max:"), mw.rangeEntries.yMax,
		widget.NewLabel("Min:"), mw.rangeEntries.yMin,
		widget.NewLabel("X Range"),
		widget.NewLabel("Max:"), mw.rangeEntries.xMax,
		widget.NewLabel("Min:"), mw.rangeEntries.xMin,
		widget.NewButton("Auto Scale", func() { mw.session.AutoScale() }),
		widget.NewButton("Zoom In", func() { mw.session.Zoom(0.5) }),
		widget.NewButton("Zoom Out", func() { mw.session.Zoom(2.0) }),
		widget.NewButton("Pan Left", mw.panButton((*view.Range).PanLeft)),
		widget.NewButton("Pan Right", mw.panButton((*view.Range).PanRight)),
		widget.NewButton("Pan Up", mw.panButton((*view.Range).PanUp)),
		widget.NewButton("Pan Down", mw.panButton((*view.Range).PanDown)),
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Load...", mw.onLoad),
		fyne.NewMenuItem("Save...", mw.onSave),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Generate PWL", mw.onGeneratePWL),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Auto Scale", func() { mw.session.AutoScale() }),
		fyne.NewMenuItem("Zoom In", func() { mw.session.Zoom(0.5) }),
		fyne.NewMenuItem("Zoom Out", func() { mw.session.Zoom(2.0) }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			dialog.ShowInformation("About",
				"SPICE PWL Generator "+version.String(), mw.Window)
		}),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, helpMenu))
}

// setupEventHandlers keeps the chrome in sync with the session.
func (mw *MainWindow) setupEventHandlers() {
	mw.session.On(session.EventPointsChanged, func(interface{}) {
		mw.refreshOutputs()
	})
	mw.session.On(session.EventSelectionChanged, func(interface{}) {
		mw.updateStatus()
	})
	mw.session.On(session.EventUnitsChanged, func(interface{}) {
		mw.refreshUnitSelectors()
		mw.refreshOutputs()
	})
	mw.session.On(session.EventViewChanged, func(interface{}) {
		mw.refreshRangeEntries()
	})
	mw.session.On(session.EventGridChanged, func(interface{}) {
		mw.refreshGridControls()
	})
	mw.session.On(session.EventDocumentLoaded, func(interface{}) {
		mw.refreshUnitSelectors()
		mw.refreshGridControls()
		mw.refreshRangeEntries()
		mw.refreshOutputs()
	})
}

func (mw *MainWindow) onAddPoint() {
	mw.session.AddPoint()
}

func (mw *MainWindow) onDeletePoint() {
	if err := mw.session.DeleteSelected(); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onGeneratePWL() {
	text := mw.session.PWLText()
	mw.pwlOutput.SetText(text)
	mw.Clipboard().SetContent(text)
	dialog.ShowInformation("PWL Generated", "PWL command copied to clipboard", mw.Window)
}

func (mw *MainWindow) onSave() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := mw.session.Save(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	fd.SetFileName("waveform.json")
	fd.Show()
}

func (mw *MainWindow) onLoad() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		if err := mw.session.Load(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	fd.Show()
}

func (mw *MainWindow) onGridSizeChange() {
	timeStep := parseFloat(mw.timeGridEntry.Text, mw.session.Grid().TimeStep)
	valueStep := parseFloat(mw.valueGridEntry.Text, mw.session.Grid().ValueStep)
	mw.session.SetGridSteps(timeStep, valueStep)
}

func (mw *MainWindow) onRangeChange() {
	v := mw.session.View()
	mw.session.SetXRange(
		parseFloat(mw.rangeEntries.xMin.Text, v.XMin),
		parseFloat(mw.rangeEntries.xMax.Text, v.XMax),
	)
	mw.session.SetYRange(
		parseFloat(mw.rangeEntries.yMin.Text, v.YMin),
		parseFloat(mw.rangeEntries.yMax.Text, v.YMax),
	)
}

func (mw *MainWindow) refreshOutputs() {
	mw.pwlOutput.SetText(mw.session.PWLText())
	mw.updateStatus()
}

func (mw *MainWindow) updateStatus() {
	if info := mw.session.SelectedInfo(); info != "" {
		mw.statusLabel.SetText(info + " - Press Delete Point to remove")
		return
	}
	text := helpText
	if mw.session.Grid().Enabled {
		text += " | Grid: ON"
	}
	mw.statusLabel.SetText(text)
}

// refreshUnitSelectors re-populates the value-unit options after a source
// kind switch and reflects the validated unit symbols.
func (mw *MainWindow) refreshUnitSelectors() {
	u := mw.session.Units()
	mw.sourceSelect.SetSelected(u.Kind().String())
	mw.timeUnitSelect.SetSelected(u.TimeUnit())
	mw.valueUnitSelect.Options = units.ValueTable(u.Kind()).Symbols
	mw.valueUnitSelect.SetSelected(u.ValueUnit())
	mw.valueUnitSelect.Refresh()
}

func (mw *MainWindow) refreshGridControls() {
	g := mw.session.Grid()
	mw.gridCheck.SetChecked(g.Enabled)
	mw.timeGridEntry.SetText(formatFloat(g.TimeStep))
	mw.valueGridEntry.SetText(formatFloat(g.ValueStep))
	mw.updateStatus()
}

func (mw *MainWindow) refreshRangeEntries() {
	v := mw.session.View()
	mw.rangeEntries.xMin.SetText(formatFloat(v.XMin))
	mw.rangeEntries.xMax.SetText(formatFloat(v.XMax))
	mw.rangeEntries.yMin.SetText(formatFloat(v.YMin))
	mw.rangeEntries.yMax.SetText(formatFloat(v.YMax))
}

func (mw *MainWindow) panButton(dir func(*view.Range)) func() {
	return func() { mw.session.Pan(dir) }
}

func numberEntry(value float64, onSubmit func()) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(formatFloat(value))
	e.OnSubmitted = func(string) { onSubmit() }
	return e
}

func parseFloat(text string, fallback float64) float64 {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fallback
	}
	return v
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
