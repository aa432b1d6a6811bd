// Package document provides the persisted JSON form of an editing session.
package document

import (
	"encoding/json"
	"fmt"
	"os"

	"pwl-editor/internal/grid"
	"pwl-editor/internal/units"
	"pwl-editor/internal/view"
	"pwl-editor/internal/waveform"
)

// Document is the on-disk representation of an editing session. Breakpoints
// are stored in base SI units; the view ranges and grid steps are in the
// selected display units.
type Document struct {
	Points          [][2]float64 `json:"pwl_points"`
	SourceType      string       `json:"source_type"`
	TimeUnit        string       `json:"time_unit"`
	ValueUnit       string       `json:"value_unit"`
	XRange          [2]float64   `json:"x_range"`
	YRange          [2]float64   `json:"y_range"`
	GridSnapEnabled bool         `json:"grid_snap_enabled"`
	TimeGridSize    float64      `json:"time_grid_size"`
	ValueGridSize   float64      `json:"value_grid_size"`
}

// Default returns a document populated with the documented field defaults.
func Default() Document {
	return Document{
		Points:          [][2]float64{{0, 0}, {1e-6, 0}},
		SourceType:      units.Voltage.String(),
		TimeUnit:        units.DefaultTimeUnit,
		ValueUnit:       units.DefaultVoltageUnit,
		XRange:          [2]float64{0, 10},
		YRange:          [2]float64{-5, 5},
		GridSnapEnabled: false,
		TimeGridSize:    1.0,
		ValueGridSize:   1.0,
	}
}

// Load reads and parses a document. Missing fields keep their defaults
// because parsing starts from Default(); a fully unparsable file returns an
// error without producing a document.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	return Parse(data)
}

// Parse decodes document JSON, applying defaults for absent fields and
// correcting invariant violations in the stored values.
func Parse(data []byte) (Document, error) {
	doc := Default()
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parse document: %w", err)
	}
	doc.sanitize()
	return doc, nil
}

// Save writes the document as indented JSON.
func (d Document) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// sanitize applies the model invariants to loaded values: a usable point
// list, a valid source kind and unit symbols, positive grid steps, and a
// non-degenerate view rectangle.
func (d *Document) sanitize() {
	if len(d.Points) < waveform.MinPoints {
		d.Points = Default().Points
	}
	for i := range d.Points {
		if d.Points[i][0] < 0 {
			d.Points[i][0] = 0
		}
	}

	kind := units.ParseSourceKind(d.SourceType)
	d.SourceType = kind.String()
	if !units.TimeTable.Contains(d.TimeUnit) {
		d.TimeUnit = units.DefaultTimeUnit
	}
	if !units.ValueTable(kind).Contains(d.ValueUnit) {
		d.ValueUnit = units.DefaultValueUnit(kind)
	}

	if d.TimeGridSize <= 0 {
		d.TimeGridSize = grid.MinStep
	}
	if d.ValueGridSize <= 0 {
		d.ValueGridSize = grid.MinStep
	}

	r := view.Range{XMin: d.XRange[0], XMax: d.XRange[1], YMin: d.YRange[0], YMax: d.YRange[1]}
	r.SetX(r.XMin, r.XMax)
	r.SetY(r.YMin, r.YMax)
	d.XRange = [2]float64{r.XMin, r.XMax}
	d.YRange = [2]float64{r.YMin, r.YMax}
}

// Breakpoints returns the stored points as model breakpoints.
func (d Document) Breakpoints() []waveform.Breakpoint {
	pts := make([]waveform.Breakpoint, len(d.Points))
	for i, p := range d.Points {
		pts[i] = waveform.Breakpoint{Time: p[0], Value: p[1]}
	}
	return pts
}

// SetBreakpoints stores model breakpoints in the document.
func (d *Document) SetBreakpoints(points []waveform.Breakpoint) {
	d.Points = make([][2]float64, len(points))
	for i, p := range points {
		d.Points[i] = [2]float64{p.Time, p.Value}
	}
}
