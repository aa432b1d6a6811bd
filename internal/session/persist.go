package session

import (
	"fmt"

	"pwl-editor/internal/document"
	"pwl-editor/internal/grid"
	"pwl-editor/internal/units"
	"pwl-editor/internal/view"
	"pwl-editor/internal/waveform"
)

// Document builds the persisted form of the session. It never mutates the
// session state.
func (s *Session) Document() document.Document {
	doc := document.Default()
	doc.SetBreakpoints(s.points.Points())
	doc.SourceType = s.units.Kind().String()
	doc.TimeUnit = s.units.TimeUnit()
	doc.ValueUnit = s.units.ValueUnit()
	doc.XRange = [2]float64{s.view.XMin, s.view.XMax}
	doc.YRange = [2]float64{s.view.YMin, s.view.YMax}
	doc.GridSnapEnabled = s.grid.Enabled
	doc.TimeGridSize = s.grid.TimeStep
	doc.ValueGridSize = s.grid.ValueStep
	return doc
}

// Save writes the session to a document file. On failure the in-memory
// state is untouched apart from the unchanged modified flag.
func (s *Session) Save(path string) error {
	if err := s.Document().Save(path); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	s.documentPath = path
	s.modified = false
	s.emit(EventDocumentSaved, path)
	return nil
}

// Load reads a document file and replaces the session state. The file is
// parsed into a temporary document first; a malformed file returns an error
// and leaves the live state completely untouched.
func (s *Session) Load(path string) error {
	doc, err := document.Load(path)
	if err != nil {
		return err
	}
	s.applyDocument(doc)
	s.documentPath = path
	s.modified = false
	s.emit(EventDocumentLoaded, path)
	return nil
}

func (s *Session) applyDocument(doc document.Document) {
	s.points = waveform.NewSet(doc.Breakpoints()...)

	s.units = units.NewSystem()
	s.units.SetKind(units.ParseSourceKind(doc.SourceType))
	s.units.SetTimeUnit(doc.TimeUnit)
	s.units.SetValueUnit(doc.ValueUnit)

	s.grid = grid.Config{Enabled: doc.GridSnapEnabled}
	s.grid.SetSteps(doc.TimeGridSize, doc.ValueGridSize)

	s.view = view.Range{
		XMin: doc.XRange[0], XMax: doc.XRange[1],
		YMin: doc.YRange[0], YMax: doc.YRange[1],
	}
	s.view.SetX(s.view.XMin, s.view.XMax)
	s.view.SetY(s.view.YMin, s.view.YMax)

	s.setSelected(NoSelection)
	s.emit(EventPointsChanged, nil)
	s.emit(EventUnitsChanged, nil)
	s.emit(EventGridChanged, nil)
	s.emit(EventViewChanged, nil)
}
