// Package units provides SI prefix tables and real/display value conversion.
package units

// SourceKind selects whether the edited source is a voltage or current source.
type SourceKind int

const (
	Voltage SourceKind = iota
	Current
)

// String returns the kind name as it appears in documents and the UI.
func (k SourceKind) String() string {
	if k == Current {
		return "Current"
	}
	return "Voltage"
}

// ParseSourceKind converts a document string to a SourceKind.
// Unrecognized strings fall back to Voltage.
func ParseSourceKind(s string) SourceKind {
	if s == "Current" {
		return Current
	}
	return Voltage
}

// Table is an immutable mapping from unit symbol to scale factor,
// where real = display * scale. Symbols keeps combobox ordering.
type Table struct {
	Symbols []string
	scales  map[string]float64
}

type unit struct {
	symbol string
	scale  float64
}

func newTable(units ...unit) Table {
	t := Table{scales: make(map[string]float64, len(units))}
	for _, u := range units {
		t.Symbols = append(t.Symbols, u.symbol)
		t.scales[u.symbol] = u.scale
	}
	return t
}

var (
	// TimeTable covers femtoseconds through seconds.
	TimeTable = newTable(
		unit{"fs", 1e-15}, unit{"ps", 1e-12}, unit{"ns", 1e-9},
		unit{"μs", 1e-6}, unit{"ms", 1e-3}, unit{"s", 1.0},
	)

	// VoltageTable covers microvolts through kilovolts.
	VoltageTable = newTable(
		unit{"μV", 1e-6}, unit{"mV", 1e-3}, unit{"V", 1.0}, unit{"kV", 1e3},
	)

	// CurrentTable covers picoamps through amps.
	CurrentTable = newTable(
		unit{"pA", 1e-12}, unit{"nA", 1e-9}, unit{"μA", 1e-6},
		unit{"mA", 1e-3}, unit{"A", 1.0},
	)
)

// Default unit symbols for a fresh session and for kind switches.
const (
	DefaultTimeUnit    = "μs"
	DefaultVoltageUnit = "mV"
	DefaultCurrentUnit = "mA"
)

// Scale returns the scale factor for a symbol and whether it is in the table.
func (t Table) Scale(symbol string) (float64, bool) {
	s, ok := t.scales[symbol]
	return s, ok
}

// Contains reports whether the symbol is part of the table.
func (t Table) Contains(symbol string) bool {
	_, ok := t.scales[symbol]
	return ok
}

// ValueTable returns the value-unit table for a source kind.
func ValueTable(kind SourceKind) Table {
	if kind == Current {
		return CurrentTable
	}
	return VoltageTable
}

// DefaultValueUnit returns the fallback value unit for a source kind.
func DefaultValueUnit(kind SourceKind) string {
	if kind == Current {
		return DefaultCurrentUnit
	}
	return DefaultVoltageUnit
}

// System tracks the active source kind and the selected time and value units.
type System struct {
	kind      SourceKind
	timeUnit  string
	valueUnit string
}

// NewSystem creates a unit system with the session defaults (Voltage, μs, mV).
func NewSystem() *System {
	return &System{
		kind:      Voltage,
		timeUnit:  DefaultTimeUnit,
		valueUnit: DefaultVoltageUnit,
	}
}

// Kind returns the active source kind.
func (s *System) Kind() SourceKind { return s.kind }

// TimeUnit returns the selected time unit symbol.
func (s *System) TimeUnit() string { return s.timeUnit }

// ValueUnit returns the selected value unit symbol.
func (s *System) ValueUnit() string { return s.valueUnit }

// TimeScale returns the scale factor of the selected time unit.
func (s *System) TimeScale() float64 {
	scale, _ := TimeTable.Scale(s.timeUnit)
	return scale
}

// ValueScale returns the scale factor of the selected value unit.
func (s *System) ValueScale() float64 {
	scale, _ := ValueTable(s.kind).Scale(s.valueUnit)
	return scale
}

// SetKind switches the source kind. If the current value unit is not part of
// the new kind's table it is replaced with the kind default. Returns true
// when the value unit changed, so callers know to refresh derived state.
func (s *System) SetKind(kind SourceKind) bool {
	s.kind = kind
	if !ValueTable(kind).Contains(s.valueUnit) {
		s.valueUnit = DefaultValueUnit(kind)
		return true
	}
	return false
}

// SetTimeUnit selects a time unit. Unknown symbols leave the system unchanged.
func (s *System) SetTimeUnit(symbol string) bool {
	if !TimeTable.Contains(symbol) {
		return false
	}
	s.timeUnit = symbol
	return true
}

// SetValueUnit selects a value unit from the active kind's table.
// Unknown symbols leave the system unchanged.
func (s *System) SetValueUnit(symbol string) bool {
	if !ValueTable(s.kind).Contains(symbol) {
		return false
	}
	s.valueUnit = symbol
	return true
}

// ToRealTime converts a display-unit time to seconds.
func (s *System) ToRealTime(display float64) float64 { return display * s.TimeScale() }

// ToDisplayTime converts seconds to the selected display unit.
func (s *System) ToDisplayTime(real float64) float64 { return real / s.TimeScale() }

// ToRealValue converts a display-unit value to volts or amps.
func (s *System) ToRealValue(display float64) float64 { return display * s.ValueScale() }

// ToDisplayValue converts volts or amps to the selected display unit.
func (s *System) ToDisplayValue(real float64) float64 { return real / s.ValueScale() }
