// Package spice renders a breakpoint set as a SPICE PWL source description.
package spice

import (
	"sort"
	"strconv"
	"strings"

	"pwl-editor/internal/units"
	"pwl-editor/internal/waveform"
)

// InsufficientPoints is the transient message shown when fewer than two
// breakpoints exist. It is display-only and never written to a document.
const InsufficientPoints = "Need at least 2 points"

// sigDigits is the significant-digit precision of exported numbers.
const sigDigits = 6

// Format renders the breakpoints as "PWL(t0 v0 t1 v1 ...)" with times and
// values in base SI units, 6 significant digits each, sorted by time.
func Format(points []waveform.Breakpoint) string {
	if len(points) < waveform.MinPoints {
		return InsufficientPoints
	}

	sorted := append([]waveform.Breakpoint(nil), points...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})

	var b strings.Builder
	b.WriteString("PWL(")
	for i, p := range sorted {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(formatNumber(p.Time))
		b.WriteByte(' ')
		b.WriteString(formatNumber(p.Value))
	}
	b.WriteByte(')')
	return b.String()
}

// SourceName returns the SPICE element letter for a source kind:
// "V" for voltage sources, "I" for current sources.
func SourceName(kind units.SourceKind) string {
	if kind == units.Current {
		return "I"
	}
	return "V"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', sigDigits, 64)
}
