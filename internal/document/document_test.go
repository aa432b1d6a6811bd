package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pwl-editor/internal/waveform"
)

func TestParseFillsDefaults(t *testing.T) {
	doc, err := Parse([]byte(`{"pwl_points": [[0, 1], [2e-6, -1], [5e-6, 0]]}`))
	require.NoError(t, err)

	assert.Equal(t, [][2]float64{{0, 1}, {2e-6, -1}, {5e-6, 0}}, doc.Points)
	assert.Equal(t, "Voltage", doc.SourceType)
	assert.Equal(t, "μs", doc.TimeUnit)
	assert.Equal(t, "mV", doc.ValueUnit)
	assert.Equal(t, [2]float64{0, 10}, doc.XRange)
	assert.Equal(t, [2]float64{-5, 5}, doc.YRange)
	assert.False(t, doc.GridSnapEnabled)
	assert.Equal(t, 1.0, doc.TimeGridSize)
	assert.Equal(t, 1.0, doc.ValueGridSize)
}

func TestParseEmptyObjectIsDefault(t *testing.T) {
	doc, err := Parse([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, Default(), doc)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte(`{"pwl_points": [[0,`))
	assert.Error(t, err)
}

func TestParseSanitizes(t *testing.T) {
	doc, err := Parse([]byte(`{
		"pwl_points": [[-1, 2], [3e-6, 0]],
		"source_type": "Current",
		"value_unit": "kV",
		"time_grid_size": -4,
		"x_range": [-2, -2]
	}`))
	require.NoError(t, err)

	assert.Equal(t, 0.0, doc.Points[0][0], "negative time clamped")
	assert.Equal(t, "Current", doc.SourceType)
	assert.Equal(t, "mA", doc.ValueUnit, "kV is not a current unit")
	assert.Equal(t, 0.001, doc.TimeGridSize)
	assert.GreaterOrEqual(t, doc.XRange[0], 0.0)
	assert.Greater(t, doc.XRange[1], doc.XRange[0])
}

func TestParseTooFewPointsUsesDefaults(t *testing.T) {
	doc, err := Parse([]byte(`{"pwl_points": [[1e-6, 3]]}`))
	require.NoError(t, err)
	assert.Equal(t, Default().Points, doc.Points)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	doc := Default()
	doc.SetBreakpoints([]waveform.Breakpoint{{Time: 0, Value: 0}, {Time: 2e-6, Value: 1.5}})
	doc.GridSnapEnabled = true
	doc.TimeGridSize = 0.5

	path := filepath.Join(t.TempDir(), "wave.json")
	require.NoError(t, doc.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)
	assert.Equal(t, []waveform.Breakpoint{{Time: 0, Value: 0}, {Time: 2e-6, Value: 1.5}},
		loaded.Breakpoints())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
