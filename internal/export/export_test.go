package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/allvis/internal/config"
	"github.com/san-kum/allvis/internal/dynamo"
	"github.com/san-kum/allvis/internal/experiment"
	"github.com/san-kum/allvis/internal/sim"
	"github.com/san-kum/allvis/internal/viz"
)

func twoSumView(t *testing.T) experiment.TraceView {
	t.Helper()
	tv, err := experiment.NewRegistry().Trace("twosum", config.DefaultConfig())
	require.NoError(t, err)
	return tv
}

func TestTraceJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TraceJSON(&buf, twoSumView(t)))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "twosum", doc["visualizer"])
	assert.Equal(t, "success", doc["result"])
	assert.Len(t, doc["steps"], 2)
}

func TestTraceCSV(t *testing.T) {
	var buf bytes.Buffer
	tv := twoSumView(t)
	require.NoError(t, TraceCSV(&buf, tv))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, tv.Len()+1)
	assert.Equal(t, "index", records[0][0])
	assert.Equal(t, []string{"1", "true", "success"}, records[2][:3])
}

func TestResultCSV(t *testing.T) {
	r := &sim.Result{
		Times: []float64{0, 0.5},
		Series: map[string][]float64{
			"y": {1, 2},
			"x": {3},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, ResultCSV(&buf, r))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"time", "x", "y"}, records[0])
	assert.Equal(t, []string{"0.500000", "", "2.000000"}, records[2])
}

func TestResultJSON(t *testing.T) {
	r := &sim.Result{Times: []float64{0}, StepsTaken: 3, Finished: true, Metrics: map[string]float64{"energy": 2}}

	var buf bytes.Buffer
	require.NoError(t, ResultJSON(&buf, "gas", sim.Config{Dt: 0.1, Duration: 0.3}, r))

	var data ResultData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	assert.Equal(t, "gas", data.Visualizer)
	assert.Equal(t, 3, data.Steps)
	assert.True(t, data.Finished)
	assert.InDelta(t, 2.0, data.Metrics["energy"], 1e-12)
}

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)

	var buf bytes.Buffer
	require.NoError(t, CanvasToSVG(&buf, c, 4))
	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "<circle"))
	assert.Contains(t, out, `width="16" height="16"`)
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
}

func TestPathsToSVG(t *testing.T) {
	paths := [][]dynamo.Vec2{
		{dynamo.V(0, 0), dynamo.V(1, 1), dynamo.V(2, 0)},
		{dynamo.V(0, 1)},
	}
	var buf bytes.Buffer
	require.NoError(t, PathsToSVG(&buf, paths, []Marker{{Pos: dynamo.V(1, 0.5), Radius: 0.1}}, 200, 100))

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "<path"), "single-point paths are skipped")
	assert.Equal(t, 1, strings.Count(out, "<circle"))

	assert.Error(t, PathsToSVG(&buf, nil, nil, 10, 10))
}

func TestSamplingExports(t *testing.T) {
	reg := experiment.NewRegistry()
	cfg := config.DefaultConfig()

	field, err := reg.Sample("field", cfg)
	require.NoError(t, err)
	var svg bytes.Buffer
	require.NoError(t, SamplingSVG(&svg, field, 400, 400))
	assert.Equal(t, len(field.Charges), strings.Count(svg.String(), "<circle"))

	photo, err := reg.Sample("photoelectric", cfg)
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, SamplingCSV(&out, photo))
	records, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, len(photo.X)+1)
	assert.Equal(t, []string{photo.XLabel, photo.YLabel}, records[0])
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, assert.AnError }

func TestSVGWriteError(t *testing.T) {
	err := SeriesToSVG(failingWriter{}, []float64{0, 1}, []float64{0, 1}, 10, 10)
	assert.ErrorIs(t, err, assert.AnError)
}
