package report

import (
	"bytes"
	"encoding/csv"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/trackrate/internal/fsutil"
	"github.com/banshee-data/trackrate/internal/kinematics"
	"github.com/banshee-data/trackrate/internal/testutil"
)

// steadyThenStop moves 5 units per second for two seconds and then holds
// position across a two second gap.
func steadyThenStop(t *testing.T) *kinematics.Analysis {
	t.Helper()
	a, err := kinematics.Analyze([]kinematics.TrackPoint{
		{Latitude: 0, Longitude: 0, Timestamp: "12:00:00"},
		{Latitude: 3, Longitude: 4, Timestamp: "12:00:01"},
		{Latitude: 6, Longitude: 8, Timestamp: "12:00:02"},
		{Latitude: 6, Longitude: 8, Timestamp: "12:00:04"},
	}, nil)
	require.NoError(t, err)
	return a
}

func withRun(t *testing.T) *kinematics.Analysis {
	t.Helper()
	a, err := kinematics.Analyze(testutil.TrackAt(1, "10:00:10", "10:00:10", "10:00:11"), nil)
	require.NoError(t, err)
	return a
}

func TestSummarize(t *testing.T) {
	s := Summarize(steadyThenStop(t))

	assert.Equal(t, 4, s.Points)
	assert.Equal(t, 0, s.Runs)
	assert.Equal(t, 0, s.CollapsedFixes)
	assert.InDelta(t, 4.0, s.DurationSeconds, 1e-12)
	assert.InDelta(t, 2.5, s.MeanVelocity, 1e-12)
	assert.InDelta(t, math.Sqrt(25.0/3), s.StdDevVelocity, 1e-12)
	assert.InDelta(t, 5.0, s.MaxVelocity, 1e-12)
	assert.InDelta(t, 5.0, s.MaxAbsAcceleration, 1e-12)
}

func TestSummarize_Runs(t *testing.T) {
	s := Summarize(withRun(t))

	assert.Equal(t, 3, s.Points)
	assert.Equal(t, 1, s.Runs)
	assert.Equal(t, 2, s.CollapsedFixes)
	assert.InDelta(t, 1.0, s.DurationSeconds, 1e-12)
	assert.InDelta(t, 2.0, s.MeanVelocity, 1e-12)
	assert.Equal(t, 0.0, s.StdDevVelocity)
	assert.Contains(t, s.String(), "points=3 runs=1 collapsed=2")
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(&kinematics.Analysis{})
	assert.Equal(t, Summary{}, s)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, steadyThenStop(t)))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, CSVHeader, rows[0])
	assert.Equal(t, []string{"0", "0", "12:00:00", "1", "5", "0"}, rows[1])
	assert.Equal(t, []string{"3", "4", "12:00:01", "1", "5", "-5"}, rows[2])
	assert.Equal(t, []string{"6", "8", "12:00:02", "2", "0", "0"}, rows[3])
	assert.Equal(t, []string{"6", "8", "12:00:04", "", "0", "0"}, rows[4])
}

func TestWriteCSV_RunDeltas(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, withRun(t)))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "0.5", rows[1][3])
	assert.Equal(t, "0.5", rows[2][3])
	assert.Equal(t, "2", rows[1][4])
}

func TestSavePlots(t *testing.T) {
	for _, tc := range []struct {
		name string
		a    *kinematics.Analysis
	}{
		{"steady", steadyThenStop(t)},
		{"run", withRun(t)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fsys := fsutil.NewMemoryFileSystem()
			written, err := SavePlots(fsys, "out", "trip", tc.a, PlotSizeInches(4, 3))
			require.NoError(t, err)

			want := []string{
				filepath.Join("out", "trip_path.png"),
				filepath.Join("out", "trip_velocity.png"),
				filepath.Join("out", "trip_acceleration.png"),
			}
			assert.Equal(t, want, written)
			for _, name := range want {
				data, ok := fsys.Contents(name)
				require.True(t, ok, name)
				assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), "%s is not a PNG", name)
			}
		})
	}
}

func TestSavePlots_InvalidName(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	for _, name := range []string{"", "../escape", "a/b"} {
		_, err := SavePlots(fsys, "out", name, withRun(t), PlotSizeInches(4, 3))
		assert.Error(t, err, "name %q", name)
	}
	assert.Empty(t, fsys.Names())
}

func TestPlotSizeInches(t *testing.T) {
	size := PlotSizeInches(8, 5)
	assert.InDelta(t, 576.0, float64(size.Width), 1e-9)
	assert.InDelta(t, 360.0, float64(size.Height), 1e-9)
}

func TestRenderChart(t *testing.T) {
	for _, theme := range []string{"light", "dark"} {
		t.Run(theme, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RenderChart(&buf, "Morning ride", withRun(t), theme))

			html := buf.String()
			assert.Contains(t, html, "<title>Morning ride</title>")
			assert.Contains(t, html, "echarts")
			assert.Contains(t, html, "Morning ride - Velocity")
			assert.Contains(t, html, "Morning ride - Acceleration")
			assert.Contains(t, html, "Morning ride - Lat vs. Long")
			if theme == "dark" {
				assert.True(t, strings.Contains(html, `"dark"`) || strings.Contains(html, "themes/dark"))
			}
		})
	}
}
