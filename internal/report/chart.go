package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/trackrate/internal/kinematics"
)

// RenderChart writes an interactive HTML page with the track path and the
// velocity and acceleration series. theme is "light" or "dark".
func RenderChart(w io.Writer, title string, a *kinematics.Analysis, theme string) error {
	initOpts := opts.Initialization{PageTitle: title, Width: "1100px", Height: "480px"}
	if theme == "dark" {
		initOpts.Theme = "dark"
	}
	sum := Summarize(a)

	elapsed := a.Elapsed()
	xLabels := make([]string, len(elapsed))
	for i, t := range elapsed {
		xLabels[i] = strconv.FormatFloat(t, 'f', 2, 64)
	}

	vel := charts.NewLine()
	vel.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(opts.Title{
			Title:    title + " - Velocity",
			Subtitle: fmt.Sprintf("mean=%.6g max=%.6g deg/s", sum.MeanVelocity, sum.MaxVelocity),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Elapsed (s)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "deg/s"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	vel.SetXAxis(xLabels).AddSeries("velocity", lineData(a.Velocities()))

	acc := charts.NewLine()
	acc.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(opts.Title{
			Title:    title + " - Acceleration",
			Subtitle: fmt.Sprintf("max |a|=%.6g deg/s²", sum.MaxAbsAcceleration),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Elapsed (s)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "deg/s²"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	acc.SetXAxis(xLabels).AddSeries("acceleration", lineData(a.Accelerations()))

	path := charts.NewScatter()
	path.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(opts.Title{
			Title:    title + " - Lat vs. Long",
			Subtitle: fmt.Sprintf("points=%d runs=%d", sum.Points, sum.Runs),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Latitude", Min: "dataMin", Max: "dataMax"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Longitude", Min: "dataMin", Max: "dataMax"}),
	)
	pts := make([]opts.ScatterData, len(a.Samples))
	for i, s := range a.Samples {
		pts[i] = opts.ScatterData{Value: []interface{}{s.Latitude, s.Longitude}}
	}
	path.AddSeries("track", pts, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))

	page := components.NewPage()
	page.SetPageTitle(title)
	page.AddCharts(path, vel, acc)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

func lineData(values []float64) []opts.LineData {
	out := make([]opts.LineData, len(values))
	for i, v := range values {
		out[i] = opts.LineData{Value: v}
	}
	return out
}
