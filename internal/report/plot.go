package report

import (
	"fmt"
	"image/color"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/trackrate/internal/fsutil"
	"github.com/banshee-data/trackrate/internal/kinematics"
)

var (
	pathColor  = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	runColor   = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	accelColor = color.RGBA{R: 44, G: 160, B: 44, A: 255}
)

// PlotSize is the rendered size of each PNG.
type PlotSize struct {
	Width, Height vg.Length
}

// PlotSizeInches builds a PlotSize from inch measurements.
func PlotSizeInches(w, h float64) PlotSize {
	return PlotSize{Width: vg.Length(w) * vg.Inch, Height: vg.Length(h) * vg.Inch}
}

// SavePlots writes <name>_path.png, <name>_velocity.png and
// <name>_acceleration.png into dir and returns their paths.
func SavePlots(fsys fsutil.FileSystem, dir, name string, a *kinematics.Analysis, size PlotSize) ([]string, error) {
	if name == "" || name != filepath.Base(name) {
		return nil, fmt.Errorf("invalid plot name %q", name)
	}
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	pathPlot, err := trackPathPlot(name, a)
	if err != nil {
		return nil, fmt.Errorf("path plot: %w", err)
	}
	elapsed := a.Elapsed()
	velPlot, err := seriesPlot(
		fmt.Sprintf("%s - Velocity", name), "Velocity (deg/s)",
		elapsed, a.Velocities(), pathColor)
	if err != nil {
		return nil, fmt.Errorf("velocity plot: %w", err)
	}
	accPlot, err := seriesPlot(
		fmt.Sprintf("%s - Acceleration", name), "Acceleration (deg/s²)",
		elapsed, a.Accelerations(), accelColor)
	if err != nil {
		return nil, fmt.Errorf("acceleration plot: %w", err)
	}

	var written []string
	for _, out := range []struct {
		suffix string
		p      *plot.Plot
	}{
		{"path", pathPlot},
		{"velocity", velPlot},
		{"acceleration", accPlot},
	} {
		file := filepath.Join(dir, fmt.Sprintf("%s_%s.png", name, out.suffix))
		if err := savePNG(fsys, out.p, size, file); err != nil {
			return written, fmt.Errorf("save %s plot: %w", out.suffix, err)
		}
		written = append(written, file)
	}
	return written, nil
}

// trackPathPlot draws latitude on x against longitude on y in time order,
// marking the fixes that belong to repeated-timestamp runs.
func trackPathPlot(name string, a *kinematics.Analysis) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s - Lat vs. Long", name)
	p.X.Label.Text = "Latitude"
	p.Y.Label.Text = "Longitude"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(a.Samples))
	for i, s := range a.Samples {
		pts[i] = plotter.XY{X: s.Latitude, Y: s.Longitude}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = pathColor
	line.Width = vg.Points(1)
	line.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	p.Add(line)
	p.Legend.Add("track", line)

	var runPts plotter.XYs
	for _, r := range a.Runs {
		runPts = append(runPts, pts[r.Start:r.Start+r.Length]...)
	}
	if len(runPts) > 0 {
		sc, err := plotter.NewScatter(runPts)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Color = runColor
		sc.GlyphStyle.Radius = vg.Points(2)
		p.Add(sc)
		p.Legend.Add("repeated timestamp", sc)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

func seriesPlot(title, yLabel string, x, y []float64, c color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Elapsed (s)"
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i] = plotter.XY{X: x[i], Y: y[i]}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = c
	line.Width = vg.Points(1)
	p.Add(line)
	return p, nil
}

func savePNG(fsys fsutil.FileSystem, p *plot.Plot, size PlotSize, file string) error {
	wt, err := p.WriterTo(size.Width, size.Height, "png")
	if err != nil {
		return err
	}
	f, err := fsys.Create(file)
	if err != nil {
		return err
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
