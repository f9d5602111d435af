// Command trackrate estimates velocity and acceleration along a recorded GPS
// track whose fixes carry whole-second, often repeated, timestamps.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/banshee-data/trackrate/internal/config"
	"github.com/banshee-data/trackrate/internal/db"
	"github.com/banshee-data/trackrate/internal/fsutil"
	"github.com/banshee-data/trackrate/internal/ingest"
	"github.com/banshee-data/trackrate/internal/kinematics"
	"github.com/banshee-data/trackrate/internal/monitoring"
	"github.com/banshee-data/trackrate/internal/report"
	"github.com/banshee-data/trackrate/internal/version"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatalf("trackrate: %v", err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 && args[0] == "migrate" {
		return runMigrate(args[1:], stdout, stderr)
	}

	fs := flag.NewFlagSet("trackrate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "", "input format: auto, gpx, text or csv (overrides config)")
	configPath := fs.String("config", "", "analysis config file (.json, .yaml or .yml)")
	dbPath := fs.String("db", "", "record the analysis in this SQLite database")
	plotsDir := fs.String("plots", "", "write PNG plots into this directory")
	chartPath := fs.String("chart", "", "write an HTML chart page to this file")
	outPath := fs.String("out", "-", "write per-sample CSV to this file, - for stdout, empty to skip")
	name := fs.String("name", "", "track name (default: input file name)")
	verbose := fs.Bool("v", false, "verbose logging")
	showVersion := fs.Bool("version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: trackrate [flags] <input>\n       trackrate migrate <up|down|version|force> [-db path]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if *showVersion {
		fmt.Fprintln(stdout, version.String("trackrate"))
		return nil
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("expected exactly one input file, got %d", fs.NArg())
	}
	monitoring.SetVerbose(*verbose)
	input := fs.Arg(0)

	cfg := config.DefaultAnalysisConfig()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadAnalysisConfig(*configPath); err != nil {
			return err
		}
	}
	opts := ingest.OptionsFromConfig(cfg)
	if *format != "" {
		opts.Format = *format
	}

	fsys := fsutil.OSFileSystem{}
	points, inputFormat, err := ingest.Load(fsys, input, opts)
	if err != nil {
		return err
	}
	analysis, err := kinematics.Analyze(points, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	trackName := *name
	if trackName == "" {
		trackName = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}

	if *outPath != "" {
		if err := writeCSV(fsys, *outPath, stdout, analysis); err != nil {
			return err
		}
	}
	if *plotsDir != "" {
		size := report.PlotSizeInches(cfg.GetPlotWidthInches(), cfg.GetPlotHeightInches())
		written, err := report.SavePlots(fsys, *plotsDir, trackName, analysis, size)
		if err != nil {
			return err
		}
		monitoring.Debugf("wrote plots %s", strings.Join(written, ", "))
	}
	if *chartPath != "" {
		if err := writeChart(fsys, *chartPath, trackName, cfg.GetChartTheme(), analysis); err != nil {
			return err
		}
	}
	if *dbPath != "" {
		id, err := recordTrack(*dbPath, db.TrackMeta{
			Name:         trackName,
			SourcePath:   input,
			Format:       inputFormat,
			StoreSamples: cfg.GetStoreSamples(),
		}, analysis)
		if err != nil {
			return err
		}
		monitoring.Logf("recorded track %s in %s", id, *dbPath)
	}

	monitoring.Logf("%s: %s", trackName, report.Summarize(analysis))
	return nil
}

func writeCSV(fsys fsutil.FileSystem, path string, stdout io.Writer, a *kinematics.Analysis) error {
	if path == "-" {
		return report.WriteCSV(stdout, a)
	}
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := report.WriteCSV(f, a); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func writeChart(fsys fsutil.FileSystem, path, title, theme string, a *kinematics.Analysis) error {
	var buf bytes.Buffer
	if err := report.RenderChart(&buf, title, a, theme); err != nil {
		return err
	}
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := buf.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func recordTrack(path string, meta db.TrackMeta, a *kinematics.Analysis) (string, error) {
	database, err := db.NewDB(path)
	if err != nil {
		return "", fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()
	return database.RecordAnalysis(meta, a)
}

// runMigrate accepts -db before or after the action.
func runMigrate(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("trackrate migrate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dbPath := fs.String("db", "trackrate.db", "SQLite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) > 0 {
		action := rest[0]
		if err := fs.Parse(rest[1:]); err != nil {
			return err
		}
		rest = append([]string{action}, fs.Args()...)
	}
	return db.RunMigrateCommand(stdout, *dbPath, rest)
}
