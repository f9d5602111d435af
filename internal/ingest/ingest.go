// Package ingest reads GPS fixes from the supported source formats into the
// ordered TrackPoint sequence consumed by the kinematics package.
package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/banshee-data/trackrate/internal/config"
	"github.com/banshee-data/trackrate/internal/fsutil"
	"github.com/banshee-data/trackrate/internal/kinematics"
	"github.com/banshee-data/trackrate/internal/monitoring"
)

// Options controls how a file is read.
type Options struct {
	// Format is one of the config.Format* constants. Auto picks by extension.
	Format          string
	TextHeaderLines int
	Columns         CSVColumns
}

// OptionsFromConfig builds reader options from an analysis config.
func OptionsFromConfig(cfg *config.AnalysisConfig) Options {
	return Options{
		Format:          cfg.GetInputFormat(),
		TextHeaderLines: cfg.GetTextHeaderLines(),
		Columns: CSVColumns{
			Latitude:  cfg.GetCSVLatitudeColumn(),
			Longitude: cfg.GetCSVLongitudeColumn(),
			Timestamp: cfg.GetCSVTimestampColumn(),
		},
	}
}

// DetectFormat maps a file extension to an input format.
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gpx":
		return config.FormatGPX, nil
	case ".txt", ".log":
		return config.FormatText, nil
	case ".csv":
		return config.FormatCSV, nil
	}
	return "", fmt.Errorf("cannot detect input format of %q; set -format", path)
}

// Load reads the track at path and reports the format it was read as.
func Load(fsys fsutil.FileSystem, path string, opts Options) ([]kinematics.TrackPoint, string, error) {
	format := opts.Format
	if format == "" || format == config.FormatAuto {
		var err error
		if format, err = DetectFormat(path); err != nil {
			return nil, "", err
		}
	}

	f, err := fsys.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	var points []kinematics.TrackPoint
	switch format {
	case config.FormatGPX:
		points, err = ReadGPX(f)
	case config.FormatText:
		points, err = ReadTextLog(f, opts.TextHeaderLines)
	case config.FormatCSV:
		points, err = ReadCameraCSV(f, opts.Columns)
	default:
		return nil, "", fmt.Errorf("unsupported input format %q", format)
	}
	if err != nil {
		return nil, format, fmt.Errorf("%s: %w", path, err)
	}

	monitoring.Debugf("read %d points from %s as %s", len(points), path, format)
	return points, format, nil
}

// ClockLabel reduces an ISO-8601 date-time, or a bare clock time, to its
// HH:MM:SS part. Fractional seconds and zone suffixes are dropped.
func ClockLabel(ts string) (string, error) {
	s := strings.TrimSpace(ts)
	if i := strings.IndexAny(s, "T "); i >= 0 {
		s = s[i+1:]
	}
	if len(s) > 8 {
		switch s[8] {
		case 'Z', 'z', '.', ',', '+', '-':
			s = s[:8]
		}
	}
	if _, err := kinematics.ParseLabel(s); err != nil {
		return "", err
	}
	return s, nil
}
