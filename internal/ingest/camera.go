package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/banshee-data/trackrate/internal/kinematics"
)

// CSVColumns names the header columns to read. Empty fields fall back to the
// common aliases below.
type CSVColumns struct {
	Latitude  string
	Longitude string
	Timestamp string
}

var (
	latitudeAliases  = []string{"latitude", "latitudes", "lat", "gps_lat", "gps latitude"}
	longitudeAliases = []string{"longitude", "longitudes", "lon", "lng", "long", "gps_lon", "gps longitude"}
	timestampAliases = []string{"timestamp", "timestamps", "time", "datetime", "gps_time", "utc"}
)

// ReadCameraCSV reads a camera GPS log with a header row.
func ReadCameraCSV(r io.Reader, cols CSVColumns) ([]kinematics.TrackPoint, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty CSV: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	latIdx, err := findColumn(header, cols.Latitude, latitudeAliases)
	if err != nil {
		return nil, err
	}
	lonIdx, err := findColumn(header, cols.Longitude, longitudeAliases)
	if err != nil {
		return nil, err
	}
	tsIdx, err := findColumn(header, cols.Timestamp, timestampAliases)
	if err != nil {
		return nil, err
	}

	var points []kinematics.TrackPoint
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)

		lat, err := strconv.ParseFloat(strings.TrimSpace(rec[latIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad latitude: %w", line, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(rec[lonIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad longitude: %w", line, err)
		}
		label, err := ClockLabel(rec[tsIdx])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		points = append(points, kinematics.TrackPoint{Latitude: lat, Longitude: lon, Timestamp: label})
	}
	return points, nil
}

func findColumn(header []string, name string, aliases []string) (int, error) {
	candidates := aliases
	if name != "" {
		candidates = []string{name}
	}
	for _, want := range candidates {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(want)) {
				return i, nil
			}
		}
	}
	return -1, fmt.Errorf("CSV header %q has no column matching %q", header, candidates)
}
