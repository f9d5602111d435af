// Package testutil provides shared test utilities and fixtures.
//
// The track builders produce deterministic fixes so tests in different
// packages can agree on expected velocities without re-deriving them.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banshee-data/trackrate/internal/kinematics"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// Clock formats a seconds-of-day offset as HH:MM:SS.
func Clock(seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600%24, seconds/60%60, seconds%60)
}

// StraightTrack returns n fixes moving stepDeg in latitude per fix, one
// fix per second starting at the seconds-of-day offset start.
func StraightTrack(n int, stepDeg float64, start int) []kinematics.TrackPoint {
	out := make([]kinematics.TrackPoint, n)
	for i := range out {
		out[i] = kinematics.TrackPoint{
			Latitude:  float64(i) * stepDeg,
			Longitude: 0,
			Timestamp: Clock(start + i),
		}
	}
	return out
}

// TrackAt returns fixes moving stepDeg in latitude per fix with the given
// timestamps, which may repeat.
func TrackAt(stepDeg float64, timestamps ...string) []kinematics.TrackPoint {
	out := make([]kinematics.TrackPoint, len(timestamps))
	for i, ts := range timestamps {
		out[i] = kinematics.TrackPoint{Latitude: float64(i) * stepDeg, Timestamp: ts}
	}
	return out
}

// GPXDocument renders points as a single-segment GPX track dated 2024-05-01.
func GPXDocument(points []kinematics.TrackPoint) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<gpx version="1.1" creator="testutil" xmlns="http://www.topografix.com/GPX/1/1">` + "\n")
	b.WriteString("<trk><name>fixture</name><trkseg>\n")
	for _, p := range points {
		fmt.Fprintf(&b, `<trkpt lat="%g" lon="%g"><time>2024-05-01T%sZ</time></trkpt>`+"\n",
			p.Latitude, p.Longitude, p.Timestamp)
	}
	b.WriteString("</trkseg></trk>\n</gpx>\n")
	return b.String()
}

// WriteFile writes content to name under a fresh temp dir and returns the
// full path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
