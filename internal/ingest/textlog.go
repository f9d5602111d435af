package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/banshee-data/trackrate/internal/kinematics"
	"github.com/banshee-data/trackrate/internal/monitoring"
)

// ReadTextLog reads the line-oriented track dump produced by the boat logger:
// headerLines lines of preamble, then a coordinate line
//
//	<trkpt lat="32.7075" lon="-117.2365">
//
// followed by a time line
//
//	<time>2017-01-24T18:09:41Z</time>
//
// for every fix. Any other line is ignored.
func ReadTextLog(r io.Reader, headerLines int) ([]kinematics.TrackPoint, error) {
	sc := bufio.NewScanner(r)
	var (
		points  []kinematics.TrackPoint
		pending *kinematics.TrackPoint
		lineNo  int
	)
	for sc.Scan() {
		lineNo++
		if lineNo <= headerLines {
			continue
		}
		line := sc.Text()

		switch {
		case strings.Contains(line, `lat="`):
			if pending != nil {
				return nil, fmt.Errorf("line %d: new coordinates before the previous fix had a timestamp", lineNo)
			}
			lat, err := attrFloat(line, "lat")
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			lon, err := attrFloat(line, "lon")
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			pending = &kinematics.TrackPoint{Latitude: lat, Longitude: lon}

		case strings.Contains(line, "<time>"):
			if pending == nil {
				return nil, fmt.Errorf("line %d: timestamp without coordinates", lineNo)
			}
			label, err := ClockLabel(elementText(line))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			pending.Timestamp = label
			points = append(points, *pending)
			pending = nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read text log: %w", err)
	}
	if pending != nil {
		monitoring.Logf("text log: dropping trailing fix at %.6f,%.6f with no timestamp", pending.Latitude, pending.Longitude)
	}
	return points, nil
}

// attrFloat returns the numeric value of name="..." in line.
func attrFloat(line, name string) (float64, error) {
	key := name + `="`
	i := strings.Index(line, key)
	if i < 0 {
		return 0, fmt.Errorf("missing %s attribute", name)
	}
	rest := line[i+len(key):]
	j := strings.IndexByte(rest, '"')
	if j < 0 {
		return 0, fmt.Errorf("unterminated %s attribute", name)
	}
	v, err := strconv.ParseFloat(rest[:j], 64)
	if err != nil {
		return 0, fmt.Errorf("bad %s value: %w", name, err)
	}
	return v, nil
}

// elementText strips the enclosing tags from a single-line element.
func elementText(line string) string {
	s := strings.TrimSpace(line)
	if i := strings.IndexByte(s, '>'); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.Index(s, "</"); i >= 0 {
		s = s[:i]
	}
	return s
}
