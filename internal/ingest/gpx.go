package ingest

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/banshee-data/trackrate/internal/kinematics"
)

type gpxDoc struct {
	Tracks []struct {
		Segments []struct {
			Points []gpxPoint `xml:"trkpt"`
		} `xml:"trkseg"`
	} `xml:"trk"`
}

type gpxPoint struct {
	Lat  float64 `xml:"lat,attr"`
	Lon  float64 `xml:"lon,attr"`
	Time string  `xml:"time"`
}

// ReadGPX returns every track point in document order, across all tracks and
// segments.
func ReadGPX(r io.Reader) ([]kinematics.TrackPoint, error) {
	var doc gpxDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse GPX: %w", err)
	}

	var points []kinematics.TrackPoint
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			for _, p := range seg.Points {
				label, err := ClockLabel(p.Time)
				if err != nil {
					return nil, fmt.Errorf("trkpt %d: %w", len(points), err)
				}
				points = append(points, kinematics.TrackPoint{
					Latitude:  p.Lat,
					Longitude: p.Lon,
					Timestamp: label,
				})
			}
		}
	}
	return points, nil
}
