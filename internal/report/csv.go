package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/banshee-data/trackrate/internal/kinematics"
)

// CSVHeader is the column layout written by WriteCSV.
var CSVHeader = []string{"latitude", "longitude", "timestamp", "delta_s", "velocity", "acceleration"}

// WriteCSV writes one row per sample. delta_s is the time to the next sample
// and is empty on the last row.
func WriteCSV(w io.Writer, a *kinematics.Analysis) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, s := range a.Samples {
		delta := ""
		if i < len(a.Deltas) {
			delta = formatFloat(a.Deltas[i])
		}
		row := []string{
			formatFloat(s.Latitude),
			formatFloat(s.Longitude),
			s.Timestamp,
			delta,
			formatFloat(s.Velocity),
			formatFloat(s.Acceleration),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
