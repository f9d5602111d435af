// Package report turns an analysed track into summaries, plots, charts and
// tabular output.
package report

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/trackrate/internal/kinematics"
)

// Summary condenses an analysis into a handful of figures. Velocities are in
// degrees per second and accelerations in degrees per second squared.
type Summary struct {
	Points             int
	Runs               int
	CollapsedFixes     int // fixes that shared a timestamp with a neighbour
	DurationSeconds    float64
	MeanVelocity       float64
	StdDevVelocity     float64
	MaxVelocity        float64
	MaxAbsAcceleration float64
}

// Summarize computes the Summary of a.
func Summarize(a *kinematics.Analysis) Summary {
	s := Summary{
		Points:          len(a.Samples),
		Runs:            len(a.Runs),
		DurationSeconds: floats.Sum(a.Deltas),
	}
	for _, r := range a.Runs {
		s.CollapsedFixes += r.Length
	}
	if len(a.Samples) == 0 {
		return s
	}

	v := a.Velocities()
	s.MeanVelocity, s.StdDevVelocity = stat.MeanStdDev(v, nil)
	if math.IsNaN(s.StdDevVelocity) {
		s.StdDevVelocity = 0
	}
	s.MaxVelocity = floats.Max(v)
	s.MaxAbsAcceleration = floats.Norm(a.Accelerations(), math.Inf(1))
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf(
		"points=%d runs=%d collapsed=%d duration=%.2fs velocity mean=%.6g sd=%.6g max=%.6g |accel| max=%.6g",
		s.Points, s.Runs, s.CollapsedFixes, s.DurationSeconds,
		s.MeanVelocity, s.StdDevVelocity, s.MaxVelocity, s.MaxAbsAcceleration,
	)
}
