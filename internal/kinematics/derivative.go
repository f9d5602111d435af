package kinematics

import (
	"fmt"
	"math"
)

// Differ yields the change in magnitude between sample i and sample i+1.
type Differ func(i int) float64

// Separations differences a track by the distance between adjacent points.
func Separations(points []TrackPoint, metric DistanceMetric) Differ {
	return func(i int) float64 {
		return metric.Distance(points[i], points[i+1])
	}
}

// Differences differences a series of values by subtraction.
func Differences(values []float64) Differ {
	return func(i int) float64 {
		return values[i+1] - values[i]
	}
}

// Derive computes the finite-difference derivative of n samples.
// deltas[i] is the time between sample i and i+1. The result has length n: the
// last computed value is repeated so it stays aligned with the input.
func Derive(n int, diff Differ, deltas []float64) ([]float64, error) {
	if n < 2 {
		return nil, ErrInsufficientData
	}
	if len(deltas) != n-1 {
		return nil, fmt.Errorf("derive: %d deltas for %d samples", len(deltas), n)
	}
	out := make([]float64, n)
	for i, dt := range deltas {
		switch {
		case dt == 0:
			return nil, atIndex(i+1, ErrZeroTimeDelta)
		case dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0):
			return nil, atIndex(i+1, fmt.Errorf("%w: %v", ErrNegativeTimeDelta, dt))
		}
		out[i] = diff(i) / dt
	}
	out[n-1] = out[n-2]
	return out, nil
}
