package kinematics

import "math"

// DistanceMetric measures the separation between two consecutive fixes.
type DistanceMetric interface {
	Distance(a, b TrackPoint) float64
}

// DistanceFunc adapts a plain function to DistanceMetric.
type DistanceFunc func(a, b TrackPoint) float64

func (f DistanceFunc) Distance(a, b TrackPoint) float64 { return f(a, b) }

// Euclidean is the planar distance in degree space. It is not a geodesic
// distance and carries no real-world unit.
type Euclidean struct{}

func (Euclidean) Distance(a, b TrackPoint) float64 {
	return math.Hypot(b.Latitude-a.Latitude, b.Longitude-a.Longitude)
}
