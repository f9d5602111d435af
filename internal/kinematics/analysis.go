// Package kinematics estimates velocity and acceleration from GPS fixes whose
// timestamps carry whole-second resolution and often repeat.
package kinematics

// TrackPoint is one GPS fix as produced by the ingest readers.
type TrackPoint struct {
	Latitude  float64
	Longitude float64
	Timestamp string // HH:MM:SS
}

// Sample is a TrackPoint augmented with its derived motion.
type Sample struct {
	TrackPoint
	Velocity     float64
	Acceleration float64
}

// Analysis is the full result of one pass over a track.
type Analysis struct {
	Samples []Sample
	// Deltas[i] is the resolved time in seconds between Samples[i] and Samples[i+1].
	Deltas []float64
	Runs   []Run
}

// Elapsed returns the cumulative time of each sample from the first one.
func (a *Analysis) Elapsed() []float64 {
	out := make([]float64, len(a.Samples))
	for i, d := range a.Deltas {
		out[i+1] = out[i] + d
	}
	return out
}

// Velocities returns the velocity column.
func (a *Analysis) Velocities() []float64 {
	out := make([]float64, len(a.Samples))
	for i, s := range a.Samples {
		out[i] = s.Velocity
	}
	return out
}

// Accelerations returns the acceleration column.
func (a *Analysis) Accelerations() []float64 {
	out := make([]float64, len(a.Samples))
	for i, s := range a.Samples {
		out[i] = s.Acceleration
	}
	return out
}

// Analyze derives velocity and acceleration for every point. A nil metric
// means Euclidean.
func Analyze(points []TrackPoint, metric DistanceMetric) (*Analysis, error) {
	if len(points) < 2 {
		return nil, ErrInsufficientData
	}
	if metric == nil {
		metric = Euclidean{}
	}

	labels, err := ParseLabels(points)
	if err != nil {
		return nil, err
	}
	deltas, err := ResolveDeltas(labels)
	if err != nil {
		return nil, err
	}

	n := len(points)
	velocity, err := Derive(n, Separations(points, metric), deltas)
	if err != nil {
		return nil, err
	}
	// Both passes are resolved over the same labels.
	acceleration, err := Derive(n, Differences(velocity), deltas)
	if err != nil {
		return nil, err
	}

	samples := make([]Sample, n)
	for i, p := range points {
		samples[i] = Sample{TrackPoint: p, Velocity: velocity[i], Acceleration: acceleration[i]}
	}
	return &Analysis{Samples: samples, Deltas: deltas, Runs: FindRuns(labels)}, nil
}
