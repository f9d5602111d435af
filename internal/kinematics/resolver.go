package kinematics

import (
	"fmt"
)

// Run is a maximal stretch of consecutive points sharing one timestamp label.
type Run struct {
	Start  int
	Length int
	Label  Label
}

// FindRuns returns every run of two or more identical labels.
func FindRuns(labels []Label) []Run {
	var runs []Run
	for i := 0; i < len(labels); {
		j := i + 1
		for j < len(labels) && labels[j] == labels[i] {
			j++
		}
		if j-i > 1 {
			runs = append(runs, Run{Start: i, Length: j - i, Label: labels[i]})
		}
		i = j
	}
	return runs
}

// Resolver turns adjacent whole-second labels into fractional time deltas.
//
// A run of L identical labels is taken to span exactly one second, shared by
// its L gaps: the L-1 gaps inside the run and the gap into the next label. Each
// in-run gap gets 1/L; the exit gap gets whatever remains of the whole-second
// difference to the next label.
type Resolver struct {
	labels []Label
	next   int

	// Active run state.
	runLabel  Label
	runLength int
	step      float64
	remaining int
	exiting   bool
}

// NewResolver returns a resolver positioned at the first pair of labels.
func NewResolver(labels []Label) *Resolver {
	return &Resolver{labels: labels, next: 1}
}

func (r *Resolver) active() bool {
	return r.remaining > 0 || r.exiting
}

func (r *Resolver) clear() {
	r.runLabel = Label{}
	r.runLength = 0
	r.step = 0
	r.remaining = 0
	r.exiting = false
}

// Next returns the elapsed seconds between labels[second-1] and labels[second].
// Pairs must be visited in order starting at second == 1.
func (r *Resolver) Next(second int) (float64, error) {
	if second != r.next || second < 1 || second >= len(r.labels) {
		return 0, fmt.Errorf("resolver: pair ending at %d requested, expected %d of %d points", second, r.next, len(r.labels))
	}
	r.next++

	first, cur := r.labels[second-1], r.labels[second]

	if cur == first {
		if r.remaining > 0 && cur == r.runLabel {
			r.remaining--
			r.exiting = r.remaining == 0
			return r.step, nil
		}
		length, err := r.runLengthFrom(second)
		if err != nil {
			return 0, err
		}
		r.runLabel = cur
		r.runLength = length
		r.step = 1 / float64(length)
		r.remaining = length - 2
		r.exiting = r.remaining == 0
		return r.step, nil
	}

	gap := first.secondsAfter(cur)
	if gap < 0 {
		return 0, atIndex(second, fmt.Errorf("%w: %s after %s", ErrNegativeTimeDelta, cur, first))
	}
	if gap == 0 {
		return 0, atIndex(second, ErrZeroTimeDelta)
	}
	if r.active() {
		delta := float64(gap) - float64(r.runLength-1)*r.step
		r.clear()
		return delta, nil
	}
	return float64(gap), nil
}

// runLengthFrom counts the run that labels[second-1] opens. The run must be
// followed by a distinct label.
func (r *Resolver) runLengthFrom(second int) (int, error) {
	label := r.labels[second]
	length := 2
	for j := second + 1; ; j++ {
		if j >= len(r.labels) {
			return 0, atIndex(second-1, fmt.Errorf("%w: run of %d at %s", ErrRunLengthOverrun, length, label))
		}
		if r.labels[j] != label {
			return length, nil
		}
		length++
	}
}

// ResolveDeltas runs a fresh resolver over every adjacent pair and returns the
// n-1 deltas, delta[i] being the time between labels[i] and labels[i+1].
func ResolveDeltas(labels []Label) ([]float64, error) {
	if len(labels) < 2 {
		return nil, ErrInsufficientData
	}
	r := NewResolver(labels)
	deltas := make([]float64, len(labels)-1)
	for i := range deltas {
		d, err := r.Next(i + 1)
		if err != nil {
			return nil, err
		}
		deltas[i] = d
	}
	return deltas, nil
}
