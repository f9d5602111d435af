package kinematics

import (
	"fmt"
	"strconv"
)

// Label is the whole-second (minute, second) part of a fix timestamp. The hour
// is parsed for validation only; tracks are assumed to span at most one hour.
type Label struct {
	Minute int
	Second int
}

func (l Label) String() string {
	return fmt.Sprintf("%02d:%02d", l.Minute, l.Second)
}

// ParseLabel parses an "HH:MM:SS" timestamp.
func ParseLabel(ts string) (Label, error) {
	if len(ts) != 8 || ts[2] != ':' || ts[5] != ':' {
		return Label{}, fmt.Errorf("%w: %q is not HH:MM:SS", ErrMalformedTimestamp, ts)
	}
	hour, err := twoDigits(ts[0:2])
	if err != nil || hour > 23 {
		return Label{}, fmt.Errorf("%w: bad hour in %q", ErrMalformedTimestamp, ts)
	}
	minute, err := twoDigits(ts[3:5])
	if err != nil || minute > 59 {
		return Label{}, fmt.Errorf("%w: bad minute in %q", ErrMalformedTimestamp, ts)
	}
	second, err := twoDigits(ts[6:8])
	if err != nil || second > 59 {
		return Label{}, fmt.Errorf("%w: bad second in %q", ErrMalformedTimestamp, ts)
	}
	return Label{Minute: minute, Second: second}, nil
}

func twoDigits(s string) (int, error) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, fmt.Errorf("non-digit in %q", s)
	}
	return strconv.Atoi(s)
}

// ParseLabels parses the timestamp of every point, failing on the first bad one.
func ParseLabels(points []TrackPoint) ([]Label, error) {
	labels := make([]Label, len(points))
	for i, p := range points {
		l, err := ParseLabel(p.Timestamp)
		if err != nil {
			return nil, atIndex(i, err)
		}
		labels[i] = l
	}
	return labels, nil
}

// secondsAfter returns how many whole seconds next lies after l, allowing for a
// single minute wraparound. Hour rollover is not corrected.
func (l Label) secondsAfter(next Label) int {
	s := next.Second
	switch {
	case next.Minute > l.Minute:
		s += (next.Minute - l.Minute) * 60
	case next.Minute < l.Minute:
		s += ((60 - l.Minute) + next.Minute) * 60
	}
	return s - l.Second
}
