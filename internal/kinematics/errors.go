package kinematics

import (
	"errors"
	"fmt"
)

// Input defects. All of them are terminal for the current computation.
var (
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	ErrInsufficientData   = errors.New("insufficient data: need at least 2 points")
	ErrRunLengthOverrun   = errors.New("repeated-timestamp run reaches end of sequence")
	ErrZeroTimeDelta      = errors.New("zero time delta")
	ErrNegativeTimeDelta  = errors.New("negative time delta")
)

// IndexError reports the point index at which a defect was detected.
type IndexError struct {
	Index int
	Err   error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("point %d: %v", e.Index, e.Err)
}

func (e *IndexError) Unwrap() error { return e.Err }

func atIndex(i int, err error) error {
	return &IndexError{Index: i, Err: err}
}
