package timeseries

import (
	"errors"
	"fmt"
	"math"
)

// ErrThreshold is returned when a split threshold falls outside (0, 1).
var ErrThreshold = errors.New("split threshold must be in (0, 1)")

// DefaultSplitThreshold is the leading fraction of a series assigned to the
// training set when no threshold is given.
const DefaultSplitThreshold = 0.85

// Split holds a train/test partition of a series. Train and Test are
// contiguous, non-overlapping, and concatenate back to the source series.
type Split struct {
	Train *Series
	Test  *Series
}

// TrainTestSplit partitions s at index round(len * threshold). The training
// set takes the leading fraction; the remainder becomes the test set.
func TrainTestSplit(s *Series, threshold float64) (*Split, error) {
	if s == nil || s.Len() == 0 {
		return nil, ErrEmptySeries
	}
	if threshold <= 0 || threshold >= 1 {
		return nil, fmt.Errorf("%w: got %v", ErrThreshold, threshold)
	}

	cut := int(math.Round(float64(s.Len()) * threshold))
	return &Split{
		Train: s.Slice(0, cut),
		Test:  s.Slice(cut, s.Len()),
	}, nil
}
