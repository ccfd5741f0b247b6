package domain

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// TimeRange is a half-open wall-clock interval [Start, End) without a date.
type TimeRange struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// NewTimeRange validates both bounds and requires Start < End.
func NewTimeRange(start, end string) (TimeRange, error) {
	s, err := types.NewTimeStringFromString(start)
	if err != nil {
		return TimeRange{}, err
	}
	e, err := types.NewTimeStringFromString(end)
	if err != nil {
		return TimeRange{}, err
	}
	r := TimeRange{Start: s, End: e}
	if err := r.Validate(); err != nil {
		return TimeRange{}, err
	}
	return r, nil
}

// MustTimeRange is NewTimeRange that panics on bad input.
func MustTimeRange(start, end string) TimeRange {
	r, err := NewTimeRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

// Validate checks both bounds and that the range is not empty.
func (r TimeRange) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return err
	}
	if err := r.End.Validate(); err != nil {
		return err
	}
	if !r.Start.IsBefore(r.End) {
		return fmt.Errorf("%w: %s-%s", ErrInvalidTimeRange, r.Start, r.End)
	}
	return nil
}

// StartMinutes returns the start as minutes since midnight.
func (r TimeRange) StartMinutes() int {
	return r.Start.Minutes()
}

// EndMinutes returns the end as minutes since midnight.
func (r TimeRange) EndMinutes() int {
	return r.End.Minutes()
}

// DurationMinutes returns End - Start.
func (r TimeRange) DurationMinutes() int {
	return r.EndMinutes() - r.StartMinutes()
}

// Contains reports whether t is in [Start, End).
func (r TimeRange) Contains(t types.TimeString) bool {
	m := t.Minutes()
	return m >= r.StartMinutes() && m < r.EndMinutes()
}

// Overlaps reports whether the two ranges share any minute. Touching ranges
// (a.End == b.Start) do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return MinutesOverlap(r.StartMinutes(), r.EndMinutes(), other.StartMinutes(), other.EndMinutes())
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// MinutesOverlap is the overlap test on raw minute offsets. Offsets may fall
// outside 0..1440 when buffers push an interval past midnight.
func MinutesOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
