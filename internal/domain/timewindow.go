package domain

import (
	"errors"
	"fmt"

	"github.com/batiparc/BTP-ReservationService/pkg/types"
)

var ErrInvalidWindow = errors.New("time window end must be after start")

// TimeWindow is a (start, end) pair of wall-clock times within one
// day. Windows are half-open: a window owns its start but not its end,
// so two windows that merely touch do not overlap.
type TimeWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// NewTimeWindow validates both bounds and the end > start invariant.
func NewTimeWindow(start, end types.TimeString) (TimeWindow, error) {
	if err := start.Validate(); err != nil {
		return TimeWindow{}, err
	}
	if err := end.Validate(); err != nil {
		return TimeWindow{}, err
	}
	if !end.IsAfter(start) {
		return TimeWindow{}, fmt.Errorf("%w: %s >= %s", ErrInvalidWindow, start, end)
	}
	return TimeWindow{Start: start, End: end}, nil
}

// Overlaps reports whether w and other share any time.
// Half-open semantics: [08:00,10:00) and [10:00,12:00) do not overlap.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.IsBefore(other.End) && other.Start.IsBefore(w.End)
}

// DurationMinutes returns the window length in minutes.
func (w TimeWindow) DurationMinutes() int {
	minutes, err := w.Start.MinutesUntil(w.End)
	if err != nil {
		return 0
	}
	return minutes
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("%s-%s", w.Start, w.End)
}
