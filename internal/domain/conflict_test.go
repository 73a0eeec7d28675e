package domain

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batiparc/BTP-ReservationService/pkg/types"
)

func reservation(id int64, status ReservationStatus, start, end string) *Reservation {
	return &Reservation{
		ID:     id,
		Status: status,
		Window: TimeWindow{Start: types.TimeString(start), End: types.TimeString(end)},
	}
}

func TestFindConflicts(t *testing.T) {
	existing := []*Reservation{
		reservation(1, StatusPending, "08:00", "12:00"),
		reservation(2, StatusApproved, "13:00", "15:00"),
		reservation(3, StatusRefused, "09:00", "11:00"),
		reservation(4, StatusCancelled, "08:00", "18:00"),
	}

	t.Run("overlap with pending", func(t *testing.T) {
		conflicts := FindConflicts(mustWindow(t, "11:00", "13:00"), existing, 0)
		require.Len(t, conflicts, 1)
		assert.Equal(t, int64(1), conflicts[0].ID)
	})

	t.Run("refused and cancelled do not block", func(t *testing.T) {
		conflicts := FindConflicts(mustWindow(t, "09:30", "10:30"), existing, 1)
		assert.Empty(t, conflicts)
	})

	t.Run("back to back is free", func(t *testing.T) {
		conflicts := FindConflicts(mustWindow(t, "12:00", "13:00"), existing, 0)
		assert.Empty(t, conflicts)
	})

	t.Run("spanning window hits both active", func(t *testing.T) {
		conflicts := FindConflicts(mustWindow(t, "07:00", "16:00"), existing, 0)
		require.Len(t, conflicts, 2)
		assert.Equal(t, int64(1), conflicts[0].ID)
		assert.Equal(t, int64(2), conflicts[1].ID)
	})

	t.Run("exclude id skips the reservation itself", func(t *testing.T) {
		conflicts := FindConflicts(mustWindow(t, "08:00", "12:00"), existing, 1)
		assert.Empty(t, conflicts)
	})

	t.Run("empty input", func(t *testing.T) {
		conflicts := FindConflicts(mustWindow(t, "08:00", "12:00"), nil, 0)
		assert.Empty(t, conflicts)
	})
}

// Random windows, checked against a minute-level occupancy grid.
func TestFindConflictsRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	randomWindow := func() TimeWindow {
		start := rng.Intn(23 * 60)
		end := start + 1 + rng.Intn(24*60-start-1)
		return TimeWindow{
			Start: types.TimeString(fmt.Sprintf("%02d:%02d", start/60, start%60)),
			End:   types.TimeString(fmt.Sprintf("%02d:%02d", end/60, end%60)),
		}
	}

	minutes := func(s types.TimeString) int {
		var h, m int
		fmt.Sscanf(string(s), "%d:%d", &h, &m)
		return h*60 + m
	}

	for i := 0; i < 200; i++ {
		existing := make([]*Reservation, 0, 10)
		for id := int64(1); id <= 10; id++ {
			w := randomWindow()
			existing = append(existing, &Reservation{ID: id, Status: StatusApproved, Window: w})
		}

		candidate := randomWindow()
		conflicts := FindConflicts(candidate, existing, 0)

		got := make(map[int64]bool, len(conflicts))
		for _, c := range conflicts {
			got[c.ID] = true
		}

		for _, r := range existing {
			expected := minutes(candidate.Start) < minutes(r.Window.End) &&
				minutes(r.Window.Start) < minutes(candidate.End)
			assert.Equal(t, expected, got[r.ID],
				"candidate %s vs reservation %d %s", candidate, r.ID, r.Window)
		}
	}
}
