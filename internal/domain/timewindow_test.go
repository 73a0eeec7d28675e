package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batiparc/BTP-ReservationService/pkg/types"
)

func mustWindow(t *testing.T, start, end string) TimeWindow {
	t.Helper()
	w, err := NewTimeWindow(types.TimeString(start), types.TimeString(end))
	require.NoError(t, err)
	return w
}

func TestNewTimeWindow(t *testing.T) {
	t.Run("valid window", func(t *testing.T) {
		w, err := NewTimeWindow("08:00", "12:00")
		require.NoError(t, err)
		assert.Equal(t, "08:00-12:00", w.String())
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := NewTimeWindow("12:00", "08:00")
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("zero duration", func(t *testing.T) {
		_, err := NewTimeWindow("08:00", "08:00")
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("malformed bound", func(t *testing.T) {
		_, err := NewTimeWindow("8h00", "12:00")
		assert.Error(t, err)
	})
}

func TestTimeWindowOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     TimeWindow
		overlaps bool
	}{
		{
			name:     "identical windows",
			a:        mustWindow(t, "08:00", "12:00"),
			b:        mustWindow(t, "08:00", "12:00"),
			overlaps: true,
		},
		{
			name:     "partial overlap",
			a:        mustWindow(t, "08:00", "12:00"),
			b:        mustWindow(t, "11:00", "13:00"),
			overlaps: true,
		},
		{
			name:     "contained window",
			a:        mustWindow(t, "08:00", "18:00"),
			b:        mustWindow(t, "10:00", "11:00"),
			overlaps: true,
		},
		{
			name:     "back to back windows do not overlap",
			a:        mustWindow(t, "08:00", "12:00"),
			b:        mustWindow(t, "12:00", "14:00"),
			overlaps: false,
		},
		{
			name:     "disjoint windows",
			a:        mustWindow(t, "08:00", "10:00"),
			b:        mustWindow(t, "14:00", "16:00"),
			overlaps: false,
		},
		{
			name:     "one minute overlap",
			a:        mustWindow(t, "08:00", "12:01"),
			b:        mustWindow(t, "12:00", "14:00"),
			overlaps: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, tt.a.Overlaps(tt.b))
			// Overlap is symmetric.
			assert.Equal(t, tt.overlaps, tt.b.Overlaps(tt.a))
		})
	}
}

func TestTimeWindowDurationMinutes(t *testing.T) {
	assert.Equal(t, 240, mustWindow(t, "08:00", "12:00").DurationMinutes())
	assert.Equal(t, 30, mustWindow(t, "09:15", "09:45").DurationMinutes())
	assert.Equal(t, 1439, mustWindow(t, "00:00", "23:59").DurationMinutes())
}
