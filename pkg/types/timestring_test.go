package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"08:00", true},
		{"00:00", true},
		{"23:59", true},
		{"8:00", false},
		{"08:60", false},
		{"24:00", false},
		{"08h00", false},
		{"", false},
		{"08:00:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, tt.input, ts.String())
			} else {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
			}
		})
	}
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 3, 2, 9, 5, 30, 0, time.UTC))
	assert.Equal(t, "09:05", ts.String())
}

func TestTimeStringOrdering(t *testing.T) {
	a := TimeString("08:00")
	b := TimeString("12:30")

	assert.True(t, a.IsBefore(b))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsBefore(a))
	assert.False(t, a.IsAfter(a))
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts := TimeString("08:30")

	got, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:15"), got)

	// Crossing midnight is not a valid wall-clock time within the day.
	_, err = TimeString("23:30").AddMinutes(45)
	assert.Error(t, err)
}

func TestTimeStringMinutesUntil(t *testing.T) {
	got, err := TimeString("08:00").MinutesUntil(TimeString("12:00"))
	require.NoError(t, err)
	assert.Equal(t, 240, got)
}
