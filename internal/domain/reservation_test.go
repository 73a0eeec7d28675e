package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to ReservationStatus
		allowed  bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRefused, true},
		{StatusPending, StatusCancelled, true},
		{StatusApproved, StatusCancelled, true},

		{StatusApproved, StatusRefused, false},
		{StatusApproved, StatusPending, false},
		{StatusRefused, StatusApproved, false},
		{StatusRefused, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusApproved, false},
		{StatusPending, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusPending, InitialStatus(true))
	assert.Equal(t, StatusApproved, InitialStatus(false))
}

func TestValidStatus(t *testing.T) {
	for _, s := range []ReservationStatus{StatusPending, StatusApproved, StatusRefused, StatusCancelled} {
		assert.True(t, ValidStatus(s), "status %s", s)
	}
	assert.False(t, ValidStatus("confirmed"))
	assert.False(t, ValidStatus(""))
}

func TestReservationIsActive(t *testing.T) {
	now := time.Now()

	assert.True(t, (&Reservation{Status: StatusPending}).IsActive())
	assert.True(t, (&Reservation{Status: StatusApproved}).IsActive())
	assert.False(t, (&Reservation{Status: StatusRefused}).IsActive())
	assert.False(t, (&Reservation{Status: StatusCancelled}).IsActive())

	// A tombstoned reservation frees its window regardless of status.
	assert.False(t, (&Reservation{Status: StatusApproved, DeletedAt: &now}).IsActive())
}

func TestReservationCanBeCancelled(t *testing.T) {
	assert.True(t, (&Reservation{Status: StatusPending}).CanBeCancelled())
	assert.True(t, (&Reservation{Status: StatusApproved}).CanBeCancelled())
	assert.False(t, (&Reservation{Status: StatusRefused}).CanBeCancelled())
	assert.False(t, (&Reservation{Status: StatusCancelled}).CanBeCancelled())
}
