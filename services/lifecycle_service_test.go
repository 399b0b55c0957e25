package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatus_ValidTransitions(t *testing.T) {
	cases := []struct {
		from string
		cmd  Command
		want string
	}{
		{BookingStatusPending, CommandConfirm, BookingStatusConfirmed},
		{BookingStatusPending, CommandCancel, BookingStatusCancelled},
		{BookingStatusConfirmed, CommandStart, BookingStatusInProgress},
		{BookingStatusConfirmed, CommandComplete, BookingStatusCompleted},
		{BookingStatusConfirmed, CommandCancel, BookingStatusCancelled},
		{BookingStatusConfirmed, CommandNoShow, BookingStatusNoShow},
		{BookingStatusInProgress, CommandComplete, BookingStatusCompleted},
		{BookingStatusInProgress, CommandCancel, BookingStatusCancelled},
	}
	for _, tc := range cases {
		got, err := NextStatus(tc.from, tc.cmd)
		require.NoError(t, err, "%s + %s", tc.from, tc.cmd)
		assert.Equal(t, tc.want, got)
	}
}

func TestNextStatus_RejectedTransitions(t *testing.T) {
	cases := []struct {
		from string
		cmd  Command
	}{
		{BookingStatusPending, CommandComplete},
		{BookingStatusPending, CommandStart},
		{BookingStatusConfirmed, CommandConfirm},
		{BookingStatusCompleted, CommandCancel},
		{BookingStatusCompleted, CommandConfirm},
		{BookingStatusCancelled, CommandConfirm},
		{BookingStatusCancelled, CommandCancel},
		{BookingStatusNoShow, CommandComplete},
		{"bogus", CommandConfirm},
	}
	for _, tc := range cases {
		_, err := NextStatus(tc.from, tc.cmd)
		assert.ErrorIs(t, err, ErrInvalidTransition, "%s + %s should fail", tc.from, tc.cmd)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(BookingStatusCompleted))
	assert.True(t, IsTerminal(BookingStatusCancelled))
	assert.True(t, IsTerminal(BookingStatusNoShow))
	assert.False(t, IsTerminal(BookingStatusPending))
	assert.False(t, IsTerminal(BookingStatusConfirmed))
	assert.False(t, IsTerminal(BookingStatusInProgress))
}

func TestCanReschedule(t *testing.T) {
	assert.True(t, CanReschedule(BookingStatusPending))
	assert.True(t, CanReschedule(BookingStatusConfirmed))
	assert.False(t, CanReschedule(BookingStatusInProgress))
	assert.False(t, CanReschedule(BookingStatusCompleted))
	assert.False(t, CanReschedule(BookingStatusCancelled))
}
