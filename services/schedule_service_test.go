package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaq-bracu/course-tutor-app/models"
)

func TestParseMinuteOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"17:30", 1050, false},
		{"24:00", 1440, false},
		{"24:01", 0, true},
		{"25:00", 0, true},
		{"09:60", 0, true},
		{"9:00", 0, true},
		{"0900", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseMinuteOfDay(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestFormatMinuteOfDay(t *testing.T) {
	assert.Equal(t, "09:00", FormatMinuteOfDay(540))
	assert.Equal(t, "00:05", FormatMinuteOfDay(5))
	assert.Equal(t, "23:30", FormatMinuteOfDay(1410))
}

func TestOverlaps(t *testing.T) {
	// half-open: touching endpoints do not overlap
	assert.False(t, Overlaps(540, 600, 600, 660))
	assert.False(t, Overlaps(600, 660, 540, 600))
	assert.True(t, Overlaps(540, 660, 600, 630))
	assert.True(t, Overlaps(600, 630, 540, 660))
	assert.True(t, Overlaps(540, 601, 600, 660))
	assert.False(t, Overlaps(540, 600, 660, 720))
}

func TestResolveDayWindow(t *testing.T) {
	windows := []models.TutorAvailability{
		{Weekday: "Monday", StartMinute: 540, EndMinute: 1020},
		{Weekday: "Wednesday", StartMinute: 600, EndMinute: 720},
	}

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Monday, monday.Weekday())

	w, ok := ResolveDayWindow(windows, monday)
	require.True(t, ok)
	assert.Equal(t, Interval{Start: 540, End: 1020}, w)

	tuesday := monday.AddDate(0, 0, 1)
	_, ok = ResolveDayWindow(windows, tuesday)
	assert.False(t, ok)
}

func TestPartitionSlots_EmptyDay(t *testing.T) {
	// Monday 09:00-17:00, no bookings: 16 contiguous half-hour slots.
	slots := PartitionSlots(Interval{Start: 540, End: 1020}, nil, SlotGranularityMinutes)

	require.Len(t, slots, 16)
	assert.Equal(t, "09:00", slots[0].Start)
	assert.Equal(t, "17:00", slots[len(slots)-1].End)
	for i, s := range slots {
		assert.True(t, s.Available)
		if i > 0 {
			assert.Equal(t, slots[i-1].End, s.Start, "slots must be contiguous")
		}
	}
}

func TestPartitionSlots_BusyRemoved(t *testing.T) {
	// 10:00-11:00 booked inside a 09:00-17:00 day.
	busy := []Interval{{Start: 600, End: 660}}
	slots := PartitionSlots(Interval{Start: 540, End: 1020}, busy, SlotGranularityMinutes)

	require.Len(t, slots, 14)
	for _, s := range slots {
		start, err := ParseMinuteOfDay(s.Start)
		require.NoError(t, err)
		end, err := ParseMinuteOfDay(s.End)
		require.NoError(t, err)
		assert.False(t, Overlaps(start, end, 600, 660),
			"slot %s-%s overlaps the booking", s.Start, s.End)
	}
}

func TestPartitionSlots_PartialOverlapExcluded(t *testing.T) {
	// A booking covering 10:15-10:45 knocks out both the 10:00 and 10:30 slots.
	busy := []Interval{{Start: 615, End: 645}}
	slots := PartitionSlots(Interval{Start: 600, End: 720}, busy, SlotGranularityMinutes)

	require.Len(t, slots, 2)
	assert.Equal(t, "11:00", slots[0].Start)
	assert.Equal(t, "11:30", slots[1].Start)
}

func TestPartitionSlots_TrailingPartialDropped(t *testing.T) {
	// 09:00-09:45 only fits one full slot.
	slots := PartitionSlots(Interval{Start: 540, End: 585}, nil, SlotGranularityMinutes)
	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0].Start)
	assert.Equal(t, "09:30", slots[0].End)
}

func TestPartitionSlots_WindowSmallerThanGranularity(t *testing.T) {
	slots := PartitionSlots(Interval{Start: 540, End: 560}, nil, SlotGranularityMinutes)
	assert.Empty(t, slots)
}

func TestBusyIntervals(t *testing.T) {
	bookings := []models.Booking{
		{StartMinute: 600, EndMinute: 660},
		{StartMinute: 720, EndMinute: 780},
	}
	busy := BusyIntervals(bookings)
	require.Len(t, busy, 2)
	assert.Equal(t, Interval{Start: 600, End: 660}, busy[0])
	assert.Equal(t, Interval{Start: 720, End: 780}, busy[1])
}
