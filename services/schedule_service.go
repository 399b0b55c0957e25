package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shaq-bracu/course-tutor-app/models"
)

const SlotGranularityMinutes = 30

var ErrBadTimeOfDay = errors.New("time of day must be HH:MM between 00:00 and 24:00")

// Interval is a half-open [Start, End) range in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

type Slot struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

// ParseMinuteOfDay converts "HH:MM" to minutes since midnight.
// "24:00" is accepted so a window can end exactly at midnight.
func ParseMinuteOfDay(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrBadTimeOfDay
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &h, &m); err != nil {
		return 0, ErrBadTimeOfDay
	}
	if m < 0 || m > 59 || h < 0 || h > 24 || (h == 24 && m != 0) {
		return 0, ErrBadTimeOfDay
	}
	return h*60 + m, nil
}

func FormatMinuteOfDay(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share any minute.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// ResolveDayWindow finds the recurring window matching the date's weekday.
// The second return value is false when the tutor has no window that day.
func ResolveDayWindow(windows []models.TutorAvailability, date time.Time) (Interval, bool) {
	weekday := date.Weekday().String()
	for _, w := range windows {
		if w.Weekday == weekday {
			return Interval{Start: w.StartMinute, End: w.EndMinute}, true
		}
	}
	return Interval{}, false
}

// PartitionSlots cuts the window into granularity-sized slots, skipping any
// slot that overlaps a busy interval. A trailing slot shorter than the
// granularity is dropped. Busy intervals may arrive in any order.
func PartitionSlots(window Interval, busy []Interval, granularity int) []Slot {
	slots := make([]Slot, 0)
	for s := window.Start; s+granularity <= window.End; s += granularity {
		e := s + granularity
		taken := false
		for _, b := range busy {
			if Overlaps(s, e, b.Start, b.End) {
				taken = true
				break
			}
		}
		if !taken {
			slots = append(slots, Slot{
				Start:     FormatMinuteOfDay(s),
				End:       FormatMinuteOfDay(e),
				Available: true,
			})
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Start < slots[j].Start })
	return slots
}

// BusyIntervals extracts the occupied ranges from a tutor's bookings.
func BusyIntervals(bookings []models.Booking) []Interval {
	busy := make([]Interval, 0, len(bookings))
	for _, b := range bookings {
		busy = append(busy, Interval{Start: b.StartMinute, End: b.EndMinute})
	}
	return busy
}
