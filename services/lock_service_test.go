package services

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Simulates two clients racing to book the identical tutor interval. With the
// check-and-insert serialized by the tutor lock, exactly one wins and the
// other sees the conflict.
func TestTutorLocker_RacingBookingsSingleWinner(t *testing.T) {
	locker := NewTutorLocker(time.Minute)
	tutorID := uuid.New()

	type interval struct{ start, end int }
	booked := make([]interval, 0)

	tryBook := func(start, end int) bool {
		locker.Lock(tutorID)
		defer locker.Unlock(tutorID)
		for _, b := range booked {
			if Overlaps(start, end, b.start, b.end) {
				return false
			}
		}
		booked = append(booked, interval{start, end})
		return true
	}

	const attempts = 50
	var wg sync.WaitGroup
	results := make(chan bool, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- tryBook(600, 660)
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for ok := range results {
		if ok {
			wins++
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent booking may succeed")
	assert.Len(t, booked, 1)
}

func TestTutorLocker_IndependentTutorsDoNotBlock(t *testing.T) {
	locker := NewTutorLocker(time.Minute)
	a, b := uuid.New(), uuid.New()

	locker.Lock(a)
	done := make(chan struct{})
	go func() {
		locker.Lock(b)
		locker.Unlock(b)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("lock on tutor B blocked behind tutor A")
	}
	locker.Unlock(a)
}

func TestTutorLocker_Evict(t *testing.T) {
	locker := NewTutorLocker(10 * time.Millisecond)
	id := uuid.New()

	locker.Lock(id)
	locker.Evict()
	require.Equal(t, 1, locker.Len(), "held locks are never evicted")
	locker.Unlock(id)

	time.Sleep(20 * time.Millisecond)
	locker.Evict()
	assert.Equal(t, 0, locker.Len())

	// a fresh entry stays until it ages out
	locker.Lock(id)
	locker.Unlock(id)
	locker.Evict()
	assert.Equal(t, 1, locker.Len())
}
