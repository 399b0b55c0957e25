package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// TutorLocker hands out one mutex per tutor so that conflict-check-and-insert
// runs serialized for a given tutor within this process. The database row
// lock taken inside the booking transaction covers concurrent instances;
// this keeps local contention off the database entirely.
//
// Idle entries are evicted after a TTL instead of living forever in a
// process-wide map.
type TutorLocker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*tutorLock
	ttl   time.Duration
}

type tutorLock struct {
	mu       sync.Mutex
	refs     int
	lastUsed time.Time
}

func NewTutorLocker(ttl time.Duration) *TutorLocker {
	return &TutorLocker{
		locks: make(map[uuid.UUID]*tutorLock),
		ttl:   ttl,
	}
}

// BookingLocks is the shared locker used by booking creation and reschedule.
var BookingLocks = NewTutorLocker(30 * time.Minute)

func (l *TutorLocker) Lock(tutorID uuid.UUID) {
	l.mu.Lock()
	e, ok := l.locks[tutorID]
	if !ok {
		e = &tutorLock{}
		l.locks[tutorID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
}

func (l *TutorLocker) Unlock(tutorID uuid.UUID) {
	l.mu.Lock()
	e := l.locks[tutorID]
	e.refs--
	e.lastUsed = time.Now()
	l.mu.Unlock()

	e.mu.Unlock()
}

// Evict drops entries that are unheld and idle past the TTL. Wired as a
// periodic cron job.
func (l *TutorLocker) Evict() {
	cutoff := time.Now().Add(-l.ttl)
	l.mu.Lock()
	defer l.mu.Unlock()
	for id, e := range l.locks {
		if e.refs == 0 && e.lastUsed.Before(cutoff) {
			delete(l.locks, id)
		}
	}
}

// Len reports the number of tracked entries.
func (l *TutorLocker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
