package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shaq-bracu/course-tutor-app/models"
)

var (
	ErrFeedbackNotCompleted = errors.New("feedback is only accepted on completed sessions")
	ErrFeedbackBadRating    = errors.New("rating must be between 1 and 5")
	ErrFeedbackNotParty     = errors.New("actor is not a participant of this booking")
)

// ApplyFeedback writes the actor's own feedback slot on the booking.
// Resubmission overwrites the same slot; the counterpart's slot is never
// touched.
func ApplyFeedback(b *models.Booking, actorID uuid.UUID, rating int, comment string, now time.Time) error {
	if b.Status != BookingStatusCompleted {
		return ErrFeedbackNotCompleted
	}
	if rating < 1 || rating > 5 {
		return ErrFeedbackBadRating
	}
	switch actorID {
	case b.StudentID:
		b.StudentRating = &rating
		b.StudentComment = &comment
		b.StudentFeedbackAt = &now
	case b.TutorID:
		b.TutorRating = &rating
		b.TutorComment = &comment
		b.TutorFeedbackAt = &now
	default:
		return ErrFeedbackNotParty
	}
	return nil
}
