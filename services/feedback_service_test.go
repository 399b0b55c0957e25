package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaq-bracu/course-tutor-app/models"
)

func completedBooking() *models.Booking {
	return &models.Booking{
		ID:        uuid.New(),
		StudentID: uuid.New(),
		TutorID:   uuid.New(),
		Status:    BookingStatusCompleted,
	}
}

func TestApplyFeedback_BothSides(t *testing.T) {
	b := completedBooking()
	now := time.Now()

	require.NoError(t, ApplyFeedback(b, b.StudentID, 5, "great session", now))
	require.NoError(t, ApplyFeedback(b, b.TutorID, 4, "attentive student", now))

	require.NotNil(t, b.StudentRating)
	assert.Equal(t, 5, *b.StudentRating)
	assert.Equal(t, "great session", *b.StudentComment)
	require.NotNil(t, b.TutorRating)
	assert.Equal(t, 4, *b.TutorRating)
}

func TestApplyFeedback_ResubmissionOverwritesOwnSlotOnly(t *testing.T) {
	b := completedBooking()
	now := time.Now()

	require.NoError(t, ApplyFeedback(b, b.StudentID, 3, "ok", now))
	require.NoError(t, ApplyFeedback(b, b.TutorID, 5, "good", now))

	later := now.Add(time.Hour)
	require.NoError(t, ApplyFeedback(b, b.StudentID, 4, "better on reflection", later))

	assert.Equal(t, 4, *b.StudentRating)
	assert.Equal(t, "better on reflection", *b.StudentComment)
	assert.Equal(t, later, *b.StudentFeedbackAt)

	// tutor slot untouched
	assert.Equal(t, 5, *b.TutorRating)
	assert.Equal(t, "good", *b.TutorComment)
	assert.Equal(t, now, *b.TutorFeedbackAt)
}

func TestApplyFeedback_Guards(t *testing.T) {
	now := time.Now()

	b := completedBooking()
	b.Status = BookingStatusConfirmed
	assert.ErrorIs(t, ApplyFeedback(b, b.StudentID, 5, "", now), ErrFeedbackNotCompleted)

	b = completedBooking()
	assert.ErrorIs(t, ApplyFeedback(b, b.StudentID, 0, "", now), ErrFeedbackBadRating)
	assert.ErrorIs(t, ApplyFeedback(b, b.StudentID, 6, "", now), ErrFeedbackBadRating)

	assert.ErrorIs(t, ApplyFeedback(b, uuid.New(), 5, "", now), ErrFeedbackNotParty)
	assert.Nil(t, b.StudentRating, "failed submissions must not write anything")
	assert.Nil(t, b.TutorRating)
}
