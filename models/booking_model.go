package models

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID uuid.UUID `gorm:"not null;index" json:"student_id"`
	TutorID   uuid.UUID `gorm:"not null;index:idx_bookings_tutor_date" json:"tutor_id"`
	CourseID  uuid.UUID `gorm:"not null" json:"course_id"`

	SessionDate     time.Time `gorm:"type:date;not null;index:idx_bookings_tutor_date" json:"session_date"`
	StartMinute     int       `gorm:"not null" json:"start_minute"`
	EndMinute       int       `gorm:"not null" json:"end_minute"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`

	TotalAmount float64 `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	Currency    string  `gorm:"size:3;not null" json:"currency"`

	Status        string  `gorm:"size:20;not null;default:'pending'" json:"status"`
	PaymentStatus string  `gorm:"size:20;not null;default:'pending'" json:"payment_status"`
	PaymentMethod string  `gorm:"size:30;not null" json:"payment_method"`
	MeetingLink   *string `gorm:"size:255" json:"meeting_link"`

	Notes      *string `gorm:"type:text" json:"notes"`
	Objectives *string `gorm:"type:text" json:"objectives"`

	CancelReason *string    `gorm:"type:text" json:"cancel_reason"`
	CancelledBy  *uuid.UUID `json:"cancelled_by"`
	RefundAmount *float64   `gorm:"type:numeric(10,2)" json:"refund_amount"`

	StudentJoinedAt *time.Time `json:"student_joined_at"`
	TutorJoinedAt   *time.Time `json:"tutor_joined_at"`

	StudentRating     *int       `json:"student_rating"`
	StudentComment    *string    `gorm:"type:text" json:"student_comment"`
	StudentFeedbackAt *time.Time `json:"student_feedback_at"`
	TutorRating       *int       `json:"tutor_rating"`
	TutorComment      *string    `gorm:"type:text" json:"tutor_comment"`
	TutorFeedbackAt   *time.Time `json:"tutor_feedback_at"`

	RescheduleHistory []RescheduleRecord `gorm:"foreignkey:BookingID" json:"reschedule_history,omitempty"`

	Student User   `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Tutor   User   `gorm:"foreignkey:TutorID" json:"tutor,omitempty"`
	Course  Course `gorm:"foreignkey:CourseID" json:"course,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionStart combines the stored date with the start minute, in UTC.
func (b *Booking) SessionStart() time.Time {
	d := b.SessionDate.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).
		Add(time.Duration(b.StartMinute) * time.Minute)
}

func (b *Booking) SessionEnd() time.Time {
	d := b.SessionDate.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).
		Add(time.Duration(b.EndMinute) * time.Minute)
}
