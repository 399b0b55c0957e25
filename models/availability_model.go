package models

import (
	"github.com/google/uuid"
)

// TutorAvailability is one recurring weekly window. Times of day are stored
// as minutes since midnight so interval comparisons stay integer arithmetic.
type TutorAvailability struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TutorID     uuid.UUID `gorm:"not null;uniqueIndex:idx_tutor_weekday" json:"-"`
	Weekday     string    `gorm:"size:10;not null;uniqueIndex:idx_tutor_weekday" json:"weekday"`
	StartMinute int       `gorm:"not null" json:"start_minute"`
	EndMinute   int       `gorm:"not null" json:"end_minute"`
}
