package models

import (
	"time"

	"github.com/google/uuid"
)

// RescheduleRecord rows are append-only; nothing in the app updates or
// deletes them once written.
type RescheduleRecord struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BookingID      uuid.UUID `gorm:"not null;index" json:"-"`
	OldDate        time.Time `gorm:"type:date;not null" json:"old_date"`
	NewDate        time.Time `gorm:"type:date;not null" json:"new_date"`
	OldStartMinute int       `gorm:"not null" json:"old_start_minute"`
	NewStartMinute int       `gorm:"not null" json:"new_start_minute"`
	Reason         string    `gorm:"type:text" json:"reason"`
	RequestedBy    uuid.UUID `gorm:"not null" json:"requested_by"`
	CreatedAt      time.Time `json:"created_at"`
}
