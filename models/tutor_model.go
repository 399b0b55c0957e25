package models

import (
	"time"

	"github.com/google/uuid"
)

type Tutor struct {
	UserID     uuid.UUID `gorm:"primary_key" json:"user_id"`
	Headline   *string   `gorm:"size:255" json:"headline"`
	Bio        *string   `gorm:"type:text" json:"bio"`
	Status     string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	HourlyRate float64   `gorm:"type:numeric(10,2);not null;default:0.00" json:"hourly_rate"`
	Currency   string    `gorm:"size:3;not null;default:'BDT'" json:"currency"`

	Courses []Course `gorm:"foreignkey:TutorID" json:"courses,omitempty"`
	User    User     `gorm:"foreignkey:UserID" json:"user"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
