package models

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TutorID     uuid.UUID `gorm:"not null;index" json:"tutor_id"`
	Title       string    `gorm:"size:150;not null" json:"title"`
	Subject     string    `gorm:"size:100;not null" json:"subject"`
	Description *string   `gorm:"type:text" json:"description"`
	Level       *string   `gorm:"size:50" json:"level"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
