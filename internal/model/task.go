package model

import (
	"time"

	"github.com/google/uuid"
)

// Task is a calendar entry owned by exactly one user. OwnerID references a
// row in the auth store; the two stores may live on separate servers, so the
// reference is not a database-level foreign key.
type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Content     string    `gorm:"size:100;not null"`
	Description string    `gorm:"size:999"`
	// Complete is kept as an integer flag (0/1) to match the calendar client.
	Complete int       `gorm:"not null;default:0"`
	Start    time.Time `gorm:"not null"`
	End      *time.Time
}
