package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username       string    `gorm:"size:20;uniqueIndex;not null"`
	Email          string    `gorm:"size:80;uniqueIndex;not null"`
	Role           string    `gorm:"size:25;not null;default:User"`
	Name           string    `gorm:"size:20"`
	Surname        string    `gorm:"size:20"`
	HashedPassword string    `gorm:"not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}
