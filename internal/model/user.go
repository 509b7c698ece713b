package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles. Owner is the superset role; every store has at least one active owner.
const (
	RoleAdmin = "admin"
	RoleOwner = "owner"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	FullName     string    `gorm:"not null"`
	Role         string    `gorm:"not null;default:'admin'"` // admin | owner
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
