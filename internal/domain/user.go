package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleGuide   UserRole = "guide"
	RoleAdmin   UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleStudent, RoleGuide, RoleAdmin:
		return true
	default:
		return false
	}
}

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Role         UserRole  `json:"role" db:"role"`
	Name         string    `json:"name" db:"name"`
	Username     *string   `json:"username,omitempty" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash *string   `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Identity is the already-authenticated caller attached to every request.
type Identity struct {
	ID   uuid.UUID
	Role UserRole
	Name string
}

type CreateAdminInput struct {
	Name     string `json:"adminName" validate:"required,min=2,max=100"`
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email" validate:"required,email"`
}
