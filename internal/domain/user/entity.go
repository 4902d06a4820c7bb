package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleRecruiter Role = "recruiter"
	RoleCandidate Role = "candidate"
)

func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleRecruiter:
		return RoleRecruiter, true
	case RoleCandidate:
		return RoleCandidate, true
	default:
		return "", false
	}
}

// User is an account holder. Role is fixed at signup and never changes.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Sanitized returns a copy safe to hand to the delivery layer.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}
