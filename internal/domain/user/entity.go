package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCandidate Role = "CANDIDATE"
	RoleEmployer  Role = "EMPLOYER"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCandidate, RoleEmployer:
		return Role(s), true
	default:
		return "", false
	}
}

type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
