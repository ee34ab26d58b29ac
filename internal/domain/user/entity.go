package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RolePM       Role = "PM"
	RoleEmployee Role = "EMPLOYEE"
)

type User struct {
	ID           uuid.UUID
	Email        string
	Username     string
	FullName     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
