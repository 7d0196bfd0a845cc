package models

import (
	"time"

	"github.com/google/uuid"
)

// Role names carried in the access token and checked by the route guards.
const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleAccountant = "accountant"
	RoleFacility   = "facility"
	RoleSecurity   = "security"
	RoleResident   = "resident"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
