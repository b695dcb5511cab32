package domain

import (
	"time"
)

// User roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents a registered account. The password hash is never
// serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	LastLocation *string   `json:"last_location,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
