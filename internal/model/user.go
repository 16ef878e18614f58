package model

import "time"

// UserRole determines what a user may do in the system.
type UserRole string

const (
	RoleDonor   UserRole = "DONOR"
	RoleCharity UserRole = "CHARITY"
	RoleAdmin   UserRole = "ADMIN"
)

// UserStatus marks whether a user account is usable.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

// User represents a donor, charity, or admin account. Email and username are
// unique across the users collection.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Never expose in JSON
	Role         UserRole   `json:"role"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
}
