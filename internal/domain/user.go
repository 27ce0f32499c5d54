package domain

import "time"

// UserRole is the account-level role, distinct from the per-chamber
// membership role.
type UserRole string

const (
	UserRoleChamberAdmin  UserRole = "chamber_admin"
	UserRoleBusinessOwner UserRole = "business_owner"
	UserRoleStaff         UserRole = "staff"
)

type User struct {
	ID           int32     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	PhoneNumber  string    `json:"phone_number"`
	Role         UserRole  `json:"role"`
	AvatarURL    string    `json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
}
