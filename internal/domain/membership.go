package domain

import "time"

type MembershipRole string

const (
	MembershipRoleAdmin  MembershipRole = "admin"
	MembershipRoleStaff  MembershipRole = "staff"
	MembershipRoleMember MembershipRole = "member"
)

type MembershipStatus string

const (
	MembershipStatusActive   MembershipStatus = "active"
	MembershipStatusPending  MembershipStatus = "pending"
	MembershipStatusInactive MembershipStatus = "inactive"
)

// ChamberMembership binds a user to a chamber. A user may hold memberships
// in multiple chambers; the primary one is derived, never stored.
type ChamberMembership struct {
	ID        int32            `json:"id"`
	ChamberID int32            `json:"chamber_id"`
	UserID    int32            `json:"user_id"`
	Role      MembershipRole   `json:"role"`
	Status    MembershipStatus `json:"status"`
	JoinedAt  time.Time        `json:"joined_at"`
	Note      string           `json:"note,omitempty"` // applicant note on join requests
}
