package domain

import "time"

// ChamberInvitation is an admin-issued, code-based invite to join a chamber.
type ChamberInvitation struct {
	ID              int32          `json:"id"`
	Code            string         `json:"code"`
	ChamberID       int32          `json:"chamber_id"`
	Email           string         `json:"email"`
	Role            MembershipRole `json:"role"`
	CreatedByUserID int32          `json:"created_by_user_id"`
	ExpiresAt       time.Time      `json:"expires_at"`
	UsedAt          *time.Time     `json:"used_at,omitempty"`
	UsedByUserID    *int32         `json:"used_by_user_id,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}
