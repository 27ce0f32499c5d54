package domain

import "time"

type BusinessMembershipStatus string

const (
	BusinessMemberStatusMember   BusinessMembershipStatus = "member"
	BusinessMemberStatusTrial    BusinessMembershipStatus = "trial"
	BusinessMemberStatusPending  BusinessMembershipStatus = "pending"
	BusinessMemberStatusInactive BusinessMembershipStatus = "inactive"
)

type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusVerified VerificationStatus = "verified"
	VerificationStatusRejected VerificationStatus = "rejected"
)

// Business is a member's company profile within a chamber directory.
type Business struct {
	ID                 int32                    `json:"id"`
	ChamberID          int32                    `json:"chamber_id"`
	OwnerUserID        int32                    `json:"owner_user_id"`
	Name               string                   `json:"name"`
	Description        string                   `json:"description"`
	Category           string                   `json:"category"`
	Address            string                   `json:"address"`
	City               string                   `json:"city"`
	ContactEmail       string                   `json:"contact_email"`
	ContactPhone       string                   `json:"contact_phone"`
	WebsiteURL         string                   `json:"website_url"`
	LogoURL            string                   `json:"logo_url"`
	MembershipStatus   BusinessMembershipStatus `json:"membership_status"`
	VerificationStatus VerificationStatus       `json:"verification_status"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
}
