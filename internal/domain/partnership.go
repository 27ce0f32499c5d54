package domain

import "time"

// DiscoveryProfile is the public face a chamber exposes to the cross-chamber
// partner matching directory.
type DiscoveryProfile struct {
	ID                int32     `json:"id"`
	ChamberID         int32     `json:"chamber_id"`
	GeographicScope   string    `json:"geographic_scope"`
	MemberCount       int32     `json:"member_count"`
	PrimaryIndustries []string  `json:"primary_industries"`
	PartnershipGoals  []string  `json:"partnership_goals"`
	Visible           bool      `json:"visible"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type PartnershipStatus string

const (
	PartnershipStatusPending  PartnershipStatus = "pending"
	PartnershipStatusAccepted PartnershipStatus = "accepted"
	PartnershipStatusDeclined PartnershipStatus = "declined"
	PartnershipStatusEnded    PartnershipStatus = "ended"
)

type ChamberPartnership struct {
	ID                 int32             `json:"id"`
	RequestingChamber  int32             `json:"requesting_chamber_id"`
	PartnerChamber     int32             `json:"partner_chamber_id"`
	Status             PartnershipStatus `json:"status"`
	Message            string            `json:"message"`
	CompatibilityScore float64           `json:"compatibility_score"`
	CreatedAt          time.Time         `json:"created_at"`
	RespondedAt        *time.Time        `json:"responded_at,omitempty"`
}
