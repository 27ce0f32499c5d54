package domain

import "time"

type Chamber struct {
	ID           int32     `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"` // unique, URL-safe
	Description  string    `json:"description"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	ContactEmail string    `json:"contact_email"`
	ContactPhone string    `json:"contact_phone"`
	WebsiteURL   string    `json:"website_url"`
	LogoURL      string    `json:"logo_url"`
	FacebookURL  string    `json:"facebook_url"`
	LinkedinURL  string    `json:"linkedin_url"`
	InstagramURL string    `json:"instagram_url"`
	// Settings flags, mutated by chamber admins only.
	ShowMemberCount   bool      `json:"show_member_count"`
	AllowMemberSignup bool      `json:"allow_member_signup"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	MemberCount       int32     `json:"member_count,omitempty"` // populated on directory reads
}
