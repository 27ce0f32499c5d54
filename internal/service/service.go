package service

import (
	"context"
	"time"

	"chamber-connect-backend/internal/access"
	"chamber-connect-backend/internal/analytics"
	"chamber-connect-backend/internal/domain"
	"chamber-connect-backend/internal/payments"
	"chamber-connect-backend/internal/utils"
)

type AuthService interface {
	ValidateInvitation(ctx context.Context, code string) (*domain.ChamberInvitation, error)
	Signup(ctx context.Context, inviteCode, name, email, phone, password string) (*domain.User, string, string, error) // user, access, refresh
	RequestToJoin(ctx context.Context, chamberID int32, userID int32, note string) (*domain.ChamberMembership, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
}

type ChamberService interface {
	GetChamber(ctx context.Context, id int32) (*domain.Chamber, error)
	GetChamberBySlug(ctx context.Context, slug string) (*domain.Chamber, error)
	ListChambers(ctx context.Context) ([]domain.Chamber, error)
	CreateChamber(ctx context.Context, userID int32, chamber *domain.Chamber) error
	UpdateChamber(ctx context.Context, userID int32, chamber *domain.Chamber) error
}

type MemberService interface {
	ListMembers(ctx context.Context, chamberID int32, status domain.MembershipStatus) ([]domain.ChamberMembership, error)
	ApproveMember(ctx context.Context, adminUserID, chamberID, membershipID int32) (*domain.ChamberMembership, error)
	RejectMember(ctx context.Context, adminUserID, chamberID, membershipID int32) error
	InviteMember(ctx context.Context, adminUserID, chamberID int32, email string, role domain.MembershipRole) (*domain.ChamberInvitation, error)
	ResolvePrimaryMembership(ctx context.Context, userID int32) (*domain.ChamberMembership, error)
}

type BusinessService interface {
	CreateBusiness(ctx context.Context, userID int32, b *domain.Business) error
	GetBusiness(ctx context.Context, id int32) (*domain.Business, error)
	UpdateBusiness(ctx context.Context, userID int32, b *domain.Business) error
	ListDirectory(ctx context.Context, chamberID int32) ([]domain.Business, error)
}

type EventService interface {
	CreateEvent(ctx context.Context, userID int32, event *domain.Event) error
	GetEvent(ctx context.Context, id int32) (*domain.Event, error)
	ListEvents(ctx context.Context, chamberID int32, from time.Time) ([]domain.Event, error)
	UpdateEvent(ctx context.Context, userID int32, event *domain.Event) error
	RegisterForEvent(ctx context.Context, userID, eventID int32) (*domain.EventRegistration, error)
}

type SubscriptionService interface {
	GetPermissions(ctx context.Context, userID, chamberID int32) (*access.PermissionSet, error)
	GetSubscription(ctx context.Context, chamberID int32) (*domain.ChamberSubscription, error)
	ListPlans(ctx context.Context) ([]domain.SubscriptionPlan, error)
	StartTrial(ctx context.Context, userID, chamberID, planID int32) (*domain.ChamberSubscription, error)
	CreateCheckoutSession(ctx context.Context, userID, chamberID, planID int32, cycle domain.BillingCycle) (*payments.CheckoutSession, error)
	HasReachedMemberLimit(ctx context.Context, chamberID int32) bool
	HasReachedEventLimit(ctx context.Context, chamberID int32, now time.Time) bool
}

type AnalyticsService interface {
	RecordScan(ctx context.Context, scan *domain.QRScan) error
	RecordProfileView(ctx context.Context, view *domain.ProfileView) error
	GetSummary(ctx context.Context, userID, chamberID int32, rangeDays int) (*analytics.Summary, error)
	BusinessQRCode(ctx context.Context, businessID int32, source domain.ScanSource, size int) (string, string, error) // trackingURL, imageURL
}

type PartnershipService interface {
	UpsertDiscoveryProfile(ctx context.Context, userID int32, profile *domain.DiscoveryProfile) error
	DiscoverChambers(ctx context.Context, userID, chamberID int32) ([]DiscoveryMatch, error)
	RequestPartnership(ctx context.Context, userID, chamberID, partnerChamberID int32, message string) (*domain.ChamberPartnership, error)
	RespondToPartnership(ctx context.Context, userID, chamberID, partnershipID int32, accept bool) (*domain.ChamberPartnership, error)
	ListPartnerships(ctx context.Context, chamberID int32) ([]domain.ChamberPartnership, error)
}

// DiscoveryMatch pairs a visible chamber profile with its compatibility
// score against the requesting chamber.
type DiscoveryMatch struct {
	Profile       domain.DiscoveryProfile   `json:"profile"`
	Compatibility utils.CompatibilityResult `json:"compatibility"`
}

type MessagingService interface {
	RequestConnection(ctx context.Context, chamberID, requesterID, recipientID int32) (*domain.Connection, error)
	RespondToConnection(ctx context.Context, userID, connectionID int32, accept bool) (*domain.Connection, error)
	SendMessage(ctx context.Context, chamberID, senderID, recipientID int32, body string) (*domain.Message, error)
	GetConversation(ctx context.Context, chamberID, userID, otherUserID int32, limit int32) ([]domain.Message, error)
}

type AdminService interface {
	GetDashboard(ctx context.Context, userID, chamberID int32) (*DashboardStats, error)
}

// DashboardStats is the admin dashboard payload, assembled from concurrent
// per-section queries.
type DashboardStats struct {
	ChamberID          int32                       `json:"chamber_id"`
	MemberCount        int32                       `json:"member_count"`
	PendingMembers     []domain.ChamberMembership  `json:"pending_members"`
	UnverifiedBusiness []domain.Business           `json:"unverified_businesses"`
	UpcomingEvents     []domain.Event              `json:"upcoming_events"`
	EventsThisMonth    int32                       `json:"events_this_month"`
	ScansThisMonth     int32                       `json:"scans_this_month"`
	HealthScore        int                         `json:"health_score"`
	Subscription       *domain.ChamberSubscription `json:"subscription,omitempty"`
	TrialDaysRemaining int                         `json:"trial_days_remaining"`
}

type EmailService interface {
	SendInvitation(ctx context.Context, email, chamberName, code string) error
	SendMembershipDecision(ctx context.Context, email, chamberName string, approved bool) error
	SendTrialEndingReminder(ctx context.Context, email, chamberName string, daysLeft int) error
}
