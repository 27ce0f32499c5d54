package repository

import (
	"context"
	"time"

	"chamber-connect-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type ChamberRepository interface {
	Create(ctx context.Context, chamber *domain.Chamber) error
	GetByID(ctx context.Context, id int32) (*domain.Chamber, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Chamber, error)
	List(ctx context.Context) ([]domain.Chamber, error)
	Update(ctx context.Context, chamber *domain.Chamber) error
}

type MembershipRepository interface {
	Create(ctx context.Context, m *domain.ChamberMembership) error
	GetByID(ctx context.Context, id int32) (*domain.ChamberMembership, error)
	GetByUserAndChamber(ctx context.Context, userID, chamberID int32) (*domain.ChamberMembership, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.ChamberMembership, error)
	ListByChamber(ctx context.Context, chamberID int32, status domain.MembershipStatus) ([]domain.ChamberMembership, error)
	Update(ctx context.Context, m *domain.ChamberMembership) error
	CountActive(ctx context.Context, chamberID int32) (int32, error)
}

type BusinessRepository interface {
	Create(ctx context.Context, b *domain.Business) error
	GetByID(ctx context.Context, id int32) (*domain.Business, error)
	GetByOwner(ctx context.Context, chamberID, ownerUserID int32) (*domain.Business, error)
	ListByChamber(ctx context.Context, chamberID int32) ([]domain.Business, error)
	Update(ctx context.Context, b *domain.Business) error
	UpdateVerification(ctx context.Context, id int32, status domain.VerificationStatus) error
}

type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id int32) (*domain.Event, error)
	ListByChamber(ctx context.Context, chamberID int32, from time.Time) ([]domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error
	CountCreatedBetween(ctx context.Context, chamberID int32, from, to time.Time) (int32, error)
	Register(ctx context.Context, reg *domain.EventRegistration) error
	CountRegistrations(ctx context.Context, eventID int32) (int32, error)
}

type SubscriptionRepository interface {
	GetByChamber(ctx context.Context, chamberID int32) (*domain.ChamberSubscription, error)
	Create(ctx context.Context, sub *domain.ChamberSubscription) error
	UpdateStatus(ctx context.Context, id int32, status domain.SubscriptionStatus) error
	ListTrialsEndingBefore(ctx context.Context, cutoff time.Time) ([]domain.ChamberSubscription, error)
	ListPlans(ctx context.Context) ([]domain.SubscriptionPlan, error)
	GetPlan(ctx context.Context, id int32) (*domain.SubscriptionPlan, error)
}

type QRRepository interface {
	RecordScan(ctx context.Context, scan *domain.QRScan) error
	ListScans(ctx context.Context, chamberID int32, from, to time.Time) ([]domain.QRScan, error)
	ListDailySummaries(ctx context.Context, chamberID int32, from, to string) ([]domain.QRDailySummary, error)
	RollupDay(ctx context.Context, day string) (int64, error)
	RecordProfileView(ctx context.Context, view *domain.ProfileView) error
}

type InvitationRepository interface {
	Create(ctx context.Context, inv *domain.ChamberInvitation) error
	GetByCode(ctx context.Context, code string) (*domain.ChamberInvitation, error)
	Update(ctx context.Context, inv *domain.ChamberInvitation) error
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

type PartnershipRepository interface {
	UpsertProfile(ctx context.Context, p *domain.DiscoveryProfile) error
	GetProfileByChamber(ctx context.Context, chamberID int32) (*domain.DiscoveryProfile, error)
	ListVisibleProfiles(ctx context.Context, excludeChamberID int32) ([]domain.DiscoveryProfile, error)
	CreatePartnership(ctx context.Context, p *domain.ChamberPartnership) error
	GetPartnership(ctx context.Context, id int32) (*domain.ChamberPartnership, error)
	UpdatePartnership(ctx context.Context, p *domain.ChamberPartnership) error
	ListPartnershipsByChamber(ctx context.Context, chamberID int32) ([]domain.ChamberPartnership, error)
}

type MessageRepository interface {
	CreateConnection(ctx context.Context, c *domain.Connection) error
	GetConnection(ctx context.Context, chamberID, requesterID, recipientID int32) (*domain.Connection, error)
	GetConnectionByID(ctx context.Context, id int32) (*domain.Connection, error)
	UpdateConnection(ctx context.Context, c *domain.Connection) error
	CreateMessage(ctx context.Context, m *domain.Message) error
	ListConversation(ctx context.Context, chamberID, userA, userB int32, limit int32) ([]domain.Message, error)
}
