package service

import (
	"context"
	"time"

	"chamber-connect-backend/internal/access"
	"chamber-connect-backend/internal/domain"
	"chamber-connect-backend/internal/payments"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockChamberRepo
type MockChamberRepo struct {
	mock.Mock
}

func (m *MockChamberRepo) Create(ctx context.Context, chamber *domain.Chamber) error {
	args := m.Called(ctx, chamber)
	return args.Error(0)
}
func (m *MockChamberRepo) GetByID(ctx context.Context, id int32) (*domain.Chamber, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chamber), args.Error(1)
}
func (m *MockChamberRepo) GetBySlug(ctx context.Context, slug string) (*domain.Chamber, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chamber), args.Error(1)
}
func (m *MockChamberRepo) List(ctx context.Context) ([]domain.Chamber, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Chamber), args.Error(1)
}
func (m *MockChamberRepo) Update(ctx context.Context, chamber *domain.Chamber) error {
	args := m.Called(ctx, chamber)
	return args.Error(0)
}

// MockMembershipRepo
type MockMembershipRepo struct {
	mock.Mock
}

func (m *MockMembershipRepo) Create(ctx context.Context, mem *domain.ChamberMembership) error {
	args := m.Called(ctx, mem)
	return args.Error(0)
}
func (m *MockMembershipRepo) GetByID(ctx context.Context, id int32) (*domain.ChamberMembership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChamberMembership), args.Error(1)
}
func (m *MockMembershipRepo) GetByUserAndChamber(ctx context.Context, userID, chamberID int32) (*domain.ChamberMembership, error) {
	args := m.Called(ctx, userID, chamberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChamberMembership), args.Error(1)
}
func (m *MockMembershipRepo) ListByUser(ctx context.Context, userID int32) ([]domain.ChamberMembership, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.ChamberMembership), args.Error(1)
}
func (m *MockMembershipRepo) ListByChamber(ctx context.Context, chamberID int32, status domain.MembershipStatus) ([]domain.ChamberMembership, error) {
	args := m.Called(ctx, chamberID, status)
	return args.Get(0).([]domain.ChamberMembership), args.Error(1)
}
func (m *MockMembershipRepo) Update(ctx context.Context, mem *domain.ChamberMembership) error {
	args := m.Called(ctx, mem)
	return args.Error(0)
}
func (m *MockMembershipRepo) CountActive(ctx context.Context, chamberID int32) (int32, error) {
	args := m.Called(ctx, chamberID)
	return args.Get(0).(int32), args.Error(1)
}

// MockBusinessRepo
type MockBusinessRepo struct {
	mock.Mock
}

func (m *MockBusinessRepo) Create(ctx context.Context, b *domain.Business) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBusinessRepo) GetByID(ctx context.Context, id int32) (*domain.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}
func (m *MockBusinessRepo) GetByOwner(ctx context.Context, chamberID, ownerUserID int32) (*domain.Business, error) {
	args := m.Called(ctx, chamberID, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}
func (m *MockBusinessRepo) ListByChamber(ctx context.Context, chamberID int32) ([]domain.Business, error) {
	args := m.Called(ctx, chamberID)
	return args.Get(0).([]domain.Business), args.Error(1)
}
func (m *MockBusinessRepo) Update(ctx context.Context, b *domain.Business) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBusinessRepo) UpdateVerification(ctx context.Context, id int32, status domain.VerificationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockEventRepo
type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) Create(ctx context.Context, e *domain.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockEventRepo) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}
func (m *MockEventRepo) ListByChamber(ctx context.Context, chamberID int32, from time.Time) ([]domain.Event, error) {
	args := m.Called(ctx, chamberID, from)
	return args.Get(0).([]domain.Event), args.Error(1)
}
func (m *MockEventRepo) Update(ctx context.Context, e *domain.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockEventRepo) CountCreatedBetween(ctx context.Context, chamberID int32, from, to time.Time) (int32, error) {
	args := m.Called(ctx, chamberID, from, to)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockEventRepo) Register(ctx context.Context, reg *domain.EventRegistration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}
func (m *MockEventRepo) CountRegistrations(ctx context.Context, eventID int32) (int32, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(int32), args.Error(1)
}

// MockSubscriptionRepo
type MockSubscriptionRepo struct {
	mock.Mock
}

func (m *MockSubscriptionRepo) GetByChamber(ctx context.Context, chamberID int32) (*domain.ChamberSubscription, error) {
	args := m.Called(ctx, chamberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChamberSubscription), args.Error(1)
}
func (m *MockSubscriptionRepo) Create(ctx context.Context, sub *domain.ChamberSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}
func (m *MockSubscriptionRepo) UpdateStatus(ctx context.Context, id int32, status domain.SubscriptionStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockSubscriptionRepo) ListTrialsEndingBefore(ctx context.Context, cutoff time.Time) ([]domain.ChamberSubscription, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.ChamberSubscription), args.Error(1)
}
func (m *MockSubscriptionRepo) ListPlans(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SubscriptionPlan), args.Error(1)
}
func (m *MockSubscriptionRepo) GetPlan(ctx context.Context, id int32) (*domain.SubscriptionPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubscriptionPlan), args.Error(1)
}

// MockInviteRepo
type MockInviteRepo struct {
	mock.Mock
}

func (m *MockInviteRepo) Create(ctx context.Context, inv *domain.ChamberInvitation) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}
func (m *MockInviteRepo) GetByCode(ctx context.Context, code string) (*domain.ChamberInvitation, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChamberInvitation), args.Error(1)
}
func (m *MockInviteRepo) Update(ctx context.Context, inv *domain.ChamberInvitation) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}
func (m *MockInviteRepo) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockPartnershipRepo
type MockPartnershipRepo struct {
	mock.Mock
}

func (m *MockPartnershipRepo) UpsertProfile(ctx context.Context, p *domain.DiscoveryProfile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPartnershipRepo) GetProfileByChamber(ctx context.Context, chamberID int32) (*domain.DiscoveryProfile, error) {
	args := m.Called(ctx, chamberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DiscoveryProfile), args.Error(1)
}
func (m *MockPartnershipRepo) ListVisibleProfiles(ctx context.Context, excludeChamberID int32) ([]domain.DiscoveryProfile, error) {
	args := m.Called(ctx, excludeChamberID)
	return args.Get(0).([]domain.DiscoveryProfile), args.Error(1)
}
func (m *MockPartnershipRepo) CreatePartnership(ctx context.Context, p *domain.ChamberPartnership) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPartnershipRepo) GetPartnership(ctx context.Context, id int32) (*domain.ChamberPartnership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChamberPartnership), args.Error(1)
}
func (m *MockPartnershipRepo) UpdatePartnership(ctx context.Context, p *domain.ChamberPartnership) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPartnershipRepo) ListPartnershipsByChamber(ctx context.Context, chamberID int32) ([]domain.ChamberPartnership, error) {
	args := m.Called(ctx, chamberID)
	return args.Get(0).([]domain.ChamberPartnership), args.Error(1)
}

// MockSubscriptionSvc
type MockSubscriptionSvc struct {
	mock.Mock
}

func (m *MockSubscriptionSvc) GetPermissions(ctx context.Context, userID, chamberID int32) (*access.PermissionSet, error) {
	args := m.Called(ctx, userID, chamberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*access.PermissionSet), args.Error(1)
}
func (m *MockSubscriptionSvc) GetSubscription(ctx context.Context, chamberID int32) (*domain.ChamberSubscription, error) {
	args := m.Called(ctx, chamberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChamberSubscription), args.Error(1)
}
func (m *MockSubscriptionSvc) ListPlans(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SubscriptionPlan), args.Error(1)
}
func (m *MockSubscriptionSvc) StartTrial(ctx context.Context, userID, chamberID, planID int32) (*domain.ChamberSubscription, error) {
	args := m.Called(ctx, userID, chamberID, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChamberSubscription), args.Error(1)
}
func (m *MockSubscriptionSvc) CreateCheckoutSession(ctx context.Context, userID, chamberID, planID int32, cycle domain.BillingCycle) (*payments.CheckoutSession, error) {
	args := m.Called(ctx, userID, chamberID, planID, cycle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.CheckoutSession), args.Error(1)
}
func (m *MockSubscriptionSvc) HasReachedMemberLimit(ctx context.Context, chamberID int32) bool {
	args := m.Called(ctx, chamberID)
	return args.Bool(0)
}
func (m *MockSubscriptionSvc) HasReachedEventLimit(ctx context.Context, chamberID int32, now time.Time) bool {
	args := m.Called(ctx, chamberID, now)
	return args.Bool(0)
}

// MockEmailSvc
type MockEmailSvc struct {
	mock.Mock
}

func (m *MockEmailSvc) SendInvitation(ctx context.Context, email, chamberName, code string) error {
	args := m.Called(ctx, email, chamberName, code)
	return args.Error(0)
}
func (m *MockEmailSvc) SendMembershipDecision(ctx context.Context, email, chamberName string, approved bool) error {
	args := m.Called(ctx, email, chamberName, approved)
	return args.Error(0)
}
func (m *MockEmailSvc) SendTrialEndingReminder(ctx context.Context, email, chamberName string, daysLeft int) error {
	args := m.Called(ctx, email, chamberName, daysLeft)
	return args.Error(0)
}

func adminPerms() *access.PermissionSet {
	return &access.PermissionSet{
		IsAdmin:               true,
		IsStaff:               true,
		HasActiveSubscription: true,
		CanManageChamber:      true,
		CanManageMembers:      true,
		CanCreateEvents:       true,
		CanViewAnalytics:      true,
		CanAccessCrossChamber: true,
		CanManageSubscription: true,
	}
}
