package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"chamber-connect-backend/internal/domain"
	"chamber-connect-backend/internal/payments"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSubscriptionServiceForTest(t *testing.T) (*subscriptionService, *MockSubscriptionRepo, *MockMembershipRepo, *MockEventRepo, *MockUserRepo) {
	t.Helper()
	subRepo := new(MockSubscriptionRepo)
	membershipRepo := new(MockMembershipRepo)
	eventRepo := new(MockEventRepo)
	userRepo := new(MockUserRepo)
	svc := NewSubscriptionService(subRepo, membershipRepo, eventRepo, userRepo, payments.NewMockProvider("https://pay.example"),
		"https://app.example/billing/success", "https://app.example/billing/cancel").(*subscriptionService)
	return svc, subRepo, membershipRepo, eventRepo, userRepo
}

func activeSub(maxMembers, maxEvents int32) *domain.ChamberSubscription {
	return &domain.ChamberSubscription{
		ID:        1,
		ChamberID: 1,
		PlanID:    2,
		Status:    domain.SubscriptionStatusActive,
		Plan: &domain.SubscriptionPlan{
			ID:                2,
			MaxMembers:        maxMembers,
			MaxEventsPerMonth: maxEvents,
			AnalyticsEnabled:  true,
		},
	}
}

func TestGetPermissions(t *testing.T) {
	ctx := context.Background()

	t.Run("assembles the full set for an active admin", func(t *testing.T) {
		svc, subRepo, membershipRepo, _, userRepo := newSubscriptionServiceForTest(t)

		userRepo.On("GetByID", ctx, int32(7)).Return(&domain.User{ID: 7, Role: domain.UserRoleBusinessOwner}, nil)
		membershipRepo.On("GetByUserAndChamber", ctx, int32(7), int32(1)).Return(&domain.ChamberMembership{
			ID: 1, ChamberID: 1, UserID: 7,
			Role: domain.MembershipRoleAdmin, Status: domain.MembershipStatusActive,
		}, nil)
		subRepo.On("GetByChamber", ctx, int32(1)).Return(activeSub(100, 10), nil)

		perms, err := svc.GetPermissions(ctx, 7, 1)
		require.NoError(t, err)
		assert.True(t, perms.IsAdmin)
		assert.True(t, perms.CanManageMembers)
		assert.True(t, perms.CanViewAnalytics)
	})

	t.Run("degrades to restrictive set when nothing is found", func(t *testing.T) {
		svc, subRepo, membershipRepo, _, userRepo := newSubscriptionServiceForTest(t)

		userRepo.On("GetByID", ctx, int32(7)).Return(&domain.User{ID: 7, Role: domain.UserRoleBusinessOwner}, nil)
		membershipRepo.On("GetByUserAndChamber", ctx, int32(7), int32(1)).Return(nil, sql.ErrNoRows)
		subRepo.On("GetByChamber", ctx, int32(1)).Return(nil, sql.ErrNoRows)

		perms, err := svc.GetPermissions(ctx, 7, 1)
		require.NoError(t, err)
		assert.False(t, perms.IsAdmin)
		assert.False(t, perms.CanManageMembers)
		assert.False(t, perms.HasActiveSubscription)
	})

	t.Run("an inactive membership grants nothing", func(t *testing.T) {
		svc, subRepo, membershipRepo, _, userRepo := newSubscriptionServiceForTest(t)

		userRepo.On("GetByID", ctx, int32(7)).Return(&domain.User{ID: 7, Role: domain.UserRoleBusinessOwner}, nil)
		membershipRepo.On("GetByUserAndChamber", ctx, int32(7), int32(1)).Return(&domain.ChamberMembership{
			Role: domain.MembershipRoleAdmin, Status: domain.MembershipStatusPending,
		}, nil)
		subRepo.On("GetByChamber", ctx, int32(1)).Return(activeSub(100, 10), nil)

		perms, err := svc.GetPermissions(ctx, 7, 1)
		require.NoError(t, err)
		assert.False(t, perms.IsAdmin)
		assert.False(t, perms.CanManageMembers)
	})
}

func TestHasReachedMemberLimit(t *testing.T) {
	ctx := context.Background()

	t.Run("hits the cap exactly at the limit", func(t *testing.T) {
		svc, subRepo, membershipRepo, _, _ := newSubscriptionServiceForTest(t)

		subRepo.On("GetByChamber", ctx, int32(1)).Return(activeSub(50, 10), nil)
		membershipRepo.On("CountActive", ctx, int32(1)).Return(int32(50), nil)

		assert.True(t, svc.HasReachedMemberLimit(ctx, 1))
	})

	t.Run("one under the cap is allowed", func(t *testing.T) {
		svc, subRepo, membershipRepo, _, _ := newSubscriptionServiceForTest(t)

		subRepo.On("GetByChamber", ctx, int32(1)).Return(activeSub(50, 10), nil)
		membershipRepo.On("CountActive", ctx, int32(1)).Return(int32(49), nil)

		assert.False(t, svc.HasReachedMemberLimit(ctx, 1))
	})

	t.Run("unlimited plans never hit the cap", func(t *testing.T) {
		svc, subRepo, _, _, _ := newSubscriptionServiceForTest(t)

		subRepo.On("GetByChamber", ctx, int32(1)).Return(activeSub(domain.UnlimitedLimit, 10), nil)

		assert.False(t, svc.HasReachedMemberLimit(ctx, 1))
	})

	t.Run("fails open when the count is unavailable", func(t *testing.T) {
		svc, subRepo, membershipRepo, _, _ := newSubscriptionServiceForTest(t)

		subRepo.On("GetByChamber", ctx, int32(1)).Return(activeSub(50, 10), nil)
		membershipRepo.On("CountActive", ctx, int32(1)).Return(int32(0), errors.New("connection refused"))

		assert.False(t, svc.HasReachedMemberLimit(ctx, 1))
	})

	t.Run("no subscription means no cap", func(t *testing.T) {
		svc, subRepo, _, _, _ := newSubscriptionServiceForTest(t)

		subRepo.On("GetByChamber", ctx, int32(1)).Return(nil, sql.ErrNoRows)

		assert.False(t, svc.HasReachedMemberLimit(ctx, 1))
	})
}

func TestHasReachedEventLimit(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	t.Run("counts the UTC calendar month", func(t *testing.T) {
		svc, subRepo, _, eventRepo, _ := newSubscriptionServiceForTest(t)

		subRepo.On("GetByChamber", ctx, int32(1)).Return(activeSub(50, 4), nil)
		monthStart := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
		eventRepo.On("CountCreatedBetween", ctx, int32(1), monthStart, monthStart.AddDate(0, 1, 0)).
			Return(int32(4), nil)

		assert.True(t, svc.HasReachedEventLimit(ctx, 1, now))
	})

	t.Run("fails open on a count error", func(t *testing.T) {
		svc, subRepo, _, eventRepo, _ := newSubscriptionServiceForTest(t)

		subRepo.On("GetByChamber", ctx, int32(1)).Return(activeSub(50, 4), nil)
		eventRepo.On("CountCreatedBetween", ctx, int32(1), mock.Anything, mock.Anything).
			Return(int32(0), errors.New("timeout"))

		assert.False(t, svc.HasReachedEventLimit(ctx, 1, now))
	})
}

func TestListPlansCaches(t *testing.T) {
	ctx := context.Background()
	svc, subRepo, _, _, _ := newSubscriptionServiceForTest(t)

	plans := []domain.SubscriptionPlan{{ID: 1, Name: "Starter"}, {ID: 2, Name: "Growth"}}
	subRepo.On("ListPlans", ctx).Return(plans, nil).Once()

	first, err := svc.ListPlans(ctx)
	require.NoError(t, err)
	second, err := svc.ListPlans(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	subRepo.AssertNumberOfCalls(t, "ListPlans", 1)
}

func TestCreateCheckoutSession(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a session through the provider", func(t *testing.T) {
		svc, subRepo, membershipRepo, _, userRepo := newSubscriptionServiceForTest(t)

		userRepo.On("GetByID", ctx, int32(7)).Return(&domain.User{ID: 7, Role: domain.UserRoleChamberAdmin}, nil)
		membershipRepo.On("GetByUserAndChamber", ctx, int32(7), int32(1)).Return(nil, sql.ErrNoRows)
		subRepo.On("GetByChamber", ctx, int32(1)).Return(nil, sql.ErrNoRows)
		subRepo.On("GetPlan", ctx, int32(2)).Return(&domain.SubscriptionPlan{
			ID: 2, StripeMonthlyPriceID: "price_monthly", StripeYearlyPriceID: "price_yearly",
		}, nil)

		session, err := svc.CreateCheckoutSession(ctx, 7, 1, 2, domain.BillingCycleYearly)
		require.NoError(t, err)
		assert.NotEmpty(t, session.SessionID)
		assert.NotEmpty(t, session.URL)
	})

	t.Run("rejects a cycle without a price", func(t *testing.T) {
		svc, subRepo, membershipRepo, _, userRepo := newSubscriptionServiceForTest(t)

		userRepo.On("GetByID", ctx, int32(7)).Return(&domain.User{ID: 7, Role: domain.UserRoleChamberAdmin}, nil)
		membershipRepo.On("GetByUserAndChamber", ctx, int32(7), int32(1)).Return(nil, sql.ErrNoRows)
		subRepo.On("GetByChamber", ctx, int32(1)).Return(nil, sql.ErrNoRows)
		subRepo.On("GetPlan", ctx, int32(2)).Return(&domain.SubscriptionPlan{
			ID: 2, StripeMonthlyPriceID: "price_monthly",
		}, nil)

		_, err := svc.CreateCheckoutSession(ctx, 7, 1, 2, domain.BillingCycleYearly)
		require.Error(t, err)
	})
}
