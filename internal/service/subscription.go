package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"chamber-connect-backend/internal/access"
	"chamber-connect-backend/internal/apperr"
	"chamber-connect-backend/internal/domain"
	"chamber-connect-backend/internal/logger"
	"chamber-connect-backend/internal/metrics"
	"chamber-connect-backend/internal/payments"
	"chamber-connect-backend/internal/repository"

	gocache "github.com/patrickmn/go-cache"
)

const (
	planCacheKey = "subscription_plans"
	planCacheTTL = 10 * time.Minute

	defaultTrialDays = 14
)

type subscriptionService struct {
	subRepo        repository.SubscriptionRepository
	membershipRepo repository.MembershipRepository
	eventRepo      repository.EventRepository
	userRepo       repository.UserRepository
	checkout       payments.CheckoutProvider
	planCache      *gocache.Cache
	successURL     string
	cancelURL      string
}

func NewSubscriptionService(
	subRepo repository.SubscriptionRepository,
	membershipRepo repository.MembershipRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	checkout payments.CheckoutProvider,
	successURL, cancelURL string,
) SubscriptionService {
	return &subscriptionService{
		subRepo:        subRepo,
		membershipRepo: membershipRepo,
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		checkout:       checkout,
		planCache:      gocache.New(planCacheTTL, 2*planCacheTTL),
		successURL:     successURL,
		cancelURL:      cancelURL,
	}
}

// GetPermissions assembles the capability set from source-of-truth rows on
// every call. A missing membership or subscription is not an error; the
// calculator degrades to the restrictive set.
func (s *subscriptionService) GetPermissions(ctx context.Context, userID, chamberID int32) (*access.PermissionSet, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	membership, err := s.membershipRepo.GetByUserAndChamber(ctx, userID, chamberID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		membership = nil
	}
	if membership != nil && membership.Status != domain.MembershipStatusActive {
		membership = nil
	}

	sub := s.activeSubscription(ctx, chamberID)

	perms := access.CalculatePermissions(user.Role, membership, sub)
	return &perms, nil
}

func (s *subscriptionService) GetSubscription(ctx context.Context, chamberID int32) (*domain.ChamberSubscription, error) {
	return s.subRepo.GetByChamber(ctx, chamberID)
}

func (s *subscriptionService) ListPlans(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	if cached, ok := s.planCache.Get(planCacheKey); ok {
		return cached.([]domain.SubscriptionPlan), nil
	}
	plans, err := s.subRepo.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	s.planCache.Set(planCacheKey, plans, gocache.DefaultExpiration)
	return plans, nil
}

func (s *subscriptionService) StartTrial(ctx context.Context, userID, chamberID, planID int32) (*domain.ChamberSubscription, error) {
	const op = "subscription.start_trial"

	if existing, err := s.subRepo.GetByChamber(ctx, chamberID); err == nil && existing != nil {
		return nil, apperr.Domain(op, "subscription_exists", "chamber already has a subscription").
			WithChamber(chamberID).WithUser(userID)
	}

	plan, err := s.subRepo.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	trialEnd := time.Now().AddDate(0, 0, defaultTrialDays)
	sub := &domain.ChamberSubscription{
		ChamberID:    chamberID,
		PlanID:       plan.ID,
		Status:       domain.SubscriptionStatusTrialing,
		BillingCycle: domain.BillingCycleMonthly,
		TrialEnd:     &trialEnd,
	}
	if err := s.subRepo.Create(ctx, sub); err != nil {
		return nil, err
	}
	sub.Plan = plan
	logger.InfoContext(ctx, "trial started", "operation", op, "chamber_id", chamberID, "plan_id", planID)
	return sub, nil
}

func (s *subscriptionService) CreateCheckoutSession(ctx context.Context, userID, chamberID, planID int32, cycle domain.BillingCycle) (*payments.CheckoutSession, error) {
	const op = "subscription.create_checkout"

	perms, err := s.GetPermissions(ctx, userID, chamberID)
	if err != nil {
		return nil, err
	}
	if !perms.CanManageSubscription {
		return nil, apperr.Domain(op, "forbidden", "only admins can manage the subscription").
			WithChamber(chamberID).WithUser(userID)
	}

	plan, err := s.subRepo.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	priceID := plan.StripeMonthlyPriceID
	if cycle == domain.BillingCycleYearly {
		priceID = plan.StripeYearlyPriceID
	}
	if priceID == "" {
		return nil, apperr.Validation(op, "billing_cycle", "plan has no price for the requested cycle")
	}

	trialDays := 0
	if sub, err := s.subRepo.GetByChamber(ctx, chamberID); err != nil || sub == nil {
		// First paid subscription still gets the standard trial window.
		trialDays = defaultTrialDays
	}

	session, err := s.checkout.CreateCheckoutSession(ctx, payments.CheckoutRequest{
		PriceID:      priceID,
		ChamberID:    chamberID,
		BillingCycle: string(cycle),
		SuccessURL:   s.successURL,
		CancelURL:    s.cancelURL,
		TrialDays:    trialDays,
	})
	if err != nil {
		metrics.CheckoutSessions.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.CheckoutSessions.WithLabelValues("ok").Inc()
	return session, nil
}

// HasReachedMemberLimit reports whether the chamber is at its plan's member
// cap. Read failures fail open and log a warning.
func (s *subscriptionService) HasReachedMemberLimit(ctx context.Context, chamberID int32) bool {
	const op = "subscription.member_limit"

	sub := s.activeSubscription(ctx, chamberID)
	if sub == nil || sub.Plan == nil {
		return false
	}
	if sub.Plan.MaxMembers == domain.UnlimitedLimit {
		return false
	}

	count, err := s.membershipRepo.CountActive(ctx, chamberID)
	if err != nil {
		logger.Warn("member count unavailable, allowing", "operation", op, "chamber_id", chamberID, "error", err)
		return false
	}
	return count >= sub.Plan.MaxMembers
}

// HasReachedEventLimit reports whether the chamber has used up its monthly
// event allowance. The window is the UTC calendar month containing now.
func (s *subscriptionService) HasReachedEventLimit(ctx context.Context, chamberID int32, now time.Time) bool {
	const op = "subscription.event_limit"

	sub := s.activeSubscription(ctx, chamberID)
	if sub == nil || sub.Plan == nil {
		return false
	}
	if sub.Plan.MaxEventsPerMonth == domain.UnlimitedLimit {
		return false
	}

	utc := now.UTC()
	monthStart := time.Date(utc.Year(), utc.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	count, err := s.eventRepo.CountCreatedBetween(ctx, chamberID, monthStart, nextMonth)
	if err != nil {
		logger.Warn("event count unavailable, allowing", "operation", op, "chamber_id", chamberID, "error", err)
		return false
	}
	return count >= sub.Plan.MaxEventsPerMonth
}

// activeSubscription fetches the chamber's subscription, treating any read
// failure as "no subscription".
func (s *subscriptionService) activeSubscription(ctx context.Context, chamberID int32) *domain.ChamberSubscription {
	sub, err := s.subRepo.GetByChamber(ctx, chamberID)
	if err != nil {
		return nil
	}
	return sub
}
