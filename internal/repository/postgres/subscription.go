package postgres

import (
	"context"
	"database/sql"
	"time"

	"chamber-connect-backend/internal/domain"
	"chamber-connect-backend/internal/repository"
)

type subscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) repository.SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// GetByChamber returns the chamber's subscription with its plan joined in,
// or sql.ErrNoRows when the chamber has never subscribed.
func (r *subscriptionRepository) GetByChamber(ctx context.Context, chamberID int32) (*domain.ChamberSubscription, error) {
	query := `SELECT s.id, s.chamber_id, s.plan_id, s.status, s.billing_cycle, s.trial_end,
	            s.current_period_end, s.stripe_subscription_id, s.created_at, s.updated_at,
	            p.id, p.name, p.tier, p.monthly_price_cents, p.yearly_price_cents,
	            p.max_members, p.max_events_per_month, p.analytics_enabled,
	            p.cross_chamber_networking, p.priority_support,
	            p.stripe_monthly_price_id, p.stripe_yearly_price_id
	          FROM chamber_subscriptions s
	          JOIN subscription_plans p ON p.id = s.plan_id
	          WHERE s.chamber_id = $1`
	sub := &domain.ChamberSubscription{Plan: &domain.SubscriptionPlan{}}
	p := sub.Plan
	err := r.db.QueryRowContext(ctx, query, chamberID).Scan(
		&sub.ID, &sub.ChamberID, &sub.PlanID, &sub.Status, &sub.BillingCycle, &sub.TrialEnd,
		&sub.CurrentPeriodEnd, &sub.StripeSubscriptionID, &sub.CreatedAt, &sub.UpdatedAt,
		&p.ID, &p.Name, &p.Tier, &p.MonthlyPriceCents, &p.YearlyPriceCents,
		&p.MaxMembers, &p.MaxEventsPerMonth, &p.AnalyticsEnabled,
		&p.CrossChamberNetworking, &p.PrioritySupport,
		&p.StripeMonthlyPriceID, &p.StripeYearlyPriceID,
	)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *domain.ChamberSubscription) error {
	query := `INSERT INTO chamber_subscriptions (chamber_id, plan_id, status, billing_cycle, trial_end,
	            current_period_end, stripe_subscription_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8) RETURNING id`
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now
	return r.db.QueryRowContext(ctx, query,
		sub.ChamberID, sub.PlanID, sub.Status, sub.BillingCycle, sub.TrialEnd,
		sub.CurrentPeriodEnd, sub.StripeSubscriptionID, now,
	).Scan(&sub.ID)
}

func (r *subscriptionRepository) UpdateStatus(ctx context.Context, id int32, status domain.SubscriptionStatus) error {
	query := `UPDATE chamber_subscriptions SET status = $1, updated_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	return err
}

func (r *subscriptionRepository) ListTrialsEndingBefore(ctx context.Context, cutoff time.Time) ([]domain.ChamberSubscription, error) {
	query := `SELECT id, chamber_id, plan_id, status, billing_cycle, trial_end,
	            current_period_end, stripe_subscription_id, created_at, updated_at
	          FROM chamber_subscriptions
	          WHERE status = 'trialing' AND trial_end IS NOT NULL AND trial_end < $1`
	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []domain.ChamberSubscription
	for rows.Next() {
		var sub domain.ChamberSubscription
		if err := rows.Scan(&sub.ID, &sub.ChamberID, &sub.PlanID, &sub.Status, &sub.BillingCycle,
			&sub.TrialEnd, &sub.CurrentPeriodEnd, &sub.StripeSubscriptionID,
			&sub.CreatedAt, &sub.UpdatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

const planColumns = `id, name, tier, monthly_price_cents, yearly_price_cents, max_members,
	max_events_per_month, analytics_enabled, cross_chamber_networking, priority_support,
	stripe_monthly_price_id, stripe_yearly_price_id`

func (r *subscriptionRepository) ListPlans(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	query := `SELECT ` + planColumns + ` FROM subscription_plans ORDER BY monthly_price_cents`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []domain.SubscriptionPlan
	for rows.Next() {
		var p domain.SubscriptionPlan
		if err := rows.Scan(&p.ID, &p.Name, &p.Tier, &p.MonthlyPriceCents, &p.YearlyPriceCents,
			&p.MaxMembers, &p.MaxEventsPerMonth, &p.AnalyticsEnabled,
			&p.CrossChamberNetworking, &p.PrioritySupport,
			&p.StripeMonthlyPriceID, &p.StripeYearlyPriceID); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (r *subscriptionRepository) GetPlan(ctx context.Context, id int32) (*domain.SubscriptionPlan, error) {
	p := &domain.SubscriptionPlan{}
	query := `SELECT ` + planColumns + ` FROM subscription_plans WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Tier,
		&p.MonthlyPriceCents, &p.YearlyPriceCents, &p.MaxMembers, &p.MaxEventsPerMonth,
		&p.AnalyticsEnabled, &p.CrossChamberNetworking, &p.PrioritySupport,
		&p.StripeMonthlyPriceID, &p.StripeYearlyPriceID)
	if err != nil {
		return nil, err
	}
	return p, nil
}
