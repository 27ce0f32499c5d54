package domain

import "time"

type SubscriptionStatus string

const (
	SubscriptionStatusActive            SubscriptionStatus = "active"
	SubscriptionStatusTrialing          SubscriptionStatus = "trialing"
	SubscriptionStatusPastDue           SubscriptionStatus = "past_due"
	SubscriptionStatusCanceled          SubscriptionStatus = "canceled"
	SubscriptionStatusIncomplete        SubscriptionStatus = "incomplete"
	SubscriptionStatusIncompleteExpired SubscriptionStatus = "incomplete_expired"
	SubscriptionStatusUnpaid            SubscriptionStatus = "unpaid"
)

type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"
)

// UnlimitedLimit marks a plan cap as unlimited.
const UnlimitedLimit = -1

type SubscriptionPlan struct {
	ID                     int32  `json:"id"`
	Name                   string `json:"name"`
	Tier                   string `json:"tier"`
	MonthlyPriceCents      int32  `json:"monthly_price_cents"`
	YearlyPriceCents       int32  `json:"yearly_price_cents"`
	MaxMembers             int32  `json:"max_members"`           // -1 = unlimited
	MaxEventsPerMonth      int32  `json:"max_events_per_month"`  // -1 = unlimited
	AnalyticsEnabled       bool   `json:"analytics_enabled"`
	CrossChamberNetworking bool   `json:"cross_chamber_networking"`
	PrioritySupport        bool   `json:"priority_support"`
	StripeMonthlyPriceID   string `json:"stripe_monthly_price_id"`
	StripeYearlyPriceID    string `json:"stripe_yearly_price_id"`
}

// ChamberSubscription links a chamber to a plan. At most one per chamber.
type ChamberSubscription struct {
	ID                   int32              `json:"id"`
	ChamberID            int32              `json:"chamber_id"`
	PlanID               int32              `json:"plan_id"`
	Status               SubscriptionStatus `json:"status"`
	BillingCycle         BillingCycle       `json:"billing_cycle"`
	TrialEnd             *time.Time         `json:"trial_end,omitempty"`
	CurrentPeriodEnd     *time.Time         `json:"current_period_end,omitempty"`
	StripeSubscriptionID string             `json:"stripe_subscription_id,omitempty"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`

	Plan *SubscriptionPlan `json:"plan,omitempty"` // joined on read
}
