package payments

import (
	"context"
	"fmt"
	"strconv"

	"chamber-connect-backend/internal/apperr"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

// StripeProvider creates hosted checkout sessions against the Stripe API.
type StripeProvider struct{}

// NewStripeProvider sets the global Stripe key and returns the provider.
func NewStripeProvider(apiKey string) *StripeProvider {
	stripe.Key = apiKey
	return &StripeProvider{}
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(strconv.Itoa(int(req.ChamberID))),
	}
	params.Context = ctx

	if req.TrialDays > 0 {
		params.SubscriptionData = &stripe.CheckoutSessionSubscriptionDataParams{
			TrialPeriodDays: stripe.Int64(int64(req.TrialDays)),
		}
	}
	params.AddMetadata("chamber_id", strconv.Itoa(int(req.ChamberID)))
	params.AddMetadata("billing_cycle", req.BillingCycle)

	s, err := session.New(params)
	if err != nil {
		appErr := apperr.ThirdParty("checkout.create", "stripe", err).WithChamber(req.ChamberID)
		if stripeErr, ok := err.(*stripe.Error); ok {
			appErr.StatusCode = stripeErr.HTTPStatusCode
			appErr.RateLimited = stripeErr.Code == stripe.ErrorCodeRateLimit
		}
		return nil, appErr
	}
	if s.URL == "" {
		return nil, apperr.ThirdParty("checkout.create", "stripe",
			fmt.Errorf("session %s has no redirect url", s.ID)).WithChamber(req.ChamberID)
	}

	return &CheckoutSession{SessionID: s.ID, URL: s.URL}, nil
}
