package payments

import "context"

// CheckoutRequest describes a hosted checkout session to create.
type CheckoutRequest struct {
	PriceID      string
	ChamberID    int32
	BillingCycle string
	SuccessURL   string
	CancelURL    string
	TrialDays    int
}

// CheckoutSession is the hosted session the browser is redirected to.
type CheckoutSession struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// CheckoutProvider creates hosted checkout sessions with the payments
// provider. Implementations: Stripe for real billing, Mock for dev/test.
type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
}
