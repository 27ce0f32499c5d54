package payments

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/google/uuid"
)

// MockProvider fabricates checkout sessions locally so dev and test
// environments never touch Stripe. Sessions are held in memory.
type MockProvider struct {
	baseURL string

	mu       sync.Mutex
	sessions map[string]CheckoutRequest
}

func NewMockProvider(baseURL string) *MockProvider {
	return &MockProvider{
		baseURL:  baseURL,
		sessions: make(map[string]CheckoutRequest),
	}
}

func (p *MockProvider) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	sessionID := "cs_mock_" + uuid.NewString()

	p.mu.Lock()
	p.sessions[sessionID] = req
	p.mu.Unlock()

	redirect := fmt.Sprintf("%s/mock-checkout?session_id=%s&success_url=%s",
		p.baseURL, sessionID, url.QueryEscape(req.SuccessURL))

	return &CheckoutSession{SessionID: sessionID, URL: redirect}, nil
}

// Session returns a previously created session for test assertions.
func (p *MockProvider) Session(sessionID string) (CheckoutRequest, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	req, ok := p.sessions[sessionID]
	return req, ok
}
