package http

import (
	"net/http"
	"strings"

	"chamber-connect-backend/internal/apperr"
	"chamber-connect-backend/internal/security"
	"chamber-connect-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server bundles the HTTP handlers over the service layer.
type Server struct {
	authSvc         service.AuthService
	chamberSvc      service.ChamberService
	memberSvc       service.MemberService
	businessSvc     service.BusinessService
	eventSvc        service.EventService
	subscriptionSvc service.SubscriptionService
	analyticsSvc    service.AnalyticsService
	partnershipSvc  service.PartnershipService
	messagingSvc    service.MessagingService
	adminSvc        service.AdminService
	tokens          security.TokenManager
	validate        *validator.Validate
}

func NewServer(
	authSvc service.AuthService,
	chamberSvc service.ChamberService,
	memberSvc service.MemberService,
	businessSvc service.BusinessService,
	eventSvc service.EventService,
	subscriptionSvc service.SubscriptionService,
	analyticsSvc service.AnalyticsService,
	partnershipSvc service.PartnershipService,
	messagingSvc service.MessagingService,
	adminSvc service.AdminService,
	tokens security.TokenManager,
) *Server {
	return &Server{
		authSvc:         authSvc,
		chamberSvc:      chamberSvc,
		memberSvc:       memberSvc,
		businessSvc:     businessSvc,
		eventSvc:        eventSvc,
		subscriptionSvc: subscriptionSvc,
		analyticsSvc:    analyticsSvc,
		partnershipSvc:  partnershipSvc,
		messagingSvc:    messagingSvc,
		adminSvc:        adminSvc,
		tokens:          tokens,
		validate:        validator.New(),
	}
}

// Router assembles all routes. Public endpoints carry no auth; everything
// under the protected subrouter requires a bearer access token.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(observeMiddleware)

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public
	api.HandleFunc("/auth/signup", s.handleSignup).Methods("POST")
	api.HandleFunc("/auth/login", s.handleLogin).Methods("POST")
	api.HandleFunc("/auth/refresh", s.handleRefresh).Methods("POST")
	api.HandleFunc("/auth/invitations/{code}", s.handleValidateInvitation).Methods("GET")
	api.HandleFunc("/chambers", s.handleListChambers).Methods("GET")
	api.HandleFunc("/chambers/by-slug/{slug}", s.handleGetChamberBySlug).Methods("GET")
	api.HandleFunc("/qr/scan", s.handleRecordScan).Methods("POST")
	api.HandleFunc("/businesses/{id}/view", s.handleRecordProfileView).Methods("POST")

	// Authenticated
	auth := api.NewRoute().Subrouter()
	auth.Use(s.authMiddleware)

	auth.HandleFunc("/me/memberships/primary", s.handlePrimaryMembership).Methods("GET")
	auth.HandleFunc("/chambers", s.handleCreateChamber).Methods("POST")
	auth.HandleFunc("/chambers/{id}", s.handleGetChamber).Methods("GET")
	auth.HandleFunc("/chambers/{id}", s.handleUpdateChamber).Methods("PUT")
	auth.HandleFunc("/chambers/{id}/join-requests", s.handleRequestToJoin).Methods("POST")
	auth.HandleFunc("/chambers/{id}/permissions", s.handleGetPermissions).Methods("GET")

	auth.HandleFunc("/chambers/{id}/members", s.handleListMembers).Methods("GET")
	auth.HandleFunc("/chambers/{id}/members/{membershipId}/approve", s.handleApproveMember).Methods("POST")
	auth.HandleFunc("/chambers/{id}/members/{membershipId}/reject", s.handleRejectMember).Methods("POST")
	auth.HandleFunc("/chambers/{id}/invitations", s.handleInviteMember).Methods("POST")

	auth.HandleFunc("/chambers/{id}/businesses", s.handleListDirectory).Methods("GET")
	auth.HandleFunc("/businesses", s.handleCreateBusiness).Methods("POST")
	auth.HandleFunc("/businesses/{id}", s.handleGetBusiness).Methods("GET")
	auth.HandleFunc("/businesses/{id}", s.handleUpdateBusiness).Methods("PUT")
	auth.HandleFunc("/businesses/{id}/qr-code", s.handleBusinessQRCode).Methods("GET")

	auth.HandleFunc("/chambers/{id}/events", s.handleListEvents).Methods("GET")
	auth.HandleFunc("/events", s.handleCreateEvent).Methods("POST")
	auth.HandleFunc("/events/{id}", s.handleGetEvent).Methods("GET")
	auth.HandleFunc("/events/{id}", s.handleUpdateEvent).Methods("PUT")
	auth.HandleFunc("/events/{id}/registrations", s.handleRegisterForEvent).Methods("POST")

	auth.HandleFunc("/plans", s.handleListPlans).Methods("GET")
	auth.HandleFunc("/chambers/{id}/subscription", s.handleGetSubscription).Methods("GET")
	auth.HandleFunc("/chambers/{id}/subscription/trial", s.handleStartTrial).Methods("POST")
	auth.HandleFunc("/chambers/{id}/subscription/checkout", s.handleCreateCheckout).Methods("POST")

	auth.HandleFunc("/chambers/{id}/analytics", s.handleGetAnalytics).Methods("GET")
	auth.HandleFunc("/chambers/{id}/dashboard", s.handleGetDashboard).Methods("GET")

	auth.HandleFunc("/chambers/{id}/discovery-profile", s.handleUpsertDiscoveryProfile).Methods("PUT")
	auth.HandleFunc("/chambers/{id}/discovery", s.handleDiscoverChambers).Methods("GET")
	auth.HandleFunc("/chambers/{id}/partnerships", s.handleListPartnerships).Methods("GET")
	auth.HandleFunc("/chambers/{id}/partnerships", s.handleRequestPartnership).Methods("POST")
	auth.HandleFunc("/chambers/{id}/partnerships/{partnershipId}/respond", s.handleRespondToPartnership).Methods("POST")

	auth.HandleFunc("/chambers/{id}/connections", s.handleRequestConnection).Methods("POST")
	auth.HandleFunc("/connections/{id}/respond", s.handleRespondToConnection).Methods("POST")
	auth.HandleFunc("/chambers/{id}/messages", s.handleSendMessage).Methods("POST")
	auth.HandleFunc("/chambers/{id}/messages/{userId}", s.handleGetConversation).Methods("GET")

	return r
}

// validateRequest runs struct validation tags and converts the first
// failure into a validation error.
func (s *Server) validateRequest(operation string, req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	if fields, ok := err.(validator.ValidationErrors); ok && len(fields) > 0 {
		return apperr.Validation(operation, strings.ToLower(fields[0].Field()), "field failed validation rule "+fields[0].Tag())
	}
	return apperr.Validation(operation, "", "request failed validation")
}
