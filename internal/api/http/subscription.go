package http

import (
	"net/http"

	"chamber-connect-backend/internal/domain"
)

type trialRequest struct {
	PlanID int32 `json:"plan_id" validate:"required,gt=0"`
}

type checkoutRequest struct {
	PlanID       int32  `json:"plan_id" validate:"required,gt=0"`
	BillingCycle string `json:"billing_cycle" validate:"required,oneof=monthly yearly"`
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.subscriptionSvc.ListPlans(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, plans)
}

func (s *Server) handleGetSubscription(w http.ResponseWriter, r *http.Request) {
	if _, ok := mustClaims(w, r); !ok {
		return
	}
	chamberID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	sub, err := s.subscriptionSvc.GetSubscription(r.Context(), chamberID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sub)
}

func (s *Server) handleStartTrial(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}
	chamberID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req trialRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := s.validateRequest("subscription.trial", &req); err != nil {
		respondError(w, err)
		return
	}

	sub, err := s.subscriptionSvc.StartTrial(r.Context(), claims.UserID, chamberID, req.PlanID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sub)
}

func (s *Server) handleCreateCheckout(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}
	chamberID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := s.validateRequest("subscription.checkout", &req); err != nil {
		respondError(w, err)
		return
	}

	session, err := s.subscriptionSvc.CreateCheckoutSession(
		r.Context(), claims.UserID, chamberID, req.PlanID, domain.BillingCycle(req.BillingCycle))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, session)
}
