package http

import (
	"net/http"

	"chamber-connect-backend/internal/domain"
)

type discoveryProfileRequest struct {
	GeographicScope   string   `json:"geographic_scope" validate:"required,oneof=local regional state national"`
	PrimaryIndustries []string `json:"primary_industries" validate:"max=20,dive,min=2,max=80"`
	PartnershipGoals  []string `json:"partnership_goals" validate:"max=20,dive,min=2,max=120"`
	Visible           bool     `json:"visible"`
}

type partnershipRequest struct {
	PartnerChamberID int32  `json:"partner_chamber_id" validate:"required,gt=0"`
	Message          string `json:"message" validate:"max=1000"`
}

type respondRequest struct {
	Accept bool `json:"accept"`
}

func (s *Server) handleUpsertDiscoveryProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}
	chamberID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req discoveryProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := s.validateRequest("partnership.profile", &req); err != nil {
		respondError(w, err)
		return
	}

	profile := &domain.DiscoveryProfile{
		ChamberID:         chamberID,
		GeographicScope:   req.GeographicScope,
		PrimaryIndustries: req.PrimaryIndustries,
		PartnershipGoals:  req.PartnershipGoals,
		Visible:           req.Visible,
	}
	if err := s.partnershipSvc.UpsertDiscoveryProfile(r.Context(), claims.UserID, profile); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (s *Server) handleDiscoverChambers(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}
	chamberID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	matches, err := s.partnershipSvc.DiscoverChambers(r.Context(), claims.UserID, chamberID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, matches)
}

func (s *Server) handleListPartnerships(w http.ResponseWriter, r *http.Request) {
	if _, ok := mustClaims(w, r); !ok {
		return
	}
	chamberID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	partnerships, err := s.partnershipSvc.ListPartnerships(r.Context(), chamberID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, partnerships)
}

func (s *Server) handleRequestPartnership(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}
	chamberID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req partnershipRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := s.validateRequest("partnership.request", &req); err != nil {
		respondError(w, err)
		return
	}

	partnership, err := s.partnershipSvc.RequestPartnership(r.Context(), claims.UserID, chamberID, req.PartnerChamberID, req.Message)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, partnership)
}

func (s *Server) handleRespondToPartnership(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}
	chamberID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	partnershipID, err := pathID(r, "partnershipId")
	if err != nil {
		respondError(w, err)
		return
	}

	var req respondRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	partnership, err := s.partnershipSvc.RespondToPartnership(r.Context(), claims.UserID, chamberID, partnershipID, req.Accept)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, partnership)
}
