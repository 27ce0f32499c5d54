package http

import (
	"net/http"

	"chamber-connect-backend/internal/domain"
)

type inviteRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=admin staff member"`
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	if _, ok := mustClaims(w, r); !ok {
		return
	}
	chamberID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	status := domain.MembershipStatus(r.URL.Query().Get("status"))
	members, err := s.memberSvc.ListMembers(r.Context(), chamberID, status)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, members)
}

func (s *Server) handleApproveMember(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}
	chamberID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	membershipID, err := pathID(r, "membershipId")
	if err != nil {
		respondError(w, err)
		return
	}

	membership, err := s.memberSvc.ApproveMember(r.Context(), claims.UserID, chamberID, membershipID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, membership)
}

func (s *Server) handleRejectMember(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}
	chamberID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	membershipID, err := pathID(r, "membershipId")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := s.memberSvc.RejectMember(r.Context(), claims.UserID, chamberID, membershipID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}

func (s *Server) handleInviteMember(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}
	chamberID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req inviteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := s.validateRequest("member.invite", &req); err != nil {
		respondError(w, err)
		return
	}

	inv, err := s.memberSvc.InviteMember(r.Context(), claims.UserID, chamberID, req.Email, domain.MembershipRole(req.Role))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, inv)
}
