package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

type signupRequest struct {
	InvitationCode string `json:"invitation_code" validate:"required"`
	Name           string `json:"name" validate:"required,min=2,max=120"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"omitempty,max=32"`
	Password       string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type joinRequestBody struct {
	Note string `json:"note" validate:"max=500"`
}

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := s.validateRequest("auth.signup", &req); err != nil {
		respondError(w, err)
		return
	}

	user, access, refresh, err := s.authSvc.Signup(r.Context(), req.InvitationCode, req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"user":   user,
		"tokens": tokenPair{AccessToken: access, RefreshToken: refresh},
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := s.validateRequest("auth.login", &req); err != nil {
		respondError(w, err)
		return
	}

	user, access, refresh, err := s.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"user":   user,
		"tokens": tokenPair{AccessToken: access, RefreshToken: refresh},
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := s.validateRequest("auth.refresh", &req); err != nil {
		respondError(w, err)
		return
	}

	access, refresh, err := s.authSvc.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tokenPair{AccessToken: access, RefreshToken: refresh})
}

func (s *Server) handleValidateInvitation(w http.ResponseWriter, r *http.Request) {
	inv, err := s.authSvc.ValidateInvitation(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		respondError(w, err)
		return
	}
	// Only what the signup form needs; no issuer details leak pre-auth.
	respondJSON(w, http.StatusOK, map[string]any{
		"chamber_id": inv.ChamberID,
		"email":      inv.Email,
		"role":       inv.Role,
		"expires_at": inv.ExpiresAt,
	})
}

func (s *Server) handleRequestToJoin(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}
	chamberID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req joinRequestBody
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	membership, err := s.authSvc.RequestToJoin(r.Context(), chamberID, claims.UserID, req.Note)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, membership)
}

func (s *Server) handlePrimaryMembership(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	membership, err := s.memberSvc.ResolvePrimaryMembership(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	if membership == nil {
		respondJSON(w, http.StatusOK, nil)
		return
	}
	respondJSON(w, http.StatusOK, membership)
}
