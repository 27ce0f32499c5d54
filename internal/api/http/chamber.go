package http

import (
	"net/http"

	"chamber-connect-backend/internal/domain"

	"github.com/gorilla/mux"
)

type chamberRequest struct {
	Name              string `json:"name" validate:"required,min=2,max=200"`
	Slug              string `json:"slug" validate:"required,min=2,max=80"`
	Description       string `json:"description" validate:"max=2000"`
	Address           string `json:"address" validate:"max=300"`
	City              string `json:"city" validate:"max=120"`
	State             string `json:"state" validate:"max=120"`
	ContactEmail      string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone      string `json:"contact_phone" validate:"max=32"`
	WebsiteURL        string `json:"website_url" validate:"omitempty,url"`
	LogoURL           string `json:"logo_url" validate:"omitempty,url"`
	FacebookURL       string `json:"facebook_url" validate:"omitempty,url"`
	LinkedinURL       string `json:"linkedin_url" validate:"omitempty,url"`
	InstagramURL      string `json:"instagram_url" validate:"omitempty,url"`
	ShowMemberCount   bool   `json:"show_member_count"`
	AllowMemberSignup bool   `json:"allow_member_signup"`
}

func (req *chamberRequest) toDomain() *domain.Chamber {
	return &domain.Chamber{
		Name:              req.Name,
		Slug:              req.Slug,
		Description:       req.Description,
		Address:           req.Address,
		City:              req.City,
		State:             req.State,
		ContactEmail:      req.ContactEmail,
		ContactPhone:      req.ContactPhone,
		WebsiteURL:        req.WebsiteURL,
		LogoURL:           req.LogoURL,
		FacebookURL:       req.FacebookURL,
		LinkedinURL:       req.LinkedinURL,
		InstagramURL:      req.InstagramURL,
		ShowMemberCount:   req.ShowMemberCount,
		AllowMemberSignup: req.AllowMemberSignup,
	}
}

func (s *Server) handleListChambers(w http.ResponseWriter, r *http.Request) {
	chambers, err := s.chamberSvc.ListChambers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chambers)
}

func (s *Server) handleGetChamber(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	chamber, err := s.chamberSvc.GetChamber(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chamber)
}

func (s *Server) handleGetChamberBySlug(w http.ResponseWriter, r *http.Request) {
	chamber, err := s.chamberSvc.GetChamberBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chamber)
}

func (s *Server) handleCreateChamber(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	var req chamberRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := s.validateRequest("chamber.create", &req); err != nil {
		respondError(w, err)
		return
	}

	chamber := req.toDomain()
	if err := s.chamberSvc.CreateChamber(r.Context(), claims.UserID, chamber); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, chamber)
}

func (s *Server) handleUpdateChamber(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req chamberRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := s.validateRequest("chamber.update", &req); err != nil {
		respondError(w, err)
		return
	}

	chamber := req.toDomain()
	chamber.ID = id
	if err := s.chamberSvc.UpdateChamber(r.Context(), claims.UserID, chamber); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chamber)
}

func (s *Server) handleGetPermissions(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	perms, err := s.subscriptionSvc.GetPermissions(r.Context(), claims.UserID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, perms)
}

func (s *Server) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	stats, err := s.adminSvc.GetDashboard(r.Context(), claims.UserID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
