package http

import (
	"net/http"
	"strconv"

	"chamber-connect-backend/internal/domain"
)

type businessRequest struct {
	ChamberID    int32  `json:"chamber_id" validate:"required,gt=0"`
	Name         string `json:"name" validate:"required,min=2,max=200"`
	Description  string `json:"description" validate:"max=2000"`
	Category     string `json:"category" validate:"max=120"`
	Address      string `json:"address" validate:"max=300"`
	City         string `json:"city" validate:"max=120"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone string `json:"contact_phone" validate:"max=32"`
	WebsiteURL   string `json:"website_url" validate:"omitempty,url"`
	LogoURL      string `json:"logo_url" validate:"omitempty,url"`
}

func (req *businessRequest) toDomain() *domain.Business {
	return &domain.Business{
		ChamberID:    req.ChamberID,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Address:      req.Address,
		City:         req.City,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		WebsiteURL:   req.WebsiteURL,
		LogoURL:      req.LogoURL,
	}
}

func (s *Server) handleCreateBusiness(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	var req businessRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := s.validateRequest("business.create", &req); err != nil {
		respondError(w, err)
		return
	}

	business := req.toDomain()
	if err := s.businessSvc.CreateBusiness(r.Context(), claims.UserID, business); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, business)
}

func (s *Server) handleGetBusiness(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	business, err := s.businessSvc.GetBusiness(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, business)
}

func (s *Server) handleUpdateBusiness(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req businessRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := s.validateRequest("business.update", &req); err != nil {
		respondError(w, err)
		return
	}

	business := req.toDomain()
	business.ID = id
	if err := s.businessSvc.UpdateBusiness(r.Context(), claims.UserID, business); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, business)
}

func (s *Server) handleListDirectory(w http.ResponseWriter, r *http.Request) {
	chamberID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	businesses, err := s.businessSvc.ListDirectory(r.Context(), chamberID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, businesses)
}

func (s *Server) handleBusinessQRCode(w http.ResponseWriter, r *http.Request) {
	if _, ok := mustClaims(w, r); !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	source := domain.ScanSource(r.URL.Query().Get("source"))
	if source == "" {
		source = domain.ScanSourceDirect
	}
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))

	trackingURL, imageURL, err := s.analyticsSvc.BusinessQRCode(r.Context(), id, source, size)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"tracking_url": trackingURL,
		"image_url":    imageURL,
	})
}
