package http

import (
	"net/http"
	"strconv"
	"strings"

	"chamber-connect-backend/internal/domain"
)

type scanRequest struct {
	BusinessID int32  `json:"business_id" validate:"required,gt=0"`
	DeviceType string `json:"device_type" validate:"required,oneof=mobile desktop tablet"`
	Source     string `json:"source" validate:"required,oneof=event direct business_card website"`
	CityName   string `json:"city_name" validate:"max=120"`
	Region     string `json:"region" validate:"max=120"`
	Country    string `json:"country" validate:"max=120"`
}

// handleRecordScan is the unauthenticated endpoint the tracking URL posts to.
func (s *Server) handleRecordScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := s.validateRequest("analytics.scan", &req); err != nil {
		respondError(w, err)
		return
	}

	scan := &domain.QRScan{
		BusinessID: req.BusinessID,
		DeviceType: domain.DeviceType(req.DeviceType),
		Source:     domain.ScanSource(req.Source),
		CityName:   req.CityName,
		Region:     req.Region,
		Country:    req.Country,
	}
	if err := s.analyticsSvc.RecordScan(r.Context(), scan); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "recorded"})
}

func (s *Server) handleRecordProfileView(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	view := &domain.ProfileView{
		BusinessID: id,
		Source:     strings.TrimSpace(r.URL.Query().Get("source")),
	}
	if claims, ok := claimsFrom(r.Context()); ok {
		view.ViewerID = &claims.UserID
	}

	if err := s.analyticsSvc.RecordProfileView(r.Context(), view); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "recorded"})
}

func (s *Server) handleGetAnalytics(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}
	chamberID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	rangeDays := 30
	if raw := r.URL.Query().Get("range"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			rangeDays = parsed
		}
	}

	summary, err := s.analyticsSvc.GetSummary(r.Context(), claims.UserID, chamberID, rangeDays)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
