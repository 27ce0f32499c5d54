package http

import (
	"net/http"
	"time"

	"chamber-connect-backend/internal/domain"
)

type eventRequest struct {
	ChamberID   int32     `json:"chamber_id" validate:"required,gt=0"`
	Title       string    `json:"title" validate:"required,min=2,max=200"`
	Description string    `json:"description" validate:"max=5000"`
	Location    string    `json:"location" validate:"max=300"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	EndsAt      time.Time `json:"ends_at" validate:"required"`
	Capacity    int32     `json:"capacity" validate:"gte=0"`
	Status      string    `json:"status" validate:"omitempty,oneof=draft published cancelled"`
}

func (req *eventRequest) toDomain() *domain.Event {
	return &domain.Event{
		ChamberID:   req.ChamberID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Capacity:    req.Capacity,
		Status:      domain.EventStatus(req.Status),
	}
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := s.validateRequest("event.create", &req); err != nil {
		respondError(w, err)
		return
	}

	event := req.toDomain()
	if err := s.eventSvc.CreateEvent(r.Context(), claims.UserID, event); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, event)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	event, err := s.eventSvc.GetEvent(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	chamberID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	from := time.Now().UTC()
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err == nil {
			from = parsed
		}
	}

	events, err := s.eventSvc.ListEvents(r.Context(), chamberID, from)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, events)
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := s.validateRequest("event.update", &req); err != nil {
		respondError(w, err)
		return
	}

	event := req.toDomain()
	event.ID = id
	if err := s.eventSvc.UpdateEvent(r.Context(), claims.UserID, event); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

func (s *Server) handleRegisterForEvent(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	reg, err := s.eventSvc.RegisterForEvent(r.Context(), claims.UserID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, reg)
}
