package http

import (
	"net/http"
	"strconv"
)

type connectionRequest struct {
	RecipientID int32 `json:"recipient_id" validate:"required,gt=0"`
}

type messageRequest struct {
	RecipientID int32  `json:"recipient_id" validate:"required,gt=0"`
	Body        string `json:"body" validate:"required,max=4000"`
}

func (s *Server) handleRequestConnection(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}
	chamberID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req connectionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := s.validateRequest("messaging.connect", &req); err != nil {
		respondError(w, err)
		return
	}

	conn, err := s.messagingSvc.RequestConnection(r.Context(), chamberID, claims.UserID, req.RecipientID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, conn)
}

func (s *Server) handleRespondToConnection(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}
	connectionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req respondRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	conn, err := s.messagingSvc.RespondToConnection(r.Context(), claims.UserID, connectionID, req.Accept)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, conn)
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}
	chamberID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req messageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := s.validateRequest("messaging.send", &req); err != nil {
		respondError(w, err)
		return
	}

	msg, err := s.messagingSvc.SendMessage(r.Context(), chamberID, claims.UserID, req.RecipientID, req.Body)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, msg)
}

func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}
	chamberID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	otherUserID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	limit := int32(0)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 32); err == nil {
			limit = int32(parsed)
		}
	}

	messages, err := s.messagingSvc.GetConversation(r.Context(), chamberID, claims.UserID, otherUserID, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, messages)
}
