package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"chamber-connect-backend/internal/apperr"
	"chamber-connect-backend/internal/logger"

	"github.com/gorilla/mux"
)

type errorBody struct {
	Kind    apperr.Kind `json:"kind"`
	Code    string      `json:"code,omitempty"`
	Field   string      `json:"field,omitempty"`
	Message string      `json:"message"`
	TraceID string      `json:"trace_id,omitempty"`
}

type envelope struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Data: data}); err != nil {
		logger.Error("response encoding failed", "error", err)
	}
}

// respondError maps the error taxonomy onto HTTP statuses. Infrastructure
// and third-party details stay out of the body; the trace id is enough to
// find them in the logs.
func respondError(w http.ResponseWriter, err error) {
	appErr := apperr.As(err)
	if appErr == nil {
		// Repositories return raw sql.ErrNoRows for missing rows; a lookup
		// that reaches the handler unclassified is a plain not-found.
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, &errorBody{
				Kind:    apperr.KindDomain,
				Code:    "not_found",
				Message: "the requested resource does not exist",
			})
			return
		}
		writeError(w, http.StatusInternalServerError, &errorBody{
			Kind:    apperr.KindInfrastructure,
			Message: "internal error",
		})
		return
	}

	body := &errorBody{
		Kind:    appErr.Kind,
		Message: appErr.Message,
		TraceID: appErr.TraceID,
	}

	switch appErr.Kind {
	case apperr.KindValidation:
		body.Field = appErr.Field
		writeError(w, http.StatusBadRequest, body)
	case apperr.KindDomain:
		body.Code = appErr.Code
		writeError(w, domainStatus(appErr.Code), body)
	case apperr.KindThirdParty:
		body.Message = "upstream provider unavailable"
		writeError(w, http.StatusBadGateway, body)
	default:
		body.Message = "internal error"
		writeError(w, http.StatusInternalServerError, body)
	}
}

func domainStatus(code string) int {
	switch code {
	case "forbidden", "wrong_chamber":
		return http.StatusForbidden
	case "invalid_credentials", "invalid_token", "wrong_token_type":
		return http.StatusUnauthorized
	case "not_found":
		return http.StatusNotFound
	case "member_limit_reached", "event_limit_reached", "event_full",
		"subscription_exists", "partnership_exists", "connection_exists",
		"business_exists", "already_member", "slug_taken":
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

func writeError(w http.ResponseWriter, status int, body *errorBody) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Error: body})
}

// pathID parses the named mux path variable as an int32 id.
func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("http.path", name, "path id must be a positive integer")
	}
	return int32(id), nil
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.Validation("http.decode", "body", "request body is not valid JSON for this endpoint")
	}
	return nil
}
