package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"chamber-connect-backend/internal/apperr"
	"chamber-connect-backend/internal/logger"
	"chamber-connect-backend/internal/metrics"
	"chamber-connect-backend/internal/security"

	"github.com/gorilla/mux"
)

type contextKey string

const claimsKey contextKey = "user_claims"

// claimsFrom returns the authenticated claims stored by authMiddleware.
func claimsFrom(ctx context.Context) (*security.UserClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*security.UserClaims)
	return claims, ok
}

// mustClaims fetches the claims or writes a 401, for handlers that only run
// behind authMiddleware.
func mustClaims(w http.ResponseWriter, r *http.Request) (*security.UserClaims, bool) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		respondError(w, apperr.Domain("http.auth", "invalid_token", "authentication required"))
	}
	return claims, ok
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondError(w, apperr.Domain("http.auth", "invalid_token", "missing bearer token"))
			return
		}

		claims, err := s.tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			respondError(w, apperr.Domain("http.auth", "invalid_token", "token is invalid or expired"))
			return
		}
		if claims.Type != security.TokenTypeAccess {
			respondError(w, apperr.Domain("http.auth", "wrong_token_type", "a refresh token cannot access the API"))
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func observeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		elapsed := time.Since(start)
		metrics.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
		logger.Info("request handled",
			"method", r.Method, "route", route, "status", rec.status, "duration_ms", elapsed.Milliseconds())
	})
}
