package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"innkeep/internal/store"
)

type authContextKey struct{}

func contextWithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, authContextKey{}, username)
}

func usernameFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	username, ok := ctx.Value(authContextKey{}).(string)
	return username, ok
}

// requireAuth verifies the bearer token and the referenced account before
// admitting a request.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.tokens == nil {
			s.writeErrorReq(w, r, http.StatusInternalServerError, internalError(fmt.Errorf("authentication is not configured")))
			return
		}

		header := strings.TrimSpace(r.Header.Get("Authorization"))
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			w.Header().Set("WWW-Authenticate", "Bearer")
			s.writeErrorReq(w, r, http.StatusUnauthorized, unauthorized(fmt.Errorf("missing bearer token")))
			return
		}

		username, err := s.tokens.Verify(strings.TrimSpace(token))
		if err != nil {
			w.Header().Set("WWW-Authenticate", "Bearer")
			s.writeErrorReq(w, r, http.StatusUnauthorized, unauthorized(fmt.Errorf("invalid token")))
			return
		}

		user, err := s.store.GetUserByUsername(r.Context(), username)
		if err != nil || !user.IsActive {
			if err != nil && !errors.Is(err, store.ErrUserNotFound) {
				s.log().Error("load user for auth", "username", username, "error", err)
			}
			w.Header().Set("WWW-Authenticate", "Bearer")
			s.writeErrorReq(w, r, http.StatusUnauthorized, unauthorized(fmt.Errorf("unknown or inactive user")))
			return
		}

		next(w, r.WithContext(contextWithUsername(r.Context(), username)))
	}
}
