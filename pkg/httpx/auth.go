package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/auth"
)

// SessionVerifier re-reads a token session from the account store
type SessionVerifier func(ctx context.Context, session auth.Session) (auth.Session, error)

var verifier atomic.Pointer[SessionVerifier]

// SetSessionVerifier makes AuthMiddleware check every token against the
// account store. nil turns the check off.
func SetSessionVerifier(v SessionVerifier) {
	if v == nil {
		verifier.Store(nil)
		return
	}
	verifier.Store(&v)
}

// AuthMiddleware validates the Bearer token and stores the session
func AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			RespondMessage(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			RespondMessage(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			RespondMessage(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		session := auth.SessionFromClaims(claims)
		if v := verifier.Load(); v != nil {
			session, err = (*v)(r.Context(), session)
			if errors.Is(err, apperr.ErrUnauthorized) {
				RespondMessage(w, http.StatusUnauthorized, "Account is no longer active")
				return
			}
			if err != nil {
				RespondError(w, r, err)
				return
			}
		}

		ctx := auth.WithSession(r.Context(), session)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequireRole authenticates and then checks the session role
func RequireRole(next http.HandlerFunc, roles ...string) http.HandlerFunc {
	return AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		session, _ := auth.FromContext(r.Context())
		if !session.HasRole(roles...) {
			RespondMessage(w, http.StatusForbidden, "Insufficient permissions")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminMiddleware checks if user has admin role
func AdminMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return RequireRole(next, auth.RoleAdmin)
}

// Session returns the caller's session; handlers behind AuthMiddleware
// always have one.
func Session(r *http.Request) auth.Session {
	s, _ := auth.FromContext(r.Context())
	return s
}
