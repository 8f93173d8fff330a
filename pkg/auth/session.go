package auth

import (
	"context"
	"strings"
)

// Roles
const (
	RoleAdmin   = "admin"
	RoleStaff   = "staff"
	RoleStudent = "student"
)

// NormalizeRole lower-cases a role name; unknown roles return ""
func NormalizeRole(role string) string {
	switch r := strings.ToLower(strings.TrimSpace(role)); r {
	case RoleAdmin, RoleStaff, RoleStudent:
		return r
	default:
		return ""
	}
}

// Session is the authenticated caller. It is passed explicitly to every
// workflow command instead of living in process-wide state.
type Session struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// SessionFromClaims converts token claims to a session
func SessionFromClaims(c *Claims) Session {
	return Session{UserID: c.UserID, Username: c.Username, Role: c.Role}
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// CanRequest reports whether the caller may submit stock requests
func (s Session) CanRequest() bool {
	return s.Role == RoleStaff || s.Role == RoleStudent
}

// HasRole reports whether the session has one of the roles
func (s Session) HasRole(roles ...string) bool {
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

type sessionKey struct{}

// WithSession stores the session in ctx
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the session stored by WithSession
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}
