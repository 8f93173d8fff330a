package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/auth"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperr.Validation("quantity must be positive"), http.StatusBadRequest},
		{fmt.Errorf("supply 9: %w", apperr.ErrNotFound), http.StatusNotFound},
		{apperr.ErrUnauthorized, http.StatusForbidden},
		{apperr.ErrInvalidState, http.StatusConflict},
		{apperr.ErrInsufficientStock, http.StatusConflict},
		{fmt.Errorf("ping: %w", apperr.ErrConnection), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestRequireRole(t *testing.T) {
	auth.Configure("httpx-test-secret", time.Hour)

	handler := RequireRole(func(w http.ResponseWriter, r *http.Request) {
		RespondOK(w, Session(r).Username, nil)
	}, auth.RoleAdmin)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", rec.Code)
	}

	studentToken, _ := auth.GenerateToken(5, "sam", auth.RoleStudent)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken)
	rec = httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("student: expected 403, got %d", rec.Code)
	}

	adminToken, _ := auth.GenerateToken(1, "admin", auth.RoleAdmin)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin: expected 200, got %d", rec.Code)
	}
}

func TestSessionVerifier(t *testing.T) {
	auth.Configure("httpx-test-secret", time.Hour)
	t.Cleanup(func() { SetSessionVerifier(nil) })

	handler := AdminMiddleware(func(w http.ResponseWriter, r *http.Request) {
		RespondOK(w, Session(r).Username, nil)
	})
	token, _ := auth.GenerateToken(1, "admin", auth.RoleAdmin)

	tests := []struct {
		name   string
		verify SessionVerifier
		want   int
	}{
		{"unchanged account", func(_ context.Context, s auth.Session) (auth.Session, error) { return s, nil }, http.StatusOK},
		{"demoted since login", func(_ context.Context, s auth.Session) (auth.Session, error) {
			s.Role = auth.RoleStaff
			return s, nil
		}, http.StatusForbidden},
		{"deactivated", func(context.Context, auth.Session) (auth.Session, error) {
			return auth.Session{}, fmt.Errorf("gone: %w", apperr.ErrUnauthorized)
		}, http.StatusUnauthorized},
		{"store down", func(context.Context, auth.Session) (auth.Session, error) {
			return auth.Session{}, fmt.Errorf("ping: %w", apperr.ErrConnection)
		}, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetSessionVerifier(tt.verify)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			handler(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("status %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
