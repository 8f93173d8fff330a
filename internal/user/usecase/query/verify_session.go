package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/tair/supply-manager/internal/user/domain"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/auth"
)

// VerifySessionHandler checks a token session against the stored account
type VerifySessionHandler struct {
	repo domain.UserRepository
}

// NewVerifySessionHandler creates a new verify session handler
func NewVerifySessionHandler(repo domain.UserRepository) *VerifySessionHandler {
	return &VerifySessionHandler{repo: repo}
}

// Handle returns the session as the account stands now. Deleted or
// deactivated accounts are rejected and role changes apply at once.
func (h *VerifySessionHandler) Handle(ctx context.Context, session auth.Session) (auth.Session, error) {
	user, err := h.repo.FindByID(ctx, session.UserID)
	if errors.Is(err, apperr.ErrNotFound) {
		return auth.Session{}, fmt.Errorf("account %d no longer exists: %w", session.UserID, apperr.ErrUnauthorized)
	}
	if err != nil {
		return auth.Session{}, err
	}
	if !user.IsActive {
		return auth.Session{}, fmt.Errorf("account %s is deactivated: %w", user.Username, apperr.ErrUnauthorized)
	}
	return user.Session(), nil
}
