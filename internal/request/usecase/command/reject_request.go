package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tair/supply-manager/internal/request/domain"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/auth"
)

// RejectRequestCommand represents an admin turning down a pending request
type RejectRequestCommand struct {
	RequestID uint
	Reason    string
	Actor     auth.Session
}

// RejectRequestHandler handles reject request command
type RejectRequestHandler struct {
	repo     domain.RequestRepository
	notifier *StatusNotifier
}

// NewRejectRequestHandler creates a new reject request handler
func NewRejectRequestHandler(repo domain.RequestRepository, notifier *StatusNotifier) *RejectRequestHandler {
	return &RejectRequestHandler{repo: repo, notifier: notifier}
}

// Handle rejects the request; stock is untouched. The row is not deleted:
// it stays in rejected status with the reason, decider and time so the
// requester can see why, and rejected is terminal.
func (h *RejectRequestHandler) Handle(ctx context.Context, cmd RejectRequestCommand) (*domain.StockRequest, error) {
	if !cmd.Actor.IsAdmin() {
		return nil, fmt.Errorf("only admins can reject requests: %w", apperr.ErrUnauthorized)
	}
	if cmd.RequestID == 0 {
		return nil, apperr.Validation("request id is required")
	}

	// Only pending requests can be rejected
	req, err := h.repo.Transition(ctx, cmd.RequestID, domain.StatusPending, domain.StatusRejected,
		map[string]interface{}{
			"decided_by":       cmd.Actor.UserID,
			"decided_at":       time.Now().UTC(),
			"rejection_reason": strings.TrimSpace(cmd.Reason),
		})
	if err != nil {
		return nil, fmt.Errorf("failed to reject request %d: %w", cmd.RequestID, err)
	}

	h.notifier.Changed(ctx, req, cmd.Actor)
	return req, nil
}
