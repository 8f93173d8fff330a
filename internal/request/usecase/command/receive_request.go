package command

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/supply-manager/internal/request/domain"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/auth"
)

// ReceiveRequestCommand represents the requester confirming receipt
type ReceiveRequestCommand struct {
	RequestID uint
	Actor     auth.Session
}

// ReceiveRequestHandler handles receive request command
type ReceiveRequestHandler struct {
	repo     domain.RequestRepository
	notifier *StatusNotifier
}

// NewReceiveRequestHandler creates a new receive request handler
func NewReceiveRequestHandler(repo domain.RequestRepository, notifier *StatusNotifier) *ReceiveRequestHandler {
	return &ReceiveRequestHandler{repo: repo, notifier: notifier}
}

// Handle marks an approved request received. Only the requester may do
// this. Stock was already issued on approval.
func (h *ReceiveRequestHandler) Handle(ctx context.Context, cmd ReceiveRequestCommand) (*domain.StockRequest, error) {
	req, err := h.repo.FindByID(ctx, cmd.RequestID)
	if err != nil {
		return nil, err
	}
	if req.RequestedBy != cmd.Actor.UserID {
		return nil, fmt.Errorf("request %d belongs to another user: %w", req.ID, apperr.ErrUnauthorized)
	}
	if req.Status != domain.StatusApproved {
		return nil, fmt.Errorf("request %d is %s, not ready to receive: %w", req.ID, req.Status, apperr.ErrInvalidState)
	}

	req, err = h.repo.Transition(ctx, req.ID, domain.StatusApproved, domain.StatusReceived,
		map[string]interface{}{"received_at": time.Now().UTC()})
	if err != nil {
		return nil, fmt.Errorf("failed to receive request %d: %w", cmd.RequestID, err)
	}

	h.notifier.Changed(ctx, req, cmd.Actor)
	return req, nil
}
