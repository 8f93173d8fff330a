package command

import (
	"context"
	"fmt"

	invcommand "github.com/tair/supply-manager/internal/inventory/usecase/command"
	"github.com/tair/supply-manager/internal/request/domain"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/auth"
)

// ApproveRequestCommand represents an admin approving a pending request
type ApproveRequestCommand struct {
	RequestID uint
	Actor     auth.Session
}

// ApproveRequestHandler handles approve request command
type ApproveRequestHandler struct {
	repo     domain.RequestRepository
	stock    *invcommand.StockNotifier
	notifier *StatusNotifier
}

// NewApproveRequestHandler creates a new approve request handler
func NewApproveRequestHandler(repo domain.RequestRepository, stock *invcommand.StockNotifier, notifier *StatusNotifier) *ApproveRequestHandler {
	return &ApproveRequestHandler{repo: repo, stock: stock, notifier: notifier}
}

// Handle approves the request and issues its quantity from stock. If the
// item cannot cover it the request stays pending and
// apperr.ErrInsufficientStock is returned.
func (h *ApproveRequestHandler) Handle(ctx context.Context, cmd ApproveRequestCommand) (*domain.Approval, error) {
	if !cmd.Actor.IsAdmin() {
		return nil, fmt.Errorf("only admins can approve requests: %w", apperr.ErrUnauthorized)
	}
	if cmd.RequestID == 0 {
		return nil, apperr.Validation("request id is required")
	}

	// Status change and stock issue commit together
	approval, err := h.repo.Approve(ctx, cmd.RequestID, cmd.Actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to approve request %d: %w", cmd.RequestID, err)
	}

	h.stock.Movement(ctx, approval.Movement, approval.Before, approval.After)
	h.notifier.Changed(ctx, approval.Request, cmd.Actor)
	return approval, nil
}
