package command

import (
	"context"
	"fmt"
	"strings"

	invdomain "github.com/tair/supply-manager/internal/inventory/domain"
	"github.com/tair/supply-manager/internal/request/domain"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/auth"
)

// SubmitRequestCommand represents a staff or student asking for supplies
type SubmitRequestCommand struct {
	ItemID   uint
	Quantity int
	Reason   string
	Actor    auth.Session
}

// SubmitRequestHandler handles submit request command
type SubmitRequestHandler struct {
	repo     domain.RequestRepository
	items    invdomain.SupplyRepository
	notifier *StatusNotifier
}

// NewSubmitRequestHandler creates a new submit request handler
func NewSubmitRequestHandler(repo domain.RequestRepository, items invdomain.SupplyRepository, notifier *StatusNotifier) *SubmitRequestHandler {
	return &SubmitRequestHandler{repo: repo, items: items, notifier: notifier}
}

// Handle creates a pending request. Stock is not checked here; it is
// checked when the request is approved.
func (h *SubmitRequestHandler) Handle(ctx context.Context, cmd SubmitRequestCommand) (*domain.StockRequest, error) {
	if !cmd.Actor.CanRequest() {
		return nil, fmt.Errorf("role %q cannot submit requests: %w", cmd.Actor.Role, apperr.ErrUnauthorized)
	}
	if cmd.Quantity < domain.MinRequestQuantity || cmd.Quantity > domain.MaxRequestQuantity {
		return nil, apperr.Validation(fmt.Sprintf("quantity must be between %d and %d",
			domain.MinRequestQuantity, domain.MaxRequestQuantity))
	}

	if _, err := h.items.FindByID(ctx, cmd.ItemID); err != nil {
		return nil, fmt.Errorf("supply %d: %w", cmd.ItemID, err)
	}

	req := &domain.StockRequest{
		ItemID:      cmd.ItemID,
		Quantity:    cmd.Quantity,
		RequestedBy: cmd.Actor.UserID,
		Reason:      strings.TrimSpace(cmd.Reason),
		Status:      domain.StatusPending,
	}
	if err := h.repo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to submit request: %w", err)
	}

	h.notifier.Changed(ctx, req, cmd.Actor)
	return req, nil
}
