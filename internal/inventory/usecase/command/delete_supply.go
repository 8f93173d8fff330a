package command

import (
	"context"
	"fmt"

	"github.com/tair/supply-manager/internal/inventory/domain"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/logger"
)

// DeleteSupplyCommand represents the command to delete a supply item
type DeleteSupplyCommand struct {
	ID uint
}

// DeleteSupplyHandler handles delete supply command
type DeleteSupplyHandler struct {
	repo     domain.SupplyRepository
	notifier *StockNotifier
}

// NewDeleteSupplyHandler creates a new delete supply handler
func NewDeleteSupplyHandler(repo domain.SupplyRepository, notifier *StockNotifier) *DeleteSupplyHandler {
	return &DeleteSupplyHandler{repo: repo, notifier: notifier}
}

// Handle soft-deletes the item. Its transactions, reports and requests
// stay and keep pointing at it.
func (h *DeleteSupplyHandler) Handle(ctx context.Context, cmd DeleteSupplyCommand) error {
	if cmd.ID == 0 {
		return apperr.Validation("id is required")
	}

	if err := h.repo.Delete(ctx, cmd.ID); err != nil {
		return fmt.Errorf("failed to delete supply: %w", err)
	}

	h.notifier.Invalidate(ctx)
	logger.Info(ctx).Uint("item_id", cmd.ID).Msg("Supply deleted")
	return nil
}
