package command

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/supply-manager/internal/inventory/domain"
	"github.com/tair/supply-manager/pkg/apperr"
)

// UpdateSupplyCommand overwrites the mutable stock fields of an item
type UpdateSupplyCommand struct {
	ID          uint
	Quantity    int
	Price       decimal.Decimal
	MinQuantity *int // unchanged when nil
}

// UpdateSupplyHandler handles update supply command
type UpdateSupplyHandler struct {
	repo     domain.SupplyRepository
	notifier *StockNotifier
}

// NewUpdateSupplyHandler creates a new update supply handler
func NewUpdateSupplyHandler(repo domain.SupplyRepository, notifier *StockNotifier) *UpdateSupplyHandler {
	return &UpdateSupplyHandler{repo: repo, notifier: notifier}
}

// Handle executes the update supply command. Applying the same command
// twice leaves the same values.
func (h *UpdateSupplyHandler) Handle(ctx context.Context, cmd UpdateSupplyCommand) (*domain.SupplyItem, error) {
	if cmd.ID == 0 {
		return nil, apperr.Validation("id is required")
	}
	if cmd.Quantity < 0 {
		return nil, apperr.Validation("quantity cannot be negative")
	}
	if err := domain.ValidatePrice(cmd.Price); err != nil {
		return nil, err
	}
	if cmd.MinQuantity != nil && *cmd.MinQuantity < 0 {
		return nil, apperr.Validation("min_quantity cannot be negative")
	}

	// Find supply
	item, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load supply %d: %w", cmd.ID, err)
	}
	before := *item

	item.Quantity = cmd.Quantity
	item.Price = cmd.Price
	if cmd.MinQuantity != nil {
		item.MinQuantity = *cmd.MinQuantity
	}
	item.LastUpdated = time.Now().UTC()

	if err := h.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update supply: %w", err)
	}

	h.notifier.Changed(ctx, &before, item)
	return item, nil
}
