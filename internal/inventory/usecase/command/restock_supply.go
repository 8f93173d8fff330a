package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tair/supply-manager/internal/inventory/domain"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/auth"
	"github.com/tair/supply-manager/pkg/logger"
)

// RestockCommand adds stock by item name: an existing item (matched
// case-insensitively) is incremented and repriced, otherwise a new item
// is created.
type RestockCommand struct {
	Name        string
	Category    string
	Supplier    string
	SKU         string
	Quantity    int
	Price       decimal.Decimal
	MinQuantity *int
	Actor       auth.Session
}

// RestockResult tells whether the item was created
type RestockResult struct {
	Item    *domain.SupplyItem `json:"item"`
	Created bool               `json:"created"`
}

// RestockHandler handles restock command
type RestockHandler struct {
	repo     domain.SupplyRepository
	add      *AddSupplyHandler
	notifier *StockNotifier
}

// NewRestockHandler creates a new restock handler
func NewRestockHandler(repo domain.SupplyRepository, add *AddSupplyHandler, notifier *StockNotifier) *RestockHandler {
	return &RestockHandler{repo: repo, add: add, notifier: notifier}
}

// Handle executes the restock command
func (h *RestockHandler) Handle(ctx context.Context, cmd RestockCommand) (*RestockResult, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, apperr.Validation("name is required")
	}

	// Unknown names become new items
	existing, err := h.repo.FindByName(ctx, cmd.Name)
	if errors.Is(err, apperr.ErrNotFound) {
		item, err := h.add.Handle(ctx, AddSupplyCommand{
			Name:        cmd.Name,
			Category:    cmd.Category,
			Supplier:    cmd.Supplier,
			SKU:         cmd.SKU,
			Quantity:    cmd.Quantity,
			Price:       cmd.Price,
			MinQuantity: cmd.MinQuantity,
			Actor:       cmd.Actor,
		})
		if err != nil {
			return nil, err
		}
		return &RestockResult{Item: item, Created: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up supply: %w", err)
	}

	// Validation
	if cmd.Quantity < 0 {
		return nil, apperr.Validation("quantity cannot be negative")
	}
	if err := domain.ValidatePrice(cmd.Price); err != nil {
		return nil, err
	}
	minQty := existing.MinQuantity
	if cmd.MinQuantity != nil {
		if *cmd.MinQuantity < 0 {
			return nil, apperr.Validation("min_quantity cannot be negative")
		}
		minQty = *cmd.MinQuantity
	}

	// Increment, reprice and log the movement together
	before, after, movement, err := h.repo.Restock(ctx, domain.Restock{
		ItemID:      existing.ID,
		Quantity:    cmd.Quantity,
		Price:       cmd.Price,
		MinQuantity: minQty,
		CreatedBy:   cmd.Actor.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to restock %s: %w", existing.Name, err)
	}

	if movement != nil {
		h.notifier.Movement(ctx, movement, before, after)
	} else {
		h.notifier.Changed(ctx, before, after)
	}

	logger.Info(ctx).
		Uint("item_id", after.ID).
		Int("added", cmd.Quantity).
		Int("quantity", after.Quantity).
		Str("actor", cmd.Actor.Username).
		Msg("Supply restocked")

	return &RestockResult{Item: after}, nil
}
