package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/supply-manager/internal/inventory/domain"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/auth"
	"github.com/tair/supply-manager/pkg/logger"
)

// AddSupplyCommand represents the command to add a supply item
type AddSupplyCommand struct {
	Name     string
	Category string
	Supplier string
	SKU      string // derived from name and quantity when empty
	Quantity int
	Price    decimal.Decimal
	// MinQuantity defaults to domain.DefaultMinQuantity when nil
	MinQuantity *int
	Actor       auth.Session
}

func (c AddSupplyCommand) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return apperr.Validation("name is required")
	}
	if c.Quantity < 0 {
		return apperr.Validation("quantity cannot be negative")
	}
	if err := domain.ValidatePrice(c.Price); err != nil {
		return err
	}
	if c.MinQuantity != nil && *c.MinQuantity < 0 {
		return apperr.Validation("min_quantity cannot be negative")
	}
	return nil
}

// AddSupplyHandler handles add supply command
type AddSupplyHandler struct {
	repo     domain.SupplyRepository
	notifier *StockNotifier
}

// NewAddSupplyHandler creates a new add supply handler
func NewAddSupplyHandler(repo domain.SupplyRepository, notifier *StockNotifier) *AddSupplyHandler {
	return &AddSupplyHandler{repo: repo, notifier: notifier}
}

// Handle executes the add supply command
func (h *AddSupplyHandler) Handle(ctx context.Context, cmd AddSupplyCommand) (*domain.SupplyItem, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	minQty := domain.DefaultMinQuantity
	if cmd.MinQuantity != nil {
		minQty = *cmd.MinQuantity
	}

	name := strings.TrimSpace(cmd.Name)
	sku := strings.ToUpper(strings.TrimSpace(cmd.SKU))
	if sku == "" {
		sku = domain.DeriveSKU(name, cmd.Quantity)
	}

	item := &domain.SupplyItem{
		SKU:         sku,
		Name:        name,
		Category:    strings.TrimSpace(cmd.Category),
		Supplier:    strings.TrimSpace(cmd.Supplier),
		Quantity:    cmd.Quantity,
		MinQuantity: minQty,
		Price:       cmd.Price,
		LastUpdated: time.Now().UTC(),
	}

	if err := h.repo.Create(ctx, item, cmd.Actor.UserID); err != nil {
		return nil, fmt.Errorf("failed to add supply: %w", err)
	}

	if item.Quantity > 0 {
		h.notifier.Movement(ctx, &domain.Transaction{Type: domain.TransactionIn, Quantity: item.Quantity}, nil, item)
	} else {
		h.notifier.Changed(ctx, nil, item)
	}

	logger.Info(ctx).
		Uint("item_id", item.ID).
		Str("sku", item.SKU).
		Int("quantity", item.Quantity).
		Str("actor", cmd.Actor.Username).
		Msg("Supply added")

	return item, nil
}
