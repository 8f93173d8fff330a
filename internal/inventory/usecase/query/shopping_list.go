package query

import (
	"context"
	"fmt"

	"github.com/tair/supply-manager/internal/inventory/domain"
	"github.com/tair/supply-manager/pkg/metrics"
)

// ShoppingListQuery lists every item at or below its minimum quantity
type ShoppingListQuery struct{}

// ShoppingListLine is a low-stock item with the units needed to reach
// its minimum
type ShoppingListLine struct {
	domain.SupplyItem
	Shortfall int `json:"shortfall"`
}

// ShoppingListHandler handles shopping list query
type ShoppingListHandler struct {
	repo    domain.SupplyRepository
	metrics *metrics.Metrics
}

// NewShoppingListHandler creates a new shopping list handler
func NewShoppingListHandler(repo domain.SupplyRepository, m *metrics.Metrics) *ShoppingListHandler {
	return &ShoppingListHandler{repo: repo, metrics: m}
}

// Handle returns low-stock items, lowest quantity first
func (h *ShoppingListHandler) Handle(ctx context.Context, _ ShoppingListQuery) ([]ShoppingListLine, error) {
	items, err := h.repo.ListLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build shopping list: %w", err)
	}

	h.metrics.SetLowStock(len(items))

	lines := make([]ShoppingListLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, ShoppingListLine{
			SupplyItem: item,
			Shortfall:  item.MinQuantity - item.Quantity,
		})
	}
	return lines, nil
}
