package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/supply-manager/internal/inventory/domain"
	"github.com/tair/supply-manager/pkg/apperr"
)

// GetSupplyQuery represents the query to get a supply by ID
type GetSupplyQuery struct {
	ID uint
}

// GetSupplyHandler handles get supply query
type GetSupplyHandler struct {
	repo domain.SupplyRepository
}

// NewGetSupplyHandler creates a new get supply handler
func NewGetSupplyHandler(repo domain.SupplyRepository) *GetSupplyHandler {
	return &GetSupplyHandler{repo: repo}
}

// Handle executes the get supply query
func (h *GetSupplyHandler) Handle(ctx context.Context, q GetSupplyQuery) (*domain.SupplyItem, error) {
	if q.ID == 0 {
		return nil, apperr.Validation("invalid supply id")
	}

	item, err := h.repo.FindByID(ctx, q.ID)
	if err != nil {
		return nil, fmt.Errorf("supply %d: %w", q.ID, err)
	}
	return item, nil
}

// GetSupplyByNameQuery looks an item up by exact, case-insensitive name
type GetSupplyByNameQuery struct {
	Name string
}

// GetSupplyByNameHandler handles get supply by name query
type GetSupplyByNameHandler struct {
	repo domain.SupplyRepository
}

// NewGetSupplyByNameHandler creates a new get supply by name handler
func NewGetSupplyByNameHandler(repo domain.SupplyRepository) *GetSupplyByNameHandler {
	return &GetSupplyByNameHandler{repo: repo}
}

// Handle executes the get supply by name query
func (h *GetSupplyByNameHandler) Handle(ctx context.Context, q GetSupplyByNameQuery) (*domain.SupplyItem, error) {
	name := strings.TrimSpace(q.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}

	item, err := h.repo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("supply %q: %w", name, err)
	}
	return item, nil
}
