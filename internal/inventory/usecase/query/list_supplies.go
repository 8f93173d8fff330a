package query

import (
	"context"
	"fmt"

	"github.com/tair/supply-manager/internal/inventory/domain"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ListSuppliesQuery represents the query to list supplies
type ListSuppliesQuery struct {
	Search       string // matches sku, name or supplier
	Category     string
	LowStockOnly bool
	Limit        int
	Offset       int
}

// SupplyPage is one page of supplies
type SupplyPage struct {
	Items  []domain.SupplyItem `json:"items"`
	Total  int64               `json:"total"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}

// ListSuppliesHandler handles list supplies query
type ListSuppliesHandler struct {
	repo domain.SupplyRepository
}

// NewListSuppliesHandler creates a new list supplies handler
func NewListSuppliesHandler(repo domain.SupplyRepository) *ListSuppliesHandler {
	return &ListSuppliesHandler{repo: repo}
}

// Handle executes the list supplies query
func (h *ListSuppliesHandler) Handle(ctx context.Context, q ListSuppliesQuery) (*SupplyPage, error) {
	q.Limit, q.Offset = pageBounds(q.Limit, q.Offset)

	items, total, err := h.repo.List(ctx, domain.SupplyFilter{
		Search:       q.Search,
		Category:     q.Category,
		LowStockOnly: q.LowStockOnly,
		Limit:        q.Limit,
		Offset:       q.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list supplies: %w", err)
	}

	if items == nil {
		items = []domain.SupplyItem{}
	}
	return &SupplyPage{Items: items, Total: total, Limit: q.Limit, Offset: q.Offset}, nil
}

func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
