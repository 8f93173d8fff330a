package query

import (
	"context"
	"fmt"

	"github.com/tair/supply-manager/internal/inventory/domain"
	"github.com/tair/supply-manager/pkg/month"
)

// ListTransactionsQuery represents the query to list stock movements
type ListTransactionsQuery struct {
	ItemID uint
	Month  month.Month // zero means all months
	Limit  int
	Offset int
}

// TransactionPage is one page of movements, newest first
type TransactionPage struct {
	Transactions []domain.Transaction `json:"transactions"`
	Total        int64                `json:"total"`
	Limit        int                  `json:"limit"`
	Offset       int                  `json:"offset"`
}

// ListTransactionsHandler handles list transactions query
type ListTransactionsHandler struct {
	repo domain.SupplyRepository
}

// NewListTransactionsHandler creates a new list transactions handler
func NewListTransactionsHandler(repo domain.SupplyRepository) *ListTransactionsHandler {
	return &ListTransactionsHandler{repo: repo}
}

// Handle executes the list transactions query
func (h *ListTransactionsHandler) Handle(ctx context.Context, q ListTransactionsQuery) (*TransactionPage, error) {
	q.Limit, q.Offset = pageBounds(q.Limit, q.Offset)

	filter := domain.TransactionFilter{ItemID: q.ItemID, Limit: q.Limit, Offset: q.Offset}
	if !q.Month.IsZero() {
		filter.From, filter.To = q.Month.Start(), q.Month.End()
	}

	txs, total, err := h.repo.ListTransactions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txs == nil {
		txs = []domain.Transaction{}
	}
	return &TransactionPage{Transactions: txs, Total: total, Limit: q.Limit, Offset: q.Offset}, nil
}
