package query

import (
	"context"
	"fmt"

	"github.com/tair/supply-manager/internal/reconciliation/domain"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/month"
)

// WorksheetQuery asks for the items to count in a month
type WorksheetQuery struct {
	Month month.Month
}

// WorksheetLine is a worksheet row with its reconciled flag spelled out
type WorksheetLine struct {
	domain.WorksheetRow
	Reconciled bool `json:"reconciled"`
}

// WorksheetHandler handles worksheet query
type WorksheetHandler struct {
	reader domain.WorksheetReader
}

// NewWorksheetHandler creates a new worksheet handler
func NewWorksheetHandler(reader domain.WorksheetReader) *WorksheetHandler {
	return &WorksheetHandler{reader: reader}
}

// Handle executes the worksheet query
func (h *WorksheetHandler) Handle(ctx context.Context, q WorksheetQuery) ([]WorksheetLine, error) {
	if q.Month.IsZero() {
		return nil, apperr.Validation("month is required")
	}

	rows, err := h.reader.Worksheet(ctx, q.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to load worksheet: %w", err)
	}

	lines := make([]WorksheetLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, WorksheetLine{WorksheetRow: row, Reconciled: row.Reconciled()})
	}
	return lines, nil
}

// ListRecordsQuery lists the counts saved for a month
type ListRecordsQuery struct {
	Month month.Month
}

// ListRecordsHandler handles list records query
type ListRecordsHandler struct {
	repo domain.ReconciliationRepository
}

// NewListRecordsHandler creates a new list records handler
func NewListRecordsHandler(repo domain.ReconciliationRepository) *ListRecordsHandler {
	return &ListRecordsHandler{repo: repo}
}

// Handle executes the list records query
func (h *ListRecordsHandler) Handle(ctx context.Context, q ListRecordsQuery) ([]domain.Record, error) {
	if q.Month.IsZero() {
		return nil, apperr.Validation("month is required")
	}

	records, err := h.repo.FindByMonth(ctx, q.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to list reconciliations: %w", err)
	}
	if records == nil {
		records = []domain.Record{}
	}
	return records, nil
}
