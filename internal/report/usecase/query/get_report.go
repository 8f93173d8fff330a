package query

import (
	"context"
	"fmt"

	"github.com/tair/supply-manager/internal/report/domain"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/month"
)

// GetReportQuery represents the query to read a monthly report
type GetReportQuery struct {
	Month month.Month
}

// GetReportHandler handles get report query
type GetReportHandler struct {
	repo domain.ReportRepository
}

// NewGetReportHandler creates a new get report handler
func NewGetReportHandler(repo domain.ReportRepository) *GetReportHandler {
	return &GetReportHandler{repo: repo}
}

// Handle returns the stored rows; a month never generated is empty
func (h *GetReportHandler) Handle(ctx context.Context, q GetReportQuery) ([]domain.ReportLine, error) {
	if q.Month.IsZero() {
		return nil, apperr.Validation("month is required")
	}

	lines, err := h.repo.FindByMonth(ctx, q.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to load report for %s: %w", q.Month, err)
	}
	if lines == nil {
		lines = []domain.ReportLine{}
	}
	return lines, nil
}
