package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/tair/supply-manager/internal/reconciliation/domain"
	"github.com/tair/supply-manager/pkg/database"
	"github.com/tair/supply-manager/pkg/month"
)

const worksheetQuery = `
	SELECT s.id AS item_id, s.sku, s.name, COALESCE(s.category, '') AS category,
	       s.quantity AS system_qty, r.actual_qty, r.variance,
	       COALESCE(r.notes, '') AS notes
	FROM supplies s
	LEFT JOIN stock_reconciliation r ON r.item_id = s.id AND r.month_year = ?
	WHERE s.deleted_at IS NULL
	  AND (
	        (s.last_updated >= ? AND s.last_updated < ?)
	     OR EXISTS (
	            SELECT 1 FROM transactions t
	            WHERE t.item_id = s.id AND t.created_at >= ? AND t.created_at < ?)
	     OR r.id IS NOT NULL
	  )
	ORDER BY s.name, s.id`

// SqlxWorksheetReader lists the items to count for a month
type SqlxWorksheetReader struct {
	db *sqlx.DB
}

func NewSqlxWorksheetReader(db *sqlx.DB) *SqlxWorksheetReader {
	return &SqlxWorksheetReader{db: db}
}

func (r *SqlxWorksheetReader) Worksheet(ctx context.Context, m month.Month) ([]domain.WorksheetRow, error) {
	start, end := m.Start(), m.End()
	rows := []domain.WorksheetRow{}
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(worksheetQuery),
		m.String(), start, end, start, end)
	if err != nil {
		return nil, fmt.Errorf("worksheet %s: %w", m, database.ClassifyError(err))
	}
	return rows, nil
}
