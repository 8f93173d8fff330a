package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/tair/supply-manager/internal/inventory/domain"
	"github.com/tair/supply-manager/pkg/database"
	"github.com/tair/supply-manager/pkg/month"
)

const touchedInMonth = `deleted_at IS NULL AND last_updated >= ? AND last_updated < ?`

// SqlxSummaryReader computes dashboard figures with plain SQL
type SqlxSummaryReader struct {
	db *sqlx.DB
}

func NewSqlxSummaryReader(db *sqlx.DB) *SqlxSummaryReader {
	return &SqlxSummaryReader{db: db}
}

func (r *SqlxSummaryReader) Summary(ctx context.Context, m month.Month) (*domain.Summary, error) {
	start, end := m.Start(), m.End()

	var totals struct {
		TotalUnits    int64           `db:"total_units"`
		TotalValue    decimal.Decimal `db:"total_value"`
		LowStockCount int64           `db:"low_stock_count"`
		CategoryCount int64           `db:"category_count"`
	}
	query := r.db.Rebind(`
		SELECT COALESCE(SUM(quantity), 0) AS total_units,
		       COALESCE(SUM(quantity * price), 0) AS total_value,
		       COALESCE(SUM(CASE WHEN quantity <= min_quantity THEN 1 ELSE 0 END), 0) AS low_stock_count,
		       COUNT(DISTINCT category) AS category_count
		FROM supplies
		WHERE ` + touchedInMonth)
	if err := r.db.GetContext(ctx, &totals, query, start, end); err != nil {
		return nil, fmt.Errorf("summary totals: %w", database.ClassifyError(err))
	}

	summary := &domain.Summary{
		Month:           m.String(),
		TotalUnits:      totals.TotalUnits,
		TotalValue:      totals.TotalValue.Round(2),
		LowStockCount:   totals.LowStockCount,
		CategoryCount:   totals.CategoryCount,
		ValueByCategory: []domain.CategoryValue{},
		TopItems:        []domain.ItemValue{},
		LowStock:        []domain.LowStockItem{},
		Trend:           make([]domain.MonthValue, 0, domain.TrendMonths),
	}

	query = r.db.Rebind(`
		SELECT category, COALESCE(SUM(quantity * price), 0) AS value
		FROM supplies
		WHERE ` + touchedInMonth + `
		GROUP BY category
		ORDER BY value DESC, category`)
	if err := r.db.SelectContext(ctx, &summary.ValueByCategory, query, start, end); err != nil {
		return nil, fmt.Errorf("summary categories: %w", database.ClassifyError(err))
	}

	query = r.db.Rebind(`
		SELECT id, sku, name, quantity, price, quantity * price AS value
		FROM supplies
		WHERE ` + touchedInMonth + `
		ORDER BY value DESC, name
		LIMIT 5`)
	if err := r.db.SelectContext(ctx, &summary.TopItems, query, start, end); err != nil {
		return nil, fmt.Errorf("summary top items: %w", database.ClassifyError(err))
	}

	query = r.db.Rebind(`
		SELECT id, sku, name, quantity, min_quantity
		FROM supplies
		WHERE ` + touchedInMonth + ` AND quantity <= min_quantity
		ORDER BY quantity, name`)
	if err := r.db.SelectContext(ctx, &summary.LowStock, query, start, end); err != nil {
		return nil, fmt.Errorf("summary low stock: %w", database.ClassifyError(err))
	}

	// Oldest month first, ending at m
	query = r.db.Rebind(`
		SELECT COALESCE(SUM(quantity * price), 0)
		FROM supplies
		WHERE ` + touchedInMonth)
	for i := domain.TrendMonths - 1; i >= 0; i-- {
		bucket := m.Add(-i)
		var value decimal.Decimal
		if err := r.db.GetContext(ctx, &value, query, bucket.Start(), bucket.End()); err != nil {
			return nil, fmt.Errorf("summary trend %s: %w", bucket, database.ClassifyError(err))
		}
		summary.Trend = append(summary.Trend, domain.MonthValue{Month: bucket.String(), Value: value.Round(2)})
	}

	return summary, nil
}
