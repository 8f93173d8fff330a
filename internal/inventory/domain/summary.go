package domain

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tair/supply-manager/pkg/month"
)

// Summary holds the dashboard figures for items touched in a month
type Summary struct {
	Month           string          `json:"month"`
	TotalUnits      int64           `json:"total_units"`
	TotalValue      decimal.Decimal `json:"total_value"`
	LowStockCount   int64           `json:"low_stock_count"`
	CategoryCount   int64           `json:"category_count"`
	ValueByCategory []CategoryValue `json:"value_by_category"`
	TopItems        []ItemValue     `json:"top_items"`
	LowStock        []LowStockItem  `json:"low_stock"`
	Trend           []MonthValue    `json:"trend"`
}

// MonthValue is the stock value of items last touched in a month
type MonthValue struct {
	Month string          `json:"month"`
	Value decimal.Decimal `json:"value"`
}

// TrendMonths is the length of the summary value trend
const TrendMonths = 12

type CategoryValue struct {
	Category string          `json:"category" db:"category"`
	Value    decimal.Decimal `json:"value" db:"value"`
}

type ItemValue struct {
	ID       uint            `json:"id" db:"id"`
	SKU      string          `json:"sku" db:"sku"`
	Name     string          `json:"name" db:"name"`
	Quantity int             `json:"quantity" db:"quantity"`
	Price    decimal.Decimal `json:"price" db:"price"`
	Value    decimal.Decimal `json:"value" db:"value"`
}

type LowStockItem struct {
	ID          uint   `json:"id" db:"id"`
	SKU         string `json:"sku" db:"sku"`
	Name        string `json:"name" db:"name"`
	Quantity    int    `json:"quantity" db:"quantity"`
	MinQuantity int    `json:"min_quantity" db:"min_quantity"`
}

// SummaryReader computes dashboard figures
type SummaryReader interface {
	Summary(ctx context.Context, m month.Month) (*Summary, error)
}

// SummaryCachePattern matches every cached summary
const SummaryCachePattern = "summary:*"

// SummaryCacheKey is the cache key of a month's summary
func SummaryCacheKey(m month.Month) string {
	return "summary:" + m.String()
}
