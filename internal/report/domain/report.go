package domain

import (
	"context"
	"time"

	"github.com/tair/supply-manager/pkg/month"
)

// MonthlyReport aggregates one item's movements for one month.
// (month_year, item_id) is unique.
type MonthlyReport struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	MonthYear    string    `json:"month_year" gorm:"size:7;not null;uniqueIndex:idx_monthly_reports_month_item"`
	ItemID       uint      `json:"item_id" gorm:"not null;uniqueIndex:idx_monthly_reports_month_item"`
	TotalIn      int       `json:"total_in" gorm:"not null"`
	TotalOut     int       `json:"total_out" gorm:"not null"`
	CurrentStock int       `json:"current_stock" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (MonthlyReport) TableName() string {
	return "monthly_reports"
}

// ReportLine is a report row with item details
type ReportLine struct {
	MonthlyReport
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ReportRepository defines the contract for monthly report storage
type ReportRepository interface {
	// Generate aggregates the month's transactions and upserts one row per
	// item with activity, atomically.
	Generate(ctx context.Context, m month.Month) ([]MonthlyReport, error)
	FindByMonth(ctx context.Context, m month.Month) ([]ReportLine, error)
}
