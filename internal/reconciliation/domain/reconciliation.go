package domain

import (
	"context"
	"time"

	"github.com/tair/supply-manager/pkg/auth"
	"github.com/tair/supply-manager/pkg/month"
)

// Record is a saved physical count for one item in one month.
// (month_year, item_id) is unique; saving again replaces the record.
type Record struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	MonthYear        string    `json:"month_year" gorm:"size:7;not null;uniqueIndex:idx_stock_reconciliation_month_item"`
	ItemID           uint      `json:"item_id" gorm:"not null;uniqueIndex:idx_stock_reconciliation_month_item"`
	RecordedQty      int       `json:"recorded_qty" gorm:"not null"`
	ActualQty        int       `json:"actual_qty" gorm:"not null"`
	Variance         int       `json:"variance" gorm:"not null"`
	Notes            string    `json:"notes,omitempty" gorm:"size:500"`
	ReconciledBy     uint      `json:"reconciled_by"`
	ReconciledByName string    `json:"reconciled_by_name" gorm:"size:100"`
	CreatedAt        time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Record) TableName() string {
	return "stock_reconciliation"
}

// Variance is the physical count minus the system count
func Variance(recorded, actual int) int {
	return actual - recorded
}

// Entry is one physical count submitted for saving
type Entry struct {
	ItemID    uint   `json:"item_id"`
	ActualQty int    `json:"actual_qty"`
	Notes     string `json:"notes"`
}

// WorksheetRow is an item to count, with any count already saved
type WorksheetRow struct {
	ItemID    uint   `json:"item_id" db:"item_id"`
	SKU       string `json:"sku" db:"sku"`
	Name      string `json:"name" db:"name"`
	Category  string `json:"category" db:"category"`
	SystemQty int    `json:"system_qty" db:"system_qty"`
	ActualQty *int   `json:"actual_qty" db:"actual_qty"`
	Variance  *int   `json:"variance" db:"variance"`
	Notes     string `json:"notes" db:"notes"`
}

// Reconciled reports whether a count was already saved this month
func (w WorksheetRow) Reconciled() bool {
	return w.ActualQty != nil
}

// ReconciliationRepository defines the contract for reconciliation storage
type ReconciliationRepository interface {
	// Save replaces the records of the entries and refreshes the matching
	// monthly report rows in a single transaction.
	Save(ctx context.Context, m month.Month, entries []Entry, actor auth.Session) ([]Record, error)
	FindByMonth(ctx context.Context, m month.Month) ([]Record, error)
}

// WorksheetReader lists the items to count for a month
type WorksheetReader interface {
	Worksheet(ctx context.Context, m month.Month) ([]WorksheetRow, error)
}
