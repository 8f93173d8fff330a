package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tair/supply-manager/pkg/apperr"
)

// Stock status
const (
	StatusInStock  = "IN_STOCK"
	StatusLowStock = "LOW_STOCK"
)

// DefaultMinQuantity applies when an item is added without a threshold
const DefaultMinQuantity = 5

// SupplyItem is a stockable school supply
type SupplyItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	SKU         string          `json:"sku" gorm:"size:32;not null;index"`
	Name        string          `json:"name" gorm:"size:100;not null;index"`
	Category    string          `json:"category" gorm:"size:50"`
	Supplier    string          `json:"supplier" gorm:"size:100"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	MinQuantity int             `json:"min_quantity" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	LastUpdated time.Time       `json:"last_updated" gorm:"not null;index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (SupplyItem) TableName() string {
	return "supplies"
}

// IsLowStock is true at or below the minimum quantity
func (s *SupplyItem) IsLowStock() bool {
	return s.Quantity <= s.MinQuantity
}

func (s *SupplyItem) Status() string {
	if s.IsLowStock() {
		return StatusLowStock
	}
	return StatusInStock
}

// Value is quantity times unit price
func (s *SupplyItem) Value() decimal.Decimal {
	return s.Price.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// ValidatePrice accepts non-negative prices with at most two decimals,
// the precision of the price column
func ValidatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return apperr.Validation("price cannot be negative")
	}
	if !price.Equal(price.Round(2)) {
		return apperr.Validation("price cannot have more than two decimal places")
	}
	return nil
}

// DeriveSKU builds the default SKU: first three letters of the name in
// upper case and the quantity padded to four digits, e.g. PEN-0012.
func DeriveSKU(name string, quantity int) string {
	prefix := []rune(strings.ToUpper(strings.TrimSpace(name)))
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return fmt.Sprintf("%s-%04d", string(prefix), quantity)
}

// SupplyFilter narrows supply listings
type SupplyFilter struct {
	Search       string
	Category     string
	LowStockOnly bool
	Limit        int
	Offset       int
}

// Restock is an add-by-name against an existing item
type Restock struct {
	ItemID      uint
	Quantity    int
	Price       decimal.Decimal
	MinQuantity int
	CreatedBy   uint
}

// SupplyRepository defines the contract for supply data access
type SupplyRepository interface {
	// Create inserts the item and logs its opening quantity as an IN movement
	Create(ctx context.Context, item *SupplyItem, createdBy uint) error
	FindByID(ctx context.Context, id uint) (*SupplyItem, error)
	// FindByName matches the name case-insensitively
	FindByName(ctx context.Context, name string) (*SupplyItem, error)
	FindBySKU(ctx context.Context, sku string) (*SupplyItem, error)
	List(ctx context.Context, filter SupplyFilter) ([]SupplyItem, int64, error)
	ListLowStock(ctx context.Context) ([]SupplyItem, error)
	Update(ctx context.Context, item *SupplyItem) error
	// Restock increments the item, overwrites its price and minimum and logs
	// the IN movement in one database transaction. A zero quantity only
	// reprices and returns a nil movement.
	Restock(ctx context.Context, r Restock) (before, after *SupplyItem, movement *Transaction, err error)
	Delete(ctx context.Context, id uint) error

	// ApplyMovement locks the item, applies tx to its quantity and records
	// tx, all in one database transaction. It fills tx's before/after
	// quantities and returns the item as it was before and after.
	ApplyMovement(ctx context.Context, tx *Transaction) (before, after *SupplyItem, err error)
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]Transaction, int64, error)
	// FindTransactionByEvent returns the movement booked for a Kafka event
	FindTransactionByEvent(ctx context.Context, eventID string) (*Transaction, error)
}
