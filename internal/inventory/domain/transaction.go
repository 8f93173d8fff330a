package domain

import (
	"fmt"
	"time"

	"github.com/tair/supply-manager/pkg/apperr"
)

// Transaction types
const (
	TransactionIn  = "IN"
	TransactionOut = "OUT"
)

// Transaction is a single stock movement
type Transaction struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ItemID         uint      `json:"item_id" gorm:"not null;index"`
	Type           string    `json:"type" gorm:"size:3;not null;index"`
	Quantity       int       `json:"quantity" gorm:"not null"`
	QuantityBefore int       `json:"quantity_before"`
	QuantityAfter  int       `json:"quantity_after"`
	Reference      string    `json:"reference,omitempty" gorm:"size:100"`
	Note           string    `json:"note,omitempty" gorm:"size:255"`
	CreatedBy      uint      `json:"created_by"`
	EventID        *string   `json:"event_id,omitempty" gorm:"size:64;uniqueIndex"` // Kafka deliveries only
	CreatedAt      time.Time `json:"created_at" gorm:"not null;index"`
}

// TableName specifies the table name
func (Transaction) TableName() string {
	return "transactions"
}

// Validate checks type and quantity
func (t *Transaction) Validate() error {
	if t.ItemID == 0 {
		return apperr.Validation("item_id is required")
	}
	if t.Type != TransactionIn && t.Type != TransactionOut {
		return apperr.Validation(fmt.Sprintf("transaction type must be %s or %s", TransactionIn, TransactionOut))
	}
	if t.Quantity <= 0 {
		return apperr.Validation("quantity must be positive")
	}
	return nil
}

// Delta is the signed change applied to stock
func (t *Transaction) Delta() int {
	if t.Type == TransactionOut {
		return -t.Quantity
	}
	return t.Quantity
}

// TransactionFilter narrows movement listings; zero values mean "any"
type TransactionFilter struct {
	ItemID uint
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}
