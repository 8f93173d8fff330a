package domain

import (
	"context"
	"time"

	invdomain "github.com/tair/supply-manager/internal/inventory/domain"
)

// Request statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusReceived = "received"
)

// Quantity bounds of a single request
const (
	MinRequestQuantity = 1
	MaxRequestQuantity = 1000
)

var transitions = map[string][]string{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusReceived},
}

// CanTransition reports whether the workflow allows from -> to
func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// StockRequest is a staff or student request for supplies
type StockRequest struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	ItemID          uint       `json:"item_id" gorm:"not null;index"`
	Quantity        int        `json:"quantity" gorm:"not null"`
	RequestedBy     uint       `json:"requested_by" gorm:"not null;index"`
	Reason          string     `json:"reason,omitempty" gorm:"size:255"`
	Status          string     `json:"status" gorm:"size:20;not null;index"`
	DecidedBy       *uint      `json:"decided_by,omitempty"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty" gorm:"size:255"`
	ReceivedAt      *time.Time `json:"received_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TableName specifies the table name
func (StockRequest) TableName() string {
	return "stock_requests"
}

// RequestFilter narrows request listings; zero values mean "any"
type RequestFilter struct {
	RequestedBy uint
	Status      string
	Limit       int
	Offset      int
}

// Approval is the outcome of approving a request
type Approval struct {
	Request  *StockRequest
	Movement *invdomain.Transaction
	Before   *invdomain.SupplyItem
	After    *invdomain.SupplyItem
}

// RequestRepository defines the contract for stock request storage
type RequestRepository interface {
	Create(ctx context.Context, req *StockRequest) error
	FindByID(ctx context.Context, id uint) (*StockRequest, error)
	List(ctx context.Context, filter RequestFilter) ([]StockRequest, int64, error)
	// Transition moves a request from one status to another only if it is
	// still in from, setting the extra columns in the same statement.
	Transition(ctx context.Context, id uint, from, to string, fields map[string]interface{}) (*StockRequest, error)
	// Approve marks a pending request approved and issues its stock
	// atomically; nothing changes if stock is short.
	Approve(ctx context.Context, id uint, approverID uint) (*Approval, error)
}
