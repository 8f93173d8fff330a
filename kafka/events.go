package kafka

import "time"

// LowStockEvent is emitted when an item drops to or below its minimum
type LowStockEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	ItemID      uint      `json:"item_id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"`
	MinQuantity int       `json:"min_quantity"`
	Timestamp   time.Time `json:"timestamp"`
}

// RequestStatusChangedEvent is emitted on every stock request transition
type RequestStatusChangedEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	RequestID   uint      `json:"request_id"`
	ItemID      uint      `json:"item_id"`
	Quantity    int       `json:"quantity"`
	RequestedBy uint      `json:"requested_by"`
	Status      string    `json:"status"`
	ActorID     uint      `json:"actor_id"`
	Timestamp   time.Time `json:"timestamp"`
}

// SupplyDeliveredEvent is consumed from suppliers/purchasing. Either SKU or
// ItemID identifies the item.
type SupplyDeliveredEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	ItemID    uint      `json:"item_id,omitempty"`
	SKU       string    `json:"sku,omitempty"`
	Quantity  int       `json:"quantity"`
	Supplier  string    `json:"supplier"`
	Reference string    `json:"reference"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeLowStock             = "supply.low_stock"
	EventTypeRequestStatusChanged = "request.status_changed"
	EventTypeSupplyDelivered      = "supply.delivered"
)

// Kafka topics
const (
	TopicSupplyAlerts     = "supply-alerts"
	TopicStockRequests    = "stock-requests"
	TopicSupplyDeliveries = "supply-deliveries"
)
