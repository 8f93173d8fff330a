// Package listener applies inventory events received from Kafka.
package listener

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tair/supply-manager/internal/inventory/domain"
	"github.com/tair/supply-manager/internal/inventory/usecase/command"
	"github.com/tair/supply-manager/kafka"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/logger"
)

// DeliveryListener books supplier deliveries as IN movements
type DeliveryListener struct {
	repo   domain.SupplyRepository
	record *command.RecordTransactionHandler
}

func NewDeliveryListener(repo domain.SupplyRepository, record *command.RecordTransactionHandler) *DeliveryListener {
	return &DeliveryListener{repo: repo, record: record}
}

// Register attaches the listener to a consumer
func (l *DeliveryListener) Register(c *kafka.Consumer) {
	c.RegisterHandler(kafka.EventTypeSupplyDelivered, l.Handle)
}

// Handle resolves the delivered item by ID or SKU and records the
// delivery. An event id that was already booked is skipped, so
// redelivered messages do not add stock twice.
func (l *DeliveryListener) Handle(ctx context.Context, event kafka.SupplyDeliveredEvent) error {
	if event.EventID != "" {
		booked, err := l.alreadyBooked(ctx, event.EventID)
		if err != nil {
			return err
		}
		if booked {
			return nil
		}
	}

	itemID := event.ItemID
	if itemID == 0 {
		if strings.TrimSpace(event.SKU) == "" {
			return apperr.Validation("delivery has neither item_id nor sku")
		}
		item, err := l.repo.FindBySKU(ctx, event.SKU)
		if err != nil {
			return fmt.Errorf("delivery %s: %w", event.EventID, err)
		}
		itemID = item.ID
	}

	ref := "delivery"
	if event.Reference != "" {
		ref = "delivery:" + event.Reference
	}

	tx, item, err := l.record.Handle(ctx, command.RecordTransactionCommand{
		ItemID:    itemID,
		Type:      domain.TransactionIn,
		Quantity:  event.Quantity,
		Reference: ref,
		Note:      event.Supplier,
		EventID:   event.EventID,
	})
	if errors.Is(err, apperr.ErrConflict) && event.EventID != "" {
		// Another consumer booked it between the check and the insert
		if booked, lookupErr := l.alreadyBooked(ctx, event.EventID); lookupErr == nil && booked {
			return nil
		}
	}
	if err != nil {
		return fmt.Errorf("delivery %s: %w", event.EventID, err)
	}

	logger.Info(ctx).
		Str("event_id", event.EventID).
		Uint("item_id", item.ID).
		Uint("transaction_id", tx.ID).
		Int("quantity", tx.Quantity).
		Msg("Delivery booked")
	return nil
}

func (l *DeliveryListener) alreadyBooked(ctx context.Context, eventID string) (bool, error) {
	tx, err := l.repo.FindTransactionByEvent(ctx, eventID)
	if errors.Is(err, apperr.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delivery %s: %w", eventID, err)
	}
	logger.Info(ctx).
		Str("event_id", eventID).
		Uint("transaction_id", tx.ID).
		Msg("Delivery already booked, skipping")
	return true, nil
}
