package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/supply-manager/internal/inventory/domain"
	"github.com/tair/supply-manager/pkg/auth"
	"github.com/tair/supply-manager/pkg/logger"
)

// RecordTransactionCommand records a stock movement and applies it
type RecordTransactionCommand struct {
	ItemID    uint
	Type      string // IN or OUT, case-insensitive
	Quantity  int
	Reference string
	Note      string
	// EventID marks a movement booked from a Kafka event
	EventID string
	Actor   auth.Session
}

// RecordTransactionHandler handles record transaction command
type RecordTransactionHandler struct {
	repo     domain.SupplyRepository
	notifier *StockNotifier
}

// NewRecordTransactionHandler creates a new record transaction handler
func NewRecordTransactionHandler(repo domain.SupplyRepository, notifier *StockNotifier) *RecordTransactionHandler {
	return &RecordTransactionHandler{repo: repo, notifier: notifier}
}

// Handle executes the command. An OUT larger than the stock on hand fails
// with apperr.ErrInsufficientStock and changes nothing.
func (h *RecordTransactionHandler) Handle(ctx context.Context, cmd RecordTransactionCommand) (*domain.Transaction, *domain.SupplyItem, error) {
	tx := &domain.Transaction{
		ItemID:    cmd.ItemID,
		Type:      strings.ToUpper(strings.TrimSpace(cmd.Type)),
		Quantity:  cmd.Quantity,
		Reference: strings.TrimSpace(cmd.Reference),
		Note:      strings.TrimSpace(cmd.Note),
		CreatedBy: cmd.Actor.UserID,
	}
	if err := tx.Validate(); err != nil {
		return nil, nil, err
	}
	if id := strings.TrimSpace(cmd.EventID); id != "" {
		tx.EventID = &id
	}

	before, after, err := h.repo.ApplyMovement(ctx, tx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	h.notifier.Movement(ctx, tx, before, after)

	logger.Info(ctx).
		Uint("item_id", tx.ItemID).
		Str("type", tx.Type).
		Int("quantity", tx.Quantity).
		Int("quantity_before", tx.QuantityBefore).
		Int("quantity_after", tx.QuantityAfter).
		Str("reference", tx.Reference).
		Msg("Stock transaction recorded")

	return tx, after, nil
}
