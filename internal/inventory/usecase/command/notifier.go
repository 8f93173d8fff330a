package command

import (
	"context"

	"github.com/tair/supply-manager/internal/inventory/domain"
	"github.com/tair/supply-manager/kafka"
	"github.com/tair/supply-manager/pkg/cache"
	"github.com/tair/supply-manager/pkg/logger"
	"github.com/tair/supply-manager/pkg/metrics"
)

// StockNotifier runs the side effects of a committed stock change:
// metrics, low-stock alerts and summary cache invalidation. Failures are
// logged only; the change itself is already stored. A nil notifier or
// nil dependencies are skipped.
type StockNotifier struct {
	events  kafka.EventPublisher
	cache   *cache.Client
	metrics *metrics.Metrics
}

// NewStockNotifier creates a notifier
func NewStockNotifier(events kafka.EventPublisher, c *cache.Client, m *metrics.Metrics) *StockNotifier {
	return &StockNotifier{events: events, cache: c, metrics: m}
}

// Movement reports a recorded transaction
func (n *StockNotifier) Movement(ctx context.Context, tx *domain.Transaction, before, after *domain.SupplyItem) {
	if n == nil {
		return
	}
	n.metrics.ObserveMovement(tx.Type, tx.Quantity)
	n.Changed(ctx, before, after)
}

// Changed reports an item whose stock may have moved. before is nil for
// a new item.
func (n *StockNotifier) Changed(ctx context.Context, before, after *domain.SupplyItem) {
	if n == nil {
		return
	}
	n.Invalidate(ctx)

	if after == nil || !after.IsLowStock() || (before != nil && before.IsLowStock()) {
		return
	}

	logger.Warn(ctx).
		Uint("item_id", after.ID).
		Str("sku", after.SKU).
		Int("quantity", after.Quantity).
		Int("min_quantity", after.MinQuantity).
		Msg("Item reached low stock")

	if n.events == nil {
		return
	}
	err := n.events.PublishLowStock(ctx, kafka.LowStockEvent{
		ItemID:      after.ID,
		SKU:         after.SKU,
		Name:        after.Name,
		Quantity:    after.Quantity,
		MinQuantity: after.MinQuantity,
	})
	if err != nil {
		logger.Error(ctx).Err(err).Uint("item_id", after.ID).Msg("Failed to publish low stock event")
	}
}

// Invalidate drops cached dashboard summaries
func (n *StockNotifier) Invalidate(ctx context.Context) {
	if n == nil {
		return
	}
	if err := n.cache.Invalidate(ctx, domain.SummaryCachePattern); err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to invalidate summary cache")
	}
}
