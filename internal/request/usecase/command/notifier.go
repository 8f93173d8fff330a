package command

import (
	"context"
	"time"

	"github.com/tair/supply-manager/internal/request/domain"
	"github.com/tair/supply-manager/kafka"
	"github.com/tair/supply-manager/pkg/auth"
	"github.com/tair/supply-manager/pkg/logger"
	"github.com/tair/supply-manager/pkg/metrics"
)

// StatusNotifier announces request transitions. Publishing failures are
// logged; the transition is already committed.
type StatusNotifier struct {
	events  kafka.EventPublisher
	metrics *metrics.Metrics
}

// NewStatusNotifier creates a status notifier
func NewStatusNotifier(events kafka.EventPublisher, m *metrics.Metrics) *StatusNotifier {
	return &StatusNotifier{events: events, metrics: m}
}

// Changed reports req entering its current status
func (n *StatusNotifier) Changed(ctx context.Context, req *domain.StockRequest, actor auth.Session) {
	if n == nil {
		return
	}
	n.metrics.ObserveTransition(req.Status)

	logger.Info(ctx).
		Uint("request_id", req.ID).
		Uint("item_id", req.ItemID).
		Int("quantity", req.Quantity).
		Str("status", req.Status).
		Str("actor", actor.Username).
		Msg("Stock request status changed")

	if n.events == nil {
		return
	}
	err := n.events.PublishRequestStatusChanged(ctx, kafka.RequestStatusChangedEvent{
		RequestID:   req.ID,
		ItemID:      req.ItemID,
		Quantity:    req.Quantity,
		RequestedBy: req.RequestedBy,
		Status:      req.Status,
		ActorID:     actor.UserID,
		Timestamp:   time.Now().UTC(),
	})
	if err != nil {
		logger.Error(ctx).Err(err).Uint("request_id", req.ID).Msg("Failed to publish request status event")
	}
}
