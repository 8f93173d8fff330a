package query

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/supply-manager/internal/inventory/domain"
	"github.com/tair/supply-manager/pkg/cache"
	"github.com/tair/supply-manager/pkg/logger"
	"github.com/tair/supply-manager/pkg/month"
)

// GetSummaryQuery asks for the dashboard figures of a month
type GetSummaryQuery struct {
	Month month.Month
}

// GetSummaryHandler serves summaries from cache, falling back to the
// read model
type GetSummaryHandler struct {
	reader domain.SummaryReader
	cache  *cache.Client
	ttl    time.Duration
}

// NewGetSummaryHandler creates a new get summary handler
func NewGetSummaryHandler(reader domain.SummaryReader, c *cache.Client, ttl time.Duration) *GetSummaryHandler {
	return &GetSummaryHandler{reader: reader, cache: c, ttl: ttl}
}

// Handle executes the get summary query
func (h *GetSummaryHandler) Handle(ctx context.Context, q GetSummaryQuery) (*domain.Summary, error) {
	if q.Month.IsZero() {
		q.Month = month.Current()
	}
	key := domain.SummaryCacheKey(q.Month)

	var cached domain.Summary
	hit, err := h.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		logger.Warn(ctx).Err(err).Str("key", key).Msg("Summary cache read failed")
	}
	if hit {
		return &cached, nil
	}

	summary, err := h.reader.Summary(ctx, q.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to build summary for %s: %w", q.Month, err)
	}

	if err := h.cache.SetJSON(ctx, key, summary, h.ttl); err != nil {
		logger.Warn(ctx).Err(err).Str("key", key).Msg("Summary cache write failed")
	}
	return summary, nil
}
