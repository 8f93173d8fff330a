package command

import (
	"context"
	"fmt"

	"github.com/tair/supply-manager/internal/reconciliation/domain"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/auth"
	"github.com/tair/supply-manager/pkg/logger"
	"github.com/tair/supply-manager/pkg/month"
)

// SummaryInvalidator drops cached dashboard figures
type SummaryInvalidator interface {
	Invalidate(ctx context.Context)
}

// ReconcileCommand saves physical counts for a month
type ReconcileCommand struct {
	Month   month.Month
	Entries []domain.Entry
	Actor   auth.Session
}

func (c ReconcileCommand) validate() error {
	if c.Month.IsZero() {
		return apperr.Validation("month is required")
	}
	if len(c.Entries) == 0 {
		return apperr.Validation("at least one count is required")
	}
	seen := make(map[uint]bool, len(c.Entries))
	for _, e := range c.Entries {
		if e.ItemID == 0 {
			return apperr.Validation("item_id is required")
		}
		if e.ActualQty < 0 {
			return apperr.Validation(fmt.Sprintf("actual quantity for item %d cannot be negative", e.ItemID))
		}
		if seen[e.ItemID] {
			return apperr.Validation(fmt.Sprintf("item %d is counted twice", e.ItemID))
		}
		seen[e.ItemID] = true
	}
	return nil
}

// ReconcileHandler handles reconcile command
type ReconcileHandler struct {
	repo    domain.ReconciliationRepository
	summary SummaryInvalidator
}

// NewReconcileHandler creates a new reconcile handler
func NewReconcileHandler(repo domain.ReconciliationRepository, summary SummaryInvalidator) *ReconcileHandler {
	return &ReconcileHandler{repo: repo, summary: summary}
}

// Handle executes the reconcile command. Either every count is saved or
// none is.
func (h *ReconcileHandler) Handle(ctx context.Context, cmd ReconcileCommand) ([]domain.Record, error) {
	if !cmd.Actor.IsAdmin() {
		return nil, fmt.Errorf("only admins can reconcile stock: %w", apperr.ErrUnauthorized)
	}
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	records, err := h.repo.Save(ctx, cmd.Month, cmd.Entries, cmd.Actor)
	if err != nil {
		return nil, fmt.Errorf("failed to save reconciliation for %s: %w", cmd.Month, err)
	}

	if h.summary != nil {
		h.summary.Invalidate(ctx)
	}

	var mismatched int
	for _, rec := range records {
		if rec.Variance != 0 {
			mismatched++
		}
	}
	logger.Info(ctx).
		Str("month", cmd.Month.String()).
		Int("counted", len(records)).
		Int("mismatched", mismatched).
		Str("actor", cmd.Actor.Username).
		Msg("Stock reconciled")

	return records, nil
}
