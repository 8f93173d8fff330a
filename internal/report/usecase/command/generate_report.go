package command

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/supply-manager/internal/report/domain"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/auth"
	"github.com/tair/supply-manager/pkg/cache"
	"github.com/tair/supply-manager/pkg/logger"
	"github.com/tair/supply-manager/pkg/month"
)

const (
	lockTTL  = 30 * time.Second
	lockWait = 5 * time.Second
)

// SummaryInvalidator drops cached dashboard figures
type SummaryInvalidator interface {
	Invalidate(ctx context.Context)
}

// GenerateReportCommand represents the command to build a monthly report
type GenerateReportCommand struct {
	Month month.Month
	Actor auth.Session
}

// GenerateReportHandler handles generate report command
type GenerateReportHandler struct {
	repo    domain.ReportRepository
	locks   *cache.Client
	summary SummaryInvalidator
}

// NewGenerateReportHandler creates a new generate report handler
func NewGenerateReportHandler(repo domain.ReportRepository, locks *cache.Client, summary SummaryInvalidator) *GenerateReportHandler {
	return &GenerateReportHandler{repo: repo, locks: locks, summary: summary}
}

// LockKey is the Redis key serialising report runs for a month
func LockKey(m month.Month) string {
	return "report:lock:" + m.String()
}

// Handle executes the generate report command. Concurrent runs for the
// same month wait for each other; a run that cannot get the lock in time
// fails with cache.ErrLockBusy.
func (h *GenerateReportHandler) Handle(ctx context.Context, cmd GenerateReportCommand) ([]domain.MonthlyReport, error) {
	if !cmd.Actor.IsAdmin() {
		return nil, fmt.Errorf("only admins can generate reports: %w", apperr.ErrUnauthorized)
	}
	if cmd.Month.IsZero() {
		return nil, apperr.Validation("month is required")
	}

	lock, err := h.locks.AcquireLock(ctx, LockKey(cmd.Month), lockTTL, lockWait)
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", cmd.Month, err)
	}
	defer lock.Release(ctx)

	start := time.Now()
	rows, err := h.repo.Generate(ctx, cmd.Month)
	if err != nil {
		logger.Error(ctx).Err(err).Str("month", cmd.Month.String()).Msg("Report generation failed")
		return nil, fmt.Errorf("failed to generate report for %s: %w", cmd.Month, err)
	}

	if h.summary != nil {
		h.summary.Invalidate(ctx)
	}

	logger.Info(ctx).
		Str("month", cmd.Month.String()).
		Int("rows", len(rows)).
		Dur("elapsed", time.Since(start)).
		Str("actor", cmd.Actor.Username).
		Msg("Monthly report generated")

	if rows == nil {
		rows = []domain.MonthlyReport{}
	}
	return rows, nil
}
