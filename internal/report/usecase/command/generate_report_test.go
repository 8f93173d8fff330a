package command_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tair/supply-manager/internal/report/repository"
	"github.com/tair/supply-manager/internal/report/usecase/command"
	"github.com/tair/supply-manager/internal/testutil"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/auth"
	"github.com/tair/supply-manager/pkg/month"
)

type invalidator struct{ calls int }

func (i *invalidator) Invalidate(context.Context) { i.calls++ }

func TestGenerateReportRequiresAdmin(t *testing.T) {
	repo := repository.NewGormReportRepository(testutil.NewDB(t))
	inv := &invalidator{}
	h := command.NewGenerateReportHandler(repo, nil, inv)
	m := month.Month{Year: 2024, Month: time.May}

	_, err := h.Handle(context.Background(), command.GenerateReportCommand{
		Month: m,
		Actor: auth.Session{UserID: 2, Username: "clerk", Role: auth.RoleStaff},
	})
	if !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	rows, err := h.Handle(context.Background(), command.GenerateReportCommand{
		Month: m,
		Actor: auth.Session{UserID: 1, Username: "admin", Role: auth.RoleAdmin},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected an empty report, got %#v", rows)
	}
	if inv.calls != 1 {
		t.Fatalf("summary cache should be invalidated once, got %d", inv.calls)
	}
	if command.LockKey(m) != "report:lock:2024-05" {
		t.Fatalf("unexpected lock key %s", command.LockKey(m))
	}
}
