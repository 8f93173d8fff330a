package command_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	invdomain "github.com/tair/supply-manager/internal/inventory/domain"
	"github.com/tair/supply-manager/internal/reconciliation/domain"
	"github.com/tair/supply-manager/internal/reconciliation/repository"
	"github.com/tair/supply-manager/internal/reconciliation/usecase/command"
	"github.com/tair/supply-manager/internal/reconciliation/usecase/query"
	reportdomain "github.com/tair/supply-manager/internal/report/domain"
	"github.com/tair/supply-manager/internal/testutil"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/auth"
	"github.com/tair/supply-manager/pkg/month"
)

var admin = auth.Session{UserID: 1, Username: "admin", Role: auth.RoleAdmin}

func seedItem(t *testing.T, db *gorm.DB, name string, qty int, updated time.Time) *invdomain.SupplyItem {
	t.Helper()
	item := &invdomain.SupplyItem{
		SKU: invdomain.DeriveSKU(name, qty), Name: name, Category: "General",
		Quantity: qty, MinQuantity: 2, Price: decimal.NewFromInt(1), LastUpdated: updated,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create item: %v", err)
	}
	return item
}

type invalidator struct{ calls int }

func (i *invalidator) Invalidate(context.Context) { i.calls++ }

func TestReconcileReplacesCountsAndReportRow(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	m := month.Current()

	tape := seedItem(t, db, "Tape", 20, time.Now().UTC())
	if err := db.Create(&invdomain.Transaction{
		ItemID: tape.ID, Type: invdomain.TransactionOut, Quantity: 4,
		QuantityBefore: 24, QuantityAfter: 20, CreatedAt: time.Now().UTC(),
	}).Error; err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	inv := &invalidator{}
	h := command.NewReconcileHandler(repository.NewGormReconciliationRepository(db), inv)

	records, err := h.Handle(ctx, command.ReconcileCommand{
		Month:   m,
		Entries: []domain.Entry{{ItemID: tape.ID, ActualQty: 17, Notes: " two rolls missing "}},
		Actor:   admin,
	})
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(records) != 1 || records[0].RecordedQty != 20 || records[0].Variance != -3 || records[0].Notes != "two rolls missing" {
		t.Fatalf("unexpected record %+v", records)
	}

	// A recount replaces the first one
	if _, err := h.Handle(ctx, command.ReconcileCommand{
		Month:   m,
		Entries: []domain.Entry{{ItemID: tape.ID, ActualQty: 21}},
		Actor:   admin,
	}); err != nil {
		t.Fatalf("recount: %v", err)
	}

	var saved []domain.Record
	db.Where("month_year = ?", m.String()).Find(&saved)
	if len(saved) != 1 || saved[0].ActualQty != 21 || saved[0].Variance != 1 {
		t.Fatalf("expected one replaced record, got %+v", saved)
	}

	var rows []reportdomain.MonthlyReport
	db.Where("month_year = ?", m.String()).Find(&rows)
	if len(rows) != 1 || rows[0].CurrentStock != 21 || rows[0].TotalOut != 4 {
		t.Fatalf("unexpected report rows %+v", rows)
	}

	var stored invdomain.SupplyItem
	db.First(&stored, tape.ID)
	if stored.Quantity != 20 {
		t.Fatalf("reconciliation must not change stock, got %d", stored.Quantity)
	}
	if inv.calls != 2 {
		t.Fatalf("expected 2 cache invalidations, got %d", inv.calls)
	}
}

func TestReconcileIsAllOrNothing(t *testing.T) {
	db := testutil.NewDB(t)
	h := command.NewReconcileHandler(repository.NewGormReconciliationRepository(db), nil)
	item := seedItem(t, db, "Chalk", 5, time.Now().UTC())

	_, err := h.Handle(context.Background(), command.ReconcileCommand{
		Month:   month.Current(),
		Entries: []domain.Entry{{ItemID: item.ID, ActualQty: 5}, {ItemID: 999, ActualQty: 1}},
		Actor:   admin,
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	var count int64
	db.Model(&domain.Record{}).Count(&count)
	if count != 0 {
		t.Fatalf("failed batch left %d records", count)
	}
}

func TestReconcileValidation(t *testing.T) {
	h := command.NewReconcileHandler(repository.NewGormReconciliationRepository(testutil.NewDB(t)), nil)
	m := month.Current()

	tests := []struct {
		name string
		cmd  command.ReconcileCommand
		want error
	}{
		{"staff", command.ReconcileCommand{Month: m, Entries: []domain.Entry{{ItemID: 1}}, Actor: auth.Session{Role: auth.RoleStaff}}, apperr.ErrUnauthorized},
		{"no entries", command.ReconcileCommand{Month: m, Actor: admin}, apperr.ErrValidation},
		{"negative", command.ReconcileCommand{Month: m, Entries: []domain.Entry{{ItemID: 1, ActualQty: -1}}, Actor: admin}, apperr.ErrValidation},
		{"duplicate", command.ReconcileCommand{Month: m, Entries: []domain.Entry{{ItemID: 1}, {ItemID: 1}}, Actor: admin}, apperr.ErrValidation},
		{"no month", command.ReconcileCommand{Entries: []domain.Entry{{ItemID: 1}}, Actor: admin}, apperr.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := h.Handle(context.Background(), tt.cmd); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestWorksheet(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	m := month.Current()
	longAgo := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	fresh := seedItem(t, db, "Folder", 8, time.Now().UTC())
	moved := seedItem(t, db, "Binder", 3, longAgo)
	seedItem(t, db, "Globe", 1, longAgo)
	gone := seedItem(t, db, "Abacus", 1, time.Now().UTC())
	db.Delete(gone)

	if err := db.Create(&invdomain.Transaction{
		ItemID: moved.ID, Type: invdomain.TransactionIn, Quantity: 1, CreatedAt: time.Now().UTC(),
	}).Error; err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	h := command.NewReconcileHandler(repository.NewGormReconciliationRepository(db), nil)
	if _, err := h.Handle(ctx, command.ReconcileCommand{
		Month: m, Entries: []domain.Entry{{ItemID: fresh.ID, ActualQty: 6, Notes: "damaged"}}, Actor: admin,
	}); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	sheet, err := query.NewWorksheetHandler(repository.NewSqlxWorksheetReader(testutil.NewSqlx(t, db))).
		Handle(ctx, query.WorksheetQuery{Month: m})
	if err != nil {
		t.Fatalf("worksheet: %v", err)
	}
	if len(sheet) != 2 {
		t.Fatalf("expected Binder and Folder, got %+v", sheet)
	}
	if sheet[0].Name != "Binder" || sheet[0].Reconciled {
		t.Errorf("unexpected first row %+v", sheet[0])
	}
	folder := sheet[1]
	if !folder.Reconciled || *folder.ActualQty != 6 || *folder.Variance != -2 || folder.Notes != "damaged" || folder.SystemQty != 8 {
		t.Errorf("unexpected folder row %+v", folder)
	}

	records, err := query.NewListRecordsHandler(repository.NewGormReconciliationRepository(db)).
		Handle(ctx, query.ListRecordsQuery{Month: m})
	if err != nil || len(records) != 1 {
		t.Fatalf("list records = %v, %v", records, err)
	}
}
