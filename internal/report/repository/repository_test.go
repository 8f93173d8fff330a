package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	invdomain "github.com/tair/supply-manager/internal/inventory/domain"
	invrepo "github.com/tair/supply-manager/internal/inventory/repository"
	recdomain "github.com/tair/supply-manager/internal/reconciliation/domain"
	"github.com/tair/supply-manager/internal/report/domain"
	"github.com/tair/supply-manager/internal/report/repository"
	"github.com/tair/supply-manager/internal/testutil"
	"github.com/tair/supply-manager/pkg/month"
)

var march = month.Month{Year: 2024, Month: time.March}

func at(day int) time.Time {
	return time.Date(2024, time.March, day, 9, 0, 0, 0, time.UTC)
}

// seedItem creates an item stamped before march so only its movements
// make it active
func seedItem(t *testing.T, db *gorm.DB, name string, qty int) *invdomain.SupplyItem {
	t.Helper()
	item := &invdomain.SupplyItem{
		SKU: invdomain.DeriveSKU(name, qty), Name: name, Quantity: qty, MinQuantity: 1,
		Price: decimal.NewFromInt(1), LastUpdated: time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create item: %v", err)
	}
	return item
}

func move(t *testing.T, db *gorm.DB, itemID uint, typ string, qty int, when time.Time) {
	t.Helper()
	_, _, err := invrepo.NewGormSupplyRepository(db).ApplyMovement(context.Background(), &invdomain.Transaction{
		ItemID: itemID, Type: typ, Quantity: qty, CreatedAt: when,
	})
	if err != nil {
		t.Fatalf("movement: %v", err)
	}
	// keep last_updated outside the month under test
	db.Model(&invdomain.SupplyItem{}).Where("id = ?", itemID).Update("last_updated", time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC))
}

func byItem(rows []domain.MonthlyReport) map[uint]domain.MonthlyReport {
	out := make(map[uint]domain.MonthlyReport, len(rows))
	for _, r := range rows {
		out[r.ItemID] = r
	}
	return out
}

func TestGenerateAggregatesMovements(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewGormReportRepository(db)
	ctx := context.Background()

	pens := seedItem(t, db, "Pen", 10)
	paper := seedItem(t, db, "Paper", 40)
	idle := seedItem(t, db, "Stapler", 2)

	move(t, db, pens.ID, invdomain.TransactionIn, 5, at(3))
	move(t, db, pens.ID, invdomain.TransactionOut, 3, at(10))
	move(t, db, pens.ID, invdomain.TransactionOut, 4, at(20))
	move(t, db, paper.ID, invdomain.TransactionOut, 10, at(5))
	move(t, db, paper.ID, invdomain.TransactionIn, 7, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))

	rows, err := repo.Generate(ctx, march)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	got := byItem(rows)
	if len(got) != 2 {
		t.Fatalf("expected rows for 2 active items, got %d", len(got))
	}
	if _, ok := got[idle.ID]; ok {
		t.Fatal("item without activity should have no row")
	}

	if r := got[pens.ID]; r.TotalIn != 5 || r.TotalOut != 7 || r.CurrentStock != 8 {
		t.Errorf("pens row = %+v", r)
	}
	if r := got[paper.ID]; r.TotalIn != 0 || r.TotalOut != 10 || r.CurrentStock != 37 {
		t.Errorf("paper row = %+v", r)
	}

	// Rerun replaces rather than adds
	again, err := repo.Generate(ctx, march)
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if r := byItem(again)[pens.ID]; r.TotalIn != 5 || r.TotalOut != 7 {
		t.Errorf("rerun double counted: %+v", r)
	}
	var count int64
	db.Model(&domain.MonthlyReport{}).Where("month_year = ?", "2024-03").Count(&count)
	if count != 2 {
		t.Fatalf("expected 2 stored rows, got %d", count)
	}

	lines, err := repo.FindByMonth(ctx, march)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(lines) != 2 || lines[0].Name != "Paper" || lines[0].SKU == "" {
		t.Fatalf("unexpected lines %+v", lines)
	}
}

func TestGenerateUsesCountedStock(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewGormReportRepository(db)

	glue := seedItem(t, db, "Glue", 12)
	if err := db.Create(&recdomain.Record{
		MonthYear: "2024-03", ItemID: glue.ID, RecordedQty: 12, ActualQty: 9, Variance: -3,
	}).Error; err != nil {
		t.Fatalf("create record: %v", err)
	}

	rows, err := repo.Generate(context.Background(), march)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(rows) != 1 || rows[0].CurrentStock != 9 {
		t.Fatalf("expected counted stock 9, got %+v", rows)
	}
}

func TestGenerateEmptyMonth(t *testing.T) {
	db := testutil.NewDB(t)
	rows, err := repository.NewGormReportRepository(db).Generate(context.Background(), march)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestUpsertItemRow(t *testing.T) {
	db := testutil.NewDB(t)
	ink := seedItem(t, db, "Ink", 6)
	move(t, db, ink.ID, invdomain.TransactionIn, 4, at(8))

	for _, stock := range []int{11, 10} {
		err := db.Transaction(func(tx *gorm.DB) error {
			return repository.UpsertItemRow(tx, march, ink.ID, stock)
		})
		if err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	var rows []domain.MonthlyReport
	db.Where("month_year = ?", "2024-03").Find(&rows)
	if len(rows) != 1 || rows[0].TotalIn != 4 || rows[0].CurrentStock != 10 {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

func TestGenerateRollsBackOnFailure(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewGormReportRepository(db)
	ctx := context.Background()

	pens := seedItem(t, db, "Pen", 10)
	paper := seedItem(t, db, "Paper", 40)
	move(t, db, pens.ID, invdomain.TransactionOut, 2, at(4))
	move(t, db, paper.ID, invdomain.TransactionOut, 5, at(6))

	failing := false
	upserts := 0
	err := db.Callback().Create().Before("gorm:create").Register("test:fail_second_report_row", func(tx *gorm.DB) {
		if !failing || tx.Statement.Table != "monthly_reports" {
			return
		}
		upserts++
		if upserts == 2 {
			tx.AddError(errors.New("disk full"))
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	failing = true
	if _, err := repo.Generate(ctx, march); err == nil {
		t.Fatal("expected generate to fail")
	}
	var count int64
	db.Model(&domain.MonthlyReport{}).Where("month_year = ?", march.String()).Count(&count)
	if count != 0 {
		t.Fatalf("failed generate left %d rows behind", count)
	}

	failing = false
	if _, err := repo.Generate(ctx, march); err != nil {
		t.Fatalf("generate: %v", err)
	}
	move(t, db, pens.ID, invdomain.TransactionOut, 3, at(8))

	failing, upserts = true, 0
	if _, err := repo.Generate(ctx, march); err == nil {
		t.Fatal("expected regenerate to fail")
	}
	var row domain.MonthlyReport
	if err := db.Where("month_year = ? AND item_id = ?", march.String(), pens.ID).First(&row).Error; err != nil {
		t.Fatalf("load row: %v", err)
	}
	if row.TotalOut != 2 || row.CurrentStock != 8 {
		t.Fatalf("failed regenerate changed the stored report: %+v", row)
	}
}
