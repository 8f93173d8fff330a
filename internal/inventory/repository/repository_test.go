package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tair/supply-manager/internal/inventory/domain"
	"github.com/tair/supply-manager/internal/inventory/repository"
	"github.com/tair/supply-manager/internal/testutil"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/month"
)

func newItem(name, category string, qty, min int, price string) *domain.SupplyItem {
	return &domain.SupplyItem{
		SKU:         domain.DeriveSKU(name, qty),
		Name:        name,
		Category:    category,
		Supplier:    "Acme",
		Quantity:    qty,
		MinQuantity: min,
		Price:       decimal.RequireFromString(price),
		LastUpdated: time.Now().UTC(),
	}
}

func TestCreateLogsInitialMovement(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewGormSupplyRepository(testutil.NewDB(t))

	item := newItem("Pencil", "Writing", 12, 5, "0.50")
	if err := repo.Create(ctx, item, 1); err != nil {
		t.Fatalf("create: %v", err)
	}

	txs, total, err := repo.ListTransactions(ctx, domain.TransactionFilter{ItemID: item.ID})
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if total != 1 || len(txs) != 1 {
		t.Fatalf("expected one initial movement, got %d", total)
	}
	if txs[0].Type != domain.TransactionIn || txs[0].Quantity != 12 || txs[0].Reference != "initial" {
		t.Fatalf("unexpected movement %+v", txs[0])
	}

	empty := newItem("Ruler", "Math", 0, 2, "1.00")
	if err := repo.Create(ctx, empty, 1); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, total, _ := repo.ListTransactions(ctx, domain.TransactionFilter{ItemID: empty.ID}); total != 0 {
		t.Fatalf("zero opening stock should not log a movement, got %d", total)
	}
}

func TestFindByNameIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewGormSupplyRepository(testutil.NewDB(t))

	item := newItem("Glue Stick", "Crafts", 4, 5, "1.10")
	if err := repo.Create(ctx, item, 1); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.FindByName(ctx, "  glue STICK ")
	if err != nil {
		t.Fatalf("find by name: %v", err)
	}
	if got.ID != item.ID {
		t.Fatalf("got item %d, want %d", got.ID, item.ID)
	}

	if _, err := repo.FindByName(ctx, "glue"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("partial name should not match, got %v", err)
	}
	if _, err := repo.FindBySKU(ctx, "glu-0004"); err != nil {
		t.Fatalf("find by sku: %v", err)
	}
}

func TestApplyMovement(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewGormSupplyRepository(testutil.NewDB(t))

	item := newItem("Eraser", "Writing", 10, 3, "0.25")
	if err := repo.Create(ctx, item, 1); err != nil {
		t.Fatalf("create: %v", err)
	}

	out := &domain.Transaction{ItemID: item.ID, Type: domain.TransactionOut, Quantity: 4, Reference: "class 3B"}
	before, after, err := repo.ApplyMovement(ctx, out)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if before.Quantity != 10 || after.Quantity != 6 {
		t.Fatalf("before/after = %d/%d, want 10/6", before.Quantity, after.Quantity)
	}
	if out.ID == 0 || out.QuantityBefore != 10 || out.QuantityAfter != 6 {
		t.Fatalf("transaction not filled: %+v", out)
	}

	tooMany := &domain.Transaction{ItemID: item.ID, Type: domain.TransactionOut, Quantity: 7}
	if _, _, err := repo.ApplyMovement(ctx, tooMany); !errors.Is(err, apperr.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}

	stored, err := repo.FindByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Quantity != 6 {
		t.Fatalf("failed movement changed stock to %d", stored.Quantity)
	}
	if _, total, _ := repo.ListTransactions(ctx, domain.TransactionFilter{ItemID: item.ID}); total != 2 {
		t.Fatalf("expected 2 movements after rejected OUT, got %d", total)
	}

	missing := &domain.Transaction{ItemID: 999, Type: domain.TransactionIn, Quantity: 1}
	if _, _, err := repo.ApplyMovement(ctx, missing); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListFiltersAndPaging(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewGormSupplyRepository(testutil.NewDB(t))

	for _, item := range []*domain.SupplyItem{
		newItem("Pencil", "Writing", 50, 10, "0.50"),
		newItem("Pen", "Writing", 3, 10, "1.00"),
		newItem("Notebook", "Paper", 20, 5, "2.50"),
		newItem("Scissors", "Crafts", 1, 2, "3.00"),
	} {
		if err := repo.Create(ctx, item, 1); err != nil {
			t.Fatalf("create %s: %v", item.Name, err)
		}
	}

	tests := []struct {
		name   string
		filter domain.SupplyFilter
		total  int64
		first  string
	}{
		{"all", domain.SupplyFilter{}, 4, "Notebook"},
		{"search name", domain.SupplyFilter{Search: "pen"}, 2, "Pen"},
		{"search supplier", domain.SupplyFilter{Search: "acme"}, 4, "Notebook"},
		{"category", domain.SupplyFilter{Category: "writing"}, 2, "Pen"},
		{"low stock", domain.SupplyFilter{LowStockOnly: true}, 2, "Pen"},
		{"paged", domain.SupplyFilter{Limit: 2, Offset: 2}, 4, "Pencil"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, err := repo.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if total != tt.total {
				t.Fatalf("total = %d, want %d", total, tt.total)
			}
			if len(items) == 0 || items[0].Name != tt.first {
				t.Fatalf("first item = %v, want %s", items, tt.first)
			}
		})
	}

	low, err := repo.ListLowStock(ctx)
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if len(low) != 2 || low[0].Name != "Scissors" {
		t.Fatalf("low stock should be ordered by quantity, got %v", low)
	}
}

func TestDeleteIsSoft(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewGormSupplyRepository(testutil.NewDB(t))

	item := newItem("Crayons", "Crafts", 8, 2, "4.00")
	if err := repo.Create(ctx, item, 1); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Delete(ctx, item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, item.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("deleted item still visible: %v", err)
	}
	if err := repo.Delete(ctx, item.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("second delete should be not found, got %v", err)
	}
	if _, total, _ := repo.ListTransactions(ctx, domain.TransactionFilter{ItemID: item.ID}); total != 1 {
		t.Fatalf("history should survive delete, got %d movements", total)
	}
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repository.NewGormSupplyRepository(db)
	reader := repository.NewSqlxSummaryReader(testutil.NewSqlx(t, db))

	for _, item := range []*domain.SupplyItem{
		newItem("Pencil", "Writing", 10, 5, "0.50"),
		newItem("Pen", "Writing", 2, 5, "1.00"),
		newItem("Notebook", "Paper", 4, 1, "2.50"),
	} {
		if err := repo.Create(ctx, item, 1); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	summary, err := reader.Summary(ctx, month.Current())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalUnits != 16 {
		t.Errorf("total units = %d, want 16", summary.TotalUnits)
	}
	if !summary.TotalValue.Equal(decimal.RequireFromString("17")) {
		t.Errorf("total value = %s, want 17", summary.TotalValue)
	}
	if summary.LowStockCount != 1 || len(summary.LowStock) != 1 || summary.LowStock[0].Name != "Pen" {
		t.Errorf("unexpected low stock %+v", summary.LowStock)
	}
	if summary.CategoryCount != 2 || len(summary.ValueByCategory) != 2 {
		t.Errorf("unexpected categories %+v", summary.ValueByCategory)
	}
	if len(summary.TopItems) != 3 || summary.TopItems[0].Name != "Notebook" {
		t.Errorf("unexpected top items %+v", summary.TopItems)
	}
	if len(summary.Trend) != domain.TrendMonths {
		t.Fatalf("trend has %d months, want %d", len(summary.Trend), domain.TrendMonths)
	}
	if summary.Trend[0].Month != month.Current().Add(-11).String() {
		t.Errorf("trend starts at %s", summary.Trend[0].Month)
	}
	latest := summary.Trend[len(summary.Trend)-1]
	if latest.Month != month.Current().String() || !latest.Value.Equal(decimal.RequireFromString("17")) {
		t.Errorf("latest trend point = %+v, want 17 in the current month", latest)
	}
	for _, point := range summary.Trend[:len(summary.Trend)-1] {
		if !point.Value.IsZero() {
			t.Errorf("month %s should be zero-filled, got %s", point.Month, point.Value)
		}
	}

	last, _ := month.Parse("2001-01")
	empty, err := reader.Summary(ctx, last)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if empty.TotalUnits != 0 || len(empty.TopItems) != 0 {
		t.Fatalf("month without activity should be empty, got %+v", empty)
	}
	if len(empty.Trend) != domain.TrendMonths || empty.Trend[11].Month != "2001-01" || empty.Trend[0].Month != "2000-02" {
		t.Errorf("unexpected trend window %+v", empty.Trend)
	}

	// Pencil last moved two months ago
	earlier := month.Current().Add(-2)
	if err := db.Model(&domain.SupplyItem{}).Where("name = ?", "Pencil").Update("last_updated", earlier.Start().Add(time.Hour)).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}
	summary, err = reader.Summary(ctx, month.Current())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if point := summary.Trend[9]; point.Month != earlier.String() || !point.Value.Equal(decimal.RequireFromString("5")) {
		t.Errorf("backdated trend point = %+v, want 5 in %s", point, earlier)
	}
	if !summary.Trend[11].Value.Equal(decimal.RequireFromString("12")) {
		t.Errorf("current trend point = %s, want 12", summary.Trend[11].Value)
	}
}

func TestRestockRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repository.NewGormSupplyRepository(db)

	item := newItem("Pen", "Writing", 10, 3, "1.00")
	if err := repo.Create(ctx, item, 1); err != nil {
		t.Fatalf("create: %v", err)
	}

	failing := true
	err := db.Callback().Create().Before("gorm:create").Register("test:fail_movements", func(tx *gorm.DB) {
		if failing && tx.Statement.Table == "transactions" {
			tx.AddError(errors.New("db went away"))
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	restock := domain.Restock{ItemID: item.ID, Quantity: 5, Price: decimal.RequireFromString("1.25"), MinQuantity: 4, CreatedBy: 1}
	for i := 0; i < 2; i++ {
		if _, _, _, err := repo.Restock(ctx, restock); err == nil {
			t.Fatal("expected restock to fail")
		}
	}

	got, err := repo.FindByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Quantity != 10 || got.MinQuantity != 3 || !got.Price.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("failed restock left changes behind: %+v", got)
	}
	if _, total, _ := repo.ListTransactions(ctx, domain.TransactionFilter{ItemID: item.ID}); total != 1 {
		t.Fatalf("transactions = %d, want only the opening movement", total)
	}

	failing = false
	before, after, movement, err := repo.Restock(ctx, restock)
	if err != nil {
		t.Fatalf("restock: %v", err)
	}
	if before.Quantity != 10 || after.Quantity != 15 || !after.Price.Equal(decimal.RequireFromString("1.25")) || after.MinQuantity != 4 {
		t.Fatalf("unexpected restock result before=%+v after=%+v", before, after)
	}
	if movement == nil || movement.Reference != "restock" || movement.QuantityAfter != 15 {
		t.Fatalf("unexpected movement %+v", movement)
	}
}

func TestRestockWithoutQuantityOnlyReprices(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewGormSupplyRepository(testutil.NewDB(t))

	item := newItem("Eraser", "Writing", 7, 2, "0.30")
	if err := repo.Create(ctx, item, 1); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, after, movement, err := repo.Restock(ctx, domain.Restock{ItemID: item.ID, Price: decimal.RequireFromString("0.35"), MinQuantity: 2})
	if err != nil {
		t.Fatalf("restock: %v", err)
	}
	if movement != nil || after.Quantity != 7 || !after.Price.Equal(decimal.RequireFromString("0.35")) {
		t.Fatalf("unexpected result %+v movement %+v", after, movement)
	}

	if _, _, _, err := repo.Restock(ctx, domain.Restock{ItemID: 999, Quantity: 1}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
