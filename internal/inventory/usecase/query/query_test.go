package query_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/tair/supply-manager/internal/inventory/domain"
	"github.com/tair/supply-manager/internal/inventory/repository"
	"github.com/tair/supply-manager/internal/inventory/usecase/query"
	"github.com/tair/supply-manager/internal/testutil"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/metrics"
	"github.com/tair/supply-manager/pkg/month"
)

func seed(t *testing.T, repo domain.SupplyRepository, items ...*domain.SupplyItem) {
	t.Helper()
	for _, item := range items {
		item.SKU = domain.DeriveSKU(item.Name, item.Quantity)
		item.LastUpdated = time.Now().UTC()
		if err := repo.Create(context.Background(), item, 1); err != nil {
			t.Fatalf("seed %s: %v", item.Name, err)
		}
	}
}

func TestGetSupply(t *testing.T) {
	repo := repository.NewGormSupplyRepository(testutil.NewDB(t))
	item := &domain.SupplyItem{Name: "Stapler", Quantity: 3, MinQuantity: 1, Price: decimal.NewFromInt(6)}
	seed(t, repo, item)
	ctx := context.Background()

	got, err := query.NewGetSupplyHandler(repo).Handle(ctx, query.GetSupplyQuery{ID: item.ID})
	if err != nil || got.Name != "Stapler" {
		t.Fatalf("get supply = %+v, %v", got, err)
	}
	if _, err := query.NewGetSupplyHandler(repo).Handle(ctx, query.GetSupplyQuery{}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	byName := query.NewGetSupplyByNameHandler(repo)
	if got, err := byName.Handle(ctx, query.GetSupplyByNameQuery{Name: "stapler"}); err != nil || got.ID != item.ID {
		t.Fatalf("get by name = %+v, %v", got, err)
	}
	if _, err := byName.Handle(ctx, query.GetSupplyByNameQuery{Name: "tape"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListSuppliesPaging(t *testing.T) {
	repo := repository.NewGormSupplyRepository(testutil.NewDB(t))
	for i := 0; i < 12; i++ {
		seed(t, repo, &domain.SupplyItem{
			Name:        string(rune('A'+i)) + " folder",
			Quantity:    10,
			MinQuantity: 2,
			Price:       decimal.NewFromInt(1),
		})
	}
	handler := query.NewListSuppliesHandler(repo)
	ctx := context.Background()

	page, err := handler.Handle(ctx, query.ListSuppliesQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 12 || len(page.Items) != 10 || page.Limit != 10 {
		t.Fatalf("default page: total=%d items=%d limit=%d", page.Total, len(page.Items), page.Limit)
	}

	page, err = handler.Handle(ctx, query.ListSuppliesQuery{Limit: 500, Offset: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Limit != 100 || len(page.Items) != 2 {
		t.Fatalf("capped page: limit=%d items=%d", page.Limit, len(page.Items))
	}

	page, err = handler.Handle(ctx, query.ListSuppliesQuery{Search: "nothing like this"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Items == nil || len(page.Items) != 0 {
		t.Fatalf("empty result should be an empty slice, got %#v", page.Items)
	}
}

func TestShoppingList(t *testing.T) {
	repo := repository.NewGormSupplyRepository(testutil.NewDB(t))
	seed(t, repo,
		&domain.SupplyItem{Name: "Pencil", Quantity: 50, MinQuantity: 10, Price: decimal.NewFromInt(1)},
		&domain.SupplyItem{Name: "Pen", Quantity: 4, MinQuantity: 10, Price: decimal.NewFromInt(1)},
		&domain.SupplyItem{Name: "Paper", Quantity: 0, MinQuantity: 20, Price: decimal.NewFromInt(1)},
	)
	m := metrics.New(prometheus.NewRegistry())

	lines, err := query.NewShoppingListHandler(repo, m).Handle(context.Background(), query.ShoppingListQuery{})
	if err != nil {
		t.Fatalf("shopping list: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Name != "Paper" || lines[0].Shortfall != 20 {
		t.Errorf("first line = %s short %d, want Paper short 20", lines[0].Name, lines[0].Shortfall)
	}
	if lines[1].Name != "Pen" || lines[1].Shortfall != 6 {
		t.Errorf("second line = %s short %d, want Pen short 6", lines[1].Name, lines[1].Shortfall)
	}
	if got := promtest.ToFloat64(m.LowStockItems); got != 2 {
		t.Errorf("low stock gauge = %v, want 2", got)
	}
}

func TestListTransactionsByMonth(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewGormSupplyRepository(db)
	item := &domain.SupplyItem{Name: "Glue", Quantity: 5, MinQuantity: 1, Price: decimal.NewFromInt(1)}
	seed(t, repo, item)

	old := &domain.Transaction{
		ItemID:    item.ID,
		Type:      domain.TransactionIn,
		Quantity:  2,
		CreatedAt: time.Date(2023, 3, 15, 10, 0, 0, 0, time.UTC),
	}
	if _, _, err := repo.ApplyMovement(context.Background(), old); err != nil {
		t.Fatalf("apply: %v", err)
	}

	handler := query.NewListTransactionsHandler(repo)
	march, _ := month.Parse("2023-03")

	page, err := handler.Handle(context.Background(), query.ListTransactionsQuery{ItemID: item.ID, Month: march})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 1 || page.Transactions[0].ID != old.ID {
		t.Fatalf("expected only the March movement, got %+v", page.Transactions)
	}

	page, err = handler.Handle(context.Background(), query.ListTransactionsQuery{ItemID: item.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected both movements without a month, got %d", page.Total)
	}
}

type countingReader struct {
	calls int
}

func (r *countingReader) Summary(_ context.Context, m month.Month) (*domain.Summary, error) {
	r.calls++
	return &domain.Summary{Month: m.String(), TotalUnits: 42}, nil
}

func TestGetSummaryWithoutCache(t *testing.T) {
	reader := &countingReader{}
	handler := query.NewGetSummaryHandler(reader, nil, time.Minute)

	m, _ := month.Parse("2024-09")
	for i := 0; i < 2; i++ {
		summary, err := handler.Handle(context.Background(), query.GetSummaryQuery{Month: m})
		if err != nil {
			t.Fatalf("summary: %v", err)
		}
		if summary.Month != "2024-09" || summary.TotalUnits != 42 {
			t.Fatalf("unexpected summary %+v", summary)
		}
	}
	if reader.calls != 2 {
		t.Fatalf("without a cache every call reads, got %d reads", reader.calls)
	}

	summary, err := handler.Handle(context.Background(), query.GetSummaryQuery{})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Month != month.Current().String() {
		t.Fatalf("zero month should default to the current one, got %s", summary.Month)
	}
}
