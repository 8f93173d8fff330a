package listener_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/supply-manager/internal/inventory/domain"
	"github.com/tair/supply-manager/internal/inventory/listener"
	"github.com/tair/supply-manager/internal/inventory/repository"
	"github.com/tair/supply-manager/internal/inventory/usecase/command"
	"github.com/tair/supply-manager/internal/testutil"
	"github.com/tair/supply-manager/kafka"
	"github.com/tair/supply-manager/pkg/apperr"
)

func TestDeliveryBooksInMovement(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewGormSupplyRepository(testutil.NewDB(t))
	item := &domain.SupplyItem{
		SKU: "RUL-0002", Name: "Ruler", Quantity: 2, MinQuantity: 5,
		Price: decimal.NewFromInt(1), LastUpdated: time.Now().UTC(),
	}
	if err := repo.Create(ctx, item, 1); err != nil {
		t.Fatalf("create: %v", err)
	}

	l := listener.NewDeliveryListener(repo, command.NewRecordTransactionHandler(repo, nil))

	err := l.Handle(ctx, kafka.SupplyDeliveredEvent{EventID: "e1", SKU: "rul-0002", Quantity: 30, Reference: "PO-7", Supplier: "Acme"})
	if err != nil {
		t.Fatalf("handle by sku: %v", err)
	}
	if err := l.Handle(ctx, kafka.SupplyDeliveredEvent{EventID: "e2", ItemID: item.ID, Quantity: 3}); err != nil {
		t.Fatalf("handle by id: %v", err)
	}

	stored, err := repo.FindByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Quantity != 35 {
		t.Fatalf("quantity = %d, want 35", stored.Quantity)
	}

	txs, _, err := repo.ListTransactions(ctx, domain.TransactionFilter{ItemID: item.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	refs := map[string]bool{}
	for _, tx := range txs {
		refs[tx.Reference] = true
	}
	if !refs["delivery:PO-7"] || !refs["delivery"] {
		t.Fatalf("unexpected references %v", refs)
	}

	if err := l.Handle(ctx, kafka.SupplyDeliveredEvent{EventID: "e1", SKU: "rul-0002", Quantity: 30, Reference: "PO-7", Supplier: "Acme"}); err != nil {
		t.Fatalf("redelivered event: %v", err)
	}
	if again, _ := repo.FindByID(ctx, item.ID); again.Quantity != 35 {
		t.Fatalf("redelivery changed stock to %d", again.Quantity)
	}
	booked, err := repo.FindTransactionByEvent(ctx, "e1")
	if err != nil || booked.Quantity != 30 {
		t.Fatalf("booked movement %+v err=%v", booked, err)
	}

	if err := l.Handle(ctx, kafka.SupplyDeliveredEvent{EventID: "e3", SKU: "NOPE", Quantity: 1}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found for unknown sku, got %v", err)
	}
	if err := l.Handle(ctx, kafka.SupplyDeliveredEvent{EventID: "e4", Quantity: 1}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
