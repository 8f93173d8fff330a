package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/supply-manager/internal/inventory/domain"
)

var tracer = otel.Tracer("supply-repository")

// TracingSupplyRepository wraps a SupplyRepository with spans
type TracingSupplyRepository struct {
	next domain.SupplyRepository
}

// NewTracingSupplyRepository creates a repository with tracing
func NewTracingSupplyRepository(next domain.SupplyRepository) *TracingSupplyRepository {
	return &TracingSupplyRepository{next: next}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (r *TracingSupplyRepository) Create(ctx context.Context, item *domain.SupplyItem, createdBy uint) (err error) {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("supply.sku", item.SKU),
			attribute.String("supply.name", item.Name),
			attribute.Int("supply.quantity", item.Quantity),
		),
	)
	defer func() { endSpan(span, err) }()

	err = r.next.Create(ctx, item, createdBy)
	if err == nil {
		span.SetAttributes(attribute.Int("supply.id", int(item.ID)))
	}
	return err
}

func (r *TracingSupplyRepository) FindByID(ctx context.Context, id uint) (item *domain.SupplyItem, err error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(attribute.Int("supply.id", int(id))),
	)
	defer func() { endSpan(span, err) }()

	return r.next.FindByID(ctx, id)
}

func (r *TracingSupplyRepository) FindByName(ctx context.Context, name string) (item *domain.SupplyItem, err error) {
	ctx, span := tracer.Start(ctx, "repository.FindByName",
		trace.WithAttributes(attribute.String("supply.name", name)),
	)
	defer func() { endSpan(span, err) }()

	return r.next.FindByName(ctx, name)
}

func (r *TracingSupplyRepository) FindBySKU(ctx context.Context, sku string) (item *domain.SupplyItem, err error) {
	ctx, span := tracer.Start(ctx, "repository.FindBySKU",
		trace.WithAttributes(attribute.String("supply.sku", sku)),
	)
	defer func() { endSpan(span, err) }()

	return r.next.FindBySKU(ctx, sku)
}

func (r *TracingSupplyRepository) List(ctx context.Context, filter domain.SupplyFilter) (items []domain.SupplyItem, total int64, err error) {
	ctx, span := tracer.Start(ctx, "repository.List",
		trace.WithAttributes(
			attribute.String("query.search", filter.Search),
			attribute.Bool("query.low_stock_only", filter.LowStockOnly),
			attribute.Int("query.limit", filter.Limit),
			attribute.Int("query.offset", filter.Offset),
		),
	)
	defer func() { endSpan(span, err) }()

	items, total, err = r.next.List(ctx, filter)
	span.SetAttributes(attribute.Int("result.count", len(items)))
	return items, total, err
}

func (r *TracingSupplyRepository) ListLowStock(ctx context.Context) (items []domain.SupplyItem, err error) {
	ctx, span := tracer.Start(ctx, "repository.ListLowStock")
	defer func() { endSpan(span, err) }()

	items, err = r.next.ListLowStock(ctx)
	span.SetAttributes(attribute.Int("result.count", len(items)))
	return items, err
}

func (r *TracingSupplyRepository) Update(ctx context.Context, item *domain.SupplyItem) (err error) {
	ctx, span := tracer.Start(ctx, "repository.Update",
		trace.WithAttributes(
			attribute.Int("supply.id", int(item.ID)),
			attribute.Int("supply.quantity", item.Quantity),
		),
	)
	defer func() { endSpan(span, err) }()

	return r.next.Update(ctx, item)
}

func (r *TracingSupplyRepository) Restock(ctx context.Context, in domain.Restock) (before, after *domain.SupplyItem, movement *domain.Transaction, err error) {
	ctx, span := tracer.Start(ctx, "repository.Restock",
		trace.WithAttributes(
			attribute.Int("supply.id", int(in.ItemID)),
			attribute.Int("restock.quantity", in.Quantity),
			attribute.String("supply.price", in.Price.String()),
			attribute.Int("supply.min_quantity", in.MinQuantity),
		),
	)
	defer func() { endSpan(span, err) }()

	before, after, movement, err = r.next.Restock(ctx, in)
	if err == nil {
		span.SetAttributes(attribute.Int("quantity.after", after.Quantity))
	}
	return before, after, movement, err
}

func (r *TracingSupplyRepository) Delete(ctx context.Context, id uint) (err error) {
	ctx, span := tracer.Start(ctx, "repository.Delete",
		trace.WithAttributes(attribute.Int("supply.id", int(id))),
	)
	defer func() { endSpan(span, err) }()

	return r.next.Delete(ctx, id)
}

func (r *TracingSupplyRepository) ApplyMovement(ctx context.Context, t *domain.Transaction) (before, after *domain.SupplyItem, err error) {
	ctx, span := tracer.Start(ctx, "repository.ApplyMovement",
		trace.WithAttributes(
			attribute.Int("supply.id", int(t.ItemID)),
			attribute.String("transaction.type", t.Type),
			attribute.Int("transaction.quantity", t.Quantity),
		),
	)
	defer func() { endSpan(span, err) }()

	before, after, err = r.next.ApplyMovement(ctx, t)
	if err == nil {
		span.SetAttributes(
			attribute.Int("quantity.before", t.QuantityBefore),
			attribute.Int("quantity.after", t.QuantityAfter),
		)
	}
	return before, after, err
}

func (r *TracingSupplyRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) (txs []domain.Transaction, total int64, err error) {
	ctx, span := tracer.Start(ctx, "repository.ListTransactions",
		trace.WithAttributes(
			attribute.Int("supply.id", int(filter.ItemID)),
			attribute.Int("query.limit", filter.Limit),
		),
	)
	defer func() { endSpan(span, err) }()

	txs, total, err = r.next.ListTransactions(ctx, filter)
	span.SetAttributes(attribute.Int("result.count", len(txs)))
	return txs, total, err
}

func (r *TracingSupplyRepository) FindTransactionByEvent(ctx context.Context, eventID string) (t *domain.Transaction, err error) {
	ctx, span := tracer.Start(ctx, "repository.FindTransactionByEvent",
		trace.WithAttributes(attribute.String("event.id", eventID)),
	)
	defer func() { endSpan(span, err) }()

	return r.next.FindTransactionByEvent(ctx, eventID)
}
