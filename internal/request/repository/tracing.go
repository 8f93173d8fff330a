package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/supply-manager/internal/request/domain"
)

var tracer = otel.Tracer("request-repository")

// TracingRequestRepository wraps a RequestRepository with spans
type TracingRequestRepository struct {
	next domain.RequestRepository
}

func NewTracingRequestRepository(next domain.RequestRepository) *TracingRequestRepository {
	return &TracingRequestRepository{next: next}
}

func record(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

func (r *TracingRequestRepository) Create(ctx context.Context, req *domain.StockRequest) error {
	ctx, span := tracer.Start(ctx, "repository.CreateRequest",
		trace.WithAttributes(
			attribute.Int("request.item_id", int(req.ItemID)),
			attribute.Int("request.quantity", req.Quantity),
			attribute.Int("request.requested_by", int(req.RequestedBy)),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, req)
	record(span, err)
	if err == nil {
		span.SetAttributes(attribute.Int("request.id", int(req.ID)))
	}
	return err
}

func (r *TracingRequestRepository) FindByID(ctx context.Context, id uint) (*domain.StockRequest, error) {
	ctx, span := tracer.Start(ctx, "repository.FindRequestByID",
		trace.WithAttributes(attribute.Int("request.id", int(id))),
	)
	defer span.End()

	req, err := r.next.FindByID(ctx, id)
	record(span, err)
	return req, err
}

func (r *TracingRequestRepository) List(ctx context.Context, filter domain.RequestFilter) ([]domain.StockRequest, int64, error) {
	ctx, span := tracer.Start(ctx, "repository.ListRequests",
		trace.WithAttributes(
			attribute.Int("filter.requested_by", int(filter.RequestedBy)),
			attribute.String("filter.status", filter.Status),
			attribute.Int("filter.limit", filter.Limit),
			attribute.Int("filter.offset", filter.Offset),
		),
	)
	defer span.End()

	reqs, total, err := r.next.List(ctx, filter)
	record(span, err)
	span.SetAttributes(attribute.Int64("result.total", total))
	return reqs, total, err
}

func (r *TracingRequestRepository) Transition(ctx context.Context, id uint, from, to string, fields map[string]interface{}) (*domain.StockRequest, error) {
	ctx, span := tracer.Start(ctx, "repository.TransitionRequest",
		trace.WithAttributes(
			attribute.Int("request.id", int(id)),
			attribute.String("request.from", from),
			attribute.String("request.to", to),
		),
	)
	defer span.End()

	req, err := r.next.Transition(ctx, id, from, to, fields)
	record(span, err)
	return req, err
}

func (r *TracingRequestRepository) Approve(ctx context.Context, id uint, approverID uint) (*domain.Approval, error) {
	ctx, span := tracer.Start(ctx, "repository.ApproveRequest",
		trace.WithAttributes(
			attribute.Int("request.id", int(id)),
			attribute.Int("request.approver_id", int(approverID)),
		),
	)
	defer span.End()

	approval, err := r.next.Approve(ctx, id, approverID)
	record(span, err)
	if err == nil {
		span.SetAttributes(attribute.Int("supply.quantity_after", approval.After.Quantity))
	}
	return approval, err
}
