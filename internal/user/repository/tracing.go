package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/supply-manager/internal/user/domain"
)

var tracer = otel.Tracer("user-repository")

// TracingUserRepository wraps a UserRepository with spans
type TracingUserRepository struct {
	next domain.UserRepository
}

// NewTracingUserRepository creates a new repository with tracing
func NewTracingUserRepository(next domain.UserRepository) *TracingUserRepository {
	return &TracingUserRepository{next: next}
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// Create with tracing
func (r *TracingUserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, span := tracer.Start(ctx, "repository.CreateUser",
		trace.WithAttributes(
			attribute.String("user.username", user.Username),
			attribute.String("user.role", user.Role),
		),
	)
	defer span.End()

	if err := r.next.Create(ctx, user); err != nil {
		fail(span, err)
		return err
	}
	span.SetAttributes(attribute.Int("user.id", int(user.ID)))
	return nil
}

// FindByID with tracing
func (r *TracingUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.FindUserByID",
		trace.WithAttributes(attribute.Int("user.id", int(id))),
	)
	defer span.End()

	user, err := r.next.FindByID(ctx, id)
	if err != nil {
		fail(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.String("user.username", user.Username))
	return user, nil
}

// FindByUsername with tracing
func (r *TracingUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.FindUserByUsername",
		trace.WithAttributes(attribute.String("user.username", username)),
	)
	defer span.End()

	user, err := r.next.FindByUsername(ctx, username)
	if err != nil {
		fail(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("user.id", int(user.ID)))
	return user, nil
}

// List with tracing
func (r *TracingUserRepository) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.ListUsers",
		trace.WithAttributes(
			attribute.String("filter.role", filter.Role),
			attribute.Int("filter.limit", filter.Limit),
			attribute.Int("filter.offset", filter.Offset),
		),
	)
	defer span.End()

	users, err := r.next.List(ctx, filter)
	if err != nil {
		fail(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(users)))
	return users, nil
}

// Count with tracing
func (r *TracingUserRepository) Count(ctx context.Context, filter domain.UserFilter) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.CountUsers",
		trace.WithAttributes(
			attribute.String("filter.role", filter.Role),
			attribute.Bool("filter.active_only", filter.ActiveOnly),
		),
	)
	defer span.End()

	count, err := r.next.Count(ctx, filter)
	if err != nil {
		fail(span, err)
		return 0, err
	}
	span.SetAttributes(attribute.Int64("result.count", count))
	return count, nil
}

// Update with tracing
func (r *TracingUserRepository) Update(ctx context.Context, user *domain.User) error {
	ctx, span := tracer.Start(ctx, "repository.UpdateUser",
		trace.WithAttributes(
			attribute.Int("user.id", int(user.ID)),
			attribute.String("user.role", user.Role),
			attribute.Bool("user.is_active", user.IsActive),
		),
	)
	defer span.End()

	if err := r.next.Update(ctx, user); err != nil {
		fail(span, err)
		return err
	}
	return nil
}

// Delete with tracing
func (r *TracingUserRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "repository.DeleteUser",
		trace.WithAttributes(attribute.Int("user.id", int(id))),
	)
	defer span.End()

	if err := r.next.Delete(ctx, id); err != nil {
		fail(span, err)
		return err
	}
	return nil
}
