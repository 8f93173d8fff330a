package query

import (
	"context"
	"fmt"

	"github.com/tair/supply-manager/internal/user/domain"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/auth"
)

// ListUsersQuery represents the query to list users
type ListUsersQuery struct {
	Role   string // optional
	Limit  int
	Offset int
}

// ListUsersHandler handles list users query
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query
func (h *ListUsersHandler) Handle(ctx context.Context, query ListUsersQuery) ([]domain.User, error) {
	filter := domain.UserFilter{Limit: query.Limit, Offset: query.Offset}
	if query.Role != "" {
		if filter.Role = auth.NormalizeRole(query.Role); filter.Role == "" {
			return nil, apperr.Validation(fmt.Sprintf("invalid role %q", query.Role))
		}
	}

	users, err := h.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}
