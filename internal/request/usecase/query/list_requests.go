package query

import (
	"context"
	"fmt"

	"github.com/tair/supply-manager/internal/request/domain"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/auth"
)

// ListRequestsQuery lists requests visible to the actor: admins see all,
// everyone else their own
type ListRequestsQuery struct {
	Actor  auth.Session
	Status string
	Limit  int
	Offset int
}

// RequestPage is one page of requests, newest first
type RequestPage struct {
	Requests []domain.StockRequest `json:"requests"`
	Total    int64                 `json:"total"`
}

// ListRequestsHandler handles list requests query
type ListRequestsHandler struct {
	repo domain.RequestRepository
}

// NewListRequestsHandler creates a new list requests handler
func NewListRequestsHandler(repo domain.RequestRepository) *ListRequestsHandler {
	return &ListRequestsHandler{repo: repo}
}

// Handle executes the list requests query
func (h *ListRequestsHandler) Handle(ctx context.Context, q ListRequestsQuery) (*RequestPage, error) {
	switch q.Status {
	case "", domain.StatusPending, domain.StatusApproved, domain.StatusRejected, domain.StatusReceived:
	default:
		return nil, apperr.Validation(fmt.Sprintf("unknown status %q", q.Status))
	}

	filter := domain.RequestFilter{Status: q.Status, Limit: q.Limit, Offset: q.Offset}
	if !q.Actor.IsAdmin() {
		filter.RequestedBy = q.Actor.UserID
	}

	reqs, total, err := h.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	if reqs == nil {
		reqs = []domain.StockRequest{}
	}
	return &RequestPage{Requests: reqs, Total: total}, nil
}

// GetRequestQuery reads one request
type GetRequestQuery struct {
	ID    uint
	Actor auth.Session
}

// GetRequestHandler handles get request query
type GetRequestHandler struct {
	repo domain.RequestRepository
}

// NewGetRequestHandler creates a new get request handler
func NewGetRequestHandler(repo domain.RequestRepository) *GetRequestHandler {
	return &GetRequestHandler{repo: repo}
}

// Handle returns the request if the actor may see it
func (h *GetRequestHandler) Handle(ctx context.Context, q GetRequestQuery) (*domain.StockRequest, error) {
	req, err := h.repo.FindByID(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	if !q.Actor.IsAdmin() && req.RequestedBy != q.Actor.UserID {
		return nil, fmt.Errorf("request %d belongs to another user: %w", q.ID, apperr.ErrUnauthorized)
	}
	return req, nil
}
