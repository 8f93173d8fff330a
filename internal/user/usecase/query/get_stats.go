package query

import (
	"context"

	"github.com/tair/supply-manager/internal/user/domain"
)

// GetStatsQuery represents the query to get user statistics (admin only)
type GetStatsQuery struct{}

// UserStats represents user statistics
type UserStats struct {
	TotalUsers   int64 `json:"total_users"`
	AdminCount   int64 `json:"admin_count"`
	StaffCount   int64 `json:"staff_count"`
	StudentCount int64 `json:"student_count"`
	ActiveUsers  int64 `json:"active_users"`
}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	repo domain.UserRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.UserRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(ctx context.Context, _ GetStatsQuery) (*UserStats, error) {
	var stats UserStats
	counts := []struct {
		filter domain.UserFilter
		dest   *int64
	}{
		{domain.UserFilter{}, &stats.TotalUsers},
		{domain.UserFilter{Role: domain.RoleAdmin}, &stats.AdminCount},
		{domain.UserFilter{Role: domain.RoleStaff}, &stats.StaffCount},
		{domain.UserFilter{Role: domain.RoleStudent}, &stats.StudentCount},
		{domain.UserFilter{ActiveOnly: true}, &stats.ActiveUsers},
	}
	for _, c := range counts {
		n, err := h.repo.Count(ctx, c.filter)
		if err != nil {
			return nil, err
		}
		*c.dest = n
	}
	return &stats, nil
}
