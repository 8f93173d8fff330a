package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	invdomain "github.com/tair/supply-manager/internal/inventory/domain"
	invrepo "github.com/tair/supply-manager/internal/inventory/repository"
	"github.com/tair/supply-manager/internal/request/domain"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/database"
)

type GormRequestRepository struct {
	db *gorm.DB
}

func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

func (r *GormRequestRepository) Create(ctx context.Context, req *domain.StockRequest) error {
	return database.ClassifyError(r.db.WithContext(ctx).Create(req).Error)
}

func (r *GormRequestRepository) FindByID(ctx context.Context, id uint) (*domain.StockRequest, error) {
	var req domain.StockRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("request %d: %w", id, apperr.ErrNotFound)
		}
		return nil, database.ClassifyError(err)
	}
	return &req, nil
}

func (r *GormRequestRepository) List(ctx context.Context, filter domain.RequestFilter) ([]domain.StockRequest, int64, error) {
	scope := func(q *gorm.DB) *gorm.DB {
		if filter.RequestedBy != 0 {
			q = q.Where("requested_by = ?", filter.RequestedBy)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		return q
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.StockRequest{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, database.ClassifyError(err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = -1
	}
	var reqs []domain.StockRequest
	err := r.db.WithContext(ctx).Scopes(scope).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&reqs).Error
	if err != nil {
		return nil, 0, database.ClassifyError(err)
	}
	return reqs, total, nil
}

// Transition is a compare-and-swap on status. A request that is missing
// yields apperr.ErrNotFound, one in another status apperr.ErrInvalidState.
func (r *GormRequestRepository) Transition(ctx context.Context, id uint, from, to string, fields map[string]interface{}) (*domain.StockRequest, error) {
	if !domain.CanTransition(from, to) {
		return nil, fmt.Errorf("request cannot move from %s to %s: %w", from, to, apperr.ErrInvalidState)
	}

	updates := map[string]interface{}{"status": to}
	for k, v := range fields {
		updates[k] = v
	}

	res := r.db.WithContext(ctx).Model(&domain.StockRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return nil, database.ClassifyError(res.Error)
	}

	if res.RowsAffected == 0 {
		current, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("request %d is %s, expected %s: %w", id, current.Status, from, apperr.ErrInvalidState)
	}
	return r.FindByID(ctx, id)
}

// Approve runs the status change and the stock issue in one transaction
func (r *GormRequestRepository) Approve(ctx context.Context, id uint, approverID uint) (*domain.Approval, error) {
	var approval domain.Approval

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		req, err := NewGormRequestRepository(tx).Transition(ctx, id, domain.StatusPending, domain.StatusApproved,
			map[string]interface{}{"decided_by": approverID, "decided_at": now})
		if err != nil {
			return err
		}

		movement := &invdomain.Transaction{
			ItemID:    req.ItemID,
			Type:      invdomain.TransactionOut,
			Quantity:  req.Quantity,
			Reference: fmt.Sprintf("request:%d", req.ID),
			CreatedBy: approverID,
		}
		before, after, err := invrepo.NewGormSupplyRepository(tx).ApplyMovement(ctx, movement)
		if err != nil {
			return err
		}

		approval = domain.Approval{Request: req, Movement: movement, Before: before, After: after}
		return nil
	})
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	return &approval, nil
}
