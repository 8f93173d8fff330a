package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	invdomain "github.com/tair/supply-manager/internal/inventory/domain"
	"github.com/tair/supply-manager/internal/reconciliation/domain"
	reportrepo "github.com/tair/supply-manager/internal/report/repository"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/auth"
	"github.com/tair/supply-manager/pkg/database"
	"github.com/tair/supply-manager/pkg/month"
)

type GormReconciliationRepository struct {
	db *gorm.DB
}

func NewGormReconciliationRepository(db *gorm.DB) *GormReconciliationRepository {
	return &GormReconciliationRepository{db: db}
}

// Save stores each count against the item's current system quantity,
// replacing any earlier count for the month, and refreshes the item's
// report row. Supply quantities are left as they are.
func (r *GormReconciliationRepository) Save(ctx context.Context, m month.Month, entries []domain.Entry, actor auth.Session) ([]domain.Record, error) {
	saved := make([]domain.Record, 0, len(entries))

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			var item invdomain.SupplyItem
			if err := tx.First(&item, e.ItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("supply %d: %w", e.ItemID, apperr.ErrNotFound)
				}
				return err
			}

			err := tx.Where("month_year = ? AND item_id = ?", m.String(), item.ID).
				Delete(&domain.Record{}).Error
			if err != nil {
				return fmt.Errorf("clear previous count for item %d: %w", item.ID, err)
			}

			rec := domain.Record{
				MonthYear:        m.String(),
				ItemID:           item.ID,
				RecordedQty:      item.Quantity,
				ActualQty:        e.ActualQty,
				Variance:         domain.Variance(item.Quantity, e.ActualQty),
				Notes:            strings.TrimSpace(e.Notes),
				ReconciledBy:     actor.UserID,
				ReconciledByName: actor.Username,
			}
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("save count for item %d: %w", item.ID, err)
			}

			if err := reportrepo.UpsertItemRow(tx, m, item.ID, e.ActualQty); err != nil {
				return fmt.Errorf("refresh report row for item %d: %w", item.ID, err)
			}
			saved = append(saved, rec)
		}
		return nil
	})
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	return saved, nil
}

func (r *GormReconciliationRepository) FindByMonth(ctx context.Context, m month.Month) ([]domain.Record, error) {
	var records []domain.Record
	err := r.db.WithContext(ctx).
		Where("month_year = ?", m.String()).
		Order("item_id").
		Find(&records).Error
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	return records, nil
}
