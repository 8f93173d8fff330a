package repository

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	invdomain "github.com/tair/supply-manager/internal/inventory/domain"
	recdomain "github.com/tair/supply-manager/internal/reconciliation/domain"
	"github.com/tair/supply-manager/internal/report/domain"
	"github.com/tair/supply-manager/pkg/database"
	"github.com/tair/supply-manager/pkg/month"
)

type GormReportRepository struct {
	db *gorm.DB
}

func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

type movementTotals struct {
	ItemID   uint
	TotalIn  int
	TotalOut int
}

// sumMovements totals IN and OUT quantities per item over the month.
// itemIDs narrows the items when given.
func sumMovements(tx *gorm.DB, m month.Month, itemIDs ...uint) (map[uint]movementTotals, error) {
	q := tx.Model(&invdomain.Transaction{}).
		Select(
			"item_id, "+
				"COALESCE(SUM(CASE WHEN type = ? THEN quantity ELSE 0 END), 0) AS total_in, "+
				"COALESCE(SUM(CASE WHEN type = ? THEN quantity ELSE 0 END), 0) AS total_out",
			invdomain.TransactionIn, invdomain.TransactionOut,
		).
		Where("created_at >= ? AND created_at < ?", m.Start(), m.End())
	if len(itemIDs) > 0 {
		q = q.Where("item_id IN ?", itemIDs)
	}

	var rows []movementTotals
	if err := q.Group("item_id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make(map[uint]movementTotals, len(rows))
	for _, row := range rows {
		totals[row.ItemID] = row
	}
	return totals, nil
}

func upsert(tx *gorm.DB, row *domain.MonthlyReport) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "month_year"}, {Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"total_in", "total_out", "current_stock", "updated_at"}),
	}).Create(row).Error
}

// UpsertItemRow recomputes one item's totals for the month and stores
// them with currentStock. tx is the caller's open transaction.
func UpsertItemRow(tx *gorm.DB, m month.Month, itemID uint, currentStock int) error {
	totals, err := sumMovements(tx, m, itemID)
	if err != nil {
		return database.ClassifyError(err)
	}
	t := totals[itemID]
	return database.ClassifyError(upsert(tx, &domain.MonthlyReport{
		MonthYear:    m.String(),
		ItemID:       itemID,
		TotalIn:      t.TotalIn,
		TotalOut:     t.TotalOut,
		CurrentStock: currentStock,
	}))
}

// Generate writes one row per item with activity in the month: movements
// in the month, an update stamped in the month, or a saved count. The
// stock column takes the counted quantity when one exists.
func (r *GormReportRepository) Generate(ctx context.Context, m month.Month) ([]domain.MonthlyReport, error) {
	var rows []domain.MonthlyReport

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		totals, err := sumMovements(tx, m)
		if err != nil {
			return fmt.Errorf("aggregate movements: %w", err)
		}

		var records []recdomain.Record
		if err := tx.Where("month_year = ?", m.String()).Find(&records).Error; err != nil {
			return fmt.Errorf("load reconciliations: %w", err)
		}
		counted := make(map[uint]int, len(records))
		for _, rec := range records {
			counted[rec.ItemID] = rec.ActualQty
		}

		var touched []uint
		err = tx.Model(&invdomain.SupplyItem{}).
			Where("last_updated >= ? AND last_updated < ?", m.Start(), m.End()).
			Pluck("id", &touched).Error
		if err != nil {
			return fmt.Errorf("load updated items: %w", err)
		}

		active := make(map[uint]struct{})
		for id := range totals {
			active[id] = struct{}{}
		}
		for id := range counted {
			active[id] = struct{}{}
		}
		for _, id := range touched {
			active[id] = struct{}{}
		}
		if len(active) == 0 {
			return nil
		}

		ids := make([]uint, 0, len(active))
		for id := range active {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		// Items deleted after moving stock still belong in the month
		var items []invdomain.SupplyItem
		if err := tx.Unscoped().Where("id IN ?", ids).Find(&items).Error; err != nil {
			return fmt.Errorf("load items: %w", err)
		}
		stock := make(map[uint]int, len(items))
		for _, item := range items {
			stock[item.ID] = item.Quantity
		}

		for _, id := range ids {
			current, ok := counted[id]
			if !ok {
				if current, ok = stock[id]; !ok {
					continue
				}
			}
			t := totals[id]
			row := &domain.MonthlyReport{
				MonthYear:    m.String(),
				ItemID:       id,
				TotalIn:      t.TotalIn,
				TotalOut:     t.TotalOut,
				CurrentStock: current,
			}
			if err := upsert(tx, row); err != nil {
				return fmt.Errorf("upsert item %d: %w", id, err)
			}
		}

		return tx.Where("month_year = ? AND item_id IN ?", m.String(), ids).
			Order("item_id").
			Find(&rows).Error
	})
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	return rows, nil
}

func (r *GormReportRepository) FindByMonth(ctx context.Context, m month.Month) ([]domain.ReportLine, error) {
	var lines []domain.ReportLine
	err := r.db.WithContext(ctx).
		Table("monthly_reports AS r").
		Select("r.*, s.sku, s.name, s.category").
		Joins("LEFT JOIN supplies s ON s.id = r.item_id").
		Where("r.month_year = ?", m.String()).
		Order("s.name, r.item_id").
		Scan(&lines).Error
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	return lines, nil
}
