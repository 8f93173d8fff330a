package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/supply-manager/internal/inventory/domain"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/database"
)

type GormSupplyRepository struct {
	db *gorm.DB
}

func NewGormSupplyRepository(db *gorm.DB) *GormSupplyRepository {
	return &GormSupplyRepository{db: db}
}

func (r *GormSupplyRepository) Create(ctx context.Context, item *domain.SupplyItem, createdBy uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		if item.Quantity == 0 {
			return nil
		}
		return tx.Create(&domain.Transaction{
			ItemID:         item.ID,
			Type:           domain.TransactionIn,
			Quantity:       item.Quantity,
			QuantityBefore: 0,
			QuantityAfter:  item.Quantity,
			Reference:      "initial",
			CreatedBy:      createdBy,
			CreatedAt:      item.LastUpdated,
		}).Error
	})
	return database.ClassifyError(err)
}

func (r *GormSupplyRepository) FindByID(ctx context.Context, id uint) (*domain.SupplyItem, error) {
	var item domain.SupplyItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, database.ClassifyError(err)
	}
	return &item, nil
}

func (r *GormSupplyRepository) FindByName(ctx context.Context, name string) (*domain.SupplyItem, error) {
	var item domain.SupplyItem
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Order("id").
		First(&item).Error
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	return &item, nil
}

func (r *GormSupplyRepository) FindBySKU(ctx context.Context, sku string) (*domain.SupplyItem, error) {
	var item domain.SupplyItem
	err := r.db.WithContext(ctx).
		Where("UPPER(sku) = ?", strings.ToUpper(strings.TrimSpace(sku))).
		Order("id").
		First(&item).Error
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	return &item, nil
}

func (r *GormSupplyRepository) List(ctx context.Context, filter domain.SupplyFilter) ([]domain.SupplyItem, int64, error) {
	scope := func(q *gorm.DB) *gorm.DB {
		if s := strings.TrimSpace(filter.Search); s != "" {
			like := "%" + strings.ToLower(s) + "%"
			q = q.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ? OR LOWER(supplier) LIKE ?", like, like, like)
		}
		if filter.Category != "" {
			q = q.Where("LOWER(category) = ?", strings.ToLower(filter.Category))
		}
		if filter.LowStockOnly {
			q = q.Where("quantity <= min_quantity")
		}
		return q
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.SupplyItem{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, database.ClassifyError(err)
	}

	var items []domain.SupplyItem
	err := r.db.WithContext(ctx).Scopes(scope).
		Order("name").
		Limit(limitOrAll(filter.Limit)).
		Offset(filter.Offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, database.ClassifyError(err)
	}
	return items, total, nil
}

func (r *GormSupplyRepository) ListLowStock(ctx context.Context) ([]domain.SupplyItem, error) {
	var items []domain.SupplyItem
	err := r.db.WithContext(ctx).
		Where("quantity <= min_quantity").
		Order("quantity ASC, name ASC").
		Find(&items).Error
	return items, database.ClassifyError(err)
}

func (r *GormSupplyRepository) Update(ctx context.Context, item *domain.SupplyItem) error {
	res := r.db.WithContext(ctx).Model(item).
		Select("sku", "name", "category", "supplier", "quantity", "min_quantity", "price", "last_updated").
		Updates(item)
	if res.Error != nil {
		return database.ClassifyError(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("supply %d: %w", item.ID, apperr.ErrNotFound)
	}
	return nil
}

func (r *GormSupplyRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.SupplyItem{}, id)
	if res.Error != nil {
		return database.ClassifyError(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("supply %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

func (r *GormSupplyRepository) ApplyMovement(ctx context.Context, t *domain.Transaction) (*domain.SupplyItem, *domain.SupplyItem, error) {
	if err := t.Validate(); err != nil {
		return nil, nil, err
	}

	var before, after *domain.SupplyItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		before, after, err = applyMovement(tx, t.ItemID, t, nil)
		return err
	})
	if err != nil {
		return nil, nil, movementError(t.ItemID, err)
	}
	return before, after, nil
}

func (r *GormSupplyRepository) Restock(ctx context.Context, in domain.Restock) (*domain.SupplyItem, *domain.SupplyItem, *domain.Transaction, error) {
	if in.Quantity < 0 {
		return nil, nil, nil, apperr.Validation("quantity cannot be negative")
	}

	var movement *domain.Transaction
	if in.Quantity > 0 {
		movement = &domain.Transaction{
			ItemID:    in.ItemID,
			Type:      domain.TransactionIn,
			Quantity:  in.Quantity,
			Reference: "restock",
			CreatedBy: in.CreatedBy,
		}
	}
	pricing := map[string]interface{}{
		"price":        in.Price,
		"min_quantity": in.MinQuantity,
	}

	var before, after *domain.SupplyItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		before, after, err = applyMovement(tx, in.ItemID, movement, pricing)
		return err
	})
	if err != nil {
		return nil, nil, nil, movementError(in.ItemID, err)
	}
	after.Price = in.Price
	after.MinQuantity = in.MinQuantity
	return before, after, movement, nil
}

// applyMovement locks the item row, writes its new quantity together with
// any extra columns and appends t when it is not nil. It must run inside
// a database transaction.
func applyMovement(tx *gorm.DB, itemID uint, t *domain.Transaction, extra map[string]interface{}) (*domain.SupplyItem, *domain.SupplyItem, error) {
	var before domain.SupplyItem
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&before, itemID).Error; err != nil {
		return nil, nil, err
	}

	newQty := before.Quantity
	if t != nil {
		newQty += t.Delta()
		if newQty < 0 {
			return nil, nil, fmt.Errorf("%s has %d, cannot issue %d: %w", before.Name, before.Quantity, t.Quantity, apperr.ErrInsufficientStock)
		}
	}

	now := time.Now().UTC()
	columns := map[string]interface{}{"quantity": newQty, "last_updated": now}
	for k, v := range extra {
		columns[k] = v
	}
	if err := tx.Model(&domain.SupplyItem{}).Where("id = ?", before.ID).Updates(columns).Error; err != nil {
		return nil, nil, err
	}

	if t != nil {
		t.QuantityBefore = before.Quantity
		t.QuantityAfter = newQty
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
		if err := tx.Create(t).Error; err != nil {
			return nil, nil, err
		}
	}

	after := before
	after.Quantity = newQty
	after.LastUpdated = now
	return &before, &after, nil
}

func movementError(itemID uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("supply %d: %w", itemID, apperr.ErrNotFound)
	}
	return database.ClassifyError(err)
}

func (r *GormSupplyRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, int64, error) {
	scope := func(q *gorm.DB) *gorm.DB {
		if filter.ItemID != 0 {
			q = q.Where("item_id = ?", filter.ItemID)
		}
		if !filter.From.IsZero() {
			q = q.Where("created_at >= ?", filter.From)
		}
		if !filter.To.IsZero() {
			q = q.Where("created_at < ?", filter.To)
		}
		return q
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Transaction{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, database.ClassifyError(err)
	}

	var txs []domain.Transaction
	err := r.db.WithContext(ctx).Scopes(scope).
		Order("created_at DESC, id DESC").
		Limit(limitOrAll(filter.Limit)).
		Offset(filter.Offset).
		Find(&txs).Error
	if err != nil {
		return nil, 0, database.ClassifyError(err)
	}
	return txs, total, nil
}

func (r *GormSupplyRepository) FindTransactionByEvent(ctx context.Context, eventID string) (*domain.Transaction, error) {
	var t domain.Transaction
	if err := r.db.WithContext(ctx).Where("event_id = ?", eventID).First(&t).Error; err != nil {
		return nil, database.ClassifyError(err)
	}
	return &t, nil
}

// limitOrAll maps a non-positive limit to no limit
func limitOrAll(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}
