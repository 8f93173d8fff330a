// Package schema owns the table set of the service.
package schema

import (
	"fmt"

	"gorm.io/gorm"

	invdomain "github.com/tair/supply-manager/internal/inventory/domain"
	recdomain "github.com/tair/supply-manager/internal/reconciliation/domain"
	repdomain "github.com/tair/supply-manager/internal/report/domain"
	reqdomain "github.com/tair/supply-manager/internal/request/domain"
	userdomain "github.com/tair/supply-manager/internal/user/domain"
	"github.com/tair/supply-manager/pkg/database"
)

// Models lists every persisted type
func Models() []interface{} {
	return []interface{}{
		&userdomain.User{},
		&invdomain.SupplyItem{},
		&invdomain.Transaction{},
		&repdomain.MonthlyReport{},
		&recdomain.Record{},
		&reqdomain.StockRequest{},
	}
}

// Migrate creates or updates all tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", database.ClassifyError(err))
	}
	return nil
}
