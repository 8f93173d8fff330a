//go:build wireinject
// +build wireinject

package app

import (
	"database/sql"

	"github.com/google/wire"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"github.com/tair/supply-manager/config"
	"github.com/tair/supply-manager/kafka"
	"github.com/tair/supply-manager/pkg/cache"
	"github.com/tair/supply-manager/pkg/metrics"
)

// InitializeServer initializes every handler with its dependencies
func InitializeServer(
	db *gorm.DB,
	rx *sqlx.DB,
	sqlDB *sql.DB,
	c *cache.Client,
	events kafka.EventPublisher,
	m *metrics.Metrics,
	cfg *config.Config,
) (*Server, error) {
	wire.Build(
		RepositorySet,
		InventorySet,
		ReportSet,
		ReconciliationSet,
		RequestSet,
		UserSet,
		ProvideHealthChecker,
		NewServer,
	)
	return nil, nil
}
