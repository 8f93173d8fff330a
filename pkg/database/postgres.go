package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tair/supply-manager/config"
	"github.com/tair/supply-manager/pkg/logger"
)

// DSN builds a lib/pq connection string
func DSN(cfg config.PostgresConfig) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)
}

// NewPostgresConnection opens a pooled PostgreSQL connection.
// database/sql re-dials dropped connections on the next use, so a
// restarted server is picked up without restarting the service.
func NewPostgresConnection(cfg config.PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", ClassifyError(err))
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", ClassifyError(err))
	}

	logger.Logger.Info().
		Str("host", cfg.Host).
		Str("database", cfg.DBName).
		Msg("Connected to PostgreSQL")
	return db, nil
}

// NewGormConnection wraps an open pool with GORM
func NewGormConnection(sqlDB *sql.DB, cfg config.PostgresConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), GormConfig(cfg.SlowThreshold))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}
	return db, nil
}

// GormConfig is shared by the service and the test databases
func GormConfig(slowThreshold time.Duration) *gorm.Config {
	return &gorm.Config{
		Logger: NewGormLogger(slowThreshold),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// NewSqlx exposes the same pool to the sqlx read models
func NewSqlx(sqlDB *sql.DB, driverName string) *sqlx.DB {
	return sqlx.NewDb(sqlDB, driverName)
}
