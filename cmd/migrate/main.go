package main

import (
	"context"
	"flag"

	"github.com/tair/supply-manager/config"
	"github.com/tair/supply-manager/internal/schema"
	"github.com/tair/supply-manager/internal/user/repository"
	"github.com/tair/supply-manager/internal/user/usecase/command"
	"github.com/tair/supply-manager/pkg/database"
	"github.com/tair/supply-manager/pkg/logger"
)

func main() {
	seedAdmin := flag.Bool("seed-admin", true, "create the configured admin account when missing")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.ServiceName+"-migrate", cfg.IsDevelopment())
	logger.SetLevel(cfg.Server.LogLevel)

	sqlDB, err := database.NewPostgresConnection(cfg.Postgres)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer sqlDB.Close()

	db, err := database.NewGormConnection(sqlDB, cfg.Postgres)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize gorm")
	}

	if err := schema.Migrate(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Logger.Info().Int("tables", len(schema.Models())).Msg("Schema migrated")

	if !*seedAdmin {
		return
	}

	repo := repository.NewGormUserRepository(db)
	seed := command.NewSeedAdminHandler(repo, command.NewCreateUserHandler(repo))
	created, err := seed.Handle(context.Background(), command.SeedAdminCommand{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
		FullName: cfg.Admin.FullName,
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to seed admin account")
	}
	logger.Logger.Info().
		Str("username", cfg.Admin.Username).
		Bool("created", created).
		Msg("Admin account checked")
}
