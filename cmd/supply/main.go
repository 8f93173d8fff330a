package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tair/supply-manager/config"
	_ "github.com/tair/supply-manager/docs"
	"github.com/tair/supply-manager/internal/app"
	grpcDelivery "github.com/tair/supply-manager/internal/health/delivery/grpc"
	"github.com/tair/supply-manager/internal/schema"
	usercommand "github.com/tair/supply-manager/internal/user/usecase/command"
	"github.com/tair/supply-manager/kafka"
	"github.com/tair/supply-manager/pkg/auth"
	"github.com/tair/supply-manager/pkg/cache"
	"github.com/tair/supply-manager/pkg/database"
	"github.com/tair/supply-manager/pkg/httpx"
	"github.com/tair/supply-manager/pkg/logger"
	"github.com/tair/supply-manager/pkg/metrics"
	"github.com/tair/supply-manager/pkg/tracing"
)

const healthInterval = 10 * time.Second

func main() {
	cfg := config.Load()

	// Initialize logger
	logger.Init(cfg.Server.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.Server.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.Server.ServiceName).
		Str("environment", cfg.Server.Environment).
		Str("log_level", cfg.Server.LogLevel).
		Msg("Starting supply service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.InitTracer(cfg.Server.ServiceName, cfg.Tracing)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}

	auth.Configure(cfg.JWT.Secret, cfg.JWT.TTL)

	// Connect to database
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
	rx := database.NewSqlx(sqlDB, "postgres")

	redisClient, err := cache.New(ctx, cfg.Redis)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	events, closeEvents := newPublisher(cfg.Kafka)
	defer closeEvents()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// Initialize handlers with Wire DI
	server, err := app.InitializeServer(db, rx, sqlDB, redisClient, events, m, cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handlers")
	}

	created, err := server.SeedAdmin.Handle(ctx, usercommand.SeedAdminCommand{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
		FullName: cfg.Admin.FullName,
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to seed admin account")
	}
	if !created {
		logger.Logger.Debug().Str("username", cfg.Admin.Username).Msg("Admin account already present")
	}

	if cfg.Kafka.Enabled {
		consumer, err := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, []string{kafka.TopicSupplyDeliveries})
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
		}
		defer consumer.Close()
		server.Deliveries.Register(consumer)
		consumer.Start(ctx)
	}

	go server.Health.Watch(ctx, healthInterval)

	// Start gRPC server (health + reflection)
	grpcServer := grpcDelivery.NewServer(server.Health)
	go func() {
		if err := grpcDelivery.Serve(grpcServer, ":"+cfg.Server.GRPCPort); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start gRPC server")
		}
	}()

	// Start HTTP server
	mwConfig := httpx.DefaultMiddlewareConfig(cfg.Server.AllowedOrigins, cfg.Server.RequestTimeout)
	mwConfig.Extra = append(mwConfig.Extra, m.Middleware)
	router := server.Router(app.RouterOptions{
		Middleware: mwConfig,
		Metrics:    promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Swagger:    httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")),
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.HTTPPort,
		Handler:           httpx.SetupCORS(mwConfig)(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Logger.Info().
			Str("port", cfg.Server.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger_endpoint", "/swagger/").
			Msg("HTTP server started")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down servers...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	grpcServer.GracefulStop()
	if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
		logger.Logger.Error().Err(err).Msg("Tracer shutdown failed")
	}

	logger.Logger.Info().Msg("Supply service stopped")
}

// newPublisher connects to Kafka, or discards events when it is disabled
func newPublisher(cfg config.KafkaConfig) (kafka.EventPublisher, func()) {
	if !cfg.Enabled {
		logger.Logger.Info().Msg("Kafka disabled, events are not published")
		return kafka.NopPublisher{}, func() {}
	}

	publisher, err := kafka.NewPublisher(cfg.Brokers)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka publisher")
	}
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close Kafka publisher")
		}
	}
}
