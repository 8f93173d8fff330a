// Package health reports whether the service can reach its database,
// over HTTP and through the standard gRPC health service.
package health

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/tair/supply-manager/pkg/httpx"
	"github.com/tair/supply-manager/pkg/logger"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

var _ Pinger = (*sql.DB)(nil)

// Checker pings the database and mirrors the result into a gRPC health server
type Checker struct {
	db     Pinger
	server *health.Server
}

// NewChecker creates a checker; the gRPC status starts as NOT_SERVING
func NewChecker(db Pinger) *Checker {
	server := health.NewServer()
	server.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	return &Checker{db: db, server: server}
}

// Server is the grpc.health.v1 implementation to register
func (c *Checker) Server() *health.Server {
	return c.server
}

// Check pings the database and updates the gRPC serving status
func (c *Checker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	err := c.db.PingContext(ctx)
	status := healthpb.HealthCheckResponse_SERVING
	if err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	c.server.SetServingStatus("", status)
	return err
}

// Watch re-checks every interval until ctx is done
func (c *Checker) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	healthy := true
	for {
		if err := c.Check(ctx); err != nil {
			if healthy {
				logger.Warn(ctx).Err(err).Msg("Database health check failed")
			}
			healthy = false
		} else if !healthy {
			logger.Info(ctx).Msg("Database reachable again")
			healthy = true
		}

		select {
		case <-ctx.Done():
			c.server.Shutdown()
			return
		case <-ticker.C:
		}
	}
}

// HealthCheck handles GET /health
func (c *Checker) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := c.Check(r.Context()); err != nil {
		httpx.RespondMessage(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	httpx.RespondOK(w, "Supply service is healthy", nil)
}

// RegisterRoutes registers the health check endpoint
func (c *Checker) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", c.HealthCheck).Methods("GET")
}
