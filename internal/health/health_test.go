package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type fakeDB struct {
	err error
}

func (f *fakeDB) PingContext(context.Context) error { return f.err }

func servingStatus(t *testing.T, c *Checker) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := c.Server().Check(context.Background(), &healthpb.HealthCheckRequest{})
	if err != nil {
		t.Fatalf("health check: %v", err)
	}
	return resp.Status
}

func TestCheckFollowsDatabase(t *testing.T) {
	db := &fakeDB{}
	c := NewChecker(db)
	if got := servingStatus(t, c); got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("initial status = %v", got)
	}

	if err := c.Check(context.Background()); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if got := servingStatus(t, c); got != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("status after ping = %v", got)
	}

	db.err = errors.New("connection refused")
	if err := c.Check(context.Background()); err == nil {
		t.Fatal("expected ping error")
	}
	if got := servingStatus(t, c); got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("status after failure = %v", got)
	}
}

func TestHealthCheckHandler(t *testing.T) {
	db := &fakeDB{}
	c := NewChecker(db)

	rec := httptest.NewRecorder()
	c.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthy: status %d", rec.Code)
	}

	db.err = errors.New("down")
	rec = httptest.NewRecorder()
	c.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("unhealthy: status %d", rec.Code)
	}
}
