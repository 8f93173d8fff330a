package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/tair/supply-manager/internal/health"
)

type okDB struct{}

func (okDB) PingContext(context.Context) error { return nil }

func TestCheckHealthReportsServing(t *testing.T) {
	checker := health.NewChecker(okDB{})
	if err := checker.Check(context.Background()); err != nil {
		t.Fatalf("Check: %v", err)
	}

	server := NewServer(checker)
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go server.Serve(lis)
	defer server.Stop()

	got, err := CheckHealth(context.Background(), lis.Addr().String(), 5*time.Second)
	if err != nil {
		t.Fatalf("CheckHealth: %v", err)
	}
	if got != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("status = %v, want SERVING", got)
	}
}

func TestRecoveryInterceptor(t *testing.T) {
	_, err := RecoveryInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/test.Service/Panic"}, func(context.Context, interface{}) (interface{}, error) {
		panic("boom")
	})
	if err == nil {
		t.Fatal("expected error from panicking handler")
	}
}

func TestSplitMethod(t *testing.T) {
	service, method := splitMethod("/grpc.health.v1.Health/Check")
	if service != "grpc.health.v1.Health" || method != "Check" {
		t.Fatalf("got %q %q", service, method)
	}
	if service, _ := splitMethod("bogus"); service != "unknown" {
		t.Fatalf("service = %q, want unknown", service)
	}
}
