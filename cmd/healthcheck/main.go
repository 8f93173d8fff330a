// Command healthcheck queries the service's gRPC health endpoint and exits
// non-zero unless it reports SERVING. It is meant for container health checks.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/tair/supply-manager/config"
	grpcDelivery "github.com/tair/supply-manager/internal/health/delivery/grpc"
)

func main() {
	cfg := config.Load()
	addr := flag.String("addr", "localhost:"+cfg.Server.GRPCPort, "gRPC address of the supply service")
	timeout := flag.Duration("timeout", 3*time.Second, "check timeout")
	flag.Parse()

	status, err := grpcDelivery.CheckHealth(context.Background(), *addr, *timeout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(status.String())
	if status != healthpb.HealthCheckResponse_SERVING {
		os.Exit(1)
	}
}
