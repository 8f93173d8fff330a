package grpc

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	grpccodes "google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tair/supply-manager/pkg/logger"
)

// splitMethod turns "/grpc.health.v1.Health/Check" into service and method
func splitMethod(fullMethod string) (string, string) {
	service, method, ok := strings.Cut(strings.TrimPrefix(fullMethod, "/"), "/")
	if !ok {
		return "unknown", fullMethod
	}
	return service, method
}

// LoggingInterceptor logs every unary call. Successful calls go to debug
// since health checks arrive every few seconds.
func LoggingInterceptor(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	var event *zerolog.Event
	if err != nil {
		event = logger.Error(ctx).Err(err)
	} else {
		event = logger.Debug(ctx)
	}

	service, method := splitMethod(info.FullMethod)
	event.
		Str("grpc_service", service).
		Str("grpc_method", method).
		Str("grpc_code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Msg("gRPC call handled")
	return resp, err
}

// RecoveryInterceptor turns a handler panic into codes.Internal
func RecoveryInterceptor(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (resp interface{}, err error) {
	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx).
				Interface("panic", p).
				Str("method", info.FullMethod).
				Msg("Panic recovered in gRPC handler")
			err = status.Error(grpccodes.Internal, "internal error")
		}
	}()
	return handler(ctx, req)
}
