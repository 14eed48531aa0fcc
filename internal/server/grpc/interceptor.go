package grpc

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/api"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/requestctx"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var servicePrefix = "/" + api.ServiceName + "/"

func methodName(fullMethod string) string {
	return fullMethod[strings.LastIndex(fullMethod, "/")+1:]
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	s.logger.Debug(ctx, "Received", "method", info.FullMethod)

	resp, err := handler(ctx, req)

	code := status.Code(err)
	if err != nil {
		s.logger.Error(ctx, "Replied with error", "method", info.FullMethod, "code", code.String(), "error", status.Convert(err).Message())
	} else {
		s.logger.Debug(ctx, "Replied", "method", info.FullMethod, "code", code.String())
	}
	return resp, err
}

func (s *GRPCServer) metricsInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	done := s.metrics.Started(methodName(info.FullMethod))
	resp, err := handler(ctx, req)
	done(status.Code(err).String())
	return resp, err
}

// authInterceptor resolves the caller of every SnowballR method except the
// session entry points and stores it in the context. Calls to other
// services (health) pass through.
func (s *GRPCServer) authInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !strings.HasPrefix(info.FullMethod, servicePrefix) || slices.Contains(api.Unauthenticated, methodName(info.FullMethod)) {
		return handler(ctx, req)
	}

	user, err := s.sessions.Resolve(ctx, accessToken(ctx))
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "The provided access token is invalid")
	}

	return handler(requestctx.WithUser(ctx, user), req)
}

// delayInterceptor holds back successful replies to mimic network latency.
func (s *GRPCServer) delayInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	if err != nil || s.delay <= 0 {
		return resp, err
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return resp, nil
	case <-ctx.Done():
		return nil, status.FromContextError(ctx.Err()).Err()
	}
}
