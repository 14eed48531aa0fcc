package grpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/api"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/common"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/logging"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/observability"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/requestctx"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// fakeSessions accepts exactly one access token.
type fakeSessions struct {
	Sessions
	token string
	user  models.User
}

func (f *fakeSessions) Resolve(_ context.Context, accessToken string) (models.User, error) {
	if accessToken == "" || accessToken != f.token {
		return models.User{}, common.ErrInvalidToken
	}
	return f.user, nil
}

func info(method string) *grpc.UnaryServerInfo {
	return &grpc.UnaryServerInfo{FullMethod: api.FullMethod(method)}
}

func withMD(kv ...string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs(kv...))
}

func TestAuthInterceptor(t *testing.T) {
	sessions := &fakeSessions{token: "good", user: models.User{ID: "7"}}
	s := NewGRPCServer(":0", nopLogger{}, sessions, nil, nil, 0)

	var seen models.User
	handler := func(ctx context.Context, _ any) (any, error) {
		seen, _ = requestctx.UserFrom(ctx)
		return "ok", nil
	}

	t.Run("accepts valid token", func(t *testing.T) {
		seen = models.User{}
		resp, err := s.authInterceptor(withMD(common.AccessTokenHeaderName, "good"), nil, info(api.MethodGetCurrentUser), handler)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp)
		assert.Equal(t, "7", seen.ID)
	})

	t.Run("rejects invalid token", func(t *testing.T) {
		_, err := s.authInterceptor(withMD(common.AccessTokenHeaderName, "bad"), nil, info(api.MethodGetCurrentUser), handler)
		require.Error(t, err)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
		assert.Equal(t, "The provided access token is invalid", status.Convert(err).Message())
	})

	t.Run("rejects missing metadata", func(t *testing.T) {
		_, err := s.authInterceptor(context.Background(), nil, info(api.MethodGetAllProjects), handler)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("skips session entry points", func(t *testing.T) {
		for _, m := range api.Unauthenticated {
			seen = models.User{ID: "unset"}
			_, err := s.authInterceptor(context.Background(), nil, info(m), handler)
			require.NoError(t, err, m)
			assert.Empty(t, seen.ID, m)
		}
	})

	t.Run("skips other services", func(t *testing.T) {
		_, err := s.authInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}, handler)
		assert.NoError(t, err)
	})
}

func TestAccessToken_Sources(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		want string
	}{
		{"no metadata", context.Background(), ""},
		{"header", withMD(common.AccessTokenHeaderName, " abc "), "abc"},
		{"cookie", withMD(common.CookieHeaderName, "theme=dark; accessToken=fromcookie"), "fromcookie"},
		{"bearer", withMD(common.AuthorizationHeader, "Bearer xyz"), "xyz"},
		{"raw authorization", withMD(common.AuthorizationHeader, "xyz"), "xyz"},
		{"header wins over cookie", withMD(common.AccessTokenHeaderName, "h", common.CookieHeaderName, "accessToken=c"), "h"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, accessToken(tt.ctx))
		})
	}
}

func TestRefreshToken_IgnoresAuthorization(t *testing.T) {
	assert.Empty(t, refreshToken(withMD(common.AuthorizationHeader, "Bearer xyz")))
	assert.Equal(t, "r", refreshToken(withMD(common.CookieHeaderName, "refreshToken=r")))
	assert.Equal(t, "h", refreshToken(withMD(common.RefreshTokenHeaderName, "h")))
}

func TestDelayInterceptor(t *testing.T) {
	ok := func(context.Context, any) (any, error) { return "ok", nil }

	t.Run("waits before replying", func(t *testing.T) {
		s := NewGRPCServer(":0", nopLogger{}, &fakeSessions{}, nil, nil, 30*time.Millisecond)
		start := time.Now()
		resp, err := s.delayInterceptor(context.Background(), nil, info(api.MethodLogin), ok)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp)
		assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	})

	t.Run("errors are not delayed", func(t *testing.T) {
		s := NewGRPCServer(":0", nopLogger{}, &fakeSessions{}, nil, nil, time.Hour)
		_, err := s.delayInterceptor(context.Background(), nil, info(api.MethodLogin), func(context.Context, any) (any, error) {
			return nil, status.Error(codes.NotFound, "x")
		})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("cancellation aborts the wait", func(t *testing.T) {
		s := NewGRPCServer(":0", nopLogger{}, &fakeSessions{}, nil, nil, time.Hour)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := s.delayInterceptor(ctx, nil, info(api.MethodLogin), ok)
		assert.Equal(t, codes.Canceled, status.Code(err))
	})
}

func TestLoggingInterceptor(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewGRPCServer(":0", logging.NewZapLogger(zap.New(core)), &fakeSessions{}, nil, nil, 0)

	_, err := s.loggingInterceptor(context.Background(), nil, info(api.MethodGetPaperById), func(context.Context, any) (any, error) {
		return nil, status.Error(codes.NotFound, "paper 9 not found")
	})
	require.Error(t, err)

	errs := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, errs, 1)
	fields := errs[0].ContextMap()
	assert.Equal(t, "NotFound", fields["code"])
	assert.Equal(t, api.FullMethod(api.MethodGetPaperById), fields["method"])
	assert.Equal(t, "grpc_server", fields["module"])
}

func TestMetricsInterceptor(t *testing.T) {
	m := observability.NewMetrics()
	s := NewGRPCServer(":0", nopLogger{}, &fakeSessions{}, nil, m, 0)

	_, _ = s.metricsInterceptor(context.Background(), nil, info(api.MethodLogin), func(context.Context, any) (any, error) {
		return nil, errors.New("boom")
	})
	_, _ = s.metricsInterceptor(context.Background(), nil, info(api.MethodLogin), func(context.Context, any) (any, error) {
		return "ok", nil
	})

	count, err := testutil.GatherAndCount(m.Registry, "snowballr_rpc_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestToStatus(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{common.NewNotFound("paper", "1"), codes.NotFound},
		{common.AlreadyExistsf("email %s", "a@b.c"), codes.AlreadyExists},
		{common.NewInvalidArgument("name", "blank"), codes.InvalidArgument},
		{common.ErrorPermissionDenied, codes.PermissionDenied},
		{common.ErrorUnauthenticated, codes.Unauthenticated},
		{common.ErrorUnimplemented, codes.Unimplemented},
		{context.DeadlineExceeded, codes.DeadlineExceeded},
		{status.Error(codes.Aborted, "kept"), codes.Aborted},
		{errors.New("disk on fire"), codes.Internal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, status.Code(toStatus(tt.err)), tt.err.Error())
	}
	assert.Equal(t, "internal error", status.Convert(toStatus(errors.New("secret detail"))).Message())
	assert.NoError(t, toStatus(nil))
}
