package client

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/api"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/common"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/logging"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/blob"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/config"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/services"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	gs "github.com/SE-UUlm/snowballr-mock-backend/internal/server/grpc"
)

/*************
 * accessTokenInterceptor tests
 *************/

func tokenOf(t *testing.T, ctx context.Context) string {
	t.Helper()
	md, _ := metadata.FromOutgoingContext(ctx)
	toks := md.Get(common.AccessTokenHeaderName)
	if len(toks) == 0 {
		return ""
	}
	require.Len(t, toks, 1)
	return toks[0]
}

func TestInterceptor_AttachesAccessToken(t *testing.T) {
	c := &GRPCClient{tokens: models.TokenPair{AccessToken: "A1", RefreshToken: "R1"}}

	invoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		assert.Equal(t, "A1", tokenOf(t, ctx))
		return nil
	}
	require.NoError(t, c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker))
}

func TestInterceptor_RenewsAndRetries(t *testing.T) {
	c := &GRPCClient{tokens: models.TokenPair{AccessToken: "A1", RefreshToken: "R1"}}
	c.renew = func(_ context.Context, refresh string) (models.TokenPair, error) {
		assert.Equal(t, "R1", refresh)
		return models.TokenPair{AccessToken: "A2", RefreshToken: "R2"}, nil
	}

	callCount := 0
	invoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		callCount++
		if callCount == 1 {
			require.Equal(t, "A1", tokenOf(t, ctx))
			return status.Error(codes.Unauthenticated, "The provided access token is invalid")
		}
		require.Equal(t, "A2", tokenOf(t, ctx))
		return nil
	}

	require.NoError(t, c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker))
	assert.Equal(t, 2, callCount)
	assert.Equal(t, models.TokenPair{AccessToken: "A2", RefreshToken: "R2"}, c.pair())
}

func TestInterceptor_NoRetry(t *testing.T) {
	unauth := status.Error(codes.Unauthenticated, "nope")

	tests := []struct {
		name    string
		tokens  models.TokenPair
		method  string
		err     error
		renewed models.TokenPair
		renewEr error
	}{
		{name: "other error", tokens: models.TokenPair{AccessToken: "A", RefreshToken: "R"}, err: status.Error(codes.NotFound, "x")},
		{name: "no refresh token", tokens: models.TokenPair{AccessToken: "A"}, err: unauth},
		{name: "renew itself failed", tokens: models.TokenPair{AccessToken: "A", RefreshToken: "R"}, method: api.FullMethod(api.MethodRenewSession), err: unauth},
		{name: "renew errors", tokens: models.TokenPair{AccessToken: "A", RefreshToken: "R"}, err: unauth, renewEr: errors.New("down")},
		{name: "same token back", tokens: models.TokenPair{AccessToken: "A", RefreshToken: "R"}, err: unauth, renewed: models.TokenPair{AccessToken: "A", RefreshToken: "R"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &GRPCClient{tokens: tt.tokens}
			c.renew = func(context.Context, string) (models.TokenPair, error) { return tt.renewed, tt.renewEr }

			calls := 0
			invoker := func(context.Context, string, any, any, *grpc.ClientConn, ...grpc.CallOption) error {
				calls++
				return tt.err
			}
			method := tt.method
			if method == "" {
				method = "/svc/Method"
			}
			err := c.accessTokenInterceptor(context.Background(), method, nil, nil, nil, invoker)
			assert.Equal(t, status.Code(tt.err), status.Code(err))
			assert.Equal(t, 1, calls)
		})
	}
}

func TestMapError(t *testing.T) {
	c := &GRPCClient{}
	tests := []struct {
		err  error
		want error
	}{
		{status.Error(codes.Unauthenticated, "x"), ErrUnauthorized},
		{status.Error(codes.PermissionDenied, "x"), ErrUnauthorized},
		{status.Error(codes.Unavailable, "x"), ErrUnavailable},
		{status.Error(codes.DeadlineExceeded, "x"), ErrUnavailable},
		{status.Error(codes.NotFound, "x"), ErrNotFound},
		{status.Error(codes.AlreadyExists, "x"), ErrRejected},
		{status.Error(codes.InvalidArgument, "x"), ErrRejected},
	}
	for _, tt := range tests {
		assert.ErrorIs(t, c.mapError(tt.err), tt.want)
	}
	assert.NoError(t, c.mapError(nil))

	internal := status.Error(codes.Internal, "boom")
	assert.ErrorIs(t, c.mapError(internal), internal)
}

/*************
 * against a running server
 *************/

func newTestClient(t *testing.T, opts ...func(*config.Config)) *GRPCClient {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	for _, opt := range opts {
		opt(cfg)
	}
	s := store.NewMemory()
	srv, _ := gs.NewGRPCServer("bufnet", logging.Nop(), services.NewSessionService(s, cfg), services.NewService(s, blob.NewMemory()), nil, 0).NewServer()

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	c, err := NewGRPCClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestClient_Session(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	_, err := c.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, c.Register(ctx, models.RegisterSpec{
		Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace", Password: "secret",
	}))
	assert.True(t, c.LoggedIn())

	user, err := c.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)

	projects, err := c.Projects(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)

	fetchers, err := c.FetcherApis(ctx)
	require.NoError(t, err)
	assert.Equal(t, services.AvailableFetcherAPIs, fetchers)

	require.NoError(t, c.Logout(ctx))
	assert.False(t, c.LoggedIn())

	assert.ErrorIs(t, c.Login(ctx, "ada@example.com", "wrong"), ErrUnauthorized)
	require.NoError(t, c.Login(ctx, "ada@example.com", "secret"))

	_, err = c.CurrentUser(ctx)
	assert.NoError(t, err)
}

func TestClient_RegisterTwice(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)
	spec := models.RegisterSpec{Email: "ada@example.com", FirstName: "Ada", LastName: "L", Password: "pw"}

	require.NoError(t, c.Register(ctx, spec))
	assert.ErrorIs(t, c.Register(ctx, spec), ErrRejected)
}

func TestClient_RecoversAfterAccessTokenExpiry(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, func(cfg *config.Config) { cfg.AccessTokenValidityDuration = time.Second })

	require.NoError(t, c.Register(ctx, models.RegisterSpec{
		Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace", Password: "secret",
	}))

	time.Sleep(2100 * time.Millisecond)

	user, err := c.CurrentUser(ctx)
	require.NoError(t, err, "expired access token should be renewed transparently")
	assert.Equal(t, "ada@example.com", user.Email)
}
