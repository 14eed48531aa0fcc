package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/api"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/common"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn

	mu     sync.RWMutex
	tokens models.TokenPair

	// renew is swapped in tests.
	renew func(ctx context.Context, refreshToken string) (models.TokenPair, error)
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	tokens := s.pair()
	err := invoker(withAccessToken(ctx, tokens.AccessToken), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	if status.Code(err) != codes.Unauthenticated || tokens.RefreshToken == "" || method == api.FullMethod(api.MethodRenewSession) {
		return err
	}

	renewed, rerr := s.renew(ctx, tokens.RefreshToken)
	if rerr != nil || renewed.AccessToken == tokens.AccessToken {
		return err
	}
	s.setPair(renewed)

	// session renewed, retrying with the new access token
	return invoker(withAccessToken(ctx, renewed.AccessToken), method, req, reply, cc, opts...)
}

// NewGRPCClient prepares a client for endpointURL. Extra dial options are
// appended to the defaults (insecure transport, JSON codec).
func NewGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	c.renew = c.renewSession
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(api.CodecName)),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) pair() models.TokenPair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens
}

func (s *GRPCClient) setPair(p models.TokenPair) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = p
}

func (s *GRPCClient) LoggedIn() bool {
	return s.pair().AccessToken != ""
}

func (s *GRPCClient) invoke(ctx context.Context, method string, req, reply any) error {
	return s.mapError(s.conn.Invoke(ctx, api.FullMethod(method), req, reply))
}

func (s *GRPCClient) renewSession(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	var pair models.TokenPair
	err := s.conn.Invoke(ctx, api.FullMethod(api.MethodRenewSession), &api.RenewRequest{RefreshToken: refreshToken}, &pair)
	return pair, err
}

func (s *GRPCClient) Register(ctx context.Context, spec models.RegisterSpec) error {
	var pair models.TokenPair
	if err := s.invoke(ctx, api.MethodRegister, &spec, &pair); err != nil {
		return err
	}
	s.setPair(pair)
	return nil
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) error {
	var pair models.TokenPair
	if err := s.invoke(ctx, api.MethodLogin, &api.LoginRequest{Email: email, Password: password}, &pair); err != nil {
		return err
	}
	s.setPair(pair)
	return nil
}

// Logout ends the session on the server and forgets the local tokens, even
// when the server call fails.
func (s *GRPCClient) Logout(ctx context.Context) error {
	err := s.invoke(ctx, api.MethodLogout, &emptypb.Empty{}, &emptypb.Empty{})
	s.setPair(models.TokenPair{})
	return err
}

func (s *GRPCClient) CurrentUser(ctx context.Context) (models.User, error) {
	var user models.User
	err := s.invoke(ctx, api.MethodGetCurrentUser, &emptypb.Empty{}, &user)
	return user, err
}

// Projects lists the active projects of the current user.
func (s *GRPCClient) Projects(ctx context.Context) ([]models.Project, error) {
	var list api.List[models.Project]
	if err := s.invoke(ctx, api.MethodGetAllProjectsForUser, &api.Id{}, &list); err != nil {
		return nil, err
	}
	return list.Items, nil
}

func (s *GRPCClient) FetcherApis(ctx context.Context) ([]string, error) {
	var out api.FetcherApis
	if err := s.invoke(ctx, api.MethodGetAvailableFetcherApis, &emptypb.Empty{}, &out); err != nil {
		return nil, err
	}
	return out.FetcherApis, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, st.Message())
	case codes.InvalidArgument, codes.AlreadyExists:
		return fmt.Errorf("%w: %s", ErrRejected, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
