package grpc

import (
	"context"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/api"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/common"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/requestctx"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// currentUser returns the caller resolved by authInterceptor.
func currentUser(ctx context.Context) (models.User, error) {
	user, ok := requestctx.UserFrom(ctx)
	if !ok {
		return models.User{}, common.ErrorUnauthenticated
	}
	return user, nil
}

func (s *GRPCServer) GetAvailableFetcherApis(ctx context.Context, _ *emptypb.Empty) (*api.FetcherApis, error) {
	return &api.FetcherApis{FetcherApis: s.service.GetAvailableFetcherApis(ctx)}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *models.RegisterSpec) (*models.TokenPair, error) {
	tokens, err := s.sessions.Register(ctx, *req)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "Registered", "email", req.Email)
	return tokens, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*models.TokenPair, error) {
	return s.sessions.Login(ctx, req.Email, req.Password)
}

func (s *GRPCServer) Logout(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	user, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Logout(ctx, user.ID); err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

// IsAuthenticated checks the access token in the request metadata.
func (s *GRPCServer) IsAuthenticated(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	ok, err := s.sessions.IsAuthenticated(ctx, accessToken(ctx))
	if err != nil {
		return nil, err
	}
	return wrapperspb.Bool(ok), nil
}

// RenewSession takes the refresh token from the request, falling back to
// the metadata.
func (s *GRPCServer) RenewSession(ctx context.Context, req *api.RenewRequest) (*models.TokenPair, error) {
	token := req.RefreshToken
	if common.IsBlank(token) {
		token = refreshToken(ctx)
	}
	return s.sessions.RenewSession(ctx, token)
}

func (s *GRPCServer) RequestPasswordReset(ctx context.Context, req *api.Email) (*emptypb.Empty, error) {
	if err := s.sessions.RequestPasswordReset(ctx, req.Email); err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) ResetPassword(ctx context.Context, req *api.PasswordResetRequest) (*emptypb.Empty, error) {
	if err := s.sessions.ResetPassword(ctx, req.Email, req.ResetCode, req.NewPassword); err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) ChangePassword(ctx context.Context, req *api.PasswordChangeRequest) (*emptypb.Empty, error) {
	user, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.ChangePassword(ctx, user.ID, req.OldPassword, req.NewPassword); err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}
