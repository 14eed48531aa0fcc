// Package grpc serves the SnowballR API over gRPC.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/api"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/logging"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/observability"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Sessions is what the transport needs from the session service.
type Sessions interface {
	Register(ctx context.Context, spec models.RegisterSpec) (*models.TokenPair, error)
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)
	Logout(ctx context.Context, userID string) error
	IsAuthenticated(ctx context.Context, accessToken string) (bool, error)
	RenewSession(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, resetCode, newPassword string) error
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	Resolve(ctx context.Context, accessToken string) (models.User, error)
}

type GRPCServer struct {
	address  string
	sessions Sessions
	service  *services.Service
	metrics  *observability.Metrics
	logger   logging.Logger
	delay    time.Duration
}

func NewGRPCServer(a string, l logging.Logger, sessions Sessions, svc *services.Service, m *observability.Metrics, delay time.Duration) *GRPCServer {
	if m == nil {
		m = observability.NewMetrics()
	}
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		sessions: sessions,
		service:  svc,
		metrics:  m,
		delay:    delay,
	}
}

// NewServer builds a grpc.Server with the interceptor chain, the SnowballR
// service and the health service registered.
func (s *GRPCServer) NewServer() (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.loggingInterceptor,
		s.metricsInterceptor,
		s.authInterceptor,
		s.delayInterceptor,
	))
	srv.RegisterService(&serviceDesc, s)

	hs := health.NewServer()
	hs.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	return srv, hs
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv, hs := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
