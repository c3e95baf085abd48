// Package grpc serves the Auth and Vault services over gRPC with the JSON
// codec. Access tokens travel in the "authorization" metadata entry.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/credvault/internal/api"
	"github.com/dmitrijs2005/credvault/internal/logging"
	"github.com/dmitrijs2005/credvault/internal/server/auth"
	"github.com/dmitrijs2005/credvault/internal/server/models"
	"github.com/dmitrijs2005/credvault/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type UserService interface {
	Register(ctx context.Context, email, username, password string, hint *string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	UpdateUser(ctx context.Context, userID string, upd services.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

type SecretService interface {
	List(ctx context.Context, ownerID string) ([]*models.Secret, error)
	Get(ctx context.Context, ownerID, id string) (*models.Secret, error)
	Create(ctx context.Context, ownerID string, in services.NewSecret) (string, error)
	Update(ctx context.Context, ownerID, id string, upd services.SecretUpdate) error
	Delete(ctx context.Context, ownerID, id string) error
	Reveal(ctx context.Context, ownerID, id string, masterPassword []byte) ([]byte, error)
	AddTags(ctx context.Context, ownerID, id string, tags []string) ([]string, error)
	RemoveTags(ctx context.Context, ownerID, id string, tags []string) ([]string, error)
	SetTags(ctx context.Context, ownerID, id string, tags []string) error
}

type ExportService interface {
	Export(ctx context.Context, ownerID string) (*services.Export, error)
}

type Authenticator interface {
	Authenticate(ctx context.Context, c auth.Carrier) (*auth.Claims, error)
}

// GRPCServer implements api.AuthServer and api.VaultServer.
type GRPCServer struct {
	address        string
	logger         logging.Logger
	users          UserService
	secrets        SecretService
	exports        ExportService
	authenticator  Authenticator
	requestTimeout time.Duration
}

func NewGRPCServer(a string, l logging.Logger, us UserService, ss SecretService, es ExportService,
	authn Authenticator, requestTimeout time.Duration) *GRPCServer {
	return &GRPCServer{
		address:        a,
		logger:         l.With("module", "grpc_server"),
		users:          us,
		secrets:        ss,
		exports:        es,
		authenticator:  authn,
		requestTimeout: requestTimeout,
	}
}

func (s *GRPCServer) newServer() (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.loggingInterceptor,
		s.timeoutInterceptor,
		s.accessTokenInterceptor,
	))

	api.RegisterAuthServer(srv, s)
	api.RegisterVaultServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(api.AuthServiceName, healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(api.VaultServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv, hs
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv, hs := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
