// Package http serves the REST API with echo. Access tokens travel in the
// Authorization header.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/credvault/internal/logging"
	"github.com/dmitrijs2005/credvault/internal/server/auth"
	"github.com/dmitrijs2005/credvault/internal/server/models"
	"github.com/dmitrijs2005/credvault/internal/server/services"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 5 * time.Second

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

type HTTPServer struct {
	address        string
	logger         logging.Logger
	users          UserService
	secrets        SecretService
	exports        ExportService
	authenticator  Authenticator
	requestTimeout time.Duration
	echo           *echo.Echo
}

func NewHTTPServer(a string, l logging.Logger, us UserService, ss SecretService, es ExportService,
	authn Authenticator, requestTimeout time.Duration) *HTTPServer {
	s := &HTTPServer{
		address:        a,
		logger:         l.With("module", "http_server"),
		users:          us,
		secrets:        ss,
		exports:        es,
		authenticator:  authn,
		requestTimeout: requestTimeout,
	}
	s.echo = s.newEcho()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *HTTPServer) Handler() http.Handler { return s.echo }

func (s *HTTPServer) newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.errorHandler

	e.Use(middleware.RequestID())
	e.Use(s.requestLogger)
	e.Use(middleware.Recover())
	if s.requestTimeout > 0 {
		e.Use(middleware.ContextTimeout(s.requestTimeout))
	}

	s.routes(e)
	return e
}

func (s *HTTPServer) routes(e *echo.Echo) {
	e.GET("/api/healthcheck", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	v1.POST("/auth/user", s.register)
	v1.POST("/auth/login", s.login)

	v1.PUT("/auth/user", s.updateUser, s.requireAuth)
	v1.DELETE("/auth/user", s.deleteUser, s.requireAuth)

	pass := v1.Group("/pass", s.requireAuth)
	pass.GET("/passwords", s.listSecrets)
	pass.POST("/password", s.addSecret)
	pass.GET("/password/:id", s.getSecret)
	pass.PUT("/password/:id", s.updateSecret)
	pass.DELETE("/password/:id", s.deleteSecret)
	pass.POST("/password/:id/reveal", s.revealSecret)
	pass.POST("/tag/:id", s.addTags)
	pass.PUT("/tag/:id", s.setTags)
	pass.DELETE("/tag/:id", s.removeTags)
	pass.POST("/export", s.exportVault)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.echo,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
