// Package server wires the configuration, storage, crypto and services
// together and runs the gRPC and HTTP transports until shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/credvault/internal/cryptox"
	"github.com/dmitrijs2005/credvault/internal/logging"
	"github.com/dmitrijs2005/credvault/internal/server/auth"
	"github.com/dmitrijs2005/credvault/internal/server/config"
	"github.com/dmitrijs2005/credvault/internal/server/keystore"
	"github.com/dmitrijs2005/credvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/credvault/internal/server/revocation"
	"github.com/dmitrijs2005/credvault/internal/server/services"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/credvault/internal/server/grpc"
	hs "github.com/dmitrijs2005/credvault/internal/server/http"
)

type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	redis   *redis.Client
	servers map[string]runner
}

var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.New(os.Stdout, c.LogFormat, c.LogLevel)
	app := &App{config: c, logger: logger}

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app.db = db
	if err := db.PingContext(ctx); err != nil {
		app.close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		app.close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	store, err := app.newRevocationStore(ctx)
	if err != nil {
		app.close()
		return nil, err
	}

	keys, err := keystore.New(c.SecretKey)
	if err != nil {
		app.close()
		return nil, err
	}
	if keys.Generated() {
		logger.Warn(ctx, "No secret key configured, generated a random one; tokens will not survive a restart")
	}
	tokens := auth.NewTokenService(keys, c.AccessTokenValidityDuration)

	hasher, err := cryptox.NewPasswordHasher(c.PasswordHash)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("password hasher: %w", err)
	}
	cipher, err := cryptox.NewSecretCipher(c.SecretKDF)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("secret cipher: %w", err)
	}
	guard, err := services.NewAccessGuard(c.OwnershipPolicy)
	if err != nil {
		app.close()
		return nil, err
	}

	us, err := services.NewUserService(db, rm, hasher, tokens, store, c.ExposePasswordHint)
	if err != nil {
		app.close()
		return nil, err
	}
	ss := services.NewSecretService(db, rm, cipher, guard)
	es := services.NewExportService(ss, c)
	authn := auth.NewAuthenticator(tokens, store)

	app.servers = map[string]runner{
		"grpc": gs.NewGRPCServer(c.EndpointAddrGRPC, logger, us, ss, es, authn, c.RequestTimeout),
		"http": hs.NewHTTPServer(c.EndpointAddrHTTP, logger, us, ss, es, authn, c.RequestTimeout),
	}
	return app, nil
}

// newRevocationStore connects to Redis when configured. Without Redis the
// tokens of deleted users stay valid until they expire.
func (app *App) newRevocationStore(ctx context.Context) (revocation.Store, error) {
	if app.config.RedisAddr == "" {
		app.logger.Warn(ctx, "Redis not configured, token revocation disabled")
		return revocation.NopStore{}, nil
	}

	app.redis = redis.NewClient(&redis.Options{
		Addr:     app.config.RedisAddr,
		Password: app.config.RedisPassword,
		DB:       app.config.RedisDB,
	})
	store := revocation.NewRedisStore(app.redis, app.config.AccessTokenValidityDuration)
	if err := store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("redis init error: %w", err)
	}
	return store, nil
}

func (app *App) close() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error(context.Background(), "closing redis", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(context.Background(), "closing db", "error", err)
		}
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run blocks until a signal arrives, ctx is cancelled or a server fails.
// A failing server stops the others.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	for name, srv := range app.servers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Run(ctx); err != nil {
				app.logger.Error(ctx, "server stopped", "server", name, "error", err)
				cancelFunc()
			}
		}()
	}

	wg.Wait()
	app.close()
	app.logger.Info(context.Background(), "App stopped")
}
