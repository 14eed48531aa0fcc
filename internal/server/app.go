// Package server initializes and runs the SnowballR mock backend. It builds
// the store and blob backend, imports example data, and runs the gRPC API
// next to the HTTP metrics endpoint until a shutdown signal arrives.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/logging"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/blob"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/config"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/httpserver"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/observability"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/seed"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/services"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/store"

	gs "github.com/SE-UUlm/snowballr-mock-backend/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	sessions *services.SessionService
	service  *services.Service
	metrics  *observability.Metrics
}

// NewApp wires every component from c and imports the startup data.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	for _, p := range c.Problems {
		logger.Error(ctx, "Invalid configuration value, using default", "error", p.Error())
	}

	pdfs, err := newBlobStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("pdf storage init error: %w", err)
	}

	s := store.NewMemory()
	sessions := services.NewSessionService(s, c)
	svc := services.NewService(s, pdfs)

	app := &App{
		config:   c,
		logger:   logger,
		sessions: sessions,
		service:  svc,
		metrics:  observability.NewMetrics(),
	}

	if err := app.bootstrap(ctx, s); err != nil {
		return nil, err
	}
	return app, nil
}

func newBlobStore(ctx context.Context, c *config.Config) (blob.Store, error) {
	switch c.PDFStorage {
	case config.PDFStorageMemory, "":
		return blob.NewMemory(), nil
	case config.PDFStorageS3:
		return blob.NewS3(ctx, c)
	default:
		return nil, fmt.Errorf("unknown pdf storage %q", c.PDFStorage)
	}
}

func (app *App) bootstrap(ctx context.Context, s store.Store) error {
	if app.config.EnableDummyAdmin {
		user, err := seed.DummyAdmin(ctx, s, app.sessions)
		if err != nil {
			return fmt.Errorf("dummy admin: %w", err)
		}
		app.logger.Info(ctx, "Registered dummy admin", "email", user.Email, "id", user.ID)
	}

	if app.config.ExampleDataFile != "" {
		data, err := seed.Load(app.config.ExampleDataFile)
		if err != nil {
			return fmt.Errorf("load example data: %w", err)
		}
		if err := seed.Import(ctx, s, app.sessions, data); err != nil {
			return fmt.Errorf("import example data: %w", err)
		}
		app.logger.Info(ctx, "Imported example data",
			"file", app.config.ExampleDataFile,
			"users", len(data.Users),
			"papers", len(data.Papers),
			"projects", len(data.Projects))
	}
	return nil
}

// initSignalHandler cancels the run on SIGINT, SIGTERM or SIGQUIT. The
// returned channel is closed once the watcher has stopped listening, which
// also happens when ctx ends first.
func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) <-chan struct{} {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
	return done
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.sessions, app.service, app.metrics, app.config.ResponseDelay)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpserver.NewServer(app.config.EndpointAddrHTTP, app.logger, app.metrics.Registry)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a shutdown signal arrives or one of the
// servers fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	signalsDone := app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
	cancelFunc()
	<-signalsDone

	app.logger.Info(ctx, "App stopped")
}
