package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/taskmanager-api/internal/api"
	apiMiddleware "github.com/phrazzld/taskmanager-api/internal/api/middleware"
	"github.com/phrazzld/taskmanager-api/internal/config"
	"github.com/phrazzld/taskmanager-api/internal/platform/postgres"
	"github.com/phrazzld/taskmanager-api/internal/service"
	"github.com/phrazzld/taskmanager-api/internal/service/auth"
	"github.com/phrazzld/taskmanager-api/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger   *slog.Logger
	db       *sql.DB
	clock    func() time.Time
	registry *prometheus.Registry

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	taskStore store.TaskStore

	// Authentication pipeline
	hasher      auth.PasswordHasher
	tokenCodec  auth.TokenCodec
	verifier    *auth.CredentialVerifier
	authService *auth.Service

	// Service interfaces
	taskService service.TaskService

	// HTTP layer
	authMiddleware *apiMiddleware.AuthMiddleware
	authHandler    *api.AuthHandler
	taskHandler    *api.TaskHandler
}

// newApplication creates a new application instance backed by PostgreSQL stores.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:    cfg,
		logger:    logger,
		db:        db,
		clock:     time.Now,
		userStore: postgres.NewPostgresUserStore(db, logger),
		taskStore: postgres.NewPostgresTaskStore(db, logger),
	}

	if err := app.initServices(); err != nil {
		return nil, err
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// initServices assembles everything above the stores, leaf first. Each
// component is constructed once and shared read-only afterwards.
func (app *application) initServices() error {
	var err error

	app.hasher = auth.NewBcryptHasher(app.config.Auth.BcryptCost)

	app.tokenCodec, err = auth.NewHMACTokenCodec(app.config.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize token codec: %w", err)
	}
	app.logger.Info("token codec initialized",
		slog.Int("token_lifetime_minutes", app.config.Auth.TokenLifetimeMinutes))

	app.verifier, err = auth.NewCredentialVerifier(app.userStore, app.hasher, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create credential verifier: %w", err)
	}

	app.authService, err = auth.NewService(app.userStore, app.hasher, app.verifier, app.tokenCodec, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create auth service: %w", err)
	}

	app.taskService, err = service.NewTaskService(app.taskStore, app.clock, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create task service: %w", err)
	}

	app.authMiddleware = apiMiddleware.NewAuthMiddleware(app.tokenCodec, app.userStore, app.clock, app.logger)
	app.authHandler = api.NewAuthHandler(app.authService, app.clock, app.logger)
	app.taskHandler = api.NewTaskHandler(app.taskService, app.logger)

	app.registry, err = newRegistry()
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	return nil
}

// newRegistry creates a registry holding the runtime and application metrics.
func newRegistry() (*prometheus.Registry, error) {
	registry := prometheus.NewRegistry()

	cs := []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	cs = append(cs, auth.Collectors()...)
	cs = append(cs, apiMiddleware.Collectors()...)

	for _, c := range cs {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns when ctx is cancelled and the server has shut down.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.Any("error", err))
		}
	}

	app.logger.Info("application shutdown completed")
}
