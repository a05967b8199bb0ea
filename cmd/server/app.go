package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/emberhq/portfolio-api/internal/config"
	"github.com/emberhq/portfolio-api/internal/platform/postgres"
	"github.com/emberhq/portfolio-api/internal/service"
	"github.com/emberhq/portfolio-api/internal/service/auth"
	"github.com/emberhq/portfolio-api/internal/store"
	"github.com/emberhq/portfolio-api/internal/task"
)

// application holds the shared application dependencies so wiring and
// cleanup live in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore    store.UserStore
	productStore store.ProductStore
	orderStore   store.OrderStore
	postStore    store.BlogPostStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	orderService     service.OrderService
	blogService      service.BlogService

	taskRegistry *task.Registry
	taskRunner   *task.Runner
	taskPruner   *task.Pruner
}

// newApplication creates an application instance with all dependencies
// initialized and background workers started.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost)
	app.productStore = postgres.NewPostgresProductStore(db)
	app.orderStore = postgres.NewPostgresOrderStore(db)
	app.postStore = postgres.NewPostgresBlogPostStore(db)

	app.orderService, err = service.NewOrderService(db, app.orderStore, app.productStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create order service: %w", err)
	}

	app.blogService, err = service.NewBlogService(app.postStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create blog service: %w", err)
	}

	if err := setupTaskProcessing(app); err != nil {
		return nil, err
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown completes.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// setupTaskProcessing starts the background task workers and the pruner
// that evicts finished tasks after the configured retention window.
func setupTaskProcessing(app *application) error {
	app.taskRegistry = task.NewRegistry()
	app.taskRunner = task.NewRunner(app.taskRegistry, task.RunnerConfig{
		WorkerCount: app.config.Task.WorkerCount,
		QueueSize:   app.config.Task.QueueSize,
	}, app.logger)
	app.taskRunner.Start()

	retention := time.Duration(app.config.Task.RetentionMinutes) * time.Minute
	app.taskPruner = task.NewPruner(app.taskRegistry, retention, app.logger)
	if err := app.taskPruner.Start(); err != nil {
		return fmt.Errorf("failed to start task pruner: %w", err)
	}

	app.logger.Info("Task processing started",
		"worker_count", app.config.Task.WorkerCount,
		"queue_size", app.config.Task.QueueSize,
		"retention_minutes", app.config.Task.RetentionMinutes)
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.taskPruner != nil {
		app.taskPruner.Stop()
	}
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
