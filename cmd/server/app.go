package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasklist-api/internal/config"
	"github.com/phrazzld/tasklist-api/internal/platform/postgres"
	"github.com/phrazzld/tasklist-api/internal/service"
	"github.com/phrazzld/tasklist-api/internal/service/auth"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// application holds the shared dependencies of the server so they can be
// wired once and cleaned up together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore  store.UserStore
	taskStore  store.TaskStore
	transactor store.Transactor

	tokens      auth.TokenAuthority
	userService service.UserService
	taskService service.TaskService
}

// newApplication wires the PostgreSQL stores into the services.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	return newApplicationWithStores(
		cfg,
		logger,
		db,
		postgres.NewPostgresUserStore(db, logger),
		postgres.NewPostgresTaskStore(db, logger),
		store.NewSQLTransactor(db),
	)
}

// newApplicationWithStores builds the services on top of the given stores.
// db may be nil when the stores do not need a connection.
func newApplicationWithStores(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	userStore store.UserStore,
	taskStore store.TaskStore,
	transactor store.Transactor,
) (*application, error) {
	app := &application{
		config:     cfg,
		logger:     logger,
		db:         db,
		userStore:  userStore,
		taskStore:  taskStore,
		transactor: transactor,
	}

	app.tokens = auth.NewTokenAuthority(userStore, logger)

	var err error
	app.userService, err = service.NewUserService(userStore, taskStore, transactor, app.tokens, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.taskService, err = service.NewTaskService(
		userStore,
		taskStore,
		transactor,
		cfg.Server.BaseURL(),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is canceled or a shutdown signal arrives.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases the resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
