package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist-api/internal/ciutil"
	"github.com/phrazzld/tasklist-api/internal/config"
	"github.com/phrazzld/tasklist-api/internal/platform/postgres"
	"github.com/pressly/goose/v3"
)

// migrationsSourceDir is where --migrate=create writes new files, relative
// to the project root.
const migrationsSourceDir = "internal/platform/postgres/migrations"

// migrationCommands lists the goose commands accepted by --migrate.
var migrationCommands = map[string]bool{
	"up":      true,
	"down":    true,
	"status":  true,
	"version": true,
	"reset":   true,
	"create":  true,
}

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at error level and does not exit; the error is returned to main.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// runMigrations executes a goose command against the configured database.
// The schema is read from the migrations embedded in the postgres package.
func runMigrations(cfg *config.Config, command string, verbose bool, name string) error {
	if !migrationCommands[command] {
		return fmt.Errorf("unknown migration command %q", command)
	}

	log := slog.Default().With(
		"correlation_id", uuid.New().String(),
		"component", "migrations",
		"command", command,
	)
	goose.SetLogger(&slogGooseLogger{logger: log})
	goose.SetVerbose(verbose)

	if command == "create" {
		// create writes to the source tree, not the embedded copy
		root, err := ciutil.FindProjectRoot(log)
		if err != nil {
			return fmt.Errorf("failed to locate migrations directory: %w", err)
		}
		dir := filepath.Join(root, migrationsSourceDir)
		if err := goose.Create(nil, dir, name, "sql"); err != nil {
			return fmt.Errorf("failed to create migration %q: %w", name, err)
		}
		log.Info("migration created", "name", name, "dir", dir)
		return nil
	}

	start := time.Now()
	log.Info("starting migration operation", "database", maskDatabaseURL(cfg.Database.URL))

	db, err := openDatabase(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database connection", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	goose.SetBaseFS(postgres.Migrations)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Run(command, db, postgres.MigrationsDir); err != nil {
		log.Error("migration failed", "error", err)
		return fmt.Errorf("migration command %q failed: %w", command, err)
	}

	log.Info("migration operation completed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// maskDatabaseURL hides the password of a database URL for logging.
func maskDatabaseURL(dbURL string) string {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}
	if parsed.User != nil {
		if _, hasPassword := parsed.User.Password(); hasPassword {
			parsed.User = url.UserPassword(parsed.User.Username(), "xxxxx")
		}
	}
	return parsed.String()
}
