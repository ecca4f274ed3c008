// Package main implements the entry point for the task-list API server,
// which lets anonymous users register, receive an access token and manage
// their own list of tasks over HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/tasklist-api/internal/config"
	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	flag "github.com/spf13/pflag"
)

// options holds the command line flags.
type options struct {
	migrate string
	name    string
	verbose bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&opts.migrate, "migrate", "",
		"run a migration command (up|down|status|version|reset|create) and exit")
	fs.StringVar(&opts.name, "name", "", "name of the migration to create with --migrate=create")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log migration details")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.migrate == "create" && opts.name == "" {
		return options{}, fmt.Errorf("--name is required with --migrate=create")
	}
	return opts, nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

// run loads configuration, sets up logging and either executes a
// migration command or serves HTTP until a shutdown signal arrives.
func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"base_url", cfg.Server.BaseURL())

	if opts.migrate != "" {
		return runMigrations(cfg, opts.migrate, opts.verbose, opts.name)
	}

	db, err := setupAppDatabase(cfg, log)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(context.Background())
}
