package postgres

import "embed"

// MigrationsDir is the directory inside Migrations that holds the goose files.
const MigrationsDir = "migrations"

// Migrations holds the goose SQL migrations for the schema used by this package.
//
//go:embed migrations/*.sql
var Migrations embed.FS
