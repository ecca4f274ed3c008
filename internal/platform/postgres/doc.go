// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package, and the goose
// migrations that create the schema they rely on.
//
// Stores accept a store.DBTX so the same code runs against a *sql.DB or
// inside a caller-managed *sql.Tx (see WithTx). Connections are opened with
// the pgx stdlib driver under the name "pgx".
package postgres
