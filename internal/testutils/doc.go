// Package testutils provides test doubles that are too stateful for the
// mocks package:
//
//   - MemoryStore, an in-memory Resource Store implementing store.UserStore,
//     store.TaskStore and store.Transactor with real rollback, for driving
//     the full HTTP stack in tests without PostgreSQL.
//   - TestSlogHandler, a slog.Handler that keeps log records in memory so
//     tests can assert on what was logged.
package testutils
