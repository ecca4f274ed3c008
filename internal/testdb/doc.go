//go:build integration

// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database.
//
// Each test runs in its own transaction, which is rolled back when the test
// function returns, so tests can share one database without cleaning up
// after themselves:
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.SetupTestDatabaseSchema(t, db)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        users := postgres.NewPostgresUserStore(tx, nil)
//	        // ...
//	    })
//	}
//
// Tests are skipped when neither DATABASE_URL nor TASKLIST_TEST_DB_URL is set.
package testdb
