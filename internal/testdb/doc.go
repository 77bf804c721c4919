//go:build integration

// Package testdb provides utilities for database integration tests.
//
// Start launches a disposable PostgreSQL container and applies the embedded
// migrations. WithTx then runs each test inside a transaction that is always
// rolled back, so tests can share one database without seeing each other's
// rows:
//
//	func TestMain(m *testing.M) {
//	    os.Exit(testdb.RunMain(m, &db))
//	}
//
//	func TestSomething(t *testing.T) {
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        users := postgres.NewPostgresUserStore(tx, nil)
//	        ...
//	    })
//	}
//
// A failed statement aborts the surrounding transaction in PostgreSQL, so a
// test that expects a constraint violation should run in its own WithTx.
package testdb
