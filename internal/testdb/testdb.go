//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/taskmanager-api/internal/platform/postgres"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Image is the PostgreSQL image started for integration tests.
const Image = "postgres:16-alpine"

// TestTimeout bounds individual setup steps.
const TestTimeout = 30 * time.Second

// Database is a migrated test database backed by a container.
type Database struct {
	DB        *sql.DB
	DSN       string
	container *tcpostgres.PostgresContainer
}

// Start launches a PostgreSQL container, connects to it and applies all migrations.
func Start(ctx context.Context) (*Database, error) {
	container, err := tcpostgres.Run(ctx,
		Image,
		tcpostgres.WithDatabase("taskmanager_test"),
		tcpostgres.WithUsername("taskmanager"),
		tcpostgres.WithPassword("taskmanager"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(TestTimeout),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	d := &Database{container: container}

	d.DSN, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = d.Close(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	d.DB, err = sql.Open("pgx", d.DSN)
	if err != nil {
		_ = d.Close(ctx)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := postgres.Migrate(ctx, d.DB, postgres.MigrateUp, nil); err != nil {
		_ = d.Close(ctx)
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return d, nil
}

// Close closes the connection pool and terminates the container.
func (d *Database) Close(ctx context.Context) error {
	var errs []error
	if d.DB != nil {
		errs = append(errs, d.DB.Close())
	}
	if d.container != nil {
		errs = append(errs, d.container.Terminate(ctx))
	}
	return errors.Join(errs...)
}

// RunMain starts a database, stores its pool in *db, runs the package's
// tests and tears everything down. It returns the exit code for os.Exit.
func RunMain(m *testing.M, db **sql.DB) int {
	ctx := context.Background()

	d, err := Start(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "testdb: %v\n", err)
		return 1
	}
	defer func() {
		if err := d.Close(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "testdb: cleanup failed: %v\n", err)
		}
	}()

	*db = d.DB
	return m.Run()
}

// WithTx runs fn inside a transaction that is rolled back afterwards, even
// if fn fails the test or panics.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	defer func() {
		// sql.ErrTxDone is expected if fn already ended the transaction
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("warning: failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}
