package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/phrazzld/taskmanager-api/internal/config"
	"github.com/sethvargo/go-retry"
)

const (
	pingTimeout     = 5 * time.Second
	pingBaseBackoff = 500 * time.Millisecond
)

// openDatabase opens the connection pool and pings the database, retrying
// with exponential backoff while it comes up.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := pingWithRetry(ctx, db.PingContext, cfg.ConnectRetries, pingBaseBackoff, logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database at %s: %w", maskPassword(cfg.URL), err)
	}

	logger.Info("database connection established", slog.String("url", maskPassword(cfg.URL)))
	return db, nil
}

// pingWithRetry calls ping until it succeeds, retries are exhausted or ctx ends.
func pingWithRetry(
	ctx context.Context,
	ping func(context.Context) error,
	retries uint64,
	base time.Duration,
	logger *slog.Logger,
) error {
	backoff := retry.WithMaxRetries(retries, retry.NewExponential(base))

	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()

		if err := ping(pingCtx); err != nil {
			logger.Warn("database not reachable yet",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			return retry.RetryableError(err)
		}
		return nil
	})
}

// maskPassword hides the password component of a database URL for logging.
func maskPassword(dbURL string) string {
	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "[unparseable database url]"
	}

	if parsedURL.User != nil {
		if _, hasPassword := parsedURL.User.Password(); hasPassword {
			parsedURL.User = url.UserPassword(parsedURL.User.Username(), "****")
		}
	}

	return parsedURL.String()
}
