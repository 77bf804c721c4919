package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/taskmanager-api/internal/store"
)

// SQLSTATE codes for the integrity constraints the schema declares.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// constraintErrors describes how each integrity violation is reported.
var constraintErrors = map[string]struct {
	sentinel error
	kind     string
}{
	uniqueViolationCode:     {store.ErrDuplicate, "unique violation"},
	foreignKeyViolationCode: {store.ErrInvalidEntity, "foreign key violation"},
	checkViolationCode:      {store.ErrInvalidEntity, "check constraint violation"},
	notNullViolationCode:    {store.ErrInvalidEntity, "not null violation"},
}

// MapError translates sql.ErrNoRows and PostgreSQL integrity violations into
// store sentinels. The driver error stays wrapped for logging; anything
// unrecognized is returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	pgErr := asPgError(err)
	if pgErr == nil {
		return err
	}
	mapping, ok := constraintErrors[pgErr.Code]
	if !ok {
		return err
	}

	// Not-null violations name the column; the others name the constraint.
	target := pgErr.ConstraintName
	if pgErr.Code == notNullViolationCode {
		target = pgErr.ColumnName
	}
	return fmt.Errorf("%w: %s (%s): %v", mapping.sentinel, mapping.kind, target, err)
}

// IsUniqueViolation reports whether err carries a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return hasCode(err, uniqueViolationCode)
}

// IsForeignKeyViolation reports whether err carries a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, foreignKeyViolationCode)
}

// CheckRowsAffected returns notFound when an UPDATE or DELETE touched no rows.
// Task statements are scoped by owner, so zero rows also covers another
// user's task.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return errors.New("nil result provided to CheckRowsAffected")
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func asPgError(err error) *pgconn.PgError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr
	}
	return nil
}

func hasCode(err error, code string) bool {
	pgErr := asPgError(err)
	return pgErr != nil && pgErr.Code == code
}
