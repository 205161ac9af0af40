package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/techmed/techmed/internal/platform/apperr"
)

// MapError translates low-level store errors into the application taxonomy.
// Repositories call this on every error path so that raw pg errors never
// cross the repository boundary: missing rows become ErrNotFound, constraint
// violations become ErrConflict, and everything else (timeouts, outages,
// protocol errors) becomes ErrStoreUnavailable with the cause preserved in
// the wrapped message for logging.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("unique constraint %s: %w", pgErr.ConstraintName, apperr.ErrConflict)
		case "23503":
			return fmt.Errorf("referenced resource does not exist: %w", apperr.ErrNotFound)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("store timeout: %w", apperr.ErrStoreUnavailable)
	}

	return fmt.Errorf("store: %v: %w", err, apperr.ErrStoreUnavailable)
}

// IsUniqueViolation reports whether err is a unique-constraint violation on
// the named constraint. Repositories use it to attach domain messages to
// conflicts the schema enforces (double bookings, duplicate registrations).
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}
