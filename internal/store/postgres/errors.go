package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"ginsengcms/internal/core/apperr"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// translate maps driver errors onto the shared sentinels so services
// and handlers never depend on pgx error types. The original error is
// kept in the chain for logging. Foreign-key violations surface as
// ErrInUse: the ON DELETE RESTRICT constraints are the backstop for
// deletes racing past the service-level reference counts.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%s: %w", op, apperr.ErrDuplicate)
		case foreignKeyViolationCode:
			return fmt.Errorf("%s: %w", op, apperr.ErrInUse)
		}
	}
	return fmt.Errorf("%s: query failed: %w", op, err)
}
