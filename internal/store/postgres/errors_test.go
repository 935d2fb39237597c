package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"ginsengcms/internal/core/apperr"
)

func TestTranslateSentinels(t *testing.T) {
	assert.NoError(t, translate("op", nil))
	assert.ErrorIs(t, translate("op", pgx.ErrNoRows), apperr.ErrNotFound)
	assert.ErrorIs(t, translate("op", &pgconn.PgError{Code: "23505"}), apperr.ErrDuplicate)

	// The RESTRICT constraints catch deletes that race past the
	// service-level reference count; they must still read as "in use".
	assert.ErrorIs(t, translate("op", &pgconn.PgError{Code: "23503"}), apperr.ErrInUse)

	wrapped := translate("category delete", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23503"}))
	assert.ErrorIs(t, wrapped, apperr.ErrInUse)
}

func TestTranslateUnknownErrorKeepsChain(t *testing.T) {
	cause := errors.New("connection reset")
	err := translate("product list", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "product list")
}
