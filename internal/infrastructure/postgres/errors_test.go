package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/orgauth-service/internal/domain/repository"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError(nil))
	assert.ErrorIs(t, mapError(sql.ErrNoRows), repository.ErrNotFound)

	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"}
	err := mapError(unique)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
	assert.Contains(t, err.Error(), "users_email_key")

	fk := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, Detail: "Key (user_id) is not present"}
	assert.ErrorIs(t, mapError(fk), repository.ErrNotFound)

	other := &pgconn.PgError{Code: pgerrcode.DeadlockDetected, Message: "deadlock"}
	err = mapError(other)
	assert.ErrorIs(t, err, other)
	assert.Contains(t, err.Error(), pgerrcode.DeadlockDetected)

	assert.ErrorIs(t, mapError(errors.New("UNIQUE constraint failed: users.email")), repository.ErrDuplicate)

	plain := errors.New("connection reset")
	err = mapError(plain)
	assert.ErrorIs(t, err, plain)
	assert.Contains(t, err.Error(), "db error")
}
