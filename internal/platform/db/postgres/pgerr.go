package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	UniqueViolation      = "23505"
	ForeignKeyViolation  = "23503"
	SerializationFailure = "40001"
	RaiseException       = "P0001"
)

// PgError returns the postgres error in err's chain, if any.
func PgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsUniqueViolation reports a unique violation, optionally restricted to one constraint.
func IsUniqueViolation(err error, constraint string) bool {
	pgErr, ok := PgError(err)
	if !ok || pgErr.Code != UniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

func IsSerializationFailure(err error) bool {
	pgErr, ok := PgError(err)
	return ok && pgErr.Code == SerializationFailure
}
