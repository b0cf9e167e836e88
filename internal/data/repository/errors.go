package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate is returned when an insert or update hits one of the
// partial unique indexes guarding reservation invariants. Callers map
// it to a conflict.
var ErrDuplicate = errors.New("duplicate row")

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
