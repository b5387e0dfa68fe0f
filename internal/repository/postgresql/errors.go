package postgresql

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation reports whether err is a unique constraint violation.
// target is filled so callers can inspect the constraint name.
func isUniqueViolation(err error, target **pgconn.PgError) bool {
	if errors.As(err, target) {
		return (*target).Code == "23505"
	}
	return false
}
