package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes the booking path cares about.
const (
	pgExclusionViolation = "23P01"
	pgUndefinedFunction  = "42883"
)

// IsExclusionConflict reports whether the error is an exclusion
// constraint violation on the bookings table, i.e. a concurrent insert
// won the slot.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgExclusionViolation
	}
	return false
}

// IsUndefinedFunction reports whether the error means a SQL function
// (such as check_booking_conflict) has not been deployed yet.
func IsUndefinedFunction(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedFunction
	}
	return false
}
