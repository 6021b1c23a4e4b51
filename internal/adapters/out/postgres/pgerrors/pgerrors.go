// Package pgerrors classifies postgres driver errors into the application
// error taxonomy. Repositories translate low-level failures here so that
// callers can branch on errs sentinels instead of SQLSTATEs.
package pgerrors

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

const uniqueViolation = "23505"

// Transient SQLSTATEs worth retrying: serialization failures, deadlocks and
// an admin-initiated shutdown. Connection problems (class 08) are matched by
// prefix below.
var transientStates = map[string]bool{
	"40001": true,
	"40P01": true,
	"57P01": true,
}

// IsUniqueViolation reports whether err is a postgres unique constraint
// violation. The caller maps it to the duplicate it was guarding against.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Classify wraps transient infrastructure failures as
// errs.ErrTransientStoreFailure and returns every other error unchanged.
// Domain decisions never pass through here.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return errs.NewTransientStoreFailureErrorWithCause(op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if transientStates[pgErr.Code] || strings.HasPrefix(pgErr.Code, "08") {
			return errs.NewTransientStoreFailureErrorWithCause(op, err)
		}
		return err
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return errs.NewTransientStoreFailureErrorWithCause(op, err)
	}

	return err
}
