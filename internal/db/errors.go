package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Error is a failed query. Code carries the Postgres SQLSTATE when the
// driver reported one.
type Error struct {
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("database error (%s): %v", e.Code, e.Err)
	}
	return fmt.Sprintf("database error: %v", e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Classify wraps driver failures in *Error. Errors that are already
// classified, or that did not come from the driver, pass through untouched.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var dbErr *Error
	if errors.As(err, &dbErr) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &Error{Code: pgErr.Code, Err: err}
	}
	return err
}

// Wrap marks err as a database failure regardless of its origin.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	if c := Classify(err); c != err {
		return c
	}
	var dbErr *Error
	if errors.As(err, &dbErr) {
		return err
	}
	return &Error{Err: err}
}
