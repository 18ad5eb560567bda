package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgDuplicateKeyCode = "23505"
	pgForeignKeyCode   = "23503"
)

var (
	// ErrTimeout reports that the store did not answer within StoreTimeout.
	// The statement may still complete server-side.
	ErrTimeout = errors.New("data store did not respond in time")
	// ErrUpstream wraps any other failure reported by the store.
	ErrUpstream = errors.New("data store request failed")
)

// MapError translates database errors to domain errors.
// sql.ErrNoRows and foreign key violations (23503) map to notFoundErr,
// unique violations (23505) to duplicateErr, and deadline expiry to ErrTimeout.
// Everything else is wrapped with ErrUpstream.
func MapError(err error, notFoundErr, duplicateErr error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgDuplicateKeyCode:
			return duplicateErr
		case pgForeignKeyCode:
			return notFoundErr
		}
	}

	return Upstream(err)
}

// Upstream classifies err as ErrTimeout or ErrUpstream for queries where no
// domain mapping applies, such as counts and listings.
func Upstream(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUpstream) || errors.Is(err, ErrTimeout) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}

// IsForeignKeyViolation reports whether err is a foreign key violation
// (23503), which callers usually surface as a validation failure on the
// referencing field.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyCode
}

// IsUniqueViolation reports whether err is a unique violation (23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgDuplicateKeyCode
}

// Constraint returns the name of the constraint err violated, or "" when
// err did not come from a constraint check.
func Constraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// IsStoreFailure reports whether err originated from the store rather than
// from domain validation.
func IsStoreFailure(err error) bool {
	return errors.Is(err, ErrUpstream) || errors.Is(err, ErrTimeout)
}
