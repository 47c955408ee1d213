package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	// ErrUnknownReference is a write pointing at a row that does not exist.
	ErrUnknownReference = errors.New("unknown reference")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// ConflictError names the unique constraint a write ran into.
type ConflictError struct {
	Constraint string
}

func (e *ConflictError) Error() string { return "conflict on " + e.Constraint }
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

func asConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &ConflictError{Constraint: pgErr.ConstraintName}
	}
	return nil
}

type ForeignKeyError struct {
	Constraint string
}

func (e *ForeignKeyError) Error() string { return "foreign key violation on " + e.Constraint }
func (e *ForeignKeyError) Is(target error) bool { return target == ErrUnknownReference }

func asForeignKey(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return &ForeignKeyError{Constraint: pgErr.ConstraintName}
	}
	return nil
}
