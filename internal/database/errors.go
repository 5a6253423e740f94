package database

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ErrNotFound is returned when a lookup by identifier matches no row.
// Lookups that are existence checks (FindBy...) return a nil entity instead.
var ErrNotFound = errors.New("not found")

// NotFoundError describes which entity was missing. It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Entity string
	ID     uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Entity, e.ID)
}

// Is reports whether target is ErrNotFound
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(entity string, id uuid.UUID) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ErrDuplicate is returned when an insert or update violates a UNIQUE constraint
var ErrDuplicate = errors.New("duplicate value")

// ErrReferenceMissing is returned when a foreign key points at a row that does not exist
var ErrReferenceMissing = errors.New("referenced row does not exist")

// PostgreSQL error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// translateError maps driver-level constraint violations onto package sentinels.
// Any other error is returned untouched.
func translateError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch string(pqErr.Code) {
	case pqUniqueViolation:
		return errors.Join(ErrDuplicate, err)
	case pqForeignKeyViolation:
		return errors.Join(ErrReferenceMissing, err)
	}
	return err
}
