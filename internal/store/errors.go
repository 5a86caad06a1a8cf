package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNotFound is returned when the requested row does not exist or is
	// hidden by the resource scope (secret tours, inactive users).
	ErrNotFound = errors.New("No document found with that ID")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)

// DuplicateKeyError is returned when a write violates a unique constraint.
type DuplicateKeyError struct {
	Constraint string
	Field      string
	Value      string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("Duplicate field value: %s. Please use another value!", e.Value)
}

// ConstraintError is returned when a write violates a check, not-null or
// foreign key constraint.
type ConstraintError struct {
	Constraint string
	Column     string
}

func (e *ConstraintError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("value of %s violates %s", e.Column, e.Constraint)
	}
	return fmt.Sprintf("value violates %s", e.Constraint)
}
