package query

import (
	"errors"
	"fmt"
)

// ErrUnknownField is matched by every [FieldError].
var ErrUnknownField = errors.New("unknown field")

// CastError reports a value that cannot be converted to its column's type.
type CastError struct {
	Field string
	Value string
}

func (e *CastError) Error() string {
	return fmt.Sprintf("Invalid %s: %s", e.Field, e.Value)
}

// FieldError reports a parameter naming a column that does not exist or
// may not be used in queries.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("Invalid field: %s", e.Field)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrUnknownField
}
