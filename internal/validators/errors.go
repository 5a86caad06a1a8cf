package validators

import (
	"errors"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
)

// ValidationErrors collects every rule a record broke.
type ValidationErrors []string

func (e ValidationErrors) Error() string {
	return "Invalid input data. " + strings.Join(e, ". ")
}
