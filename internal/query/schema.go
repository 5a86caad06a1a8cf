package query

import (
	"strconv"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// Kind is the value type stored in a column.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindTime

	// KindJSON columns hold documents (lists of images or dates). They are
	// projected but cannot be filtered or sorted on.
	KindJSON
)

// Column describes one column of a resource table.
type Column struct {
	Name string
	Kind Kind

	// Hidden columns are never selected, filtered or sorted on unless a
	// repository asks for them explicitly (password hashes, reset tokens).
	Hidden bool

	// Internal columns are selected by repositories but cannot be used in
	// list parameters and are not part of the default projection.
	Internal bool

	// MultiValue columns turn repeated query parameters into an IN predicate.
	MultiValue bool

	// ReadOnly columns are assigned by the database and never written.
	ReadOnly bool
}

// Public reports whether the column may appear in list parameters.
func (c Column) Public() bool {
	return !c.Hidden && !c.Internal
}

// Comparable reports whether the column may be filtered or sorted on.
func (c Column) Comparable() bool {
	return c.Public() && c.Kind != KindJSON
}

// Convert parses raw into the column's Go type.
func (c Column) Convert(raw string) (any, error) {
	var (
		v   any
		err error
	)

	switch c.Kind {
	case KindInt:
		v, err = strconv.ParseInt(raw, 10, 64)
	case KindFloat:
		v, err = strconv.ParseFloat(raw, 64)
	case KindBool:
		v, err = strconv.ParseBool(raw)
	case KindTime:
		v, err = parseTime(raw)
	default:
		v = raw
	}

	if err != nil {
		return nil, &CastError{Field: c.Name, Value: raw}
	}
	return v, nil
}

func parseTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, raw)
}

// Schema is the column catalogue of a resource table.
type Schema struct {
	Table   string
	Columns []Column

	// Scope is ANDed into every statement that reads, updates or deletes
	// rows. Nil means no scope.
	Scope sq.Sqlizer

	// DefaultSort is used when a list request carries no sort parameter,
	// in the same syntax as the parameter ("-created_at").
	DefaultSort string
}

// Column looks up a column by name.
func (s Schema) Column(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Public returns the names of all columns usable in list parameters, which
// is also the default projection.
func (s Schema) Public() []string {
	return s.names(func(c Column) bool { return c.Public() })
}

// Returnable returns the names of every non-hidden column.
func (s Schema) Returnable() []string {
	return s.names(func(c Column) bool { return !c.Hidden })
}

// Writable returns the names of the columns written on insert.
func (s Schema) Writable() []string {
	return s.names(func(c Column) bool { return !c.ReadOnly })
}

// Patchable reports whether a request may modify the named column directly.
func (s Schema) Patchable(name string) bool {
	c, ok := s.Column(name)
	return ok && !c.ReadOnly && c.Public()
}

func (s Schema) names(keep func(Column) bool) []string {
	out := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		if keep(c) {
			out = append(out, c.Name)
		}
	}
	return out
}

// ParseID converts a path parameter into a resource id.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 1 {
		return 0, &CastError{Field: "id", Value: raw}
	}
	return id, nil
}
