package models

// Operator is a comparison used by a [Filter].
type Operator string

// Supported filter operators.
const (
	OpEq  Operator = "eq"
	OpGte Operator = "gte"
	OpGt  Operator = "gt"
	OpLte Operator = "lte"
	OpLt  Operator = "lt"
	OpIn  Operator = "in"
)

// Filter is a single predicate on a column. For [OpIn] Value is a []any.
type Filter struct {
	Field string
	Op    Operator
	Value any
}

// SortKey orders results by a column.
type SortKey struct {
	Field string
	Desc  bool
}

// Query is the parsed intent of a list request: which rows, in which order,
// which columns and which page.
type Query struct {
	Filters []Filter
	Sort    []SortKey
	Fields  []string

	// Page is 1-based. A zero Limit disables pagination.
	Page  uint64
	Limit uint64
}

// Skip returns the number of rows preceding the requested page.
func (q Query) Skip() uint64 {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}
