package query

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-tour-booking/models"
)

// Psql is the statement builder shared by all Postgres queries.
var Psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Build renders q as a SELECT over the schema's table.
func Build(schema Schema, q models.Query) sq.SelectBuilder {
	fields := q.Fields
	if len(fields) == 0 {
		fields = schema.Public()
	}

	return Apply(Psql.Select(fields...).From(schema.Table), schema, q)
}

// Apply refines base with the schema scope and every part of q.
// Rows are ordered by id after the requested keys so that pages are stable.
func Apply(base sq.SelectBuilder, schema Schema, q models.Query) sq.SelectBuilder {
	b := base
	if schema.Scope != nil {
		b = b.Where(schema.Scope)
	}

	for _, f := range q.Filters {
		b = b.Where(Predicate(f))
	}

	sortedByID := false
	for _, key := range q.Sort {
		if key.Field == "id" {
			sortedByID = true
		}
		if key.Desc {
			b = b.OrderBy(key.Field + " DESC")
		} else {
			b = b.OrderBy(key.Field + " ASC")
		}
	}
	if !sortedByID {
		b = b.OrderBy("id ASC")
	}

	if q.Limit > 0 {
		b = b.Limit(q.Limit).Offset(q.Skip())
	}

	return b
}

// Predicate converts a filter into a squirrel condition.
func Predicate(f models.Filter) sq.Sqlizer {
	switch f.Op {
	case models.OpGte:
		return sq.GtOrEq{f.Field: f.Value}
	case models.OpGt:
		return sq.Gt{f.Field: f.Value}
	case models.OpLte:
		return sq.LtOrEq{f.Field: f.Value}
	case models.OpLt:
		return sq.Lt{f.Field: f.Value}
	default:
		// sq.Eq renders a slice value as IN (...).
		return sq.Eq{f.Field: f.Value}
	}
}
