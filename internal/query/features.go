package query

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-tour-booking/models"
)

// Reserved parameter names that never become filters.
const (
	ParamPage   = "page"
	ParamSort   = "sort"
	ParamLimit  = "limit"
	ParamFields = "fields"
)

// Pagination defaults.
const (
	DefaultPage  uint64 = 1
	DefaultLimit uint64 = 100
)

var reserved = []string{ParamPage, ParamSort, ParamLimit, ParamFields}

var rangeOperators = map[string]models.Operator{
	"gte": models.OpGte,
	"gt":  models.OpGt,
	"lte": models.OpLte,
	"lt":  models.OpLt,
}

// Features accumulates a [models.Query] from request parameters.
//
//	q, err := query.New(schema, r.URL.Query()).Filter().Sort().LimitFields().Paginate().Query()
//
// The first failing step records its error; later steps become no-ops.
type Features struct {
	schema Schema
	params url.Values
	query  models.Query
	err    error
}

// New starts a builder over params. The descriptor begins with default
// pagination and no filters, sort or projection.
func New(schema Schema, params url.Values) *Features {
	return &Features{
		schema: schema,
		params: params,
		query: models.Query{
			Page:  DefaultPage,
			Limit: DefaultLimit,
		},
	}
}

// Parse runs every step in order.
func Parse(schema Schema, params url.Values) (models.Query, error) {
	return New(schema, params).Filter().Sort().LimitFields().Paginate().Query()
}

// Where adds predicates that do not come from the request, such as the
// tour of a nested review route.
func (f *Features) Where(filters ...models.Filter) *Features {
	f.query.Filters = append(f.query.Filters, filters...)
	return f
}

// Filter turns every non-reserved parameter into a predicate. Keys of the
// form field[gte|gt|lte|lt] become range predicates. When a key repeats,
// the last value wins unless the column is multi-valued, in which case the
// values form an IN predicate.
func (f *Features) Filter() *Features {
	if f.err != nil {
		return f
	}

	keys := make([]string, 0, len(f.params))
	for key := range f.params {
		if !slices.Contains(reserved, key) {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	for _, key := range keys {
		values := f.params[key]
		if len(values) == 0 {
			continue
		}

		name, op, ok := splitKey(key)
		if !ok {
			f.err = &FieldError{Field: key}
			return f
		}

		column, ok := f.schema.Column(name)
		if !ok || !column.Comparable() {
			f.err = &FieldError{Field: name}
			return f
		}

		if op == models.OpEq && column.MultiValue && len(values) > 1 {
			converted := make([]any, 0, len(values))
			for _, raw := range values {
				v, err := column.Convert(raw)
				if err != nil {
					f.err = err
					return f
				}
				converted = append(converted, v)
			}
			f.query.Filters = append(f.query.Filters, models.Filter{Field: name, Op: models.OpIn, Value: converted})
			continue
		}

		v, err := column.Convert(values[len(values)-1])
		if err != nil {
			f.err = err
			return f
		}
		f.query.Filters = append(f.query.Filters, models.Filter{Field: name, Op: op, Value: v})
	}

	return f
}

// splitKey separates "price[gte]" into the column and its operator.
func splitKey(key string) (string, models.Operator, bool) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return key, models.OpEq, true
	}
	if open == 0 || !strings.HasSuffix(key, "]") {
		return "", "", false
	}

	op, ok := rangeOperators[key[open+1:len(key)-1]]
	if !ok {
		return "", "", false
	}
	return key[:open], op, true
}

// Sort parses the comma-separated sort parameter; a leading "-" sorts
// descending. Without the parameter the schema's default sort applies.
func (f *Features) Sort() *Features {
	if f.err != nil {
		return f
	}

	raw := f.last(ParamSort)
	if raw == "" {
		raw = f.schema.DefaultSort
	}

	keys, err := parseSort(f.schema, raw)
	if err != nil {
		f.err = err
		return f
	}
	f.query.Sort = keys

	return f
}

func parseSort(schema Schema, raw string) ([]models.SortKey, error) {
	var keys []models.SortKey
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key := models.SortKey{Field: part}
		if strings.HasPrefix(part, "-") {
			key = models.SortKey{Field: part[1:], Desc: true}
		}

		column, ok := schema.Column(key.Field)
		if !ok || !column.Comparable() {
			return nil, &FieldError{Field: key.Field}
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// LimitFields parses the comma-separated fields parameter into the
// projection. Names prefixed with "-" are excluded from the default
// projection instead. The id column is always projected.
func (f *Features) LimitFields() *Features {
	if f.err != nil {
		return f
	}

	raw := f.last(ParamFields)
	if raw == "" {
		f.query.Fields = f.schema.Public()
		return f
	}

	var include, exclude []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name := strings.TrimPrefix(part, "-")
		column, ok := f.schema.Column(name)
		if !ok || !column.Public() {
			f.err = &FieldError{Field: name}
			return f
		}

		if strings.HasPrefix(part, "-") {
			exclude = append(exclude, name)
		} else if !slices.Contains(include, name) {
			include = append(include, name)
		}
	}

	if len(include) == 0 {
		fields := make([]string, 0, len(f.schema.Columns))
		for _, name := range f.schema.Public() {
			if name == "id" || !slices.Contains(exclude, name) {
				fields = append(fields, name)
			}
		}
		f.query.Fields = fields
		return f
	}

	if !slices.Contains(include, "id") {
		include = append([]string{"id"}, include...)
	}
	f.query.Fields = include

	return f
}

// Paginate reads page and limit. Missing, non-numeric or non-positive values
// fall back to the defaults.
func (f *Features) Paginate() *Features {
	if f.err != nil {
		return f
	}

	f.query.Page = positiveOr(f.last(ParamPage), DefaultPage)
	f.query.Limit = positiveOr(f.last(ParamLimit), DefaultLimit)

	return f
}

func positiveOr(raw string, def uint64) uint64 {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func (f *Features) last(key string) string {
	values := f.params[key]
	if len(values) == 0 {
		return ""
	}
	return values[len(values)-1]
}

// Query returns the accumulated descriptor or the first error.
func (f *Features) Query() (models.Query, error) {
	if f.err != nil {
		return models.Query{}, f.err
	}
	return f.query, nil
}
