package query

import (
	"errors"
	"net/url"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-tour-booking/models"
)

var testSchema = Schema{
	Table: "tours",
	Columns: []Column{
		{Name: "id", Kind: KindInt, ReadOnly: true},
		{Name: "name", Kind: KindString},
		{Name: "duration", Kind: KindInt, MultiValue: true},
		{Name: "difficulty", Kind: KindString, MultiValue: true},
		{Name: "price", Kind: KindFloat, MultiValue: true},
		{Name: "summary", Kind: KindString},
		{Name: "secret_tour", Kind: KindBool},
		{Name: "secret_code", Kind: KindString, Hidden: true},
		{Name: "created_at", Kind: KindTime, ReadOnly: true},
		{Name: "version", Kind: KindInt, Internal: true, ReadOnly: true},
	},
	Scope:       sq.NotEq{"secret_tour": true},
	DefaultSort: "-created_at",
}

func TestFilter_ExcludesReservedKeys(t *testing.T) {
	params := url.Values{
		"page":     {"2"},
		"sort":     {"price"},
		"limit":    {"10"},
		"fields":   {"name"},
		"duration": {"5"},
	}

	q, err := New(testSchema, params).Filter().Query()
	require.NoError(t, err)

	require.Len(t, q.Filters, 1)
	assert.Equal(t, models.Filter{Field: "duration", Op: models.OpEq, Value: int64(5)}, q.Filters[0])
}

func TestFilter_RangeOperators(t *testing.T) {
	params := url.Values{
		"price[gte]":    {"100.5"},
		"price[lt]":     {"500"},
		"duration[gt]":  {"3"},
		"duration[lte]": {"10"},
	}

	q, err := New(testSchema, params).Filter().Query()
	require.NoError(t, err)

	// keys are processed in lexical order
	assert.Equal(t, []models.Filter{
		{Field: "duration", Op: models.OpGt, Value: int64(3)},
		{Field: "duration", Op: models.OpLte, Value: int64(10)},
		{Field: "price", Op: models.OpGte, Value: 100.5},
		{Field: "price", Op: models.OpLt, Value: float64(500)},
	}, q.Filters)
}

func TestFilter_RepeatedKeys(t *testing.T) {
	tests := []struct {
		name   string
		params url.Values
		want   models.Filter
	}{
		{
			name:   "whitelisted column becomes IN",
			params: url.Values{"difficulty": {"easy", "medium"}},
			want:   models.Filter{Field: "difficulty", Op: models.OpIn, Value: []any{"easy", "medium"}},
		},
		{
			name:   "other column keeps last value",
			params: url.Values{"name": {"first", "second"}},
			want:   models.Filter{Field: "name", Op: models.OpEq, Value: "second"},
		},
		{
			name:   "range on whitelisted column keeps last value",
			params: url.Values{"price[gte]": {"10", "20"}},
			want:   models.Filter{Field: "price", Op: models.OpGte, Value: float64(20)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := New(testSchema, tt.params).Filter().Query()
			require.NoError(t, err)
			require.Len(t, q.Filters, 1)
			assert.Equal(t, tt.want, q.Filters[0])
		})
	}
}

func TestFilter_Errors(t *testing.T) {
	tests := []struct {
		name     string
		params   url.Values
		wantCast bool
		wantMsg  string
	}{
		{name: "unknown column", params: url.Values{"colour": {"red"}}, wantMsg: "Invalid field: colour"},
		{name: "hidden column", params: url.Values{"secret_code": {"x"}}, wantMsg: "Invalid field: secret_code"},
		{name: "internal column", params: url.Values{"version": {"1"}}, wantMsg: "Invalid field: version"},
		{name: "unknown operator", params: url.Values{"price[ne]": {"1"}}, wantMsg: "Invalid field: price[ne]"},
		{name: "bad int", params: url.Values{"duration": {"five"}}, wantCast: true, wantMsg: "Invalid duration: five"},
		{name: "bad bool", params: url.Values{"secret_tour": {"maybe"}}, wantCast: true, wantMsg: "Invalid secret_tour: maybe"},
		{name: "bad value inside IN", params: url.Values{"price": {"1", "x"}}, wantCast: true, wantMsg: "Invalid price: x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(testSchema, tt.params).Filter().Query()
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())

			var castErr *CastError
			assert.Equal(t, tt.wantCast, errors.As(err, &castErr))
			assert.Equal(t, !tt.wantCast, errors.Is(err, ErrUnknownField))
		})
	}
}

func TestWhere_AddsScopedFilters(t *testing.T) {
	q, err := New(testSchema, url.Values{"name": {"x"}}).
		Where(models.Filter{Field: "tour_id", Op: models.OpEq, Value: int64(7)}).
		Filter().
		Query()
	require.NoError(t, err)

	assert.Equal(t, []models.Filter{
		{Field: "tour_id", Op: models.OpEq, Value: int64(7)},
		{Field: "name", Op: models.OpEq, Value: "x"},
	}, q.Filters)
}

func TestSort(t *testing.T) {
	tests := []struct {
		name   string
		params url.Values
		want   []models.SortKey
	}{
		{
			name:   "descending then ascending",
			params: url.Values{"sort": {"-price,duration"}},
			want:   []models.SortKey{{Field: "price", Desc: true}, {Field: "duration"}},
		},
		{
			name:   "default sort",
			params: url.Values{},
			want:   []models.SortKey{{Field: "created_at", Desc: true}},
		},
		{
			name:   "blank entries skipped",
			params: url.Values{"sort": {" name , ,-id"}},
			want:   []models.SortKey{{Field: "name"}, {Field: "id", Desc: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := New(testSchema, tt.params).Sort().Query()
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Sort)
		})
	}
}

func TestSort_UnknownField(t *testing.T) {
	_, err := New(testSchema, url.Values{"sort": {"-popularity"}}).Sort().Query()
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestFilterAndSort_DocumentColumnsRejected(t *testing.T) {
	schema := testSchema
	schema.Columns = append(append([]Column(nil), testSchema.Columns...), Column{Name: "images", Kind: KindJSON})

	tests := []struct {
		name   string
		params url.Values
	}{
		{name: "filter", params: url.Values{"images": {"x"}}},
		{name: "range filter", params: url.Values{"images[gte]": {"x"}}},
		{name: "sort", params: url.Values{"sort": {"-images"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(schema, tt.params).Filter().Sort().Query()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnknownField)
			assert.Equal(t, "Invalid field: images", err.Error())
		})
	}

	q, err := New(schema, url.Values{"fields": {"name,images"}}).LimitFields().Query()
	require.NoError(t, err)
	assert.Contains(t, q.Fields, "images")
}

func TestLimitFields(t *testing.T) {
	tests := []struct {
		name   string
		params url.Values
		want   []string
	}{
		{
			name:   "default excludes hidden and internal columns",
			params: url.Values{},
			want:   []string{"id", "name", "duration", "difficulty", "price", "summary", "secret_tour", "created_at"},
		},
		{
			name:   "inclusion always projects id",
			params: url.Values{"fields": {"name,price,name"}},
			want:   []string{"id", "name", "price"},
		},
		{
			name:   "exclusion",
			params: url.Values{"fields": {"-summary,-created_at"}},
			want:   []string{"id", "name", "duration", "difficulty", "price", "secret_tour"},
		},
		{
			name:   "id cannot be excluded",
			params: url.Values{"fields": {"-id,-summary"}},
			want:   []string{"id", "name", "duration", "difficulty", "price", "secret_tour", "created_at"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := New(testSchema, tt.params).LimitFields().Query()
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Fields)
		})
	}
}

func TestLimitFields_HiddenColumnRejected(t *testing.T) {
	_, err := New(testSchema, url.Values{"fields": {"name,secret_code"}}).LimitFields().Query()
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		params    url.Values
		wantPage  uint64
		wantLimit uint64
		wantSkip  uint64
	}{
		{name: "page 2 limit 10", params: url.Values{"page": {"2"}, "limit": {"10"}}, wantPage: 2, wantLimit: 10, wantSkip: 10},
		{name: "defaults", params: url.Values{}, wantPage: 1, wantLimit: 100, wantSkip: 0},
		{name: "non numeric falls back", params: url.Values{"page": {"abc"}, "limit": {"-5"}}, wantPage: 1, wantLimit: 100, wantSkip: 0},
		{name: "zero falls back", params: url.Values{"page": {"0"}, "limit": {"0"}}, wantPage: 1, wantLimit: 100, wantSkip: 0},
		{name: "page 3 default limit", params: url.Values{"page": {"3"}}, wantPage: 3, wantLimit: 100, wantSkip: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := New(testSchema, tt.params).Paginate().Query()
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantLimit, q.Limit)
			assert.Equal(t, tt.wantSkip, q.Skip())
		})
	}
}

func TestParse_FirstErrorStopsChain(t *testing.T) {
	params := url.Values{"duration": {"x"}, "sort": {"nope"}}

	_, err := Parse(testSchema, params)

	var castErr *CastError
	require.ErrorAs(t, err, &castErr)
	assert.Equal(t, "duration", castErr.Field)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"abc", "0", "-3", ""} {
		_, err := ParseID(raw)
		var castErr *CastError
		require.ErrorAs(t, err, &castErr, raw)
		assert.Equal(t, "Invalid id: "+raw, err.Error())
	}
}
