package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-tour-booking/models"
)

func TestBuild(t *testing.T) {
	q := models.Query{
		Filters: []models.Filter{
			{Field: "price", Op: models.OpGte, Value: 100.0},
			{Field: "difficulty", Op: models.OpIn, Value: []any{"easy", "medium"}},
		},
		Sort:   []models.SortKey{{Field: "price", Desc: true}, {Field: "name"}},
		Fields: []string{"id", "name", "price"},
		Page:   2,
		Limit:  10,
	}

	sqlQuery, args, err := Build(testSchema, q).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, name, price FROM tours WHERE secret_tour <> $1 AND price >= $2 AND difficulty IN ($3,$4) "+
			"ORDER BY price DESC, name ASC, id ASC LIMIT 10 OFFSET 10",
		sqlQuery)
	assert.Equal(t, []any{true, 100.0, "easy", "medium"}, args)
}

func TestBuild_DefaultsAndNoPagination(t *testing.T) {
	sqlQuery, args, err := Build(Schema{Table: "reviews", Columns: []Column{{Name: "id"}, {Name: "rating"}}}, models.Query{
		Sort: []models.SortKey{{Field: "id", Desc: true}},
	}).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, rating FROM reviews ORDER BY id DESC", sqlQuery)
	assert.Empty(t, args)
}

func TestPredicate(t *testing.T) {
	tests := []struct {
		op   models.Operator
		want string
	}{
		{op: models.OpEq, want: "price = ?"},
		{op: models.OpGte, want: "price >= ?"},
		{op: models.OpGt, want: "price > ?"},
		{op: models.OpLte, want: "price <= ?"},
		{op: models.OpLt, want: "price < ?"},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			sqlPart, args, err := Predicate(models.Filter{Field: "price", Op: tt.op, Value: 5}).ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.want, sqlPart)
			assert.Equal(t, []any{5}, args)
		})
	}
}
