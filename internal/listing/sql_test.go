package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testColumns = map[string]string{
	"isPublished": "ispublished",
	"category":    "category",
	"createdAt":   "createdat",
	"id":          "id",
}

func TestWhereSQL(t *testing.T) {
	t.Run("empty predicate renders nothing", func(t *testing.T) {
		sql, args, next, err := WhereSQL(Predicate{}, testColumns, 1)

		require.NoError(t, err)
		assert.Empty(t, sql)
		assert.Empty(t, args)
		assert.Equal(t, 1, next)
	})

	t.Run("clauses render as AND-joined placeholders", func(t *testing.T) {
		p := Predicate{}.AndForced("isPublished", true).And("category", "Frontend")
		sql, args, next, err := WhereSQL(p, testColumns, 3)

		require.NoError(t, err)
		assert.Equal(t, " WHERE ispublished = $3 AND category = $4", sql)
		assert.Equal(t, []any{true, "Frontend"}, args)
		assert.Equal(t, 5, next)
	})

	t.Run("unmapped field fails instead of being dropped", func(t *testing.T) {
		_, _, _, err := WhereSQL(Predicate{}.And("secret", 1), testColumns, 1)
		require.Error(t, err)
	})
}

func TestOrderSQL(t *testing.T) {
	spec := OrderSpec{Keys: []SortKey{
		{Field: "createdAt", Descending: true},
		{Field: "id", Descending: true},
	}}
	sql, err := OrderSQL(spec, testColumns)

	require.NoError(t, err)
	assert.Equal(t, " ORDER BY createdat DESC, id DESC", sql)

	_, err = OrderSQL(OrderSpec{Keys: []SortKey{{Field: "nope"}}}, testColumns)
	require.Error(t, err)
}
