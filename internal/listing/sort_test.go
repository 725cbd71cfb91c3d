package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mquinde/devfolio/internal/platform/apperr"
)

func TestResolveSort(t *testing.T) {
	cfg := projectTestConfig()

	t.Run("defaults to createdAt desc with id tie-break", func(t *testing.T) {
		spec, err := ResolveSort(cfg, "", "")

		require.NoError(t, err)
		assert.Equal(t, []SortKey{
			{Field: "createdAt", Descending: true},
			{Field: "id", Descending: true},
		}, spec.Keys)
	})

	t.Run("non-recency sort gets createdAt then id appended", func(t *testing.T) {
		spec, err := ResolveSort(cfg, "views", "desc")

		require.NoError(t, err)
		assert.Equal(t, []SortKey{
			{Field: "views", Descending: true},
			{Field: "createdAt", Descending: true},
			{Field: "id", Descending: true},
		}, spec.Keys)
	})

	t.Run("ascending order only flips the primary key", func(t *testing.T) {
		spec, err := ResolveSort(cfg, "title", "asc")

		require.NoError(t, err)
		assert.Equal(t, []SortKey{
			{Field: "title", Descending: false},
			{Field: "createdAt", Descending: true},
			{Field: "id", Descending: true},
		}, spec.Keys)
	})

	t.Run("unknown sort field is rejected", func(t *testing.T) {
		_, err := ResolveSort(cfg, "crated_at", "")

		require.Error(t, err)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "INVALID_SORT_FIELD", appErr.Code)
	})

	t.Run("unknown order is rejected", func(t *testing.T) {
		_, err := ResolveSort(cfg, "createdAt", "descending")

		require.Error(t, err)
		assert.Equal(t, "INVALID_SORT_ORDER", apperr.As(err).Code)
	})

	t.Run("identical input yields identical spec", func(t *testing.T) {
		first, err := ResolveSort(cfg, "likes", "asc")
		require.NoError(t, err)
		second, err := ResolveSort(cfg, "likes", "asc")
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestFixedOrders(t *testing.T) {
	assert.Equal(t, []SortKey{
		{Field: "priority", Descending: true},
		{Field: "createdAt", Descending: true},
		{Field: "id", Descending: true},
	}, FeaturedOrder().Keys)

	assert.Equal(t, []SortKey{
		{Field: "sortOrder", Descending: false},
		{Field: "proficiency", Descending: true},
		{Field: "id", Descending: true},
	}, DisplayOrder().Keys)
}
