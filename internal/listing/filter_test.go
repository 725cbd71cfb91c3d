package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mquinde/devfolio/internal/platform/apperr"
	"github.com/mquinde/devfolio/internal/platform/sec"
)

func projectTestConfig() Config {
	return Config{
		Kind:         KindProject,
		DefaultLimit: 10,
		DefaultSort:  "createdAt",
		FilterFields: map[string]FieldType{
			"status":      FieldString,
			"category":    FieldString,
			"priority":    FieldInt,
			"featured":    FieldBool,
			"isPublished": FieldBool,
		},
		SortFields: map[string]bool{
			"createdAt": true, "updatedAt": true, "priority": true,
			"views": true, "likes": true, "title": true,
		},
	}
}

func TestBuildPredicate(t *testing.T) {
	cfg := projectTestConfig()

	t.Run("empty filters return baseline unchanged", func(t *testing.T) {
		base := BasePredicate(KindProject, sec.RoleAnonymous)
		p, err := BuildPredicate(cfg, base, nil)

		require.NoError(t, err)
		assert.Equal(t, base, p)
	})

	t.Run("allowed filters are appended after the baseline", func(t *testing.T) {
		base := BasePredicate(KindProject, sec.RoleAnonymous)
		p, err := BuildPredicate(cfg, base, map[string]string{
			"category": "Frontend",
			"featured": "true",
		})

		require.NoError(t, err)
		require.Len(t, p.Clauses, 3)
		assert.Equal(t, Clause{Field: "isPublished", Value: true, Forced: true}, p.Clauses[0])
		// Caller clauses follow in field order.
		assert.Equal(t, Clause{Field: "category", Value: "Frontend"}, p.Clauses[1])
		assert.Equal(t, Clause{Field: "featured", Value: true}, p.Clauses[2])
	})

	t.Run("unknown field fails the whole request", func(t *testing.T) {
		_, err := BuildPredicate(cfg, Predicate{}, map[string]string{
			"category": "Frontend",
			"password": "x",
		})

		require.Error(t, err)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "INVALID_FILTER_FIELD", appErr.Code)
		assert.Equal(t, 400, appErr.HTTPStatus)
	})

	t.Run("caller cannot override a forced clause", func(t *testing.T) {
		base := BasePredicate(KindProject, sec.RoleUser)
		p, err := BuildPredicate(cfg, base, map[string]string{"isPublished": "false"})

		require.NoError(t, err)
		require.Len(t, p.Clauses, 1)
		assert.Equal(t, Clause{Field: "isPublished", Value: true, Forced: true}, p.Clauses[0])
	})

	t.Run("admin can filter on isPublished directly", func(t *testing.T) {
		base := BasePredicate(KindProject, sec.RoleAdmin)
		p, err := BuildPredicate(cfg, base, map[string]string{"isPublished": "false"})

		require.NoError(t, err)
		require.Len(t, p.Clauses, 1)
		assert.Equal(t, Clause{Field: "isPublished", Value: false}, p.Clauses[0])
	})

	t.Run("bool coercion rejects non-boolean text", func(t *testing.T) {
		_, err := BuildPredicate(cfg, Predicate{}, map[string]string{"featured": "yes"})

		require.Error(t, err)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("int coercion", func(t *testing.T) {
		p, err := BuildPredicate(cfg, Predicate{}, map[string]string{"priority": "7"})
		require.NoError(t, err)
		assert.Equal(t, Clause{Field: "priority", Value: 7}, p.Clauses[0])

		_, err = BuildPredicate(cfg, Predicate{}, map[string]string{"priority": "high"})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

func TestBasePredicate(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		role sec.UserRole
		want Predicate
	}{
		{
			name: "anonymous project viewer is pinned to published",
			kind: KindProject,
			role: sec.RoleAnonymous,
			want: Predicate{Clauses: []Clause{{Field: "isPublished", Value: true, Forced: true}}},
		},
		{
			name: "regular user gets the same project baseline",
			kind: KindProject,
			role: sec.RoleUser,
			want: Predicate{Clauses: []Clause{{Field: "isPublished", Value: true, Forced: true}}},
		},
		{
			name: "admin sees all projects",
			kind: KindProject,
			role: sec.RoleAdmin,
			want: Predicate{},
		},
		{
			name: "message inbox excludes spam even for admin",
			kind: KindMessage,
			role: sec.RoleAdmin,
			want: Predicate{Clauses: []Clause{{Field: "isSpam", Value: false, Forced: true}}},
		},
		{
			name: "skills have no baseline",
			kind: KindSkill,
			role: sec.RoleAnonymous,
			want: Predicate{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BasePredicate(tt.kind, tt.role))
		})
	}
}
