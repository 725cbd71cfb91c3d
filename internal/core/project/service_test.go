package project

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mquinde/devfolio/internal/listing"
	"github.com/mquinde/devfolio/internal/platform/apperr"
	"github.com/mquinde/devfolio/internal/platform/dberr"
	"github.com/mquinde/devfolio/internal/platform/sec"
	"github.com/mquinde/devfolio/pkg/pagination"
)

type fakeRepository struct {
	projects map[string]*Project
	created  []*Project
}

func newFakeRepository(projects ...*Project) *fakeRepository {
	repo := &fakeRepository{projects: map[string]*Project{}}
	for _, p := range projects {
		repo.projects[p.ID] = p
	}
	return repo
}

func (r *fakeRepository) matches(p *Project, predicate listing.Predicate) bool {
	for _, clause := range predicate.Clauses {
		switch clause.Field {
		case "isPublished":
			if p.IsPublished != clause.Value.(bool) {
				return false
			}
		case "featured":
			if p.Featured != clause.Value.(bool) {
				return false
			}
		case "category":
			if p.Category != clause.Value.(string) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (r *fakeRepository) Count(_ context.Context, predicate listing.Predicate) (int, error) {
	n := 0
	for _, p := range r.projects {
		if r.matches(p, predicate) {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepository) Find(_ context.Context, predicate listing.Predicate, _ listing.OrderSpec, limit, offset int) ([]Project, error) {
	var matched []Project
	for _, p := range r.projects {
		if r.matches(p, predicate) {
			matched = append(matched, *p)
		}
	}
	if offset >= len(matched) {
		return []Project{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (r *fakeRepository) GetProject(_ context.Context, id string) (*Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return p, nil
}

func (r *fakeRepository) GetProjectBySlug(_ context.Context, slug string) (*Project, error) {
	for _, p := range r.projects {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeRepository) CreateProject(_ context.Context, p *Project) error {
	r.projects[p.ID] = p
	r.created = append(r.created, p)
	return nil
}

func (r *fakeRepository) UpdateProject(_ context.Context, p *Project) error {
	if _, ok := r.projects[p.ID]; !ok {
		return dberr.ErrNotFound
	}
	r.projects[p.ID] = p
	return nil
}

func (r *fakeRepository) DeleteProject(_ context.Context, id string) error {
	if _, ok := r.projects[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *fakeRepository) IncrementViews(_ context.Context, id string) (int, error) {
	p, ok := r.projects[id]
	if !ok {
		return 0, dberr.ErrNotFound
	}
	p.Views++
	return p.Views, nil
}

func (r *fakeRepository) IncrementLikes(_ context.Context, id string) (int, error) {
	p, ok := r.projects[id]
	if !ok {
		return 0, dberr.ErrNotFound
	}
	p.Likes++
	return p.Likes, nil
}

func (r *fakeRepository) SearchProjects(_ context.Context, publishedOnly bool, term string, limit, offset int) ([]Project, int, error) {
	var matched []Project
	for _, p := range r.projects {
		if publishedOnly && !p.IsPublished {
			continue
		}
		matched = append(matched, *p)
	}
	return matched, len(matched), nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func publishedProject(id, category string) *Project {
	return &Project{
		ID:          id,
		Title:       "Project " + id,
		Slug:        "project-" + id,
		Category:    category,
		Status:      "Completed",
		IsPublished: true,
	}
}

func TestService_ListProjects(t *testing.T) {
	ctx := context.Background()
	draft := publishedProject("d1", "Backend")
	draft.IsPublished = false
	repo := newFakeRepository(
		publishedProject("p1", "Frontend"),
		publishedProject("p2", "Backend"),
		draft,
	)
	service := NewService(repo, testLogger())

	t.Run("anonymous callers only see published projects", func(t *testing.T) {
		result, err := service.ListProjects(ctx, sec.RoleAnonymous, listing.Request{})

		require.NoError(t, err)
		assert.Equal(t, 2, result.Meta.Total)
	})

	t.Run("admin sees drafts", func(t *testing.T) {
		result, err := service.ListProjects(ctx, sec.RoleAdmin, listing.Request{})

		require.NoError(t, err)
		assert.Equal(t, 3, result.Meta.Total)
	})

	t.Run("filtering on an unknown field fails", func(t *testing.T) {
		_, err := service.ListProjects(ctx, sec.RoleAnonymous, listing.Request{
			Filters: map[string]string{"password": "x"},
		})

		require.Error(t, err)
		assert.Equal(t, "INVALID_FILTER_FIELD", apperr.As(err).Code)
	})
}

func TestService_GetProject(t *testing.T) {
	ctx := context.Background()
	draft := publishedProject("d1", "Backend")
	draft.IsPublished = false
	repo := newFakeRepository(publishedProject("p1", "Frontend"), draft)
	service := NewService(repo, testLogger())

	t.Run("draft is not found for anonymous", func(t *testing.T) {
		_, err := service.GetProject(ctx, sec.RoleAnonymous, "d1")

		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("draft is visible for admin", func(t *testing.T) {
		found, err := service.GetProject(ctx, sec.RoleAdmin, "d1")

		require.NoError(t, err)
		assert.False(t, found.IsPublished)
	})

	t.Run("slug lookup applies the same gate", func(t *testing.T) {
		_, err := service.GetProjectBySlug(ctx, sec.RoleUser, "project-d1")
		require.Error(t, err)

		found, err := service.GetProjectBySlug(ctx, sec.RoleAnonymous, "project-p1")
		require.NoError(t, err)
		assert.Equal(t, "p1", found.ID)
	})
}

func TestService_CreateProject(t *testing.T) {
	ctx := context.Background()

	t.Run("valid input gets id, slug and defaults", func(t *testing.T) {
		repo := newFakeRepository()
		service := NewService(repo, testLogger())

		input := &Project{
			Title:        "Realtime Chat App",
			Description:  "A chat application",
			Thumbnail:    "https://cdn.devfolio.dev/chat.png",
			Technologies: []string{"Go", "WebSocket"},
			Category:     "Full Stack",
			IsPublished:  true,
		}
		err := service.CreateProject(ctx, "admin-1", input)

		require.NoError(t, err)
		assert.NotEmpty(t, input.ID)
		assert.Equal(t, "realtime-chat-app", input.Slug)
		assert.Equal(t, DefaultStatus, input.Status)
		assert.Equal(t, "admin-1", input.CreatedBy)
		require.Len(t, repo.created, 1)
	})

	t.Run("missing required fields are all reported", func(t *testing.T) {
		service := NewService(newFakeRepository(), testLogger())

		err := service.CreateProject(ctx, "admin-1", &Project{Category: "Nope"})

		require.Error(t, err)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		assert.NotEmpty(t, appErr.Details)
	})
}

func TestService_FeaturedProjects(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	for i := 0; i < 8; i++ {
		p := publishedProject(string(rune('a'+i)), "Frontend")
		p.Featured = true
		repo.projects[p.ID] = p
	}
	service := NewService(repo, testLogger())

	projects, err := service.FeaturedProjects(ctx, sec.RoleAnonymous, 0)

	require.NoError(t, err)
	assert.Len(t, projects, FeaturedShelfSize)
}

func TestService_SearchProjects(t *testing.T) {
	service := NewService(newFakeRepository(), testLogger())

	_, err := service.SearchProjects(context.Background(), sec.RoleAnonymous, "   ", pagination.Params{Page: 1, Limit: 10})

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
