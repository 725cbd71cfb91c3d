// Copyright (c) 2026 Devfolio. All rights reserved.
// Author: marco.quinde.dev@gmail.com

package account

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mquinde/devfolio/internal/platform/apperr"
	"github.com/mquinde/devfolio/internal/platform/dberr"
	"github.com/mquinde/devfolio/internal/platform/sec"
	"github.com/mquinde/devfolio/internal/users/auth"
	"github.com/mquinde/devfolio/pkg/pagination"
	"github.com/mquinde/devfolio/pkg/pointer"
)

type fakeRepository struct {
	users map[string]*auth.User
}

func newFakeRepository(users ...*auth.User) *fakeRepository {
	repo := &fakeRepository{users: map[string]*auth.User{}}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *fakeRepository) matches(user *auth.User, filter Filter) bool {
	if filter.Role != "" && string(user.Role) != filter.Role {
		return false
	}
	if filter.IsActive != nil && user.IsActive != *filter.IsActive {
		return false
	}
	return true
}

func (r *fakeRepository) List(_ context.Context, filter Filter, limit, offset int) ([]auth.User, int, error) {
	var matched []auth.User
	for _, user := range r.users {
		if r.matches(user, filter) {
			matched = append(matched, *user)
		}
	}
	total := len(matched)
	if offset >= total {
		return []auth.User{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (r *fakeRepository) Stats(_ context.Context) (*Stats, error) {
	stats := &Stats{}
	for _, user := range r.users {
		stats.Total++
		if user.IsActive {
			stats.Active++
		} else {
			stats.Inactive++
		}
		if user.Role == sec.RoleAdmin {
			stats.Admins++
		} else {
			stats.Users++
		}
	}
	return stats, nil
}

func (r *fakeRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return user, nil
}

func (r *fakeRepository) Update(_ context.Context, user *auth.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return dberr.ErrNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeRevoker struct {
	revoked []string
}

func (r *fakeRevoker) RevokeAll(_ context.Context, userID string) error {
	r.revoked = append(r.revoked, userID)
	return nil
}

func testUser(id string, role sec.UserRole, active bool) *auth.User {
	return &auth.User{
		ID: id, Name: "User " + id, Email: id + "@example.com",
		Role: role, IsActive: active,
	}
}

func newTestService(users ...*auth.User) (*Service, *fakeRepository, *fakeRevoker) {
	repo := newFakeRepository(users...)
	revoker := &fakeRevoker{}
	return NewService(repo, revoker, slog.New(slog.NewTextHandler(io.Discard, nil))), repo, revoker
}

func TestService_ListUsers(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(
		testUser("u1", sec.RoleAdmin, true),
		testUser("u2", sec.RoleUser, true),
		testUser("u3", sec.RoleUser, false),
	)

	t.Run("unfiltered listing counts everyone", func(t *testing.T) {
		result, err := service.ListUsers(ctx, Filter{}, pagination.Params{Page: 1, Limit: 10})

		require.NoError(t, err)
		assert.Equal(t, 3, result.Meta.Total)
		assert.Len(t, result.Users, 3)
	})

	t.Run("role filter narrows the set", func(t *testing.T) {
		result, err := service.ListUsers(ctx, Filter{Role: "user"}, pagination.Params{Page: 1, Limit: 10})

		require.NoError(t, err)
		assert.Equal(t, 2, result.Meta.Total)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		_, err := service.ListUsers(ctx, Filter{Role: "superuser"}, pagination.Params{Page: 1, Limit: 10})

		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("page beyond the end is empty with truthful metadata", func(t *testing.T) {
		result, err := service.ListUsers(ctx, Filter{}, pagination.Params{Page: 5, Limit: 10})

		require.NoError(t, err)
		assert.Empty(t, result.Users)
		assert.Equal(t, 3, result.Meta.Total)
	})
}

func TestService_UserStats(t *testing.T) {
	service, _, _ := newTestService(
		testUser("u1", sec.RoleAdmin, true),
		testUser("u2", sec.RoleUser, true),
		testUser("u3", sec.RoleUser, false),
	)

	stats, err := service.UserStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Active)
	assert.Equal(t, 1, stats.Inactive)
	assert.Equal(t, 1, stats.Admins)
	assert.Equal(t, 2, stats.Users)
}

func TestService_UpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("promote a user to admin", func(t *testing.T) {
		service, repo, _ := newTestService(testUser("u1", sec.RoleAdmin, true), testUser("u2", sec.RoleUser, true))

		updated, err := service.UpdateUser(ctx, "u1", "u2", UpdateInput{Role: pointer.To("admin")})

		require.NoError(t, err)
		assert.Equal(t, sec.RoleAdmin, updated.Role)
		assert.Equal(t, sec.RoleAdmin, repo.users["u2"].Role)
	})

	t.Run("self-demotion is rejected", func(t *testing.T) {
		service, _, _ := newTestService(testUser("u1", sec.RoleAdmin, true))

		_, err := service.UpdateUser(ctx, "u1", "u1", UpdateInput{Role: pointer.To("user")})

		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("self-deactivation is rejected", func(t *testing.T) {
		service, _, _ := newTestService(testUser("u1", sec.RoleAdmin, true))

		_, err := service.UpdateUser(ctx, "u1", "u1", UpdateInput{IsActive: pointer.To(false)})

		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("deactivating someone else revokes their sessions", func(t *testing.T) {
		service, _, revoker := newTestService(testUser("u1", sec.RoleAdmin, true), testUser("u2", sec.RoleUser, true))

		updated, err := service.UpdateUser(ctx, "u1", "u2", UpdateInput{IsActive: pointer.To(false)})

		require.NoError(t, err)
		assert.False(t, updated.IsActive)
		assert.Contains(t, revoker.revoked, "u2")
	})

	t.Run("unknown account is not found", func(t *testing.T) {
		service, _, _ := newTestService(testUser("u1", sec.RoleAdmin, true))

		_, err := service.UpdateUser(ctx, "u1", "ghost", UpdateInput{Role: pointer.To("admin")})

		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

func TestService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("deletion removes the account and its sessions", func(t *testing.T) {
		service, repo, revoker := newTestService(testUser("u1", sec.RoleAdmin, true), testUser("u2", sec.RoleUser, true))

		require.NoError(t, service.DeleteUser(ctx, "u1", "u2"))
		assert.NotContains(t, repo.users, "u2")
		assert.Contains(t, revoker.revoked, "u2")
	})

	t.Run("self-deletion is rejected", func(t *testing.T) {
		service, repo, _ := newTestService(testUser("u1", sec.RoleAdmin, true))

		err := service.DeleteUser(ctx, "u1", "u1")

		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		assert.Contains(t, repo.users, "u1")
	})
}
