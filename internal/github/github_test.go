// Copyright (c) 2026 Devfolio. All rights reserved.
// Author: marco.quinde.dev@gmail.com

package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mquinde/devfolio/internal/platform/apperr"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("octocat", "secret-token")
	client.baseURL = server.URL
	return client
}

func TestClient_ListRepos(t *testing.T) {
	ctx := context.Background()

	t.Run("repos are normalized and the token travels upstream", func(t *testing.T) {
		var gotPath, gotAuth string
		client := testClient(t, func(writer http.ResponseWriter, request *http.Request) {
			gotPath = request.URL.Path + "?" + request.URL.RawQuery
			gotAuth = request.Header.Get("Authorization")
			writer.Header().Set("Content-Type", "application/json")
			_, _ = writer.Write([]byte(`[
				{"id": 7, "name": "devfolio", "html_url": "https://github.com/octocat/devfolio",
				 "stargazers_count": 42, "forks_count": 3, "language": "Go",
				 "topics": ["portfolio"], "created_at": "2025-01-01T00:00:00Z",
				 "updated_at": "2026-01-01T00:00:00Z"}
			]`))
		})

		repos, err := client.ListRepos(ctx, "", 6)

		require.NoError(t, err)
		assert.Equal(t, "/users/octocat/repos?sort=updated&per_page=6", gotPath)
		assert.Equal(t, "token secret-token", gotAuth)
		require.Len(t, repos, 1)
		assert.Equal(t, "devfolio", repos[0].Name)
		assert.Equal(t, 42, repos[0].Stars)
		assert.Equal(t, "https://github.com/octocat/devfolio", repos[0].URL)
	})

	t.Run("zero limit falls back to the default shelf size", func(t *testing.T) {
		var gotPerPage string
		client := testClient(t, func(writer http.ResponseWriter, request *http.Request) {
			gotPerPage = request.URL.Query().Get("per_page")
			_, _ = writer.Write([]byte(`[]`))
		})

		_, err := client.ListRepos(ctx, "", 0)

		require.NoError(t, err)
		assert.Equal(t, "6", gotPerPage)
	})

	t.Run("unknown user maps to not found", func(t *testing.T) {
		client := testClient(t, func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
		})

		_, err := client.ListRepos(ctx, "ghost", 6)

		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("upstream failure maps to backend unavailable", func(t *testing.T) {
		client := testClient(t, func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusForbidden)
			_, _ = writer.Write([]byte(`{"message": "API rate limit exceeded"}`))
		})

		_, err := client.ListRepos(ctx, "", 6)

		require.Error(t, err)
		assert.Equal(t, "BACKEND_UNAVAILABLE", apperr.As(err).Code)
	})
}
