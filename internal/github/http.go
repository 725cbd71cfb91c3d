// Copyright (c) 2026 Devfolio. All rights reserved.
// Author: marco.quinde.dev@gmail.com

package github

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mquinde/devfolio/internal/platform/respond"
	"github.com/mquinde/devfolio/pkg/convert"
)

// Handler exposes the GitHub repository proxy.
type Handler struct {
	client *Client
}

// NewHandler constructs a new [Handler] with its client dependency.
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// RegisterRoutes mounts the proxy endpoint.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/github-repos", handler.listRepos)
}

/*
ListRepos returns the most recently updated public repositories.

GET /api/v1/projects/github-repos?username=&limit=

Response:
  - 200: []Repo: Normalized repository list
  - 404: ErrNotFound: Unknown GitHub user
  - 503: ErrBackendUnavailable: Upstream trouble
*/
func (handler *Handler) listRepos(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	// Malformed limits fall back to the default shelf size.
	limit := convert.ToInt(query.Get("limit"))

	repos, err := handler.client.ListRepos(request.Context(), query.Get("username"), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, repos)
}
