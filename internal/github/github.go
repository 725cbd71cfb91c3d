// Copyright (c) 2026 Devfolio. All rights reserved.
// Author: marco.quinde.dev@gmail.com

// Package github proxies the public GitHub REST API for the portfolio's
// open-source shelf.
//
// # Architecture
//
// The front end never talks to api.github.com directly: the proxy keeps the
// optional access token server-side and normalizes the response shape to the
// fields the portfolio renders.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mquinde/devfolio/internal/platform/apperr"
	"github.com/mquinde/devfolio/internal/platform/constants"
)

const (
	apiBaseURL     = "https://api.github.com"
	requestTimeout = 10 * time.Second

	// DefaultShelfSize is how many repositories the proxy returns when the
	// caller does not ask for a specific limit.
	DefaultShelfSize = 6
	// MaxShelfSize caps a single proxy call; GitHub pages at 100 anyway.
	MaxShelfSize = 30
)

// Repo is the normalized view of one GitHub repository.
type Repo struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	URL         string   `json:"url"`
	Homepage    *string  `json:"homepage"`
	Stars       int      `json:"stars"`
	Forks       int      `json:"forks"`
	Language    *string  `json:"language"`
	Topics      []string `json:"topics"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// apiRepo mirrors the subset of the GitHub API payload the proxy consumes.
type apiRepo struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Description     *string  `json:"description"`
	HTMLURL         string   `json:"html_url"`
	Homepage        *string  `json:"homepage"`
	StargazersCount int      `json:"stargazers_count"`
	ForksCount      int      `json:"forks_count"`
	Language        *string  `json:"language"`
	Topics          []string `json:"topics"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

// Client fetches repositories from the GitHub REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	username   string
	token      string
}

// NewClient builds a GitHub API client. The token is optional; unauthenticated
// calls share GitHub's low per-IP rate limit.
func NewClient(username, token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    apiBaseURL,
		username:   username,
		token:      token,
	}
}

/*
ListRepos fetches the most recently updated public repositories of a user.

Parameters:
  - context: context.Context
  - username: string (Falls back to the configured account when empty)
  - limit: int (Clamped to [1, MaxShelfSize]; 0 means DefaultShelfSize)

Returns:
  - []Repo: Normalized repositories
  - error: BackendUnavailable on transport or upstream failures
*/
func (client *Client) ListRepos(context context.Context, username string, limit int) ([]Repo, error) {
	if username == "" {
		username = client.username
	}
	if limit <= 0 {
		limit = DefaultShelfSize
	}
	if limit > MaxShelfSize {
		limit = MaxShelfSize
	}

	url := fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=%d", client.baseURL, username, limit)
	request, err := http.NewRequestWithContext(context, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("github_request_build_failed: %w", err)
	}

	request.Header.Set("Accept", "application/vnd.github+json")
	request.Header.Set("User-Agent", constants.AppName)
	if client.token != "" {
		request.Header.Set("Authorization", "token "+client.token)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, apperr.BackendUnavailable(fmt.Errorf("github_request_failed: %w", err))
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return nil, apperr.NotFound("GitHub user")
	}
	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(response.Body, 512))
		return nil, apperr.BackendUnavailable(
			fmt.Errorf("github_unexpected_status: %d %s", response.StatusCode, string(body)))
	}

	var payload []apiRepo
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, apperr.BackendUnavailable(fmt.Errorf("github_decode_failed: %w", err))
	}

	repos := make([]Repo, 0, len(payload))
	for _, raw := range payload {
		repos = append(repos, Repo{
			ID:          raw.ID,
			Name:        raw.Name,
			Description: raw.Description,
			URL:         raw.HTMLURL,
			Homepage:    raw.Homepage,
			Stars:       raw.StargazersCount,
			Forks:       raw.ForksCount,
			Language:    raw.Language,
			Topics:      raw.Topics,
			CreatedAt:   raw.CreatedAt,
			UpdatedAt:   raw.UpdatedAt,
		})
	}

	return repos, nil
}
