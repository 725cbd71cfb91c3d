// Copyright (c) 2026 Devfolio. All rights reserved.
// Author: marco.quinde.dev@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
package pagination

import (
	"errors"
	"net/http"
	"strconv"
)

const (
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	// Requests above it are clamped, never rejected.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// ErrInvalidWindow is returned when page or limit is below 1.
//
// Explicitly supplied non-positive values are a client error, not something to
// silently correct: negative offsets produced by permissive arithmetic make
// listings inconsistent across resources.
var ErrInvalidWindow = errors.New("pagination: page and limit must be positive")

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET value derived from [Page] and [Limit].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Paginate validates a page window and computes its page-count metadata.
//
// # Contract
//
//   - page < 1 or limit < 1 fails with [ErrInvalidWindow].
//   - Pages is ceil(total/limit); 0 only when total is 0.
//
// It is a pure function of its inputs.
func Paginate(page, limit, total int) (Meta, error) {
	if page < 1 || limit < 1 {
		return Meta{}, ErrInvalidWindow
	}

	pages := 0
	if total > 0 {
		pages = (total + limit - 1) / limit
	}

	return Meta{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}, nil
}

// Offset returns the SQL OFFSET value for the window.
func (m Meta) Offset() int {
	return Params{Page: m.Page, Limit: m.Limit}.Offset()
}

// WithTotal returns a copy of the metadata recomputed for the given total.
//
// The window (page, limit) has already been validated, so this never fails.
func (m Meta) WithTotal(total int) Meta {
	updated, _ := Paginate(m.Page, m.Limit, total)
	return updated
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Behavior
//
// Absent or non-numeric parameters fall back to [DefaultPage] and the given
// per-resource default limit. A limit above [MaxLimit] is clamped. Explicit
// values below 1 return [ErrInvalidWindow].
func FromRequest(r *http.Request, defaultLimit int) (Params, error) {
	page := parseIntParam(r, "page", DefaultPage)
	limit := parseIntParam(r, "limit", defaultLimit)

	if page < 1 || limit < 1 {
		return Params{}, ErrInvalidWindow
	}

	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}, nil
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
