// Copyright (c) 2026 Devfolio. All rights reserved.
// Author: marco.quinde.dev@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mquinde/devfolio/pkg/pagination"
)

/*
TestPaginate verifies the offset and page-count arithmetic.
*/
func TestPaginate(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int
		wantOffset int
		wantPages  int
	}{
		{"first_page", 1, 10, 25, 0, 3},
		{"second_page", 2, 10, 25, 10, 3},
		{"exact_division", 3, 5, 15, 10, 3},
		{"single_page", 1, 10, 6, 0, 1},
		{"empty_total", 1, 10, 0, 0, 0},
		{"beyond_last_page", 9, 10, 25, 80, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := pagination.Paginate(tt.page, tt.limit, tt.total)
			require.NoError(t, err)

			assert.Equal(t, tt.wantOffset, meta.Offset())
			assert.Equal(t, tt.wantPages, meta.Pages)
			assert.Equal(t, tt.total, meta.Total)
			assert.Equal(t, tt.page, meta.Page)
			assert.Equal(t, tt.limit, meta.Limit)
		})
	}
}

/*
TestPaginate_InvalidWindow verifies that non-positive windows are rejected.
*/
func TestPaginate_InvalidWindow(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
	}{
		{"zero_page", 0, 10},
		{"negative_page", -1, 10},
		{"zero_limit", 1, 0},
		{"negative_limit", 1, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pagination.Paginate(tt.page, tt.limit, 100)
			assert.ErrorIs(t, err, pagination.ErrInvalidWindow)
		})
	}
}

/*
TestMeta_WithTotal verifies recomputation after a count query.
*/
func TestMeta_WithTotal(t *testing.T) {
	meta, err := pagination.Paginate(2, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, meta.Pages)

	updated := meta.WithTotal(25)
	assert.Equal(t, 25, updated.Total)
	assert.Equal(t, 3, updated.Pages)
	assert.Equal(t, 10, updated.Offset())
}

/*
TestFromRequest verifies query-string parsing, defaults and clamping.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantPage  int
		wantLimit int
		wantErr   bool
	}{
		{"defaults", "/projects", 1, 10, false},
		{"explicit", "/projects?page=3&limit=20", 3, 20, false},
		{"non_numeric_falls_back", "/projects?page=abc&limit=xyz", 1, 10, false},
		{"limit_clamped", "/projects?limit=5000", 1, pagination.MaxLimit, false},
		{"zero_page_rejected", "/projects?page=0", 0, 0, true},
		{"negative_limit_rejected", "/projects?limit=-1", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", tt.url, nil)
			params, err := pagination.FromRequest(request, 10)

			if tt.wantErr {
				assert.ErrorIs(t, err, pagination.ErrInvalidWindow)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}
