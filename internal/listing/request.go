package listing

import (
	"errors"
	"net/http"

	"github.com/mquinde/devfolio/internal/platform/apperr"
	"github.com/mquinde/devfolio/pkg/pagination"
)

// reservedParams are query keys consumed by the listing machinery itself.
// Everything else in the query string is treated as a filter and must pass
// the resource allow-list.
var reservedParams = map[string]bool{
	"page":   true,
	"limit":  true,
	"sortBy": true,
	"order":  true,
}

// FromHTTP assembles a Request from a list endpoint's query string.
//
// skip names additional reserved keys for the endpoint (handler-level switches
// like isPublished=all) that must not reach the filter allow-list.
func FromHTTP(r *http.Request, defaultLimit int, skip ...string) (Request, error) {
	params, err := pagination.FromRequest(r, defaultLimit)
	if err != nil {
		if errors.Is(err, pagination.ErrInvalidWindow) {
			return Request{}, apperr.InvalidPagination()
		}
		return Request{}, err
	}

	skipped := make(map[string]bool, len(skip))
	for _, key := range skip {
		skipped[key] = true
	}

	filters := map[string]string{}
	query := r.URL.Query()
	for key, values := range query {
		if reservedParams[key] || skipped[key] || len(values) == 0 {
			continue
		}
		filters[key] = values[0]
	}

	return Request{
		Page:    params.Page,
		Limit:   params.Limit,
		SortBy:  query.Get("sortBy"),
		Order:   query.Get("order"),
		Filters: filters,
	}, nil
}
