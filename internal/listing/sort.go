package listing

import "github.com/mquinde/devfolio/internal/platform/apperr"

// Sort directions as they appear on the wire.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// SortKey is one field/direction pair in an order specification.
type SortKey struct {
	Field      string
	Descending bool
}

// OrderSpec is a total order over a resource collection. ResolveSort always
// terminates the spec with an id tie-break, so two records never compare
// equal and identical requests paginate identically.
type OrderSpec struct {
	Keys []SortKey
}

// ResolveSort validates the caller's sortBy/order pair against the config
// allow-list and returns the fully disambiguated order.
//
// An empty sortBy falls back to cfg.DefaultSort; an empty order falls back to
// descending. Unknown values fail loudly rather than being ignored, so a typo
// like sortBy=crated_at surfaces as a 400 instead of a silently reordered page.
//
// Tie-break: createdAt descending is appended when it is not the primary key,
// then id descending. Ids are time-ordered UUIDv7, so the final key extends
// the recency order down to single-record granularity.
func ResolveSort(cfg Config, sortBy, order string) (OrderSpec, error) {
	if sortBy == "" {
		sortBy = cfg.DefaultSort
	}
	if !cfg.SortFields[sortBy] {
		return OrderSpec{}, apperr.InvalidSortField(sortBy)
	}

	if order == "" {
		order = cfg.DefaultOrder
	}

	var descending bool
	switch order {
	case "", OrderDesc:
		descending = true
	case OrderAsc:
		descending = false
	default:
		return OrderSpec{}, apperr.InvalidSortOrder(order)
	}

	spec := OrderSpec{Keys: []SortKey{{Field: sortBy, Descending: descending}}}
	if sortBy != "createdAt" && sortBy != "id" {
		spec.Keys = append(spec.Keys, SortKey{Field: "createdAt", Descending: true})
	}
	if sortBy != "id" {
		spec.Keys = append(spec.Keys, SortKey{Field: "id", Descending: true})
	}
	return spec, nil
}

// FeaturedOrder is the fixed order for the featured-projects shelf: highest
// priority first, newest within a priority band.
func FeaturedOrder() OrderSpec {
	return OrderSpec{Keys: []SortKey{
		{Field: "priority", Descending: true},
		{Field: "createdAt", Descending: true},
		{Field: "id", Descending: true},
	}}
}

// DisplayOrder is the fixed order for the skill category view: explicit
// sortOrder first, strongest proficiency within equal ranks.
func DisplayOrder() OrderSpec {
	return OrderSpec{Keys: []SortKey{
		{Field: "sortOrder", Descending: false},
		{Field: "proficiency", Descending: true},
		{Field: "id", Descending: true},
	}}
}
