// Package listing implements the shared query/filter/pagination/authorization
// contract behind every list-resource endpoint (projects, messages, skills).
//
// # Overview
//
// Each resource package constructs a [Lister] with its own [Config]
// (allow-listed filter and sort fields, default page size) and a
// resource-specific [Store]. The Lister turns a raw [Request] plus the caller
// role into a merged predicate, a deterministic order, and a validated page
// window, then asks the store for a count and a page of records against that
// identical predicate.
package listing

// Kind identifies a listable resource family.
type Kind string

const (
	KindProject Kind = "project"
	KindMessage Kind = "message"
	KindSkill   Kind = "skill"
)

// FieldType declares how a raw filter value is coerced before comparison.
type FieldType int

const (
	FieldString FieldType = iota
	FieldBool
	FieldInt
)

// Clause is a single exact-match condition over a record field.
//
// Forced clauses come from the visibility policy and always win over a
// caller-supplied clause on the same field; callers can narrow the baseline
// but never widen past it.
type Clause struct {
	Field  string
	Value  any
	Forced bool
}

// Predicate is a conjunction of clauses. The zero value matches everything.
type Predicate struct {
	Clauses []Clause
}

// And returns a copy of the predicate with an additional clause.
func (p Predicate) And(field string, value any) Predicate {
	return Predicate{Clauses: append(append([]Clause{}, p.Clauses...), Clause{Field: field, Value: value})}
}

// AndForced returns a copy of the predicate with an additional policy-forced clause.
func (p Predicate) AndForced(field string, value any) Predicate {
	return Predicate{Clauses: append(append([]Clause{}, p.Clauses...), Clause{Field: field, Value: value, Forced: true})}
}

// HasForced reports whether the predicate carries a forced clause on field.
func (p Predicate) HasForced(field string) bool {
	for _, clause := range p.Clauses {
		if clause.Forced && clause.Field == field {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the predicate matches everything.
func (p Predicate) IsEmpty() bool {
	return len(p.Clauses) == 0
}

// Config carries the per-resource listing policy, injected at Lister
// construction instead of read from ambient state.
type Config struct {
	Kind Kind

	// DefaultLimit is the page size when the caller does not supply one.
	DefaultLimit int

	// DefaultSort is the field used when sortBy is absent.
	DefaultSort string

	// DefaultOrder is the direction used when order is absent. Empty means
	// descending, which fits the recency-first defaults of most resources.
	DefaultOrder string

	// FilterFields is the allow-list of caller-suppliable filter keys and
	// their value types. Anything else fails with INVALID_FILTER_FIELD.
	FilterFields map[string]FieldType

	// SortFields is the allow-list of sortable fields.
	SortFields map[string]bool
}

// Request is a raw, per-call list request assembled from caller input and
// identity context. It is never persisted.
type Request struct {
	// Page and Limit are 0 when the caller did not supply them; the Lister
	// substitutes the configured defaults. Negative values are rejected.
	Page  int
	Limit int

	SortBy string
	Order  string

	// Filters maps field name to raw exact-match value.
	Filters map[string]string
}
