package listing

import (
	"sort"
	"strconv"

	"github.com/mquinde/devfolio/internal/platform/apperr"
)

// BuildPredicate merges caller-supplied filters into the baseline predicate.
//
// Every key in filters must appear in cfg.FilterFields, otherwise the whole
// request fails with INVALID_FILTER_FIELD; nothing is silently dropped. Values
// are coerced per the declared field type. A caller filter on a field the
// baseline already forces is discarded, so the policy clause always wins.
//
// Keys are processed in sorted order to keep the resulting clause list, and
// therefore any SQL rendered from it, deterministic.
func BuildPredicate(cfg Config, base Predicate, filters map[string]string) (Predicate, error) {
	if len(filters) == 0 {
		return base, nil
	}

	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	p := base
	for _, field := range keys {
		fieldType, ok := cfg.FilterFields[field]
		if !ok {
			return Predicate{}, apperr.InvalidFilterField(field)
		}
		if base.HasForced(field) {
			continue
		}

		value, err := coerce(field, fieldType, filters[field])
		if err != nil {
			return Predicate{}, err
		}
		p = p.And(field, value)
	}
	return p, nil
}

func coerce(field string, fieldType FieldType, raw string) (any, error) {
	switch fieldType {
	case FieldBool:
		switch raw {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return nil, apperr.ValidationError("Invalid filter value", apperr.FieldError{
				Field: field, Message: "must be true or false",
			})
		}
	case FieldInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperr.ValidationError("Invalid filter value", apperr.FieldError{
				Field: field, Message: "must be an integer",
			})
		}
		return n, nil
	default:
		return raw, nil
	}
}
