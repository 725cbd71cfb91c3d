package listing

import (
	"fmt"
	"strings"
)

// WhereSQL renders a predicate as a parameterized WHERE fragment.
//
// columns maps logical field names to trusted column identifiers; only values
// travel as placeholders. An unmapped field is a programming error in the
// store, not client input, and is reported rather than dropped: dropping a
// clause would silently widen the visible set.
//
// Returns the fragment (including the leading " WHERE ", empty for an empty
// predicate), the ordered argument slice, and the next placeholder index.
func WhereSQL(p Predicate, columns map[string]string, startArg int) (string, []any, int, error) {
	if p.IsEmpty() {
		return "", nil, startArg, nil
	}

	conds := make([]string, 0, len(p.Clauses))
	args := make([]any, 0, len(p.Clauses))
	arg := startArg
	for _, clause := range p.Clauses {
		col, ok := columns[clause.Field]
		if !ok {
			return "", nil, startArg, fmt.Errorf("listing: no column mapping for field %q", clause.Field)
		}
		conds = append(conds, fmt.Sprintf("%s = $%d", col, arg))
		args = append(args, clause.Value)
		arg++
	}
	return " WHERE " + strings.Join(conds, " AND "), args, arg, nil
}

// OrderSQL renders an order spec as an ORDER BY fragment (with leading space).
// Like WhereSQL, it refuses unmapped fields instead of guessing.
func OrderSQL(o OrderSpec, columns map[string]string) (string, error) {
	if len(o.Keys) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(o.Keys))
	for _, key := range o.Keys {
		col, ok := columns[key.Field]
		if !ok {
			return "", fmt.Errorf("listing: no column mapping for sort field %q", key.Field)
		}
		dir := "ASC"
		if key.Descending {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
	}
	return " ORDER BY " + strings.Join(parts, ", "), nil
}
