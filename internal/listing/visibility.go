package listing

import "github.com/mquinde/devfolio/internal/platform/sec"

// BasePredicate returns the non-negotiable baseline predicate for a resource
// kind and caller role. Every list, count, and page query for the kind starts
// from this predicate; caller filters are merged on top and can only narrow it.
//
// Projects hide unpublished records from everyone below admin. Messages are
// admin-only at the routing layer, but the baseline still pins isSpam=false so
// the regular inbox never mixes in quarantined mail. Skills have no baseline.
func BasePredicate(kind Kind, role sec.UserRole) Predicate {
	var p Predicate
	switch kind {
	case KindProject:
		if !role.IsAdmin() {
			p = p.AndForced("isPublished", true)
		}
	case KindMessage:
		p = p.AndForced("isSpam", false)
	}
	return p
}
