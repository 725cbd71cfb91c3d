// Copyright (c) 2026 Devfolio. All rights reserved.
// Author: marco.quinde.dev@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access: admin console, message inbox, user management
	RoleAdmin UserRole = "admin"

	// Default role for registered accounts
	RoleUser UserRole = "user"

	// RoleAnonymous is the implicit role of unauthenticated callers. It is
	// never stored; it exists so visibility decisions have an explicit value
	// to branch on.
	RoleAnonymous UserRole = "anonymous"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// IsAdmin reports whether the role grants administrative access.
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-40) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 40
	case RoleUser:
		return 10
	default:
		return 0
	}
}
