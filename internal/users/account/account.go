// Copyright (c) 2026 Devfolio. All rights reserved.
// Author: marco.quinde.dev@gmail.com

/*
Package account implements administrative user management.

It lets the portfolio owner inspect, update, and remove registered accounts,
and exposes aggregate statistics for the admin dashboard.

# Architecture

  - Entities: This package depends on the auth package for the User entity.
  - Security: Every endpoint is admin-only; self-destructive operations
    (deleting or deactivating the acting admin) are rejected.
*/
package account

import (
	"context"

	"github.com/mquinde/devfolio/internal/users/auth"
)

// # Domain Types

// Filter narrows the admin user listing.
type Filter struct {
	// Role filters by exact role when non-empty.
	Role string
	// IsActive filters by activation state when set.
	IsActive *bool
	// Search matches name or email case-insensitively when non-empty.
	Search string
}

// Stats is the aggregate account overview for the admin dashboard.
type Stats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Admins   int `json:"admins"`
	Users    int `json:"users"`
}

// UpdateInput defines the account fields an administrator may change.
type UpdateInput struct {
	Name     *string
	Role     *string
	IsActive *bool
}

// # Repository Contract

// Repository defines the persistence contract for administrative account access.
type Repository interface {

	/*
		List returns one page of accounts matching the filter, plus the total
		match count.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []auth.User: Page of accounts
		  - int: Total match count
		  - error: Retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]auth.User, int, error)

	/*
		Stats computes the aggregate account counters.

		Parameters:
		  - context: context.Context

		Returns:
		  - *Stats: Aggregates
		  - error: Retrieval failures
	*/
	Stats(context context.Context) (*Stats, error)

	/*
		FindByID retrieves an account by its unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.User: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		Update persists administrative changes (name, role, activation).

		Parameters:
		  - context: context.Context
		  - user: *auth.User

		Returns:
		  - error: Storage or constraint failures
	*/
	Update(context context.Context, user *auth.User) error

	/*
		Delete permanently removes an account.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: dberr.ErrNotFound or execution failures
	*/
	Delete(context context.Context, id string) error
}

// SessionRevoker terminates sessions when an account is removed or deactivated.
type SessionRevoker interface {

	/*
		RevokeAll revokes every active session belonging to the userID.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Revocation failures
	*/
	RevokeAll(context context.Context, userID string) error
}
