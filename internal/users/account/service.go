// Copyright (c) 2026 Devfolio. All rights reserved.
// Author: marco.quinde.dev@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mquinde/devfolio/internal/platform/sec"
	"github.com/mquinde/devfolio/internal/platform/validate"
	"github.com/mquinde/devfolio/internal/users/auth"
	"github.com/mquinde/devfolio/pkg/pagination"
)

// assignableRoles is the closed set an administrator may grant.
var assignableRoles = []string{string(sec.RoleAdmin), string(sec.RoleUser)}

// # Service Layer

// Service orchestrates administrative account operations.
type Service struct {
	repo     Repository
	sessions SessionRevoker
	logger   *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repo Repository, sessions SessionRevoker, logger *slog.Logger) *Service {
	return &Service{repo: repo, sessions: sessions, logger: logger}
}

// ListResult is one page of accounts plus its pagination metadata.
type ListResult struct {
	Users []auth.User
	Meta  pagination.Meta
}

/*
ListUsers returns one page of accounts matching the filter.

Parameters:
  - context: context.Context
  - filter: Filter
  - params: pagination.Params

Returns:
  - *ListResult: Page of accounts with metadata
  - error: Validation or retrieval failures
*/
func (service *Service) ListUsers(context context.Context, filter Filter, params pagination.Params) (*ListResult, error) {
	if filter.Role != "" {
		validator := &validate.Validator{}
		validator.OneOf("role", filter.Role, assignableRoles...)
		if err := validator.Err(); err != nil {
			return nil, err
		}
	}

	meta, err := pagination.Paginate(params.Page, params.Limit, 0)
	if err != nil {
		return nil, err
	}

	users, total, err := service.repo.List(context, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []auth.User{}
	}

	return &ListResult{Users: users, Meta: meta.WithTotal(total)}, nil
}

/*
UserStats computes the aggregate account counters for the admin dashboard.

Parameters:
  - context: context.Context

Returns:
  - *Stats: Aggregates
  - error: Retrieval failures
*/
func (service *Service) UserStats(context context.Context) (*Stats, error) {
	stats, err := service.repo.Stats(context)
	if err != nil {
		return nil, fmt.Errorf("account_service_stats_failed: %w", err)
	}
	return stats, nil
}

/*
GetUser retrieves a single account by ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *auth.User: Hydrated entity
  - error: Not found or retrieval failures
*/
func (service *Service) GetUser(context context.Context, id string) (*auth.User, error) {
	return service.repo.FindByID(context, id)
}

/*
UpdateUser applies administrative changes to an account.

Description: Role and activation changes are guarded so an administrator can
never lock themselves out (self-demotion and self-deactivation are rejected).

Parameters:
  - context: context.Context
  - actorID: string (The administrator performing the change)
  - id: string (The account being changed)
  - input: UpdateInput

Returns:
  - *auth.User: Updated entity
  - error: Validation, guard, or storage failures
*/
func (service *Service) UpdateUser(context context.Context, actorID, id string, input UpdateInput) (*auth.User, error) {
	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required("name", *input.Name).MaxLen("name", *input.Name, 50)
	}
	if input.Role != nil {
		validator.OneOf("role", *input.Role, assignableRoles...)
	}
	if input.Role != nil && id == actorID && *input.Role != string(sec.RoleAdmin) {
		validator.Custom("role", true, "You cannot change your own role")
	}
	if input.IsActive != nil && id == actorID && !*input.IsActive {
		validator.Custom("isActive", true, "You cannot deactivate your own account")
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Role != nil {
		user.Role = sec.UserRole(*input.Role)
	}
	deactivated := false
	if input.IsActive != nil {
		deactivated = user.IsActive && !*input.IsActive
		user.IsActive = *input.IsActive
	}

	if err := service.repo.Update(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	// A deactivated account must not keep refreshing its way back in.
	if deactivated {
		_ = service.sessions.RevokeAll(context, id)
	}

	service.logger.Info("user_updated",
		slog.String("user_id", id),
		slog.String("actor_id", actorID),
	)

	return user, nil
}

/*
DeleteUser permanently removes an account and terminates its sessions.

Parameters:
  - context: context.Context
  - actorID: string
  - id: string

Returns:
  - error: Guard, not found, or storage failures
*/
func (service *Service) DeleteUser(context context.Context, actorID, id string) error {
	if id == actorID {
		return validate.RequiredError("id", "You cannot delete your own account")
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	_ = service.sessions.RevokeAll(context, id)

	service.logger.Warn("user_deleted",
		slog.String("user_id", id),
		slog.String("actor_id", actorID),
	)

	return nil
}
