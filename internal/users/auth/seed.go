// Copyright (c) 2026 Devfolio. All rights reserved.
// Author: marco.quinde.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mquinde/devfolio/internal/platform/sec"
	"github.com/mquinde/devfolio/pkg/uuidv7"
)

/*
EnsureAdmin seeds the initial administrator account at startup.

The call is idempotent: when either credential is empty, or an account with
the given email already exists, nothing happens. The seeded account is active
immediately and carries the admin role.

Parameters:
  - context: context.Context
  - email: string (ADMIN_SEED_EMAIL)
  - password: string (ADMIN_SEED_PASSWORD)

Returns:
  - error: Hashing or storage errors
*/
func (service *Service) EnsureAdmin(context context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	// Existing account wins, whatever its role. Operators change roles
	// through the admin API, not through re-seeding.
	if _, err := service.userRepository.FindByEmail(context, email); err == nil {
		return nil
	}

	hashedPassword, err := sec.HashPassword(password)
	if err != nil {
		return fmt.Errorf("auth_seed_hash_failed: %w", err)
	}

	admin := &User{
		ID:           uuidv7.New(),
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleAdmin,
		IsActive:     true,
	}

	if err := service.userRepository.Create(context, admin); err != nil {
		return fmt.Errorf("auth_seed_create_failed: %w", err)
	}

	service.logger.Info("admin_seeded",
		slog.String("user_id", admin.ID),
		slog.String("email", admin.Email),
	)
	return nil
}
