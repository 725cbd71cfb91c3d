// Copyright (c) 2026 Devfolio. All rights reserved.
// Author: marco.quinde.dev@gmail.com

/*
Package auth implements the identity and session management layer.

It defines the core domain entities (User, Session) and the logic for
authentication, credential recovery, and account lifecycle.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/mquinde/devfolio/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account of the Devfolio platform.
//
// The portfolio is single-owner in spirit: the admin account manages content
// while regular users exist only to authenticate against protected endpoints.
type User struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	AvatarURL    *string      `json:"avatarUrl,omitempty"`
	Bio          *string      `json:"bio,omitempty"`
	Website      *string      `json:"website,omitempty"`
	IsActive     bool         `json:"isActive"`
	LastLoginAt  *time.Time   `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Session represents an active refresh-token session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	TokenHash string    `json:"-"` // Hashed value of the refresh token. Omitted for security.
	UserAgent string    `json:"userAgent"`
	IPAddress string    `json:"ipAddress"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsRevoked bool      `json:"isRevoked"`
	CreatedAt time.Time `json:"createdAt"`
}

// # Field Identifiers

// Field names for validation and identity mapping in the authentication domain.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldToken           = "token"
	FieldCurrentPassword = "currentPassword"
	FieldNewPassword     = "newPassword"
	FieldWebsite         = "website"
	FieldBio             = "bio"
	FieldAvatarURL       = "avatarUrl"
	FieldAccessToken     = "accessToken"
	FieldTokenType       = "tokenType"
	FieldExpiresIn       = "expiresIn"
	FieldUser            = "user"
)
