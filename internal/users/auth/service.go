// Copyright (c) 2026 Devfolio. All rights reserved.
// Author: marco.quinde.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mquinde/devfolio/internal/platform/apperr"
	"github.com/mquinde/devfolio/internal/platform/constants"
	"github.com/mquinde/devfolio/internal/platform/mail"
	"github.com/mquinde/devfolio/internal/platform/sec"
	"github.com/mquinde/devfolio/internal/platform/validate"
	"github.com/mquinde/devfolio/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - name: The display name of the account.
	//   - role: The role of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an error if signing fails.
	GenerateAccessToken(userID, name, role string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed before merging.
type Service struct {
	userRepository       UserRepository
	sessionRepository    SessionRepository
	resetTokenRepository ResetTokenRepository
	tokenProvider        TokenProvider
	mailer               mail.Mailer
	frontendURL          string
	logger               *slog.Logger
}

// NewService constructs a new authentication [Service] with its dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	resetRepo ResetTokenRepository,
	tokenProv TokenProvider,
	mailer mail.Mailer,
	frontendURL string,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:       userRepo,
		sessionRepository:    sessionRepo,
		resetTokenRepository: resetRepo,
		tokenProvider:        tokenProv,
		mailer:               mailer,
		frontendURL:          frontendURL,
		logger:               logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: Conflict (if the email is taken) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Verify email uniqueness. Return a client-safe Conflict error.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuidv7.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
		IsActive:     true,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.logger.Info("user_registered", slog.String("user_id", user.ID))

	// Best effort: registration never fails on mail trouble.
	mail.SendAsync(service.logger, service.mailer, mail.Message{
		To:      user.Email,
		Subject: "Welcome to Devfolio",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour account is ready. Sign in at %s to get started.\n",
			user.Name, service.frontendURL),
	})

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login validates user credentials and issues security tokens.

Description: Verifies identity, performs constant-time password comparison,
and initializes a new session with rotated security tokens.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.userRepository.FindByEmail(context, input.Email)

	// Generic message to prevent account enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Constant-time comparison in bcrypt to prevent timing attacks.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !user.IsActive {
		return nil, apperr.Unauthorized("Account is deactivated")
	}

	session, err := service.openSession(context, user, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, err
	}

	// Best effort: a failed stamp must not block the login itself.
	if err := service.userRepository.RecordLogin(context, user.ID); err != nil {
		service.logger.Warn("login_stamp_failed",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	return session, nil
}

/*
Logout permanently revokes the user's active session.

Description: Ensures that a tracked refresh token can never be used again.
Logout is idempotent; an unknown token is treated as already logged out.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - error: Revocation failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	tokenHash := sec.HashToken(refreshToken)

	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)
	if err != nil {
		return nil
	}

	if err := service.sessionRepository.Revoke(context, session.ID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Session Management

/*
RefreshSession implements the Refresh Token Rotation mechanism.

Description: Verifies the existing refresh token, revokes it to prevent reuse
(replay attack mitigation), and issues a fresh pair of rotated tokens.

Parameters:
  - context: context.Context
  - refreshToken: string
  - userAgent: string
  - ipAddress: string

Returns:
  - *LoginSession: New session credentials
  - error: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	tokenHash := sec.HashToken(refreshToken)
	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)

	// The token is either expired, already revoked, or completely invalid.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Rotation: revoke the old session to prevent replay attacks.
	if err := service.sessionRepository.Revoke(context, session.ID); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	user, err := service.userRepository.FindByID(context, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found or suspended")
	}
	if !user.IsActive {
		return nil, apperr.Unauthorized("Account is deactivated")
	}

	return service.openSession(context, user, userAgent, ipAddress)
}

// openSession issues an access/refresh token pair and persists the tracking
// session. Shared by Login and RefreshSession.
func (service *Service) openSession(context context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(
		user.ID, user.Name, string(user.Role), constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	expiresAt := time.Now().Add(constants.RefreshTokenTTL)
	session := &Session{
		ID:        uuidv7.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
		IsRevoked: false,
	}

	if err := service.sessionRepository.Create(context, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

// # Profile

/*
Me resolves the authenticated user's full profile.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Hydrated entity
  - error: NotFound or storage failures
*/
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

// ProfileInput holds the mutable profile fields of the authenticated user.
type ProfileInput struct {
	Name      string
	AvatarURL *string
	Bio       *string
	Website   *string
}

/*
UpdateProfile applies profile changes for the authenticated user.

Parameters:
  - context: context.Context
  - userID: string
  - input: ProfileInput

Returns:
  - *User: Updated entity
  - error: Validation or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input ProfileInput) (*User, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 50)
	if input.Bio != nil {
		validator.MaxLen(FieldBio, *input.Bio, 500)
	}
	if input.Website != nil && *input.Website != "" {
		validator.URL(FieldWebsite, *input.Website)
	}
	if input.AvatarURL != nil && *input.AvatarURL != "" {
		validator.URL(FieldAvatarURL, *input.AvatarURL)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.AvatarURL = input.AvatarURL
	user.Bio = input.Bio
	user.Website = input.Website

	if err := service.userRepository.UpdateProfile(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_update_profile_failed: %w", err)
	}

	return user, nil
}

// # Password Recovery

/*
RequestPasswordReset initiates the forgot-password flow.

Description: Generates a secure token, saves it to Redis, and mails the reset
link. Unknown emails are silently accepted to prevent user enumeration.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - error: Generation errors
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) error {
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		// No NOT_FOUND here: the handler answers identically either way.
		return nil
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	if err := service.resetTokenRepository.Set(context, token, user.ID, constants.ResetTokenTTL); err != nil {
		return fmt.Errorf("auth_service_save_reset_token_failed: %w", err)
	}

	resetLink := fmt.Sprintf("%s/reset-password/%s", service.frontendURL, token)
	mail.SendAsync(service.logger, service.mailer, mail.Message{
		To:      user.Email,
		Subject: "Reset your password",
		Body: fmt.Sprintf(
			"Hi %s,\n\nA password reset was requested for your account. "+
				"Use the link below within the next hour:\n\n%s\n\n"+
				"If you did not request this, you can ignore this email.\n",
			user.Name, resetLink),
	})

	return nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Verifies the token, hashes the new password, updates the DB,
and revokes all active sessions for security cleanup.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - error: Validation or update failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {
	userID, err := service.resetTokenRepository.Get(context, token)
	if err != nil {
		return err
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_reset_password_update_failed: %w", err)
	}

	// Security cleanup: revoke EVERY active session for this user.
	_ = service.sessionRepository.RevokeAll(context, userID)

	// Reset tokens are single-use.
	_ = service.resetTokenRepository.Delete(context, token)

	service.logger.Info("password_reset_completed", slog.String("user_id", userID))

	return nil
}

/*
ChangePassword allows an authenticated user to update their credentials.

Description: Verifies the current password and then revokes all OTHER refresh
sessions to force re-login on other devices.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string
  - currentRefreshToken: string

Returns:
  - error: Unauthorized or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword, currentRefreshToken string) error {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_change_password_update_failed: %w", err)
	}

	// Keep the current device logged in, drop the rest.
	tokenHash := sec.HashToken(currentRefreshToken)
	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)
	if err == nil {
		_ = service.sessionRepository.RevokeOthers(context, userID, session.ID)
	}

	return nil
}
