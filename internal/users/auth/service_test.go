// Copyright (c) 2026 Devfolio. All rights reserved.
// Author: marco.quinde.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mquinde/devfolio/internal/platform/apperr"
	"github.com/mquinde/devfolio/internal/platform/mail"
	"github.com/mquinde/devfolio/internal/platform/sec"
)

// # Fakes

type fakeUserRepository struct {
	users      map[string]*User // keyed by ID
	lastLogins map[string]time.Time
}

func newFakeUserRepository(users ...*User) *fakeUserRepository {
	repo := &fakeUserRepository{users: map[string]*User{}, lastLogins: map[string]time.Time{}}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *fakeUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeUserRepository) Create(_ context.Context, user *User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepository) UpdateProfile(_ context.Context, user *User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := r.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

func (r *fakeUserRepository) RecordLogin(_ context.Context, userID string) error {
	r.lastLogins[userID] = time.Now()
	return nil
}

type fakeSessionRepository struct {
	sessions map[string]*Session // keyed by ID
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: map[string]*Session{}}
}

func (r *fakeSessionRepository) Create(_ context.Context, session *Session) error {
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeSessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*Session, error) {
	for _, session := range r.sessions {
		if session.TokenHash == tokenHash && !session.IsRevoked && session.ExpiresAt.After(time.Now()) {
			return session, nil
		}
	}
	return nil, apperr.NotFound("Session")
}

func (r *fakeSessionRepository) Revoke(_ context.Context, sessionID string) error {
	session, ok := r.sessions[sessionID]
	if !ok {
		return apperr.NotFound("Session")
	}
	session.IsRevoked = true
	return nil
}

func (r *fakeSessionRepository) RevokeAll(_ context.Context, userID string) error {
	for _, session := range r.sessions {
		if session.UserID == userID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (r *fakeSessionRepository) RevokeOthers(_ context.Context, userID, currentSessionID string) error {
	for _, session := range r.sessions {
		if session.UserID == userID && session.ID != currentSessionID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (r *fakeSessionRepository) DeleteExpired(_ context.Context) error { return nil }

func (r *fakeSessionRepository) active(userID string) int {
	n := 0
	for _, session := range r.sessions {
		if session.UserID == userID && !session.IsRevoked {
			n++
		}
	}
	return n
}

type fakeResetTokenRepository struct {
	tokens map[string]string // token -> userID
}

func newFakeResetTokenRepository() *fakeResetTokenRepository {
	return &fakeResetTokenRepository{tokens: map[string]string{}}
}

func (r *fakeResetTokenRepository) Set(_ context.Context, token, userID string, _ time.Duration) error {
	r.tokens[token] = userID
	return nil
}

func (r *fakeResetTokenRepository) Get(_ context.Context, token string) (string, error) {
	userID, ok := r.tokens[token]
	if !ok {
		return "", apperr.NotFound("Reset token")
	}
	return userID, nil
}

func (r *fakeResetTokenRepository) Delete(_ context.Context, token string) error {
	delete(r.tokens, token)
	return nil
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	return "jwt-for-" + userID, nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []mail.Message
}

func (m *fakeMailer) Send(_ context.Context, message mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, message)
	return nil
}

func (m *fakeMailer) waitForMail(t *testing.T) mail.Message {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		m.mu.Lock()
		if len(m.sent) > 0 {
			message := m.sent[0]
			m.mu.Unlock()
			return message
		}
		m.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("expected a mail to be sent")
	return mail.Message{}
}

// # Helpers

type testEnv struct {
	service  *Service
	users    *fakeUserRepository
	sessions *fakeSessionRepository
	resets   *fakeResetTokenRepository
	mailer   *fakeMailer
}

func newTestEnv(users ...*User) *testEnv {
	env := &testEnv{
		users:    newFakeUserRepository(users...),
		sessions: newFakeSessionRepository(),
		resets:   newFakeResetTokenRepository(),
		mailer:   &fakeMailer{},
	}
	env.service = NewService(
		env.users, env.sessions, env.resets, fakeTokenProvider{},
		env.mailer, "https://portfolio.example.com",
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return env
}

func activeUser(id, email, password string) *User {
	hash, err := sec.HashPassword(password)
	if err != nil {
		panic(fmt.Sprintf("hash password: %v", err))
	}
	return &User{
		ID:           id,
		Name:         "Marco",
		Email:        email,
		PasswordHash: hash,
		Role:         sec.RoleUser,
		IsActive:     true,
	}
}

// # Tests

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("new account gets user role and active state", func(t *testing.T) {
		env := newTestEnv()

		user, err := env.service.Register(ctx, RegisterInput{
			Name: "Marco", Email: "marco@example.com", Password: "s3cret-pass",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, sec.RoleUser, user.Role)
		assert.True(t, user.IsActive)
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

		welcome := env.mailer.waitForMail(t)
		assert.Equal(t, "marco@example.com", welcome.To)
		assert.Contains(t, welcome.Subject, "Welcome")
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		env := newTestEnv(activeUser("u1", "marco@example.com", "s3cret-pass"))

		_, err := env.service.Register(ctx, RegisterInput{
			Name: "Impostor", Email: "marco@example.com", Password: "another-pass",
		})

		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials open a session and stamp last login", func(t *testing.T) {
		env := newTestEnv(activeUser("u1", "marco@example.com", "s3cret-pass"))

		session, err := env.service.Login(ctx, LoginInput{
			Email: "marco@example.com", Password: "s3cret-pass",
			UserAgent: "go-test", IPAddress: "127.0.0.1",
		})

		require.NoError(t, err)
		assert.Equal(t, "jwt-for-u1", session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
		assert.Equal(t, 1, env.sessions.active("u1"))
		assert.Contains(t, env.users.lastLogins, "u1")
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		env := newTestEnv(activeUser("u1", "marco@example.com", "s3cret-pass"))

		_, err := env.service.Login(ctx, LoginInput{Email: "marco@example.com", Password: "nope"})

		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})

	t.Run("unknown email gets the same generic message as a bad password", func(t *testing.T) {
		env := newTestEnv(activeUser("u1", "marco@example.com", "s3cret-pass"))

		_, unknownErr := env.service.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "s3cret-pass"})
		_, badPassErr := env.service.Login(ctx, LoginInput{Email: "marco@example.com", Password: "nope"})

		require.Error(t, unknownErr)
		require.Error(t, badPassErr)
		assert.Equal(t, badPassErr.Error(), unknownErr.Error())
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		user := activeUser("u1", "marco@example.com", "s3cret-pass")
		user.IsActive = false
		env := newTestEnv(user)

		_, err := env.service.Login(ctx, LoginInput{Email: "marco@example.com", Password: "s3cret-pass"})

		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})
}

func TestService_RefreshSession(t *testing.T) {
	ctx := context.Background()

	t.Run("rotation revokes the old token", func(t *testing.T) {
		env := newTestEnv(activeUser("u1", "marco@example.com", "s3cret-pass"))
		session, err := env.service.Login(ctx, LoginInput{Email: "marco@example.com", Password: "s3cret-pass"})
		require.NoError(t, err)

		rotated, err := env.service.RefreshSession(ctx, session.RefreshToken, "go-test", "127.0.0.1")
		require.NoError(t, err)
		assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

		// Replaying the original token must fail after rotation.
		_, err = env.service.RefreshSession(ctx, session.RefreshToken, "go-test", "127.0.0.1")
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.service.RefreshSession(ctx, "not-a-token", "go-test", "127.0.0.1")

		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("logout revokes the session", func(t *testing.T) {
		env := newTestEnv(activeUser("u1", "marco@example.com", "s3cret-pass"))
		session, err := env.service.Login(ctx, LoginInput{Email: "marco@example.com", Password: "s3cret-pass"})
		require.NoError(t, err)

		require.NoError(t, env.service.Logout(ctx, session.RefreshToken))
		assert.Equal(t, 0, env.sessions.active("u1"))
	})

	t.Run("unknown token logs out without error", func(t *testing.T) {
		env := newTestEnv()
		assert.NoError(t, env.service.Logout(ctx, "already-gone"))
	})
}

func TestService_PasswordRecovery(t *testing.T) {
	ctx := context.Background()

	t.Run("reset request mails a link with the stored token", func(t *testing.T) {
		env := newTestEnv(activeUser("u1", "marco@example.com", "s3cret-pass"))

		require.NoError(t, env.service.RequestPasswordReset(ctx, "marco@example.com"))

		message := env.mailer.waitForMail(t)
		assert.Equal(t, "marco@example.com", message.To)
		require.Len(t, env.resets.tokens, 1)
		for token := range env.resets.tokens {
			assert.Contains(t, message.Body, token)
			assert.True(t, strings.Contains(message.Body, "https://portfolio.example.com/reset-password/"))
		}
	})

	t.Run("unknown email is silently accepted and no mail goes out", func(t *testing.T) {
		env := newTestEnv()

		require.NoError(t, env.service.RequestPasswordReset(ctx, "ghost@example.com"))

		time.Sleep(20 * time.Millisecond)
		env.mailer.mu.Lock()
		defer env.mailer.mu.Unlock()
		assert.Empty(t, env.mailer.sent)
	})

	t.Run("reset consumes the token and revokes every session", func(t *testing.T) {
		env := newTestEnv(activeUser("u1", "marco@example.com", "s3cret-pass"))
		_, err := env.service.Login(ctx, LoginInput{Email: "marco@example.com", Password: "s3cret-pass"})
		require.NoError(t, err)
		env.resets.tokens["tok-123"] = "u1"

		require.NoError(t, env.service.ResetPassword(ctx, "tok-123", "brand-new-pass"))

		assert.Empty(t, env.resets.tokens)
		assert.Equal(t, 0, env.sessions.active("u1"))

		_, err = env.service.Login(ctx, LoginInput{Email: "marco@example.com", Password: "brand-new-pass"})
		assert.NoError(t, err)
	})

	t.Run("invalid token fails", func(t *testing.T) {
		env := newTestEnv()

		err := env.service.ResetPassword(ctx, "tok-bogus", "brand-new-pass")

		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

func TestService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("wrong current password is unauthorized", func(t *testing.T) {
		env := newTestEnv(activeUser("u1", "marco@example.com", "s3cret-pass"))

		err := env.service.ChangePassword(ctx, "u1", "wrong", "brand-new-pass", "irrelevant")

		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})

	t.Run("change keeps the current session and drops the others", func(t *testing.T) {
		env := newTestEnv(activeUser("u1", "marco@example.com", "s3cret-pass"))
		first, err := env.service.Login(ctx, LoginInput{Email: "marco@example.com", Password: "s3cret-pass"})
		require.NoError(t, err)
		_, err = env.service.Login(ctx, LoginInput{Email: "marco@example.com", Password: "s3cret-pass"})
		require.NoError(t, err)
		require.Equal(t, 2, env.sessions.active("u1"))

		err = env.service.ChangePassword(ctx, "u1", "s3cret-pass", "brand-new-pass", first.RefreshToken)

		require.NoError(t, err)
		assert.Equal(t, 1, env.sessions.active("u1"))

		// The surviving session is the one that initiated the change.
		session, err := env.sessions.FindByTokenHash(ctx, sec.HashToken(first.RefreshToken))
		require.NoError(t, err)
		assert.False(t, session.IsRevoked)
	})
}

func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	website := "https://marco.dev"
	badSite := "not-a-url"

	t.Run("profile fields are replaced", func(t *testing.T) {
		env := newTestEnv(activeUser("u1", "marco@example.com", "s3cret-pass"))

		user, err := env.service.UpdateProfile(ctx, "u1", ProfileInput{
			Name: "Marco Q.", Website: &website,
		})

		require.NoError(t, err)
		assert.Equal(t, "Marco Q.", user.Name)
		require.NotNil(t, user.Website)
		assert.Equal(t, website, *user.Website)
	})

	t.Run("malformed website is rejected", func(t *testing.T) {
		env := newTestEnv(activeUser("u1", "marco@example.com", "s3cret-pass"))

		_, err := env.service.UpdateProfile(ctx, "u1", ProfileInput{Name: "Marco", Website: &badSite})

		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}
