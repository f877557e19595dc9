// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosanz/mangashelfapi/internal/platform/apperr"
	"github.com/gosanz/mangashelfapi/internal/platform/sec"
	"github.com/gosanz/mangashelfapi/internal/users/auth"
	"github.com/gosanz/mangashelfapi/internal/users/oauth"
)

// # Fakes

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[string]*auth.User{}}
}

func (store *memoryUsers) find(match func(*auth.User) bool) (*auth.User, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, user := range store.users {
		if match(user) {
			copied := *user
			return &copied, true, nil
		}
	}
	return nil, false, nil
}

func (store *memoryUsers) FindByID(_ context.Context, id string) (*auth.User, bool, error) {
	return store.find(func(u *auth.User) bool { return u.ID == id })
}

func (store *memoryUsers) FindByUsername(_ context.Context, username string) (*auth.User, bool, error) {
	return store.find(func(u *auth.User) bool { return u.Username == username })
}

func (store *memoryUsers) FindByEmail(_ context.Context, email string) (*auth.User, bool, error) {
	return store.find(func(u *auth.User) bool { return u.Email == email })
}

func (store *memoryUsers) FindByProvider(_ context.Context, provider auth.Provider, subject string) (*auth.User, bool, error) {
	return store.find(func(u *auth.User) bool {
		switch provider {
		case auth.ProviderGoogle:
			return u.GoogleID != nil && *u.GoogleID == subject
		case auth.ProviderApple:
			return u.AppleID != nil && *u.AppleID == subject
		}
		return false
	})
}

func (store *memoryUsers) Create(_ context.Context, user *auth.User) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, existing := range store.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return apperr.Conflict("Resource already exists")
		}
	}
	copied := *user
	store.users[user.ID] = &copied
	return nil
}

func (store *memoryUsers) LinkProvider(_ context.Context, userID string, provider auth.Provider, subject string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	user, ok := store.users[userID]
	if !ok {
		return apperr.NotFound("Resource")
	}
	if provider == auth.ProviderGoogle {
		user.GoogleID = &subject
	} else {
		user.AppleID = &subject
	}
	return nil
}

func (store *memoryUsers) setActive(userID string, active bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.users[userID].IsActive = active
}

type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]auth.Session
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[string]auth.Session{}}
}

func (store *memorySessions) Create(_ context.Context, session *auth.Session, _ time.Duration) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.sessions[session.TokenHash] = *session
	return nil
}

func (store *memorySessions) Consume(_ context.Context, tokenHash string) (*auth.Session, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	session, ok := store.sessions[tokenHash]
	if !ok {
		return nil, false, nil
	}
	delete(store.sessions, tokenHash)
	return &session, true, nil
}

func (store *memorySessions) RevokeAll(_ context.Context, userID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	for hash, session := range store.sessions {
		if session.UserID == userID {
			delete(store.sessions, hash)
		}
	}
	return nil
}

type stubVerifier struct {
	identities map[string]*oauth.Identity
}

func (verifier stubVerifier) Verify(_ context.Context, rawToken string) (*oauth.Identity, error) {
	identity, ok := verifier.identities[rawToken]
	if !ok {
		return nil, errors.New("signature mismatch")
	}
	return identity, nil
}

type recordingRestorer struct {
	users    *memoryUsers
	restored []string
	err      error
}

func (restorer *recordingRestorer) Restore(_ context.Context, userID string) error {
	if restorer.err != nil {
		return restorer.err
	}
	restorer.restored = append(restorer.restored, userID)
	restorer.users.setActive(userID, true)
	return nil
}

type fixture struct {
	service  *auth.Service
	users    *memoryUsers
	sessions *memorySessions
	restorer *recordingRestorer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tokens, err := sec.NewTokenService(strings.Repeat("s", 32), "test", 15*time.Minute)
	require.NoError(t, err)

	users := newMemoryUsers()
	sessions := newMemorySessions()
	service := auth.NewService(users, sessions, tokens, time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))

	service.RegisterProvider(auth.ProviderGoogle, stubVerifier{identities: map[string]*oauth.Identity{
		"google-new":    {Subject: "g-100", Email: "Kaori.Miyazono@Example.com"},
		"google-linked": {Subject: "g-200", Email: "reader@example.com"},
	}})
	service.RegisterProvider(auth.ProviderApple, stubVerifier{identities: map[string]*oauth.Identity{
		"apple-private": {Subject: "001.apple"},
	}})

	restorer := &recordingRestorer{users: users}
	service.SetRestorer(restorer)

	return &fixture{service: service, users: users, sessions: sessions, restorer: restorer}
}

func (f *fixture) register(t *testing.T) *auth.User {
	t.Helper()

	user, err := f.service.Register(context.Background(), auth.RegisterInput{
		Username: "reader",
		Email:    "Reader@Example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return user
}

// # Tests

/*
TestService_Register covers the happy path and collisions.
*/
func TestService_Register(t *testing.T) {
	f := newFixture(t)
	user := f.register(t)

	assert.Equal(t, "reader@example.com", user.Email)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.True(t, user.HasPassword())

	tests := []struct {
		name     string
		input    auth.RegisterInput
		wantCode string
	}{
		{"duplicate username", auth.RegisterInput{Username: "reader", Email: "other@example.com", Password: "password1"}, apperr.CodeConflict},
		{"duplicate email ignores case", auth.RegisterInput{Username: "other", Email: "READER@example.com", Password: "password1"}, apperr.CodeConflict},
		{"short password", auth.RegisterInput{Username: "other", Email: "other@example.com", Password: "short"}, apperr.CodeValidation},
		{"bad email", auth.RegisterInput{Username: "other", Email: "not-an-email", Password: "password1"}, apperr.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Register(context.Background(), tt.input)
			assert.True(t, apperr.HasCode(err, tt.wantCode), "got %v", err)
		})
	}
}

/*
TestService_Login accepts username or email and refuses inactive accounts.
*/
func TestService_Login(t *testing.T) {
	f := newFixture(t)
	user := f.register(t)

	for _, login := range []string{"reader", "READER@example.com"} {
		session, err := f.service.Login(context.Background(), auth.LoginInput{Login: login, Password: "correct-horse"})
		require.NoError(t, err, login)
		assert.NotEmpty(t, session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
		assert.Equal(t, 15*time.Minute, session.AccessTokenTTL)
	}

	_, err := f.service.Login(context.Background(), auth.LoginInput{Login: "reader", Password: "wrong-horse"})
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

	_, err = f.service.Login(context.Background(), auth.LoginInput{Login: "nobody", Password: "correct-horse"})
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

	f.users.setActive(user.ID, false)
	_, err = f.service.Login(context.Background(), auth.LoginInput{Login: "reader", Password: "correct-horse"})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))
}

/*
TestService_RefreshSession checks one-time use of refresh tokens.
*/
func TestService_RefreshSession(t *testing.T) {
	f := newFixture(t)
	f.register(t)

	first, err := f.service.Login(context.Background(), auth.LoginInput{Login: "reader", Password: "correct-horse"})
	require.NoError(t, err)

	second, err := f.service.RefreshSession(context.Background(), first.RefreshToken, "test-agent", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = f.service.RefreshSession(context.Background(), first.RefreshToken, "test-agent", "127.0.0.1")
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized), "a consumed token must not be redeemable")

	require.NoError(t, f.service.Logout(context.Background(), second.RefreshToken))
	_, err = f.service.RefreshSession(context.Background(), second.RefreshToken, "", "")
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

	assert.NoError(t, f.service.Logout(context.Background(), "never-issued"))
}

/*
TestService_LoginWithProvider covers creation, email linking and the Apple
fallback email.
*/
func TestService_LoginWithProvider(t *testing.T) {
	t.Run("creates with a generated username", func(t *testing.T) {
		f := newFixture(t)

		session, err := f.service.LoginWithProvider(context.Background(), auth.ProviderLoginInput{
			Provider: auth.ProviderGoogle, IDToken: "google-new",
		})
		require.NoError(t, err)
		assert.Regexp(t, `^kaori-miyazono_[0-9a-f]{8}$`, session.User.Username)
		assert.Equal(t, "kaori.miyazono@example.com", session.User.Email)
		assert.False(t, session.User.HasPassword())

		again, err := f.service.LoginWithProvider(context.Background(), auth.ProviderLoginInput{
			Provider: auth.ProviderGoogle, IDToken: "google-new",
		})
		require.NoError(t, err)
		assert.Equal(t, session.User.ID, again.User.ID)
	})

	t.Run("links an existing email", func(t *testing.T) {
		f := newFixture(t)
		user := f.register(t)

		session, err := f.service.LoginWithProvider(context.Background(), auth.ProviderLoginInput{
			Provider: auth.ProviderGoogle, IDToken: "google-linked",
		})
		require.NoError(t, err)
		assert.Equal(t, user.ID, session.User.ID)
		require.NotNil(t, session.User.GoogleID)
		assert.Equal(t, "g-200", *session.User.GoogleID)
	})

	t.Run("apple without email", func(t *testing.T) {
		f := newFixture(t)

		session, err := f.service.LoginWithProvider(context.Background(), auth.ProviderLoginInput{
			Provider: auth.ProviderApple, IDToken: "apple-private",
		})
		require.NoError(t, err)
		assert.Equal(t, "apple_001.apple@mangashelf.app", session.User.Email)
		assert.True(t, strings.HasPrefix(session.User.Username, "apple_user_"))
	})

	t.Run("rejected token", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.LoginWithProvider(context.Background(), auth.ProviderLoginInput{
			Provider: auth.ProviderGoogle, IDToken: "forged",
		})
		assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
	})

	t.Run("provider not configured", func(t *testing.T) {
		tokens, err := sec.NewTokenService(strings.Repeat("s", 32), "test", time.Minute)
		require.NoError(t, err)
		service := auth.NewService(newMemoryUsers(), newMemorySessions(), tokens, time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))

		_, err = service.LoginWithProvider(context.Background(), auth.ProviderLoginInput{
			Provider: auth.ProviderApple, IDToken: "anything",
		})
		assert.True(t, apperr.HasCode(err, apperr.CodeServiceUnavailable))
	})
}

/*
TestService_RestoreWithPassword delegates to the lifecycle and signs in.
*/
func TestService_RestoreWithPassword(t *testing.T) {
	f := newFixture(t)
	user := f.register(t)
	f.users.setActive(user.ID, false)

	_, err := f.service.RestoreWithPassword(context.Background(), auth.LoginInput{Login: "reader", Password: "wrong-horse"})
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
	assert.Empty(t, f.restorer.restored)

	session, err := f.service.RestoreWithPassword(context.Background(), auth.LoginInput{Login: "reader", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, []string{user.ID}, f.restorer.restored)
	assert.True(t, session.User.IsActive)

	f.restorer.err = apperr.InvalidState("Grace period has expired")
	_, err = f.service.RestoreWithPassword(context.Background(), auth.LoginInput{Login: "reader", Password: "correct-horse"})
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidState))
}
