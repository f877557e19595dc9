// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

/*
Package auth implements identity and refresh sessions.

It owns the users row as an identity (credentials, provider links, role) and
issues the token pair every other package trusts: a short-lived HS256 access
token and an opaque refresh token whose hash lives in Redis.

# Architecture

  - Entities: User, Session, LoginSession.
  - Storage: Postgres for users, Redis for refresh sessions.
  - Lifecycle: soft delete and restore belong to the account package; auth
    only refuses to sign in inactive users and delegates restore through
    [Restorer].
*/
package auth

import (
	"time"

	"github.com/gosanz/mangashelfapi/internal/platform/sec"
)

// # Domain Entities

// User is a registered account.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash *string      `json:"-"` // nil for accounts created through a provider
	GoogleID     *string      `json:"-"`
	AppleID      *string      `json:"-"`
	Role         sec.UserRole `json:"role"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	DeletedAt    *time.Time   `json:"deleted_at,omitempty"`
}

// HasPassword reports whether the account can sign in with a password.
func (user *User) HasPassword() bool {
	return user.PasswordHash != nil && *user.PasswordHash != ""
}

// Session is a refresh session. Only the hash of the refresh token is kept.
type Session struct {
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginSession is the token pair handed to a client after authentication.
type LoginSession struct {
	AccessToken           string
	AccessTokenTTL        time.Duration
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

// Provider names an external identity provider.
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderApple  Provider = "apple"
)

// # Field Identifiers

const (
	FieldUsername     = "username"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldLogin        = "login"
	FieldRefreshToken = "refresh_token"
	FieldIDToken      = "id_token"
)
