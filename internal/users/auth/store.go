// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package auth

import (
	"context"
	"time"
)

// # Repository Contracts

// UserRepository defines the persistence contract for identities.
//
// Lookups include accounts pending deletion: the caller decides what an
// inactive user may do.
type UserRepository interface {
	FindByID(context context.Context, id string) (*User, bool, error)
	FindByUsername(context context.Context, username string) (*User, bool, error)
	FindByEmail(context context.Context, email string) (*User, bool, error)

	// FindByProvider looks a user up by an external subject id.
	FindByProvider(context context.Context, provider Provider, subject string) (*User, bool, error)

	/*
		Create persists a new user.

		Returns:
		  - error: apperr.Conflict on a username, email or provider id collision
	*/
	Create(context context.Context, user *User) error

	// LinkProvider attaches an external subject id to an existing user.
	LinkProvider(context context.Context, userID string, provider Provider, subject string) error
}

// SessionRepository stores refresh sessions.
type SessionRepository interface {
	// Create stores a session until ttl elapses.
	Create(context context.Context, session *Session, ttl time.Duration) error

	/*
		Consume atomically reads and removes a session, so a refresh token can
		be redeemed once.

		Returns:
		  - *Session, true: the session existed
		  - nil, false: unknown, expired or already consumed
	*/
	Consume(context context.Context, tokenHash string) (*Session, bool, error)

	// RevokeAll removes every session of a user.
	RevokeAll(context context.Context, userID string) error
}
