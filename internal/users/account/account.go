// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

/*
Package account manages the lifecycle and profile of an existing user.

# Lifecycle

	Active --SoftDelete--> PendingDeletion --Purge (after grace)--> Purged
	                       PendingDeletion --Restore (within grace)--> Active

A soft-deleted account keeps its row and its collection for [GracePeriod].
After that the row is eligible for purge, which removes the collection and
the user in one transaction. Purged is terminal: there is no row left.
*/
package account

import (
	"context"
	"time"

	"github.com/gosanz/mangashelfapi/internal/users/auth"
)

// GracePeriod is how long a soft-deleted account stays restorable.
const GracePeriod = 15 * 24 * time.Hour

// # Domain Entities

// State is the lifecycle position of an account.
type State string

const (
	StateActive          State = "active"
	StatePendingDeletion State = "pending_deletion"
)

// StateOf derives the lifecycle state from the stored columns.
func StateOf(user *auth.User) State {
	if user.DeletedAt != nil {
		return StatePendingDeletion
	}
	return StateActive
}

// PurgeCandidate is an account whose grace period has elapsed.
type PurgeCandidate struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	DeletedAt time.Time `json:"deleted_at"`
}

// PurgeReport summarises one sweep over the purge candidates.
type PurgeReport struct {
	Purged []string         `json:"purged"`
	Failed map[string]error `json:"-"`
}

// ProfileUpdate is a sparse profile change; nil fields are left untouched.
type ProfileUpdate struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// # Field Identifiers

const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
)

// # Repository Contracts

// Repository persists lifecycle and profile changes on the users table.
type Repository interface {
	// FindByID returns the user whatever its lifecycle state.
	FindByID(context context.Context, id string) (*auth.User, bool, error)

	// IsActive reports the is_active flag; a missing user is inactive.
	IsActive(context context.Context, id string) (bool, error)

	// MarkDeleted stamps deleted_at and clears is_active.
	MarkDeleted(context context.Context, id string, at time.Time) error

	// ClearDeleted clears deleted_at and sets is_active, provided the account
	// is still pending and deleted_at is not before notBefore. It reports
	// false when the guard no longer holds.
	ClearDeleted(context context.Context, id string, notBefore, at time.Time) (bool, error)

	/*
		Purge deletes the user's ledger entries and then the user row in one
		transaction, provided deleted_at is still before cutoff.

		Returns:
		  - bool: false when nothing was deleted (restored or purged meanwhile)
	*/
	Purge(context context.Context, id string, cutoff time.Time) (bool, error)

	// ListPurgeCandidates returns accounts soft-deleted before cutoff, oldest first.
	ListPurgeCandidates(context context.Context, cutoff time.Time) ([]PurgeCandidate, error)

	// UpdateProfile writes username and email.
	UpdateProfile(context context.Context, user *auth.User) error

	// UpdatePassword replaces the password hash.
	UpdatePassword(context context.Context, id, passwordHash string, at time.Time) error
}

// SessionRevoker drops refresh sessions. The auth Redis store satisfies it.
type SessionRevoker interface {
	RevokeAll(context context.Context, userID string) error
}
