// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// RoleAdmin manages the shared catalog and purges accounts.
	RoleAdmin UserRole = "admin"

	// RoleUser is the default role; it owns a personal collection.
	RoleUser UserRole = "user"
)

// AtLeast checks if the current role meets or exceeds the target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	return r.level() > 0
}

func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}
