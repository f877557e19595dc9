// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package schema

// UserTable represents the 'users' table
type UserTable struct {
	Table        string
	ID           string
	Username     string
	Email        string
	PasswordHash string
	GoogleID     string
	AppleID      string
	Role         string
	IsActive     string
	CreatedAt    string
	UpdatedAt    string
	DeletedAt    string
}

// User is the schema definition for users
var User = UserTable{
	Table:        "users",
	ID:           "id",
	Username:     "username",
	Email:        "email",
	PasswordHash: "password_hash",
	GoogleID:     "google_id",
	AppleID:      "apple_id",
	Role:         "role",
	IsActive:     "is_active",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
	DeletedAt:    "deleted_at",
}

// Columns returns all standard column names
func (t UserTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.PasswordHash, t.GoogleID, t.AppleID,
		t.Role, t.IsActive, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
