// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package auth

// # Authentication Constraints

const (
	// RefreshTokenLength is the byte length of the random refresh token.
	RefreshTokenLength = 32

	UsernameMinLength = 3
	UsernameMaxLength = 50
	PasswordMinLength = 8
	PasswordMaxLength = 72 // bcrypt ignores anything past 72 bytes

	// providerSuffixBytes is the random suffix of generated usernames.
	providerSuffixBytes = 4

	// appleFallbackDomain builds a placeholder email when Apple withholds it.
	appleFallbackDomain = "mangashelf.app"
)

// # Redis Keys

const (
	sessionKeyPrefix      = "auth:session:"
	userSessionsKeyPrefix = "auth:user_sessions:"
)
