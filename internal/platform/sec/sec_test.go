// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package sec_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosanz/mangashelfapi/internal/platform/sec"
)

const testUserID = "0190a000-0000-7000-8000-000000000001"

/*
TestTokenService_RoundTrip signs and verifies an access token.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService("shelf-secret", "mangashelf.app", 30*time.Minute)
	require.NoError(t, err)

	token, err := service.GenerateAccessToken(testUserID, "reader", string(sec.RoleAdmin))
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testUserID, claims.Subject)
	assert.Equal(t, "reader", claims.Username)
	assert.Equal(t, string(sec.RoleAdmin), claims.Role)
	assert.Equal(t, 30*time.Minute, service.TimeToLive())
}

/*
TestTokenService_Rejects covers tokens from another secret or issuer and
other signing methods.
*/
func TestTokenService_Rejects(t *testing.T) {
	service, err := sec.NewTokenService("shelf-secret", "mangashelf.app", time.Minute)
	require.NoError(t, err)

	otherSecret, err := sec.NewTokenService("another-secret", "mangashelf.app", time.Minute)
	require.NoError(t, err)
	otherIssuer, err := sec.NewTokenService("shelf-secret", "elsewhere.example", time.Minute)
	require.NoError(t, err)

	fromOtherSecret, err := otherSecret.GenerateAccessToken(testUserID, "reader", "user")
	require.NoError(t, err)
	fromOtherIssuer, err := otherIssuer.GenerateAccessToken(testUserID, "reader", "user")
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": testUserID, "uid": testUserID, "iss": "mangashelf.app",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"other secret", fromOtherSecret},
		{"other issuer", fromOtherIssuer},
		{"alg none", unsigned},
		{"garbage", "not.a.token"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.VerifyToken(tt.token)
			assert.Error(t, err)
		})
	}
}

/*
TestNewTokenService_Config rejects an empty secret and a non-positive TTL.
*/
func TestNewTokenService_Config(t *testing.T) {
	_, err := sec.NewTokenService("", "mangashelf.app", time.Minute)
	assert.Error(t, err)

	_, err = sec.NewTokenService("secret", "mangashelf.app", 0)
	assert.Error(t, err)
}

/*
TestPasswordHash checks bcrypt hashing and comparison.
*/
func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, sec.CheckPasswordHash("correct horse", hash))
	assert.False(t, sec.CheckPasswordHash("battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("correct horse", "not-a-hash"))
}

/*
TestTokens checks opaque token generation and hashing.
*/
func TestTokens(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	assert.Equal(t, sec.HashToken(first), sec.HashToken(first))
	assert.Len(t, sec.HashToken(first), 64)

	hexValue, err := sec.RandomHex(4)
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9a-f]{8}$`, hexValue)
}

/*
TestUserRole_AtLeast covers the role ordering.
*/
func TestUserRole_AtLeast(t *testing.T) {
	tests := []struct {
		role   sec.UserRole
		target sec.UserRole
		want   bool
	}{
		{sec.RoleAdmin, sec.RoleUser, true},
		{sec.RoleAdmin, sec.RoleAdmin, true},
		{sec.RoleUser, sec.RoleAdmin, false},
		{sec.UserRole("guest"), sec.RoleUser, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role)+">="+string(tt.target), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.target))
		})
	}

	assert.False(t, sec.UserRole("guest").Valid())
	assert.True(t, sec.RoleUser.Valid())
}
