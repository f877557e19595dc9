// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gosanz/mangashelfapi/internal/platform/apperr"
	"github.com/gosanz/mangashelfapi/internal/platform/ctxutil"
	"github.com/gosanz/mangashelfapi/internal/platform/respond"
	"github.com/gosanz/mangashelfapi/internal/platform/sec"
)

// TokenVerifier verifies bearer access tokens.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// ActiveChecker reports whether an account may still act. Soft-deleted
// accounts hold valid tokens until expiry, so routes that touch user data
// re-check the flag.
type ActiveChecker interface {
	IsActive(context context.Context, userID string) (bool, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. No header: the request proceeds as anonymous.
//  2. Malformed header or invalid token: 401.
//  3. Otherwise the [*sec.AuthClaims] are injected into the context.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			claims, err := verifier.VerifyToken(parts[1])
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// Must be registered AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if GetUser(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireActive blocks authenticated callers whose account is pending
// deletion or gone. It implies [RequireAuth].
func RequireActive(checker ActiveChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := GetUser(request.Context())
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			isActive, err := checker.IsActive(request.Context(), claims.UserID)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}
			if !isActive {
				respond.Error(writer, request, apperr.Forbidden("Inactive user"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// RequireRole blocks requests if the authenticated user doesn't have the
// required role. It implies [RequireAuth].
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := GetUser(request.Context())

			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			if !sec.UserRole(claims.Role).AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// GetUser retrieves the [*sec.AuthClaims] from the context, or nil when anonymous.
func GetUser(ctx context.Context) *sec.AuthClaims {
	return ctxutil.GetAuthUser(ctx)
}
