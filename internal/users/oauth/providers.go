// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package oauth

import "net/http"

// # Providers

const (
	GoogleKeysURL = "https://www.googleapis.com/oauth2/v3/certs"
	AppleKeysURL  = "https://appleid.apple.com/auth/keys"
)

var (
	googleIssuers = []string{"accounts.google.com", "https://accounts.google.com"}
	appleIssuers  = []string{"https://appleid.apple.com"}
)

// NewGoogleVerifier verifies Google ID tokens issued to clientID.
func NewGoogleVerifier(clientID string, client *http.Client) *Verifier {
	return NewVerifier(Config{
		KeysURL:    GoogleKeysURL,
		Issuers:    googleIssuers,
		Audience:   clientID,
		HTTPClient: client,
	})
}

// NewAppleVerifier verifies Sign in with Apple identity tokens issued to
// the app's bundle id.
func NewAppleVerifier(bundleID string, client *http.Client) *Verifier {
	return NewVerifier(Config{
		KeysURL:    AppleKeysURL,
		Issuers:    appleIssuers,
		Audience:   bundleID,
		HTTPClient: client,
	})
}
