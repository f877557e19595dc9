// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

/*
Package oauth verifies ID tokens issued by Google and Apple.

Both providers sign RS256 JWTs with keys published as a JWKS document. A
[Verifier] fetches that document, caches the keys and checks signature,
issuer, audience and expiry with golang-jwt.

Usage:

	verifier := oauth.NewGoogleVerifier(cfg.GoogleClientID, nil)
	identity, err := verifier.Verify(ctx, rawIDToken)
*/
package oauth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is what the application learns from a verified token.
type Identity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}

// # Errors

var (
	ErrUnknownKey = errors.New("oauth: signing key not found")
	ErrNoSubject  = errors.New("oauth: token has no subject")
)

const (
	defaultKeyCacheTTL = time.Hour
	jwksFetchTimeout   = 10 * time.Second
)

// Verifier checks ID tokens from one provider.
type Verifier struct {
	keysURL  string
	issuers  []string
	audience string

	httpClient *http.Client
	cacheTTL   time.Duration
	now        func() time.Time

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

// Config describes one provider.
type Config struct {
	KeysURL  string
	Issuers  []string
	Audience string

	// HTTPClient defaults to a client with a 10s timeout.
	HTTPClient *http.Client
	// CacheTTL bounds how long fetched keys are trusted before a refetch.
	CacheTTL time.Duration
}

// NewVerifier builds a [Verifier] from an explicit provider description.
func NewVerifier(cfg Config) *Verifier {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: jwksFetchTimeout}
	}

	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultKeyCacheTTL
	}

	return &Verifier{
		keysURL:    cfg.KeysURL,
		issuers:    cfg.Issuers,
		audience:   cfg.Audience,
		httpClient: client,
		cacheTTL:   cacheTTL,
		now:        time.Now,
		keys:       map[string]*rsa.PublicKey{},
	}
}

// idTokenClaims covers the fields both providers send. Apple encodes
// email_verified as a string, so it is decoded loosely.
type idTokenClaims struct {
	jwt.RegisteredClaims

	Email         string          `json:"email"`
	EmailVerified json.RawMessage `json:"email_verified"`
	Name          string          `json:"name"`
}

/*
Verify validates rawToken and returns the identity it asserts.

Parameters:
  - context: context.Context (bounds the JWKS fetch)
  - rawToken: string

Returns:
  - *Identity: the verified subject and profile claims
  - error: signature, issuer, audience, expiry or key fetch failures
*/
func (verifier *Verifier) Verify(context context.Context, rawToken string) (*Identity, error) {
	claims := &idTokenClaims{}

	_, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		keyID, _ := token.Header["kid"].(string)
		return verifier.key(context, keyID)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(verifier.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(verifier.now),
	)
	if err != nil {
		return nil, fmt.Errorf("oauth: invalid token: %w", err)
	}

	if !verifier.trustedIssuer(claims.Issuer) {
		return nil, fmt.Errorf("oauth: untrusted issuer %q", claims.Issuer)
	}
	if claims.Subject == "" {
		return nil, ErrNoSubject
	}

	return &Identity{
		Subject:       claims.Subject,
		Email:         claims.Email,
		EmailVerified: looseBool(claims.EmailVerified),
		Name:          claims.Name,
	}, nil
}

func (verifier *Verifier) trustedIssuer(issuer string) bool {
	for _, trusted := range verifier.issuers {
		if issuer == trusted {
			return true
		}
	}
	return false
}

// key returns the public key for keyID, refetching the JWKS when the cache
// is stale or the key is unknown (providers rotate keys).
func (verifier *Verifier) key(context context.Context, keyID string) (*rsa.PublicKey, error) {
	verifier.mu.RLock()
	key, ok := verifier.keys[keyID]
	fresh := verifier.now().Sub(verifier.fetchedAt) < verifier.cacheTTL
	verifier.mu.RUnlock()

	if ok && fresh {
		return key, nil
	}

	if err := verifier.refresh(context); err != nil {
		return nil, err
	}

	verifier.mu.RLock()
	defer verifier.mu.RUnlock()
	if key, ok := verifier.keys[keyID]; ok {
		return key, nil
	}
	return nil, ErrUnknownKey
}

type jsonWebKey struct {
	KeyID     string `json:"kid"`
	KeyType   string `json:"kty"`
	Algorithm string `json:"alg"`
	Modulus   string `json:"n"`
	Exponent  string `json:"e"`
}

func (verifier *Verifier) refresh(context context.Context) error {
	request, err := http.NewRequestWithContext(context, http.MethodGet, verifier.keysURL, nil)
	if err != nil {
		return fmt.Errorf("oauth: build jwks request: %w", err)
	}

	response, err := verifier.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("oauth: fetch jwks: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("oauth: fetch jwks: unexpected status %d", response.StatusCode)
	}

	var document struct {
		Keys []jsonWebKey `json:"keys"`
	}
	if err := json.NewDecoder(response.Body).Decode(&document); err != nil {
		return fmt.Errorf("oauth: decode jwks: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(document.Keys))
	for _, webKey := range document.Keys {
		if webKey.KeyType != "RSA" {
			continue
		}
		publicKey, err := webKey.rsaPublicKey()
		if err != nil {
			return err
		}
		keys[webKey.KeyID] = publicKey
	}

	verifier.mu.Lock()
	verifier.keys = keys
	verifier.fetchedAt = verifier.now()
	verifier.mu.Unlock()

	return nil
}

func (webKey jsonWebKey) rsaPublicKey() (*rsa.PublicKey, error) {
	modulus, err := base64.RawURLEncoding.DecodeString(webKey.Modulus)
	if err != nil {
		return nil, fmt.Errorf("oauth: key %s: bad modulus: %w", webKey.KeyID, err)
	}
	exponent, err := base64.RawURLEncoding.DecodeString(webKey.Exponent)
	if err != nil {
		return nil, fmt.Errorf("oauth: key %s: bad exponent: %w", webKey.KeyID, err)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(modulus),
		E: int(new(big.Int).SetBytes(exponent).Int64()),
	}, nil
}

func looseBool(raw json.RawMessage) bool {
	switch string(raw) {
	case "true", `"true"`:
		return true
	default:
		return false
	}
}
