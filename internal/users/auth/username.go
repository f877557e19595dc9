// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package auth

import (
	"strings"

	"github.com/gosanz/mangashelfapi/internal/platform/sec"
	"github.com/gosanz/mangashelfapi/pkg/slug"
)

// generateUsername derives a username for an account created through a
// provider. Google accounts get "<slug of the email local part>_<hex>",
// Apple accounts "apple_user_<hex>".
func generateUsername(provider Provider, email string) (string, error) {
	suffix, err := sec.RandomHex(providerSuffixBytes)
	if err != nil {
		return "", err
	}

	base := "apple_user"
	if provider == ProviderGoogle {
		base = usernameBase(email)
	}

	return base + "_" + suffix, nil
}

func usernameBase(email string) string {
	local, _, _ := strings.Cut(email, "@")
	base := slug.From(local)
	if base == "" {
		return "user"
	}

	// Leave room for "_" and the hex suffix.
	limit := UsernameMaxLength - 1 - 2*providerSuffixBytes
	if len(base) > limit {
		base = strings.TrimRight(base[:limit], "-")
	}
	return base
}
