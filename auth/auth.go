// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"errors"
	"strings"
)

var ErrInvalidAdminToken = errors.New("invalid admin token")

// BearerToken extracts the credential from an Authorization header.
// Returns "" when the header is missing or not a Bearer scheme.
func BearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}

// ValidateAdminToken checks the Authorization header against the configured
// admin token. Constant-time comparison.
func ValidateAdminToken(header, adminToken string) error {
	token := BearerToken(header)
	if token == "" {
		return ErrInvalidAdminToken
	}
	if !hmac.Equal([]byte(token), []byte(adminToken)) {
		return ErrInvalidAdminToken
	}
	return nil
}
