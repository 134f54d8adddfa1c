// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// ErrVerification is the only error Verify returns. The specific cause
// (bad signature, unknown key, wrong issuer/audience, expired) is logged
// but never exposed, so callers can't probe which check failed.
var ErrVerification = errors.New("credential verification failed")

// Identity is the verified claim pair extracted from a valid token.
// Once returned, it is trusted for the remainder of the request.
type Identity struct {
	Email string
	Name  string
}

// Verifier validates bearer credentials against the identity provider's
// remote signing-key set. The key set is fetched on construction and kept
// fresh by a shared background cache, so key rotation at the provider does
// not require a restart.
type Verifier struct {
	keys   keyfunc.Keyfunc
	parser *jwt.Parser
}

// NewVerifier fetches the initial key set from jwksURL and returns a
// Verifier that enforces the given issuer and audience. The returned
// Verifier is safe for concurrent use; concurrent refresh attempts on an
// unknown key ID collapse into a single rate-limited fetch.
func NewVerifier(ctx context.Context, jwksURL, issuer, audience string) (*Verifier, error) {
	keys, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to load signing keys from %s: %w", jwksURL, err)
	}

	parser := jwt.NewParser(
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{"RS256", "ES256"}),
	)

	return &Verifier{keys: keys, parser: parser}, nil
}

type tokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Verify checks the credential's signature, issuer, audience and expiry
// and returns the identity claims it carries.
func (v *Verifier) Verify(credential string) (Identity, error) {
	var claims tokenClaims
	token, err := v.parser.ParseWithClaims(credential, &claims, v.keys.Keyfunc)
	if err != nil {
		slog.Debug("credential rejected", "error", err)
		return Identity{}, ErrVerification
	}
	if !token.Valid {
		return Identity{}, ErrVerification
	}
	if claims.Email == "" {
		slog.Debug("credential rejected", "error", "no email claim")
		return Identity{}, ErrVerification
	}

	return Identity{Email: claims.Email, Name: claims.Name}, nil
}
