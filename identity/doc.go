// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package identity verifies bearer credentials issued by a third-party
identity provider.

# Key Set

The provider publishes its verification keys at a JWKS endpoint and rotates
them periodically. NewVerifier fetches the set once at startup and keeps a
process-wide cache that refreshes in the background and on unknown key IDs
(rate-limited, one in-flight fetch at a time). The cache is the only shared
mutable state in the server.

# Verification

	v, err := identity.NewVerifier(ctx, jwksURL, issuer, audience)
	id, err := v.Verify(credential)

Verify enforces, in this order: a known signing algorithm, a signature by a
key currently in the set, the configured issuer, the configured audience,
and an unexpired exp claim. On success it returns the email and name claims;
these are the only identity inputs the rest of the server trusts.

# Failure Mode

Every failure collapses to ErrVerification. Callers surface it as 401 and
must not retry; distinguishing the cryptographic cause would leak an oracle
to whoever forged the token.
*/
package identity
