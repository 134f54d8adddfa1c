// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the administrative-token gate.

Vote creation and update are guarded by a single static bearer token set at
deploy time:

	err := auth.ValidateAdminToken(r.Header.Get("Authorization"), cfg.AdminToken)

The comparison uses hmac.Equal so a mismatched token takes the same time to
reject regardless of where it diverges.

Participant enrollment does NOT use this package; participants authenticate
with identity-provider credentials (see package identity).
*/
package auth
