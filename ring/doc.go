// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ring admits participants into a vote's key ring.

# Pipeline

Enroll runs an ordered sequence of fallible checks, each short-circuiting
to one error kind:

 1. load the vote            → KindNotFound
 2. vote must be active      → KindForbidden
 3. verify the credential    → KindUnauthorized
 4. evaluate eligibility     → KindForbidden
 5. duplicate-identity scan  → KindConflict
 6. insert the key record    → KindConflict on constraint violation

Eligibility and duplicate checks run strictly after credential
verification; a client-asserted identity is never an input to a policy
decision.

# Concurrency

Step 5 is only a fast, friendly rejection. Two concurrent enrollments for
the same identity or public key both pass the scan; the store's uniqueness
constraints then let exactly one insert win, and the loser gets
KindConflict. First writer wins, always.

# Timeouts

Each Enroll/ListKeys/GetKey call is bounded by a single deadline covering
all its store round-trips. Expiry surfaces as KindTransient, which is the
only retryable kind.
*/
package ring
