// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers.

# Handlers

  - VoteHandler: vote record management (GetVote, CreateVote, UpdateVote).
    Creation and update require the admin bearer token.
  - RingHandler: key-ring operations (GetRing, GetKey, Enroll). Reads are
    public and ignore vote activity; enrollment runs the full admission
    pipeline in package ring.

# Status Mapping

Ring errors carry a taxonomy kind which maps 1:1 onto a status code:
NotFound→404, Unauthorized→401, Forbidden→403, Conflict→409,
Transient→503. Only Transient responses are safe to retry.

# Dependency Injection

Handlers are structs with injected collaborators:

	ringHandler := handlers.NewRingHandler(enroller)
	voteHandler := handlers.NewVoteHandler(store, cfg)

Tests construct them with a stub credential verifier and a throwaway
sqlite database.
*/
package handlers
