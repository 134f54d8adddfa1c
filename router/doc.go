// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP route table.

# Routes

Vote records:

	GET   /vote/{vote_id}          public read
	POST  /vote/{vote_id}          create (admin bearer token)
	PATCH /vote/{vote_id}          update (admin bearer token)

Key ring:

	GET   /vote/{vote_id}/ring                list enrolled public keys
	GET   /vote/{vote_id}/ring/{public_key}   one key with its identity
	POST  /vote/{vote_id}/ring/{public_key}   enroll (identity credential)

Routing uses Go 1.22+ method+wildcard patterns on the standard ServeMux.
All routes are wrapped with logging middleware; CORS is applied around the
whole mux in main.
*/
package router
