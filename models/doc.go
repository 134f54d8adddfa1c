// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain and wire types shared across the server.

# Domain Types

Vote is the eligibility scope an organizer configures: an activity flag, an
open-to-all flag, and an explicit participant allow-list. Votes are created
and updated by an administrator and never deleted.

KeyRecord binds one public key to the verified identity that enrolled it.
The email and name are the claims from the identity token at enrollment time
and serve as an audit trail; they are never re-verified afterwards.

# Comparison Semantics

Emails are stored exactly as the identity provider reported them. All
membership and duplicate checks compare case-insensitively; normalization
happens at comparison time, never at storage time.

# Wire Types

Request and response types mirror the JSON bodies of the HTTP API. Optional
update fields use pointers so that "absent" and "zero value" stay
distinguishable.
*/
package models
