// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the keyring-vote API server.

keyring-vote runs organizer-defined votes where each eligible participant
proves their identity through a third-party identity provider and enrolls
one cryptographic public key into the vote's key ring.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... ISSUER_BASE_URL=... AUDIENCE=... ADMIN_TOKEN=... go run main.go

Or with flags:

	go run main.go -p 5172 -d "postgres://..." -issuer ... -audience ... -admin-token ...

A .env file in the working directory is loaded first.

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string
  - ISSUER_BASE_URL (--issuer): expected identity-token issuer
  - AUDIENCE (--audience): expected identity-token audience
  - ADMIN_TOKEN (--admin-token): bearer token for vote management

Optional settings:

  - PORT (-p): server port (default: 5172)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - JWKS_URL (--jwks-url): signing-key endpoint (default: Google's)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (votes, ring)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: domain and wire types
  - identity: credential verification against the provider's JWKS
  - ring: eligibility policy and the enrollment pipeline
  - storage: vote and key-ring persistence
  - auth: admin bearer-token gate
  - db: schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
