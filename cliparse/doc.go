// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 5172)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - JWKSURL: Identity provider signing-key endpoint (default: Google's certs)
  - Issuer: Expected token issuer (required)
  - Audience: Expected token audience (required)
  - AdminToken: Bearer token guarding vote creation/update (required)

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	JWKS_URL        → --jwks-url
	ISSUER_BASE_URL → --issuer
	AUDIENCE        → --audience
	ADMIN_TOKEN     → --admin-token

CLI flags take precedence over environment variables. A .env file in the
working directory is loaded into the environment before parsing (see main).

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - ISSUER_BASE_URL must be provided
  - AUDIENCE must be provided
  - ADMIN_TOKEN must be provided
*/
package cliparse
