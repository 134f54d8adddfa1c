// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

# Components

  - WithLogging: request/response logging with per-request correlation IDs
  - CORS: cross-origin headers for the voting frontend (origin echo with
    credentials, preflight handling)
  - JSONResponse / ErrorResponse: consistent JSON output
  - ParseJSONBody: request body decoding

# Error Format

All errors use a consistent JSON structure:

	{
	  "error": "Not Found",
	  "message": "Vote not found"
	}
*/
package middleware
