// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema

Two tables:

  - votings: one row per vote (activity flag, allow-list policy)
  - keys: one row per enrolled public key

The keys table enforces the enrollment invariants at the constraint level:

  - public_key is the primary key, so a public key can be enrolled into at
    most one vote, ever
  - a unique index on (vote_id, LOWER(email)) guarantees one key per
    identity per vote even under concurrent enrollment attempts

# Usage

	err := db.CreateSchema(dbConn, cfg.DatabaseType)

CreateSchema is idempotent (IF NOT EXISTS) and ships a postgres and a sqlite
variant; the column layouts are identical, only defaults and the JSON column
type differ.
*/
package db
