// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// driver is "postgres" or "sqlite".
func CreateSchema(db *sql.DB, driver string) error {
	schema := postgresSchema
	if driver == "sqlite" {
		schema = sqliteSchema
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The keys table carries both uniqueness invariants: the public key is
// globally unique (primary key) and each vote holds at most one key per
// email, compared case-insensitively. The store, not any in-process check,
// is the authority for both.
const postgresSchema = `
-- Votes
CREATE TABLE IF NOT EXISTS votings (
    id TEXT PRIMARY KEY,
    active BOOLEAN NOT NULL DEFAULT FALSE,
    allow_all BOOLEAN NOT NULL DEFAULT FALSE,
    allowed_participants JSONB NOT NULL DEFAULT '[]',
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

-- Enrolled public keys
CREATE TABLE IF NOT EXISTS keys (
    public_key TEXT PRIMARY KEY,
    vote_id TEXT NOT NULL REFERENCES votings(id),
    email TEXT NOT NULL,
    name TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_keys_vote_id ON keys(vote_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_keys_vote_email ON keys(vote_id, LOWER(email));
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS votings (
    id TEXT PRIMARY KEY,
    active BOOLEAN NOT NULL DEFAULT FALSE,
    allow_all BOOLEAN NOT NULL DEFAULT FALSE,
    allowed_participants TEXT NOT NULL DEFAULT '[]',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS keys (
    public_key TEXT PRIMARY KEY,
    vote_id TEXT NOT NULL REFERENCES votings(id),
    email TEXT NOT NULL,
    name TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_keys_vote_id ON keys(vote_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_keys_vote_email ON keys(vote_id, LOWER(email));
`
