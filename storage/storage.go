// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/keyring-vote/server/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Store provides vote and key-ring persistence over database/sql.
// Works against postgres and sqlite; placeholders use the $n form, which
// both drivers accept.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// GetVote loads a vote by ID. Returns ErrNotFound if it doesn't exist.
func (s *Store) GetVote(ctx context.Context, id string) (models.Vote, error) {
	var v models.Vote
	var participants []byte

	err := s.db.QueryRowContext(ctx, `
		SELECT id, active, allow_all, allowed_participants, created_at
		FROM votings
		WHERE id = $1
	`, id).Scan(&v.ID, &v.Active, &v.AllowAll, &participants, &v.CreatedAt)

	if err == sql.ErrNoRows {
		return models.Vote{}, ErrNotFound
	}
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to query vote: %w", err)
	}

	if err := json.Unmarshal(participants, &v.AllowedParticipants); err != nil {
		return models.Vote{}, fmt.Errorf("failed to decode allow-list: %w", err)
	}

	return v, nil
}

// CreateVote inserts a new vote. Returns ErrDuplicate if the ID is taken.
func (s *Store) CreateVote(ctx context.Context, v models.Vote) error {
	participants, err := json.Marshal(allowList(v.AllowedParticipants))
	if err != nil {
		return fmt.Errorf("failed to encode allow-list: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO votings (id, active, allow_all, allowed_participants, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, v.ID, v.Active, v.AllowAll, participants, time.Now())

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	return nil
}

// UpdateVote overwrites the policy fields of an existing vote.
// Returns ErrNotFound if the vote doesn't exist.
func (s *Store) UpdateVote(ctx context.Context, v models.Vote) error {
	participants, err := json.Marshal(allowList(v.AllowedParticipants))
	if err != nil {
		return fmt.Errorf("failed to encode allow-list: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE votings
		SET active = $1, allow_all = $2, allowed_participants = $3
		WHERE id = $4
	`, v.Active, v.AllowAll, participants, v.ID)

	if err != nil {
		return fmt.Errorf("failed to update vote: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// ListKeys returns all key records enrolled under a vote.
func (s *Store) ListKeys(ctx context.Context, voteID string) ([]models.KeyRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT public_key, vote_id, email, name, created_at
		FROM keys
		WHERE vote_id = $1
		ORDER BY created_at, public_key
	`, voteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query keys: %w", err)
	}
	defer rows.Close()

	keys := []models.KeyRecord{}
	for rows.Next() {
		var k models.KeyRecord
		if err := rows.Scan(&k.PublicKey, &k.VoteID, &k.Email, &k.Name, &k.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read keys: %w", err)
	}

	return keys, nil
}

// GetKey loads a single key record. Returns ErrNotFound if no key with
// this value is enrolled under the vote.
func (s *Store) GetKey(ctx context.Context, voteID, publicKey string) (models.KeyRecord, error) {
	var k models.KeyRecord

	err := s.db.QueryRowContext(ctx, `
		SELECT public_key, vote_id, email, name, created_at
		FROM keys
		WHERE vote_id = $1 AND public_key = $2
	`, voteID, publicKey).Scan(&k.PublicKey, &k.VoteID, &k.Email, &k.Name, &k.CreatedAt)

	if err == sql.ErrNoRows {
		return models.KeyRecord{}, ErrNotFound
	}
	if err != nil {
		return models.KeyRecord{}, fmt.Errorf("failed to query key: %w", err)
	}

	return k, nil
}

// InsertKey stores a new key record. Returns ErrDuplicate when the public
// key is already enrolled anywhere, or when the (vote, email) pair already
// holds a key. The constraints behind this are the authority for both
// uniqueness invariants; callers' pre-checks are an optimization only.
func (s *Store) InsertKey(ctx context.Context, k models.KeyRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO keys (public_key, vote_id, email, name, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, k.PublicKey, k.VoteID, k.Email, k.Name, k.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert key: %w", err)
	}

	return nil
}

// allowList normalizes a nil slice to an empty one so the stored JSON is
// always an array.
func allowList(participants []string) []string {
	if participants == nil {
		return []string{}
	}
	return participants
}

// isUniqueViolation reports whether err is a uniqueness-constraint error
// from either supported driver.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	// modernc.org/sqlite doesn't export a stable error type for this
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
