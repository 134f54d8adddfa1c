// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ring

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/keyring-vote/server/identity"
	"github.com/keyring-vote/server/models"
	"github.com/keyring-vote/server/storage"
)

// defaultTimeout bounds one full enrollment or lookup, including every
// store round-trip it makes.
const defaultTimeout = 10 * time.Second

// VoteStore is the read-only view of vote records the engine needs.
type VoteStore interface {
	GetVote(ctx context.Context, id string) (models.Vote, error)
}

// KeyStore is the key-ring persistence the engine writes through. InsertKey
// must enforce global public-key uniqueness and per-vote identity
// uniqueness, surfacing both as storage.ErrDuplicate.
type KeyStore interface {
	ListKeys(ctx context.Context, voteID string) ([]models.KeyRecord, error)
	GetKey(ctx context.Context, voteID, publicKey string) (models.KeyRecord, error)
	InsertKey(ctx context.Context, k models.KeyRecord) error
}

// CredentialVerifier validates a bearer credential and extracts the
// identity it asserts.
type CredentialVerifier interface {
	Verify(credential string) (identity.Identity, error)
}

// Eligible reports whether email may enroll under the vote's policy.
// Comparison against the allow-list is case-insensitive.
func Eligible(v models.Vote, email string) bool {
	if v.AllowAll {
		return true
	}
	for _, p := range v.AllowedParticipants {
		if strings.EqualFold(p, email) {
			return true
		}
	}
	return false
}

// Enroller admits verified, eligible identities into a vote's key ring.
type Enroller struct {
	votes    VoteStore
	keys     KeyStore
	verifier CredentialVerifier
	timeout  time.Duration
}

func NewEnroller(votes VoteStore, keys KeyStore, verifier CredentialVerifier) *Enroller {
	return &Enroller{
		votes:    votes,
		keys:     keys,
		verifier: verifier,
		timeout:  defaultTimeout,
	}
}

// Enroll runs the admission pipeline: load vote, check activity, verify
// the credential, evaluate eligibility, reject duplicate identities, insert
// the key. The check order is part of the contract - it determines which
// rejection a caller observes. Every returned error is a *Error.
//
// The duplicate-identity scan is a read-then-write race window; the store's
// uniqueness constraints are the authority, and a lost race surfaces as
// KindConflict from the insert.
func (e *Enroller) Enroll(ctx context.Context, voteID, publicKey, credential string) (models.KeyRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	vote, err := e.votes.GetVote(ctx, voteID)
	if errors.Is(err, storage.ErrNotFound) {
		return models.KeyRecord{}, notFound("vote not found")
	}
	if err != nil {
		return models.KeyRecord{}, transient("failed to load vote", err)
	}

	if !vote.Active {
		return models.KeyRecord{}, forbidden("vote is not active")
	}

	id, err := e.verifier.Verify(credential)
	if err != nil {
		return models.KeyRecord{}, unauthorized("unauthorized")
	}

	if !Eligible(vote, id.Email) {
		return models.KeyRecord{}, forbidden("not eligible for this vote")
	}

	existing, err := e.keys.ListKeys(ctx, voteID)
	if err != nil {
		return models.KeyRecord{}, transient("failed to load key ring", err)
	}
	for _, k := range existing {
		if strings.EqualFold(k.Email, id.Email) {
			return models.KeyRecord{}, conflict("identity already enrolled")
		}
	}

	rec := models.KeyRecord{
		PublicKey: publicKey,
		VoteID:    voteID,
		Email:     id.Email,
		Name:      id.Name,
		CreatedAt: time.Now(),
	}
	if err := e.keys.InsertKey(ctx, rec); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return models.KeyRecord{}, conflict("key already exists")
		}
		return models.KeyRecord{}, transient("failed to insert key", err)
	}

	slog.Info("key enrolled", "vote_id", voteID, "public_key", publicKey)

	return rec, nil
}

// ListKeys returns the ring of a vote. No policy evaluation: an inactive
// vote's ring stays readable.
func (e *Enroller) ListKeys(ctx context.Context, voteID string) ([]models.KeyRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	if _, err := e.votes.GetVote(ctx, voteID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, notFound("vote not found")
		}
		return nil, transient("failed to load vote", err)
	}

	keys, err := e.keys.ListKeys(ctx, voteID)
	if err != nil {
		return nil, transient("failed to load key ring", err)
	}

	return keys, nil
}

// GetKey returns one enrolled key record. Like ListKeys, it works
// regardless of vote activity.
func (e *Enroller) GetKey(ctx context.Context, voteID, publicKey string) (models.KeyRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	if _, err := e.votes.GetVote(ctx, voteID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.KeyRecord{}, notFound("vote not found")
		}
		return models.KeyRecord{}, transient("failed to load vote", err)
	}

	k, err := e.keys.GetKey(ctx, voteID, publicKey)
	if errors.Is(err, storage.ErrNotFound) {
		return models.KeyRecord{}, notFound("key not found")
	}
	if err != nil {
		return models.KeyRecord{}, transient("failed to load key", err)
	}

	return k, nil
}
