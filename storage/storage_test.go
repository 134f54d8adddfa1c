package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/keyring-vote/server/models"
	"github.com/keyring-vote/server/testutil"
)

func TestVoteRoundTrip(t *testing.T) {
	dbConn := testutil.SetupTestDB(t)
	defer dbConn.Close()
	store := NewStore(dbConn)
	ctx := context.Background()

	vote := models.Vote{
		ID:                  "v1",
		Active:              true,
		AllowAll:            false,
		AllowedParticipants: []string{"a@x.com", "B@x.com"},
	}

	if err := store.CreateVote(ctx, vote); err != nil {
		t.Fatalf("CreateVote failed: %v", err)
	}

	got, err := store.GetVote(ctx, "v1")
	if err != nil {
		t.Fatalf("GetVote failed: %v", err)
	}
	if !got.Active || got.AllowAll {
		t.Errorf("unexpected flags: %+v", got)
	}
	if len(got.AllowedParticipants) != 2 || got.AllowedParticipants[1] != "B@x.com" {
		t.Errorf("allow-list not preserved as stored: %+v", got.AllowedParticipants)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	// Duplicate ID
	if err := store.CreateVote(ctx, vote); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	// Missing vote
	if _, err := store.GetVote(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateVote(t *testing.T) {
	dbConn := testutil.SetupTestDB(t)
	defer dbConn.Close()
	store := NewStore(dbConn)
	ctx := context.Background()

	testutil.CreateTestVote(t, dbConn, "v1", true, false, []string{"a@x.com"})

	updated := models.Vote{
		ID:                  "v1",
		Active:              false,
		AllowAll:            true,
		AllowedParticipants: nil,
	}
	if err := store.UpdateVote(ctx, updated); err != nil {
		t.Fatalf("UpdateVote failed: %v", err)
	}

	got, err := store.GetVote(ctx, "v1")
	if err != nil {
		t.Fatalf("GetVote failed: %v", err)
	}
	if got.Active || !got.AllowAll {
		t.Errorf("update not applied: %+v", got)
	}
	if len(got.AllowedParticipants) != 0 {
		t.Errorf("expected empty allow-list, got %+v", got.AllowedParticipants)
	}

	if err := store.UpdateVote(ctx, models.Vote{ID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestKeyRoundTrip(t *testing.T) {
	dbConn := testutil.SetupTestDB(t)
	defer dbConn.Close()
	store := NewStore(dbConn)
	ctx := context.Background()

	testutil.CreateTestVote(t, dbConn, "v1", true, true, nil)

	rec := models.KeyRecord{
		PublicKey: "pk1",
		VoteID:    "v1",
		Email:     "a@x.com",
		Name:      "Alice",
		CreatedAt: time.Now(),
	}
	if err := store.InsertKey(ctx, rec); err != nil {
		t.Fatalf("InsertKey failed: %v", err)
	}

	keys, err := store.ListKeys(ctx, "v1")
	if err != nil {
		t.Fatalf("ListKeys failed: %v", err)
	}
	if len(keys) != 1 || keys[0].PublicKey != "pk1" || keys[0].Email != "a@x.com" {
		t.Errorf("unexpected ring: %+v", keys)
	}

	got, err := store.GetKey(ctx, "v1", "pk1")
	if err != nil {
		t.Fatalf("GetKey failed: %v", err)
	}
	if got.Name != "Alice" {
		t.Errorf("unexpected record: %+v", got)
	}

	// Key exists but under a different vote
	testutil.CreateTestVote(t, dbConn, "v2", true, true, nil)
	if _, err := store.GetKey(ctx, "v2", "pk1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// Empty ring lists as empty, not as an error
	keys, err = store.ListKeys(ctx, "v2")
	if err != nil {
		t.Fatalf("ListKeys failed: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("expected empty ring, got %+v", keys)
	}
}

func TestInsertKeyConstraints(t *testing.T) {
	dbConn := testutil.SetupTestDB(t)
	defer dbConn.Close()
	store := NewStore(dbConn)
	ctx := context.Background()

	testutil.CreateTestVote(t, dbConn, "v1", true, true, nil)
	testutil.CreateTestVote(t, dbConn, "v2", true, true, nil)

	base := models.KeyRecord{
		PublicKey: "pk1",
		VoteID:    "v1",
		Email:     "a@x.com",
		Name:      "Alice",
		CreatedAt: time.Now(),
	}
	if err := store.InsertKey(ctx, base); err != nil {
		t.Fatalf("InsertKey failed: %v", err)
	}

	tests := []struct {
		name string
		rec  models.KeyRecord
	}{
		{"same public key, same vote", models.KeyRecord{PublicKey: "pk1", VoteID: "v1", Email: "b@x.com", Name: "Bob", CreatedAt: time.Now()}},
		{"same public key, other vote", models.KeyRecord{PublicKey: "pk1", VoteID: "v2", Email: "b@x.com", Name: "Bob", CreatedAt: time.Now()}},
		{"same identity, new key", models.KeyRecord{PublicKey: "pk2", VoteID: "v1", Email: "a@x.com", Name: "Alice", CreatedAt: time.Now()}},
		{"same identity, different case", models.KeyRecord{PublicKey: "pk3", VoteID: "v1", Email: "A@X.COM", Name: "Alice", CreatedAt: time.Now()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.InsertKey(ctx, tt.rec); !errors.Is(err, ErrDuplicate) {
				t.Errorf("expected ErrDuplicate, got %v", err)
			}
		})
	}

	// Same identity in a different vote is fine
	other := models.KeyRecord{PublicKey: "pk4", VoteID: "v2", Email: "a@x.com", Name: "Alice", CreatedAt: time.Now()}
	if err := store.InsertKey(ctx, other); err != nil {
		t.Errorf("expected cross-vote enrollment to succeed, got %v", err)
	}
}
