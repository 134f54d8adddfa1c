// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/keyring-vote/server/cliparse"
	"github.com/keyring-vote/server/db"
	"github.com/keyring-vote/server/identity"
)

// SetupTestDB creates a fresh sqlite database for one test. The file lives
// in the test's temp dir and disappears with it.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbConn, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// One connection: sqlite serializes writers anyway, and this keeps
	// concurrent test goroutines from hitting lock errors
	dbConn.SetMaxOpenConns(1)

	if err := db.CreateSchema(dbConn, "sqlite"); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return dbConn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         5172,
		DatabaseType: "sqlite",
		AdminToken:   "test-admin-token",
		Issuer:       "https://issuer.test",
		Audience:     "test-audience",
	}
}

// CreateTestVote inserts a vote row directly
func CreateTestVote(t *testing.T, dbConn *sql.DB, id string, active, allowAll bool, participants []string) {
	t.Helper()

	if participants == nil {
		participants = []string{}
	}
	encoded, err := json.Marshal(participants)
	if err != nil {
		t.Fatalf("Failed to encode participants: %v", err)
	}

	_, err = dbConn.Exec(`
		INSERT INTO votings (id, active, allow_all, allowed_participants, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, active, allowAll, encoded, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
}

// InsertTestKey inserts an enrolled key row directly
func InsertTestKey(t *testing.T, dbConn *sql.DB, voteID, publicKey, email, name string) {
	t.Helper()

	_, err := dbConn.Exec(`
		INSERT INTO keys (public_key, vote_id, email, name, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, publicKey, voteID, email, name, time.Now())
	if err != nil {
		t.Fatalf("Failed to insert test key: %v", err)
	}
}

// StubVerifier maps credential strings to identities. Unknown credentials
// fail verification, so tests can exercise the unauthorized path without
// minting real tokens.
type StubVerifier struct {
	Identities map[string]identity.Identity
}

func (s *StubVerifier) Verify(credential string) (identity.Identity, error) {
	id, ok := s.Identities[credential]
	if !ok {
		return identity.Identity{}, identity.ErrVerification
	}
	return id, nil
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
