package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/keyring-vote/server/models"
	"github.com/keyring-vote/server/storage"
	"github.com/keyring-vote/server/testutil"
)

func adminHeaders() map[string]string {
	return map[string]string{"Authorization": "Bearer test-admin-token"}
}

func boolPtr(b bool) *bool { return &b }

func TestCreateVote(t *testing.T) {
	dbConn := testutil.SetupTestDB(t)
	defer dbConn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(storage.NewStore(dbConn), cfg)

	tests := []struct {
		name           string
		voteID         string
		body           interface{}
		headers        map[string]string
		expectedStatus int
	}{
		{
			name:           "valid create",
			voteID:         "v1",
			body:           models.CreateVoteRequest{Active: boolPtr(true), AllowedParticipants: []string{"a@x.com"}},
			headers:        adminHeaders(),
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "duplicate id",
			voteID:         "v1",
			body:           models.CreateVoteRequest{Active: boolPtr(true)},
			headers:        adminHeaders(),
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "missing admin token",
			voteID:         "v2",
			body:           models.CreateVoteRequest{Active: boolPtr(true)},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong admin token",
			voteID:         "v2",
			body:           models.CreateVoteRequest{Active: boolPtr(true)},
			headers:        map[string]string{"Authorization": "Bearer wrong"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing active flag",
			voteID:         "v2",
			body:           models.CreateVoteRequest{},
			headers:        adminHeaders(),
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/vote/"+tt.voteID, tt.body, tt.headers)
			req.SetPathValue("vote_id", tt.voteID)
			w := httptest.NewRecorder()

			handler.CreateVote(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestGetVote(t *testing.T) {
	dbConn := testutil.SetupTestDB(t)
	defer dbConn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(storage.NewStore(dbConn), cfg)

	testutil.CreateTestVote(t, dbConn, "v1", true, false, []string{"a@x.com"})

	req := testutil.MakeRequest("GET", "/vote/v1", nil, nil)
	req.SetPathValue("vote_id", "v1")
	w := httptest.NewRecorder()
	handler.GetVote(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.Vote
	testutil.AssertJSON(t, w, &resp)
	if resp.ID != "v1" || !resp.Active || resp.AllowAll {
		t.Errorf("unexpected vote: %+v", resp)
	}
	if len(resp.AllowedParticipants) != 1 || resp.AllowedParticipants[0] != "a@x.com" {
		t.Errorf("unexpected allow-list: %+v", resp.AllowedParticipants)
	}

	req = testutil.MakeRequest("GET", "/vote/missing", nil, nil)
	req.SetPathValue("vote_id", "missing")
	w = httptest.NewRecorder()
	handler.GetVote(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestUpdateVote(t *testing.T) {
	dbConn := testutil.SetupTestDB(t)
	defer dbConn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(storage.NewStore(dbConn), cfg)

	testutil.CreateTestVote(t, dbConn, "v1", true, false, []string{"a@x.com"})

	// Deactivate only; allow-list must survive
	req := testutil.MakeRequest("PATCH", "/vote/v1",
		models.UpdateVoteRequest{Active: boolPtr(false)}, adminHeaders())
	req.SetPathValue("vote_id", "v1")
	w := httptest.NewRecorder()
	handler.UpdateVote(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.Vote
	testutil.AssertJSON(t, w, &resp)
	if resp.Active {
		t.Error("expected vote to be deactivated")
	}
	if len(resp.AllowedParticipants) != 1 {
		t.Errorf("partial update clobbered the allow-list: %+v", resp.AllowedParticipants)
	}

	// Unknown vote
	req = testutil.MakeRequest("PATCH", "/vote/missing",
		models.UpdateVoteRequest{Active: boolPtr(true)}, adminHeaders())
	req.SetPathValue("vote_id", "missing")
	w = httptest.NewRecorder()
	handler.UpdateVote(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)

	// No admin token
	req = testutil.MakeRequest("PATCH", "/vote/v1",
		models.UpdateVoteRequest{Active: boolPtr(true)}, nil)
	req.SetPathValue("vote_id", "v1")
	w = httptest.NewRecorder()
	handler.UpdateVote(w, req)
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

// Deactivating a vote takes effect on the very next enrollment attempt
func TestDeactivationGatesEnrollment(t *testing.T) {
	dbConn := testutil.SetupTestDB(t)
	defer dbConn.Close()

	cfg := testutil.GetTestConfig()
	voteHandler := NewVoteHandler(storage.NewStore(dbConn), cfg)
	ringHandler := newRingHandler(dbConn, defaultIdentities())

	testutil.CreateTestVote(t, dbConn, "v1", true, true, nil)

	w := doEnroll(ringHandler, "v1", "pk1", "cred-alice")
	testutil.AssertStatus(t, w, http.StatusOK)

	req := testutil.MakeRequest("PATCH", "/vote/v1",
		models.UpdateVoteRequest{Active: boolPtr(false)}, adminHeaders())
	req.SetPathValue("vote_id", "v1")
	w = httptest.NewRecorder()
	voteHandler.UpdateVote(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	w = doEnroll(ringHandler, "v1", "pk2", "cred-bob")
	testutil.AssertStatus(t, w, http.StatusForbidden)
}
