// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/keyring-vote/server/auth"
	"github.com/keyring-vote/server/cliparse"
	"github.com/keyring-vote/server/middleware"
	"github.com/keyring-vote/server/models"
	"github.com/keyring-vote/server/storage"
)

type VoteHandler struct {
	store *storage.Store
	cfg   cliparse.Config
}

func NewVoteHandler(store *storage.Store, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{store: store, cfg: cfg}
}

// GetVote handles GET /vote/{vote_id}
// Public read of the stored vote record.
func (h *VoteHandler) GetVote(w http.ResponseWriter, r *http.Request) {
	voteID := r.PathValue("vote_id")
	if voteID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "vote_id is required")
		return
	}

	vote, err := h.store.GetVote(r.Context(), voteID)
	if errors.Is(err, storage.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Vote not found")
		return
	}
	if err != nil {
		slog.Error("failed to query vote", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, vote)
}

// CreateVote handles POST /vote/{vote_id} (admin)
func (h *VoteHandler) CreateVote(w http.ResponseWriter, r *http.Request) {
	voteID := r.PathValue("vote_id")
	if voteID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "vote_id is required")
		return
	}

	if err := auth.ValidateAdminToken(r.Header.Get("Authorization"), h.cfg.AdminToken); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin token")
		return
	}

	var req models.CreateVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Active == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "active is required")
		return
	}

	vote := models.Vote{
		ID:                  voteID,
		Active:              *req.Active,
		AllowAll:            req.AllowAll,
		AllowedParticipants: req.AllowedParticipants,
	}

	err := h.store.CreateVote(r.Context(), vote)
	if errors.Is(err, storage.ErrDuplicate) {
		middleware.ErrorResponse(w, http.StatusConflict, "Vote with this id already exists")
		return
	}
	if err != nil {
		slog.Error("failed to insert vote", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Failed to create vote")
		return
	}

	slog.Info("vote created", "vote_id", voteID, "active", vote.Active, "allow_all", vote.AllowAll)

	middleware.JSONResponse(w, http.StatusCreated, vote)
}

// UpdateVote handles PATCH /vote/{vote_id} (admin)
// Only fields present in the body change; the rest keep their stored value.
func (h *VoteHandler) UpdateVote(w http.ResponseWriter, r *http.Request) {
	voteID := r.PathValue("vote_id")
	if voteID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "vote_id is required")
		return
	}

	if err := auth.ValidateAdminToken(r.Header.Get("Authorization"), h.cfg.AdminToken); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin token")
		return
	}

	var req models.UpdateVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	vote, err := h.store.GetVote(r.Context(), voteID)
	if errors.Is(err, storage.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Vote not found")
		return
	}
	if err != nil {
		slog.Error("failed to query vote", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Database error")
		return
	}

	if req.Active != nil {
		vote.Active = *req.Active
	}
	if req.AllowAll != nil {
		vote.AllowAll = *req.AllowAll
	}
	if req.AllowedParticipants != nil {
		vote.AllowedParticipants = *req.AllowedParticipants
	}

	if err := h.store.UpdateVote(r.Context(), vote); err != nil {
		slog.Error("failed to update vote", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Failed to update vote")
		return
	}

	slog.Info("vote updated", "vote_id", voteID, "active", vote.Active, "allow_all", vote.AllowAll)

	middleware.JSONResponse(w, http.StatusOK, vote)
}
