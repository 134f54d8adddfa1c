// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/keyring-vote/server/middleware"
	"github.com/keyring-vote/server/models"
	"github.com/keyring-vote/server/ring"
)

type RingHandler struct {
	enroller *ring.Enroller
}

func NewRingHandler(enroller *ring.Enroller) *RingHandler {
	return &RingHandler{enroller: enroller}
}

// GetRing handles GET /vote/{vote_id}/ring
// Lists the public keys enrolled under a vote. Works for inactive votes.
func (h *RingHandler) GetRing(w http.ResponseWriter, r *http.Request) {
	voteID := r.PathValue("vote_id")
	if voteID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "vote_id is required")
		return
	}

	records, err := h.enroller.ListKeys(r.Context(), voteID)
	if err != nil {
		writeRingError(w, err)
		return
	}

	keys := make([]string, 0, len(records))
	for _, rec := range records {
		keys = append(keys, rec.PublicKey)
	}

	middleware.JSONResponse(w, http.StatusOK, models.RingResponse{Keys: keys})
}

// GetKey handles GET /vote/{vote_id}/ring/{public_key}
func (h *RingHandler) GetKey(w http.ResponseWriter, r *http.Request) {
	voteID := r.PathValue("vote_id")
	publicKey := r.PathValue("public_key")
	if voteID == "" || publicKey == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "vote_id and public_key are required")
		return
	}

	rec, err := h.enroller.GetKey(r.Context(), voteID, publicKey)
	if err != nil {
		writeRingError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.KeyResponse{
		PublicKey: rec.PublicKey,
		Email:     rec.Email,
		FullName:  rec.Name,
	})
}

// Enroll handles POST /vote/{vote_id}/ring/{public_key}
// Verifies the supplied identity credential and, if the identity is
// eligible and not yet enrolled, binds the public key into the ring.
func (h *RingHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	voteID := r.PathValue("vote_id")
	publicKey := r.PathValue("public_key")
	if voteID == "" || publicKey == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "vote_id and public_key are required")
		return
	}

	var req models.EnrollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Credential == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "credential is required")
		return
	}

	rec, err := h.enroller.Enroll(r.Context(), voteID, publicKey, req.Credential)
	if err != nil {
		writeRingError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.KeyResponse{
		PublicKey: rec.PublicKey,
		Email:     rec.Email,
		FullName:  rec.Name,
	})
}

// writeRingError maps the ring error taxonomy onto HTTP statuses.
func writeRingError(w http.ResponseWriter, err error) {
	var re *ring.Error
	if !errors.As(err, &re) {
		slog.Error("unclassified ring error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
		return
	}

	var status int
	switch re.Kind {
	case ring.KindNotFound:
		status = http.StatusNotFound
	case ring.KindUnauthorized:
		status = http.StatusUnauthorized
	case ring.KindForbidden:
		status = http.StatusForbidden
	case ring.KindConflict:
		status = http.StatusConflict
	case ring.KindTransient:
		slog.Error("transient enrollment failure", "error", re.Err)
		status = http.StatusServiceUnavailable
	default:
		status = http.StatusInternalServerError
	}

	middleware.ErrorResponse(w, status, re.Msg)
}
