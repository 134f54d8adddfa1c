// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/keyring-vote/server/cliparse"
	"github.com/keyring-vote/server/handlers"
	"github.com/keyring-vote/server/middleware"
	"github.com/keyring-vote/server/ring"
	"github.com/keyring-vote/server/storage"
)

func NewRouter(store *storage.Store, verifier ring.CredentialVerifier, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	enroller := ring.NewEnroller(store, store, verifier)
	voteHandler := handlers.NewVoteHandler(store, cfg)
	ringHandler := handlers.NewRingHandler(enroller)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Vote management (admin operations except the read)
	mux.HandleFunc("GET /vote/{vote_id}", middleware.WithLogging(voteHandler.GetVote))
	mux.HandleFunc("POST /vote/{vote_id}", middleware.WithLogging(voteHandler.CreateVote))
	mux.HandleFunc("PATCH /vote/{vote_id}", middleware.WithLogging(voteHandler.UpdateVote))

	// Key ring (public reads + credentialed enrollment)
	mux.HandleFunc("GET /vote/{vote_id}/ring", middleware.WithLogging(ringHandler.GetRing))
	mux.HandleFunc("GET /vote/{vote_id}/ring/{public_key}", middleware.WithLogging(ringHandler.GetKey))
	mux.HandleFunc("POST /vote/{vote_id}/ring/{public_key}", middleware.WithLogging(ringHandler.Enroll))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("keyring-vote API v1"))
	})

	return mux
}
