// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Domain types

type Vote struct {
	ID                  string    `json:"vote_id"`
	Active              bool      `json:"active"`
	AllowAll            bool      `json:"allow_all"`
	AllowedParticipants []string  `json:"allowed_participants"`
	CreatedAt           time.Time `json:"created_at"`
}

type KeyRecord struct {
	PublicKey string    `json:"public_key"`
	VoteID    string    `json:"vote_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Request types

type CreateVoteRequest struct {
	Active              *bool    `json:"active"`
	AllowedParticipants []string `json:"allowed_participants"`
	AllowAll            bool     `json:"allow_all"`
}

// All fields are optional; nil means "leave unchanged"
type UpdateVoteRequest struct {
	Active              *bool     `json:"active"`
	AllowedParticipants *[]string `json:"allowed_participants"`
	AllowAll            *bool     `json:"allow_all"`
}

type EnrollRequest struct {
	Credential string `json:"credential"`
}

// Response types

type RingResponse struct {
	Keys []string `json:"keys"`
}

type KeyResponse struct {
	PublicKey string `json:"public_key"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
