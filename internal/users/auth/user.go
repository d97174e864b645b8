// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

/*
Package auth implements the user identity and session management layer.

It defines the core domain entity (User) and the logic for credential
verification, token issuance, rotation, and revocation.

# Architecture

This layer is the "Truth" of the system. The User entity carries at most one
live refresh token (as a digest); overwriting or clearing that single field
is how sessions are superseded and revoked.
*/
package auth

import "time"

// # Domain Entities

// User represents a registered member of the Vidora platform.
//
// A user IS a channel: videos, tweets, and subscriptions all reference the
// user id directly.
type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	FullName      string `json:"full_name"`
	PasswordHash  string `json:"-"` // Explicitly omitted from JSON for security.
	AvatarURL     string `json:"avatar_url,omitempty"`
	CoverImageURL string `json:"cover_image_url,omitempty"`

	// RefreshTokenHash is the SHA-256 digest of the single live refresh
	// token, or nil when no session exists. Never serialized.
	RefreshTokenHash *string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldFullName        = "full_name"
	FieldLogin           = "login"
	FieldRefreshToken    = "refresh_token"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldAccessToken     = "access_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
	FieldMessage         = "message"
)
