// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// We keep it short (15m) to minimize the impact of a leaked token;
	// access tokens are stateless and cannot be revoked before expiry.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a refresh token remains valid.
	// Long-lived (10 days) to provide a good user experience; rotation
	// makes each individual token single-use well before that.
	RefreshTokenTTL = 10 * 24 * time.Hour

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8

	// MinUsernameLength is the minimum accepted handle length.
	MinUsernameLength = 3
)
