// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// The refresh-token methods are the Session Store Binding: exactly one live
// token digest per user, revoked by overwrite or by clearing.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists changes to mutable profile fields.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		UpdatePassword replaces only the user's password hash.

		The hash is produced exactly once by the service; this method must
		never re-hash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error

	/*
		SetRefreshTokenHash unconditionally overwrites the stored refresh
		token digest. Used at login, where a new session supersedes any
		previous one.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - tokenHash: string

		Returns:
		  - error: Persistence failures
	*/
	SetRefreshTokenHash(context context.Context, userID, tokenHash string) error

	/*
		RotateRefreshTokenHash replaces the stored digest only if it still
		equals previousHash (compare-and-swap). A false result means the
		token was already rotated out or revoked by a concurrent request.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - previousHash: string
		  - newHash: string

		Returns:
		  - bool: Whether the swap was applied
		  - error: Persistence failures
	*/
	RotateRefreshTokenHash(context context.Context, userID, previousHash, newHash string) (bool, error)

	/*
		ClearRefreshToken nulls the stored refresh token digest, revoking
		the session network-wide regardless of token expiry.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	ClearRefreshToken(context context.Context, userID string) error
}
