// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leminhduc/vidora/internal/platform/apperr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

const userColumns = `id, username, email, fullname, passwordhash, avatarurl, coverimageurl, refreshtokenhash, createdat, updatedat`

// scanUser hydrates a User from a pgx row.
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.PasswordHash,
		&user.AvatarURL,
		&user.CoverImageURL,
		&user.RefreshTokenHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
Create persists a new user record into the users.account table.

Description: Deep-persists account metadata, ensuring timestamps are initialized
if not provided.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, username, email, fullname, passwordhash, avatarurl, coverimageurl, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.FullName,
		user.PasswordHash,
		user.AvatarURL,
		user.CoverImageURL,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE id = $1`

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE email = $1`

	user, err := scanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err)
	}

	return user, nil
}

/*
FindByUsername retrieves a user record by their unique username (handle).

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE username = $1`

	user, err := scanUser(repository.pool.QueryRow(context, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_username_failed: %w", err)
	}

	return user, nil
}

/*
Update persists changes to a user's mutable profile fields.

Description: Synchronizes the in-memory user state with the database,
refreshing the updatedat timestamp. The password hash and refresh token
digest are never touched here.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: Update failures
*/
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	const query = `
		UPDATE users.account
		SET username = $2, email = $3, fullname = $4, avatarurl = $5, coverimageurl = $6, updatedat = $7
		WHERE id = $1`

	user.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.FullName,
		user.AvatarURL,
		user.CoverImageURL,
		user.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_failed: %w", err)
	}

	return nil
}

/*
UpdatePassword updates only the password hash for a specific user.

Parameters:
  - context: context.Context
  - userID: string
  - newHash: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	const query = `
		UPDATE users.account
		SET passwordhash = $2, updatedat = $3
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, newHash, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_password_failed: %w", err)
	}

	return nil
}

/*
SetRefreshTokenHash unconditionally overwrites the stored refresh token digest.

Description: Login-time binding. Any previously live session is superseded
the moment this write lands.

Parameters:
  - context: context.Context
  - userID: string
  - tokenHash: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) SetRefreshTokenHash(context context.Context, userID, tokenHash string) error {
	const query = "UPDATE users.account SET refreshtokenhash = $2, updatedat = $3 WHERE id = $1"

	_, err := repository.pool.Exec(context, query, userID, tokenHash, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_set_refresh_token_failed: %w", err)
	}

	return nil
}

/*
RotateRefreshTokenHash swaps the stored digest with a compare-and-swap guard.

Description: The WHERE clause pins the previous digest, so two concurrent
rotations with the same token cannot both succeed — the loser observes zero
affected rows and reports false.

Parameters:
  - context: context.Context
  - userID: string
  - previousHash: string
  - newHash: string

Returns:
  - bool: Whether this caller won the swap
  - error: Execution errors
*/
func (repository *PostgresUserRepository) RotateRefreshTokenHash(context context.Context, userID, previousHash, newHash string) (bool, error) {
	const query = `
		UPDATE users.account
		SET refreshtokenhash = $3, updatedat = $4
		WHERE id = $1 AND refreshtokenhash = $2`

	tag, err := repository.pool.Exec(context, query, userID, previousHash, newHash, time.Now())
	if err != nil {
		return false, fmt.Errorf("postgres_user_repo_rotate_refresh_token_failed: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

/*
ClearRefreshToken nulls the stored refresh token digest.

Description: Logout-time revocation. Unconditional and idempotent.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) ClearRefreshToken(context context.Context, userID string) error {
	const query = "UPDATE users.account SET refreshtokenhash = NULL, updatedat = $2 WHERE id = $1"

	_, err := repository.pool.Exec(context, query, userID, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_clear_refresh_token_failed: %w", err)
	}

	return nil
}
