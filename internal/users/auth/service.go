// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/leminhduc/vidora/internal/platform/apperr"
	"github.com/leminhduc/vidora/internal/platform/ctxutil"
	"github.com/leminhduc/vidora/internal/platform/sec"
	"github.com/leminhduc/vidora/pkg/handle"
	"github.com/leminhduc/vidora/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating and checking security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed, short-lived JWT embedding the
	// user's public identity (id, handle, full name, email).
	GenerateAccessToken(userID, username, fullName, email string, timeToLive time.Duration) (string, error)

	// GenerateRefreshToken creates a signed, long-lived JWT embedding only
	// the user id.
	GenerateRefreshToken(userID string, timeToLive time.Duration) (string, error)

	// VerifyRefreshToken checks the signature and expiry of a refresh token
	// and returns its claims.
	VerifyRefreshToken(tokenString string) (*sec.RefreshClaims, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, rotation,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
}

// NewService constructs a new authentication [Service] with its dependencies.
func NewService(userRepo UserRepository, tokenProv TokenProvider) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username      string
	Email         string
	Password      string
	FullName      string
	AvatarURL     string
	CoverImageURL string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Deep-enrollment of a new member. The username is normalized to
the platform handle alphabet, the password is hashed exactly once, and
identity uniqueness is enforced before the insert.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Normalize the requested handle before any uniqueness check.
	username := handle.From(input.Username)
	if username == "" {
		return nil, apperr.ValidationError("Username cannot be normalized to a valid handle")
	}

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Verify username uniqueness. Return a client-safe Conflict err.
	_, err = service.userRepository.FindByUsername(context, username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// Prevent storing plain-text passwords. This is the ONLY place a
	// registration password is hashed; the repository stores it verbatim.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:            uuid.New(),
		Username:      username,
		Email:         input.Email,
		FullName:      input.FullName,
		PasswordHash:  hashedPassword,
		AvatarURL:     input.AvatarURL,
		CoverImageURL: input.CoverImageURL,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Can be Username or Email
	Password string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login validates user credentials and issues security tokens.

Description: Verifies identity, performs constant-time password comparison,
and binds a fresh refresh token as the user's single live session.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	// Flexible login: look up by Email or Username
	user, err := service.userRepository.FindByEmail(context, input.Login)
	if err != nil {
		user, err = service.userRepository.FindByUsername(context, input.Login)
	}

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Constant-time bcrypt comparison. A mismatch is a boolean false, never
	// an exception; it surfaces to the caller as a generic 401.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return service.establishSession(context, user)
}

/*
Logout permanently revokes the user's active session.

Description: Nulls the stored refresh token digest so that no refresh token
issued before this call can ever rotate again. Idempotent: logging out twice
is a no-op the second time.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Revocation failures
*/
func (service *Service) Logout(context context.Context, userID string) error {
	if err := service.userRepository.ClearRefreshToken(context, userID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// # Session Rotation

/*
RefreshSession implements the Refresh Token Rotation protocol.

Description: Walks the rotation state machine — presented, validated,
rotated — and fails closed on every intermediate step. The presented token
must be structurally valid AND match the single live digest on the account;
the swap to the new digest is a compare-and-swap, so each token rotates at
most once even under concurrent requests.

Every rejection surfaces as the same generic 401. The internal cause
(malformed, expired, unknown principal, superseded) is only logged.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *LoginSession: New session credentials
  - error: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken string) (*LoginSession, error) {
	logger := ctxutil.GetLogger(context)

	// ── 1. PRESENTED: a token must be present at all.
	if refreshToken == "" {
		return nil, apperr.Unauthorized("Invalid refresh token")
	}

	// ── 2. Signature and expiry check. Fails closed, no partial trust.
	claims, err := service.tokenProvider.VerifyRefreshToken(refreshToken)
	if err != nil {
		logger.WarnContext(context, "refresh_rejected",
			slog.String("reason", "signature_or_expiry"),
			slog.Any("cause", err),
		)
		return nil, apperr.Unauthorized("Invalid refresh token")
	}

	// ── 3. Resolve the principal. A stale token for a deleted account is
	// indistinguishable from any other rejection externally; a storage
	// failure is NOT a rejection and must surface as an internal error.
	user, err := service.userRepository.FindByID(context, claims.UserID)
	if err != nil {
		if appError := apperr.As(err); appError == nil || appError.HTTPStatus != http.StatusNotFound {
			return nil, fmt.Errorf("auth_service_refresh_lookup_failed: %w", err)
		}
		logger.WarnContext(context, "refresh_rejected",
			slog.String("reason", "unknown_principal"),
			slog.String("user_id", claims.UserID),
		)
		return nil, apperr.Unauthorized("Invalid refresh token")
	}

	// ── 4. VALIDATED: anti-replay equality check. Even a structurally
	// valid, unexpired token is rejected unless it matches the single live
	// digest on file.
	presentedHash := sec.HashToken(refreshToken)
	if user.RefreshTokenHash == nil || *user.RefreshTokenHash != presentedHash {
		logger.WarnContext(context, "refresh_rejected",
			slog.String("reason", "superseded_or_revoked"),
			slog.String("user_id", user.ID),
		)
		return nil, apperr.Unauthorized("Invalid refresh token")
	}

	// ── 5. ROTATED: mint the new pair and swap the binding.
	session, err := service.issueTokenPair(user)
	if err != nil {
		return nil, err
	}

	swapped, err := service.userRepository.RotateRefreshTokenHash(
		context, user.ID, presentedHash, sec.HashToken(session.RefreshToken),
	)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_rotate_failed: %w", err)
	}
	if !swapped {
		// A concurrent rotation or logout got there first.
		logger.WarnContext(context, "refresh_rejected",
			slog.String("reason", "lost_rotation_race"),
			slog.String("user_id", user.ID),
		)
		return nil, apperr.Unauthorized("Invalid refresh token")
	}

	return session, nil
}

// # Account Management

/*
ChangePassword allows an authenticated user to update their credentials.

Description: Verifies the current password before re-hashing. The new
password is hashed exactly once here; no other code path re-hashes it.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string

Returns:
  - error: Unauthorized or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword string) error {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	// Verify the current password before allowing change
	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_change_password_update_failed: %w", err)
	}

	return nil
}

/*
CurrentUser returns the full profile of the authenticated user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Hydrated entity
  - error: apperr.NotFound or storage failures
*/
func (service *Service) CurrentUser(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

// UpdateAccountInput holds the mutable profile fields for an update.
type UpdateAccountInput struct {
	FullName      string
	Email         string
	AvatarURL     string
	CoverImageURL string
}

/*
UpdateAccount persists changes to the authenticated user's profile fields.

Description: Only profile fields are touched — never the password hash and
never the refresh token binding, so an unrelated save can never re-hash a
credential or revoke a session.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateAccountInput

Returns:
  - *User: Updated entity
  - error: Storage failures
*/
func (service *Service) UpdateAccount(context context.Context, userID string, input UpdateAccountInput) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	user.FullName = input.FullName
	user.Email = input.Email
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}
	if input.CoverImageURL != "" {
		user.CoverImageURL = input.CoverImageURL
	}

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_update_account_failed: %w", err)
	}

	return user, nil
}

// # Internal Helpers

// establishSession issues a fresh token pair and binds it as the user's
// single live session, superseding any previous one.
func (service *Service) establishSession(context context.Context, user *User) (*LoginSession, error) {
	session, err := service.issueTokenPair(user)
	if err != nil {
		return nil, err
	}

	if err := service.userRepository.SetRefreshTokenHash(context, user.ID, sec.HashToken(session.RefreshToken)); err != nil {
		return nil, fmt.Errorf("auth_service_session_binding_failed: %w", err)
	}

	return session, nil
}

// issueTokenPair mints an access and a refresh token without touching storage.
func (service *Service) issueTokenPair(user *User) (*LoginSession, error) {
	now := time.Now()

	accessToken, err := service.tokenProvider.GenerateAccessToken(
		user.ID, user.Username, user.FullName, user.Email, AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	refreshToken, err := service.tokenProvider.GenerateRefreshToken(user.ID, RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  now.Add(AccessTokenTTL),
		RefreshTokenExpiresAt: now.Add(RefreshTokenTTL),
		User:                  user,
	}, nil
}
