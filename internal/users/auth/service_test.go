// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

package auth_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leminhduc/vidora/internal/platform/apperr"
	"github.com/leminhduc/vidora/internal/platform/sec"
	"github.com/leminhduc/vidora/internal/users/auth"
)

// # Test Doubles

// fakeUserRepository is an in-memory UserRepository. The mutex makes the
// compare-and-swap in RotateRefreshTokenHash atomic, mirroring the guarantee
// the SQL WHERE clause gives the real store.
type fakeUserRepository struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*auth.User{}}
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepository) Update(_ context.Context, user *auth.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.users[user.ID]
	if !ok {
		return apperr.NotFound("User")
	}
	stored.Username = user.Username
	stored.Email = user.Email
	stored.FullName = user.FullName
	stored.AvatarURL = user.AvatarURL
	stored.CoverImageURL = user.CoverImageURL
	return nil
}

func (f *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	stored.PasswordHash = newHash
	return nil
}

func (f *fakeUserRepository) SetRefreshTokenHash(_ context.Context, userID, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	stored.RefreshTokenHash = &tokenHash
	return nil
}

func (f *fakeUserRepository) RotateRefreshTokenHash(_ context.Context, userID, previousHash, newHash string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.users[userID]
	if !ok {
		return false, nil
	}
	if stored.RefreshTokenHash == nil || *stored.RefreshTokenHash != previousHash {
		return false, nil
	}
	stored.RefreshTokenHash = &newHash
	return true, nil
}

func (f *fakeUserRepository) ClearRefreshToken(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if stored, ok := f.users[userID]; ok {
		stored.RefreshTokenHash = nil
	}
	return nil
}

// storedHash reads the live digest outside the service, for assertions.
func (f *fakeUserRepository) storedHash(userID string) *string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if stored, ok := f.users[userID]; ok && stored.RefreshTokenHash != nil {
		clone := *stored.RefreshTokenHash
		return &clone
	}
	return nil
}

// # Fixtures

func newTestService(t *testing.T) (*auth.Service, *fakeUserRepository) {
	t.Helper()

	tokenService, err := sec.NewTokenService("access-secret-for-tests", "refresh-secret-for-tests", "vidora.test")
	require.NoError(t, err)

	repo := newFakeUserRepository()
	return auth.NewService(repo, tokenService), repo
}

func registerTestUser(t *testing.T, service *auth.Service) *auth.User {
	t.Helper()

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "Minh Duc Le",
		Email:    "duc@vidora.app",
		Password: "correct-password",
		FullName: "Minh Duc Le",
	})
	require.NoError(t, err)
	return user
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatus)
}

// # Registration

/*
TestRegister_NormalizesHandle verifies the username becomes a platform handle.
*/
func TestRegister_NormalizesHandle(t *testing.T) {
	service, _ := newTestService(t)
	user := registerTestUser(t, service)

	assert.Equal(t, "minh.duc.le", user.Username)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "correct-password", user.PasswordHash)
}

/*
TestRegister_DuplicateIdentity verifies email and username conflicts are 409s.
*/
func TestRegister_DuplicateIdentity(t *testing.T) {
	service, _ := newTestService(t)
	registerTestUser(t, service)

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "someone.else",
		Email:    "duc@vidora.app",
		Password: "another-password",
		FullName: "Someone Else",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.As(err).HTTPStatus)

	_, err = service.Register(context.Background(), auth.RegisterInput{
		Username: "Minh Duc Le", // normalizes to the taken handle
		Email:    "other@vidora.app",
		Password: "another-password",
		FullName: "Someone Else",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.As(err).HTTPStatus)
}

// # Login

/*
TestLogin_Success verifies credential checking and session binding.
*/
func TestLogin_Success(t *testing.T) {
	service, repo := newTestService(t)
	user := registerTestUser(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "duc@vidora.app",
		Password: "correct-password",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.NotEqual(t, session.AccessToken, session.RefreshToken)
	assert.Equal(t, user.ID, session.User.ID)

	// The digest of the issued refresh token is now the single live session.
	stored := repo.storedHash(user.ID)
	require.NotNil(t, stored)
	assert.Equal(t, sec.HashToken(session.RefreshToken), *stored)
}

/*
TestLogin_ByUsername verifies the handle works as a login identifier.
*/
func TestLogin_ByUsername(t *testing.T) {
	service, _ := newTestService(t)
	registerTestUser(t, service)

	_, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "minh.duc.le",
		Password: "correct-password",
	})
	assert.NoError(t, err)
}

/*
TestLogin_Rejections verifies wrong credentials and unknown users produce the
same generic 401.
*/
func TestLogin_Rejections(t *testing.T) {
	service, _ := newTestService(t)
	registerTestUser(t, service)

	_, wrongPassword := service.Login(context.Background(), auth.LoginInput{
		Login:    "duc@vidora.app",
		Password: "wrong-password",
	})
	assertUnauthorized(t, wrongPassword)

	_, unknownUser := service.Login(context.Background(), auth.LoginInput{
		Login:    "ghost@vidora.app",
		Password: "correct-password",
	})
	assertUnauthorized(t, unknownUser)

	// Enumeration resistance: both rejections carry the identical message.
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

/*
TestLogin_SupersedesPreviousSession verifies a second login invalidates the
first session's refresh token.
*/
func TestLogin_SupersedesPreviousSession(t *testing.T) {
	service, _ := newTestService(t)
	registerTestUser(t, service)

	first, err := service.Login(context.Background(), auth.LoginInput{Login: "duc@vidora.app", Password: "correct-password"})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), auth.LoginInput{Login: "duc@vidora.app", Password: "correct-password"})
	require.NoError(t, err)

	_, err = service.RefreshSession(context.Background(), first.RefreshToken)
	assertUnauthorized(t, err)
}

// # Session Rotation

/*
TestRefreshSession_RotatesExactlyOnce verifies the core rotation protocol:
a token rotates once, and replaying it afterwards is rejected.
*/
func TestRefreshSession_RotatesExactlyOnce(t *testing.T) {
	service, repo := newTestService(t)
	user := registerTestUser(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{Login: "duc@vidora.app", Password: "correct-password"})
	require.NoError(t, err)

	rotated, err := service.RefreshSession(context.Background(), session.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

	// The binding now points at the new token.
	stored := repo.storedHash(user.ID)
	require.NotNil(t, stored)
	assert.Equal(t, sec.HashToken(rotated.RefreshToken), *stored)

	// Replaying the consumed token is an opaque 401.
	_, err = service.RefreshSession(context.Background(), session.RefreshToken)
	assertUnauthorized(t, err)

	// The new token still works.
	_, err = service.RefreshSession(context.Background(), rotated.RefreshToken)
	assert.NoError(t, err)
}

/*
TestRefreshSession_Rejections walks every rejection path and verifies they
are all the same opaque 401.
*/
func TestRefreshSession_Rejections(t *testing.T) {
	service, _ := newTestService(t)
	registerTestUser(t, service)

	tokenService, err := sec.NewTokenService("access-secret-for-tests", "refresh-secret-for-tests", "vidora.test")
	require.NoError(t, err)

	session, err := service.Login(context.Background(), auth.LoginInput{Login: "duc@vidora.app", Password: "correct-password"})
	require.NoError(t, err)

	expired, err := tokenService.GenerateRefreshToken(session.User.ID, -time.Minute)
	require.NoError(t, err)

	foreignService, err := sec.NewTokenService("other-access-secret", "other-refresh-secret", "vidora.test")
	require.NoError(t, err)
	forged, err := foreignService.GenerateRefreshToken(session.User.ID, auth.RefreshTokenTTL)
	require.NoError(t, err)

	unknownPrincipal, err := tokenService.GenerateRefreshToken("no-such-user", auth.RefreshTokenTTL)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"missing", ""},
		{"garbage", "not.a.jwt"},
		{"expired", expired},
		{"forged_signature", forged},
		{"unknown_principal", unknownPrincipal},
	}

	var messages []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.RefreshSession(context.Background(), tt.token)
			assertUnauthorized(t, err)
			messages = append(messages, err.Error())
		})
	}

	// Opaque: every rejection reads identically to the client.
	for _, message := range messages {
		assert.Equal(t, messages[0], message)
	}
}

/*
TestRefreshSession_ValidButSuperseded verifies that a structurally valid,
unexpired token is still rejected once it no longer matches the stored digest.
*/
func TestRefreshSession_ValidButSuperseded(t *testing.T) {
	service, _ := newTestService(t)
	registerTestUser(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{Login: "duc@vidora.app", Password: "correct-password"})
	require.NoError(t, err)

	// Rotate once; the original token is now superseded but NOT expired.
	_, err = service.RefreshSession(context.Background(), session.RefreshToken)
	require.NoError(t, err)

	_, err = service.RefreshSession(context.Background(), session.RefreshToken)
	assertUnauthorized(t, err)
}

/*
TestRefreshSession_ConcurrentReplay verifies at most one of N concurrent
rotations with the same token succeeds.
*/
func TestRefreshSession_ConcurrentReplay(t *testing.T) {
	service, _ := newTestService(t)
	registerTestUser(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{Login: "duc@vidora.app", Password: "correct-password"})
	require.NoError(t, err)

	const attempts = 8
	results := make(chan error, attempts)

	var start sync.WaitGroup
	start.Add(1)
	for i := 0; i < attempts; i++ {
		go func() {
			start.Wait()
			_, err := service.RefreshSession(context.Background(), session.RefreshToken)
			results <- err
		}()
	}
	start.Done()

	succeeded := 0
	for i := 0; i < attempts; i++ {
		if err := <-results; err == nil {
			succeeded++
		}
	}

	assert.LessOrEqual(t, succeeded, 1, "a refresh token must rotate at most once")
}

// brokenReadUserRepository fails every principal lookup with a storage error.
type brokenReadUserRepository struct {
	*fakeUserRepository
}

func (b *brokenReadUserRepository) FindByID(context.Context, string) (*auth.User, error) {
	return nil, errors.New("connection reset by peer")
}

/*
TestRefreshSession_StorageFailureIsNotOpaque verifies that a storage failure
during principal resolution surfaces as an internal error, not as the generic
401 reserved for rejected tokens.
*/
func TestRefreshSession_StorageFailureIsNotOpaque(t *testing.T) {
	service, repo := newTestService(t)
	registerTestUser(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{Login: "duc@vidora.app", Password: "correct-password"})
	require.NoError(t, err)

	tokenService, err := sec.NewTokenService("access-secret-for-tests", "refresh-secret-for-tests", "vidora.test")
	require.NoError(t, err)
	degraded := auth.NewService(&brokenReadUserRepository{repo}, tokenService)

	_, err = degraded.RefreshSession(context.Background(), session.RefreshToken)
	require.Error(t, err)
	assert.Nil(t, apperr.As(err), "a storage failure must not masquerade as a token rejection")
}

// # Logout

/*
TestLogout_RevokesSession verifies logout clears the binding and that a
subsequent rotation with the old token is rejected.
*/
func TestLogout_RevokesSession(t *testing.T) {
	service, repo := newTestService(t)
	user := registerTestUser(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{Login: "duc@vidora.app", Password: "correct-password"})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), user.ID))
	assert.Nil(t, repo.storedHash(user.ID))

	_, err = service.RefreshSession(context.Background(), session.RefreshToken)
	assertUnauthorized(t, err)

	// Idempotent: logging out again is a no-op.
	assert.NoError(t, service.Logout(context.Background(), user.ID))
}

// # Account Management

/*
TestChangePassword verifies the current password gate and the single re-hash.
*/
func TestChangePassword(t *testing.T) {
	service, _ := newTestService(t)
	user := registerTestUser(t, service)

	err := service.ChangePassword(context.Background(), user.ID, "wrong-password", "new-password-123")
	assertUnauthorized(t, err)

	require.NoError(t, service.ChangePassword(context.Background(), user.ID, "correct-password", "new-password-123"))

	_, err = service.Login(context.Background(), auth.LoginInput{Login: "duc@vidora.app", Password: "correct-password"})
	assertUnauthorized(t, err)

	_, err = service.Login(context.Background(), auth.LoginInput{Login: "duc@vidora.app", Password: "new-password-123"})
	assert.NoError(t, err)
}

/*
TestUpdateAccount verifies profile updates never touch credentials or session.
*/
func TestUpdateAccount(t *testing.T) {
	service, repo := newTestService(t)
	user := registerTestUser(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{Login: "duc@vidora.app", Password: "correct-password"})
	require.NoError(t, err)

	updated, err := service.UpdateAccount(context.Background(), user.ID, auth.UpdateAccountInput{
		FullName: "Duc Le",
		Email:    "duc.le@vidora.app",
	})
	require.NoError(t, err)
	assert.Equal(t, "Duc Le", updated.FullName)
	assert.Equal(t, "duc.le@vidora.app", updated.Email)

	// Session binding untouched.
	stored := repo.storedHash(user.ID)
	require.NotNil(t, stored)
	assert.Equal(t, sec.HashToken(session.RefreshToken), *stored)

	// Password untouched.
	_, err = service.Login(context.Background(), auth.LoginInput{Login: "duc.le@vidora.app", Password: "correct-password"})
	assert.NoError(t, err)
}
