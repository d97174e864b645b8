// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leminhduc/vidora/internal/platform/constants"
	"github.com/leminhduc/vidora/internal/platform/middleware"
	"github.com/leminhduc/vidora/internal/platform/sec"
	"github.com/leminhduc/vidora/internal/users/auth"
)

// newTestRouter assembles the auth routes behind the real token middleware,
// the way the server composes them.
func newTestRouter(t *testing.T) (chi.Router, *auth.Service, *sec.TokenService) {
	t.Helper()

	tokenService, err := sec.NewTokenService("access-secret-for-tests", "refresh-secret-for-tests", "vidora.test")
	require.NoError(t, err)

	service := auth.NewService(newFakeUserRepository(), tokenService)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokenService))
	router.Mount("/auth", auth.NewHandler(service).Routes())

	return router, service, tokenService
}

func doJSON(t *testing.T, router http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func registerViaHTTP(t *testing.T, router http.Handler) {
	t.Helper()

	recorder := doJSON(t, router, http.MethodPost, "/auth/register", `{
		"username": "minhduc",
		"email": "duc@vidora.app",
		"password": "correct-password",
		"full_name": "Minh Duc Le"
	}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
}

func sessionCookies(t *testing.T, recorder *httptest.ResponseRecorder) (access, refresh *http.Cookie) {
	t.Helper()

	for _, cookie := range recorder.Result().Cookies() {
		switch cookie.Name {
		case constants.AccessTokenCookieName:
			access = cookie
		case constants.RefreshTokenCookieName:
			refresh = cookie
		}
	}
	return access, refresh
}

/*
TestHTTP_Login verifies the login contract: 200, both session cookies set,
and a body that echoes the user without any secret material.
*/
func TestHTTP_Login(t *testing.T) {
	router, _, _ := newTestRouter(t)
	registerViaHTTP(t, router)

	recorder := doJSON(t, router, http.MethodPost, "/auth/login", `{
		"login": "duc@vidora.app",
		"password": "correct-password"
	}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	access, refresh := sessionCookies(t, recorder)
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	assert.True(t, access.HttpOnly)
	assert.True(t, refresh.HttpOnly)
	assert.True(t, access.Secure)
	assert.True(t, refresh.Secure)
	assert.NotEmpty(t, access.Value)
	assert.NotEmpty(t, refresh.Value)

	// No hashes, no stored token, no password anywhere in the body.
	body := recorder.Body.String()
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "correct-password")
	assert.NotContains(t, body, "hash")

	var envelope struct {
		Data struct {
			User struct {
				ID       string `json:"id"`
				Username string `json:"username"`
				Email    string `json:"email"`
			} `json:"user"`
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "minhduc", envelope.Data.User.Username)
	assert.Equal(t, access.Value, envelope.Data.AccessToken)
	assert.Equal(t, refresh.Value, envelope.Data.RefreshToken)
}

/*
TestHTTP_Login_BadCredentials verifies the generic 401 without cookies.
*/
func TestHTTP_Login_BadCredentials(t *testing.T) {
	router, _, _ := newTestRouter(t)
	registerViaHTTP(t, router)

	recorder := doJSON(t, router, http.MethodPost, "/auth/login", `{
		"login": "duc@vidora.app",
		"password": "wrong-password"
	}`)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Empty(t, recorder.Result().Cookies())
}

/*
TestHTTP_RefreshToken_FromCookie verifies rotation via the session cookie.
*/
func TestHTTP_RefreshToken_FromCookie(t *testing.T) {
	router, _, _ := newTestRouter(t)
	registerViaHTTP(t, router)

	login := doJSON(t, router, http.MethodPost, "/auth/login", `{"login": "duc@vidora.app", "password": "correct-password"}`)
	require.Equal(t, http.StatusOK, login.Code)
	_, refresh := sessionCookies(t, login)
	require.NotNil(t, refresh)

	recorder := doJSON(t, router, http.MethodPost, "/auth/refresh-token", "", refresh)
	require.Equal(t, http.StatusOK, recorder.Code)

	newAccess, newRefresh := sessionCookies(t, recorder)
	require.NotNil(t, newAccess)
	require.NotNil(t, newRefresh)
	assert.NotEqual(t, refresh.Value, newRefresh.Value)

	// The consumed cookie no longer rotates.
	replay := doJSON(t, router, http.MethodPost, "/auth/refresh-token", "", refresh)
	assert.Equal(t, http.StatusUnauthorized, replay.Code)
}

/*
TestHTTP_RefreshToken_FromBody verifies the body fallback for cookie-less clients.
*/
func TestHTTP_RefreshToken_FromBody(t *testing.T) {
	router, _, _ := newTestRouter(t)
	registerViaHTTP(t, router)

	login := doJSON(t, router, http.MethodPost, "/auth/login", `{"login": "duc@vidora.app", "password": "correct-password"}`)
	require.Equal(t, http.StatusOK, login.Code)
	_, refresh := sessionCookies(t, login)
	require.NotNil(t, refresh)

	recorder := doJSON(t, router, http.MethodPost, "/auth/refresh-token",
		`{"refresh_token": "`+refresh.Value+`"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestHTTP_RefreshToken_Rejections verifies missing, garbage, and expired
tokens all yield the same opaque 401 with no cookies set.
*/
func TestHTTP_RefreshToken_Rejections(t *testing.T) {
	router, _, tokenService := newTestRouter(t)
	registerViaHTTP(t, router)

	expired, err := tokenService.GenerateRefreshToken("some-user", -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name string
		body string
	}{
		{"no_token_anywhere", `{}`},
		{"empty_body", ``},
		{"garbage_token", `{"refresh_token": "not.a.jwt"}`},
		{"expired_token", `{"refresh_token": "` + expired + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := doJSON(t, router, http.MethodPost, "/auth/refresh-token", tt.body)
			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.Empty(t, recorder.Result().Cookies(), "rejections must not set session cookies")
		})
	}
}

/*
TestHTTP_Logout verifies the protected logout clears both cookies and revokes
the session.
*/
func TestHTTP_Logout(t *testing.T) {
	router, _, _ := newTestRouter(t)
	registerViaHTTP(t, router)

	login := doJSON(t, router, http.MethodPost, "/auth/login", `{"login": "duc@vidora.app", "password": "correct-password"}`)
	require.Equal(t, http.StatusOK, login.Code)
	access, refresh := sessionCookies(t, login)

	recorder := doJSON(t, router, http.MethodPost, "/auth/logout", "", access, refresh)
	require.Equal(t, http.StatusNoContent, recorder.Code)

	for _, cookie := range recorder.Result().Cookies() {
		assert.Less(t, cookie.MaxAge, 0, "session cookies must be expired on logout")
	}

	// The pre-logout refresh token is revoked server-side.
	replay := doJSON(t, router, http.MethodPost, "/auth/refresh-token", "", refresh)
	assert.Equal(t, http.StatusUnauthorized, replay.Code)
}

/*
TestHTTP_Logout_RequiresAuth verifies anonymous logout is a 401.
*/
func TestHTTP_Logout_RequiresAuth(t *testing.T) {
	router, _, _ := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/auth/logout", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestHTTP_Me verifies the authenticated profile endpoint via bearer header.
*/
func TestHTTP_Me(t *testing.T) {
	router, service, _ := newTestRouter(t)
	registerViaHTTP(t, router)

	session, err := service.Login(context.Background(), auth.LoginInput{Login: "duc@vidora.app", Password: "correct-password"})
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	request.Header.Set("Authorization", "Bearer "+session.AccessToken)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"minhduc"`)
	assert.NotContains(t, recorder.Body.String(), "password")
}
