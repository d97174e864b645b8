// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/leminhduc/vidora/internal/platform/constants"
	"github.com/leminhduc/vidora/internal/platform/middleware"
	requestutil "github.com/leminhduc/vidora/internal/platform/request"
	"github.com/leminhduc/vidora/internal/platform/respond"
	"github.com/leminhduc/vidora/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the user lifecycle entry points (Registration, Login,
// Session Rotation) plus the authenticated account surface (profile, password).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register        : Creates a new account.
//   - POST /login           : Authenticates and establishes a session.
//   - POST /refresh-token   : Rotates the refresh token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh-token", handler.refreshToken)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
		r.Post("/change-password", handler.changePassword)
		r.Get("/me", handler.currentUser)
		r.Patch("/me", handler.updateAccount)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	FullName      string `json:"full_name"`
	AvatarURL     string `json:"avatar_url"`
	CoverImageURL string `json:"cover_image_url"`
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type updateAccountRequest struct {
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	AvatarURL     string `json:"avatar_url"`
	CoverImageURL string `json:"cover_image_url"`
}

/*
Register handles the creation of a new user account.

POST /api/v1/auth/register

Description: Validates input, checks for identity conflicts, and persists
a new user profile to the database.

Request:
  - Body: registerRequest (Username, Email, Password, FullName)

Response:
  - 201: User: Created user profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Username or Email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, MinUsernameLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		Required(FieldFullName, input.FullName)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Username:      input.Username,
		Email:         input.Email,
		Password:      input.Password,
		FullName:      input.FullName,
		AvatarURL:     input.AvatarURL,
		CoverImageURL: input.CoverImageURL,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Login authenticates a user and establishes a session.

POST /api/v1/auth/login

Description: Verifies credentials, generates the JWT token pair, and injects
both session cookies into the response. The body echoes the user profile
(minus secrets) alongside both tokens so that non-browser clients can store
them directly.

Request:
  - Body: loginRequest (Login, Password)

Response:
  - 200: Session: Access token, refresh token, and User profile
  - 401: ErrUnauthorized: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldLogin, input.Login)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Login:    input.Login,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setSessionCookies(writer, session)

	respond.OK(writer, map[string]any{
		"user":            session.User,
		FieldAccessToken:  session.AccessToken,
		FieldRefreshToken: session.RefreshToken,
	})
}

/*
Logout terminates the current user session.

POST /api/v1/auth/logout

Description: Revokes the stored refresh token binding and clears the
security cookies from the client. Idempotent.

Response:
  - 204: No Content: Session terminated
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.Logout(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	clearSessionCookies(writer)
	respond.NoContent(writer)
}

/*
RefreshToken rotates the session using a valid refresh token.

POST /api/v1/auth/refresh-token

Description: Accepts the refresh token from the session cookie or, failing
that, from the request body. Every rejection — missing, malformed, expired,
superseded — is the same generic 401; successful rotation re-sets both
session cookies and returns the new pair.

Request:
  - Body (optional): refreshTokenRequest (RefreshToken)

Response:
  - 200: Session: New access and refresh tokens
  - 401: ErrUnauthorized: Invalid refresh token
*/
func (handler *Handler) refreshToken(writer http.ResponseWriter, request *http.Request) {
	refreshToken := ""

	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil {
		refreshToken = cookie.Value
	}

	// Cookie absent: fall back to the request body (mobile/API clients).
	if refreshToken == "" {
		var input refreshTokenRequest
		if err := requestutil.DecodeJSON(request, &input); err == nil {
			refreshToken = input.RefreshToken
		}
	}

	session, err := handler.authService.RefreshSession(request.Context(), refreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setSessionCookies(writer, session)

	respond.OK(writer, map[string]any{
		FieldAccessToken:  session.AccessToken,
		FieldRefreshToken: session.RefreshToken,
		FieldTokenType:    "Bearer",
		FieldExpiresIn:    AccessTokenTTL / time.Second,
	})
}

/*
ChangePassword updates the authenticated user's password.

POST /api/v1/auth/change-password

Description: Verifies the current password before applying a new one.

Request:
  - Body: changePasswordRequest (CurrentPassword, NewPassword)

Response:
  - 200: Success: Password changed
  - 401: ErrUnauthorized: Session invalid or wrong current password
  - 400: ErrInvalidJSON: Weak password or validation failure
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldCurrentPassword, input.CurrentPassword).
		Required(FieldNewPassword, input.NewPassword).
		MinLen(FieldNewPassword, input.NewPassword, MinPasswordLength)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.authService.ChangePassword(
		request.Context(),
		userID,
		input.CurrentPassword,
		input.NewPassword,
	)

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Password changed successfully",
	})
}

/*
CurrentUser returns the authenticated user's full profile.

GET /api/v1/auth/me

Response:
  - 200: User: Hydrated profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) currentUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.CurrentUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
UpdateAccount updates the authenticated user's profile fields.

PATCH /api/v1/auth/me

Request:
  - Body: updateAccountRequest (FullName, Email, AvatarURL, CoverImageURL)

Response:
  - 200: User: Updated profile
  - 401: ErrUnauthorized: Authentication required
  - 400: ErrInvalidJSON: Validation failure
*/
func (handler *Handler) updateAccount(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateAccountRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldFullName, input.FullName).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.UpdateAccount(request.Context(), userID, UpdateAccountInput{
		FullName:      input.FullName,
		Email:         input.Email,
		AvatarURL:     input.AvatarURL,
		CoverImageURL: input.CoverImageURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Cookie Helpers

// setSessionCookies writes both session cookies for an established session.
func setSessionCookies(writer http.ResponseWriter, session *LoginSession) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    session.AccessToken,
		Path:     constants.SessionCookiePath,
		Expires:  session.AccessTokenExpiresAt,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    session.RefreshToken,
		Path:     constants.SessionCookiePath,
		Expires:  session.RefreshTokenExpiresAt,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearSessionCookies expires both session cookies on the client.
func clearSessionCookies(writer http.ResponseWriter) {
	for _, name := range []string{constants.AccessTokenCookieName, constants.RefreshTokenCookieName} {
		http.SetCookie(writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     constants.SessionCookiePath,
			MaxAge:   -1,
			Secure:   true,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
	}
}
