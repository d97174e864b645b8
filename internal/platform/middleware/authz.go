// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/leminhduc/vidora/internal/platform/apperr"
	"github.com/leminhduc/vidora/internal/platform/constants"
	"github.com/leminhduc/vidora/internal/platform/ctxkey"
	"github.com/leminhduc/vidora/internal/platform/respond"
	"github.com/leminhduc/vidora/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the token service
// implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the JWT access token from the request.
//
// # Flow
//  1. Look for 'Authorization: Bearer <token>', falling back to the
//     accessToken cookie (browser clients authenticate via cookies).
//  2. If absent, request proceeds as anonymous.
//  3. If present, parse and verify the JWT via [TokenVerifier].
//  4. Inject [*sec.AuthClaims] into the request context for downstream use.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			tokenStr, err := extractAccessToken(request)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if tokenStr == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx := context.WithValue(request.Context(), ctxkey.KeyUser, claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.AuthClaims] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := GetUser(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// GetUser retrieves the [*sec.AuthClaims] from the [context.Context].
//
// # Returns
//   - A pointer to [*sec.AuthClaims] if the user is authenticated.
//   - nil if the user is anonymous.
func GetUser(ctx context.Context) *sec.AuthClaims {
	claims, ok := ctx.Value(ctxkey.KeyUser).(*sec.AuthClaims)
	if !ok {
		return nil
	}
	return claims
}

// extractAccessToken pulls the raw access token from the Authorization header
// or the session cookie. An empty string with a nil error means anonymous.
func extractAccessToken(request *http.Request) (string, error) {
	authHeader := request.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return "", apperr.Unauthorized("Invalid authorization format")
		}
		return parts[1], nil
	}

	cookie, err := request.Cookie(constants.AccessTokenCookieName)
	if err != nil || cookie.Value == "" {
		return "", nil
	}
	return cookie.Value, nil
}
