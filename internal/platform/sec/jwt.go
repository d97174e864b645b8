// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the auth package's TokenProvider interface.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/leminhduc/vidora/pkg/uuid"
)

// AuthClaims represents the payload embedded inside a JWT Access Token.
//
// # Why custom claims?
//
// By embedding the UserID, Username, FullName, and Email directly inside the
// JWT, the authentication middleware can reconstruct the active user context
// WITHOUT querying the database on every single API request. This provides
// massive read-scalability.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID   string `json:"uid"`
	Username string `json:"unm"`
	FullName string `json:"fnm"`
	Email    string `json:"eml"`
}

// RefreshClaims is the minimal payload of a Refresh Token.
//
// Refresh tokens intentionally carry nothing but the principal id: they are
// only ever exchanged for a fresh token pair, never used to authorize a
// request directly.
type RefreshClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"uid"`
}

// TokenService handles generation and verification of JWT tokens using HS256.
//
// Access and refresh tokens are signed with independent server-held secrets,
// so leaking one class of token never compromises the other.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
}

// NewTokenService creates a new TokenService from the two signing secrets.
func NewTokenService(accessSecret, refreshSecret, issuer string) (*TokenService, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, fmt.Errorf("sec: token secrets must not be empty")
	}

	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
	}, nil
}

// GenerateAccessToken creates a new short-lived JWT access token for a user.
//
// Every mint carries a unique jti, so two tokens issued for the same user are
// never byte-identical even within the same second.
func (service *TokenService) GenerateAccessToken(userID, username, fullName, email string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New(),
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID:   userID,
		Username: username,
		FullName: fullName,
		Email:    email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.accessSecret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign access token: %w", err)
	}

	return signedToken, nil
}

// GenerateRefreshToken creates a new long-lived JWT refresh token carrying
// only the principal id.
//
// The unique jti is load-bearing here: rotation compares SHA-256 digests of
// whole tokens, so each refresh token must be distinct from every other one
// ever minted for the same user.
func (service *TokenService) GenerateRefreshToken(userID string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New(),
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign refresh token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a JWT access token string.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.accessSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid access token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid access token claims")
	}

	return claims, nil
}

// VerifyRefreshToken checks the signature and validity of a JWT refresh token
// string. Expiry failures and malformed tokens are deliberately not
// distinguished in the returned error.
func (service *TokenService) VerifyRefreshToken(tokenString string) (*RefreshClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RefreshClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.refreshSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid refresh token: %w", err)
	}

	claims, ok := token.Claims.(*RefreshClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid refresh token claims")
	}

	return claims, nil
}
